package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pjmuller/photobook/internal/config"
	"github.com/pjmuller/photobook/internal/editor"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the album editing server",
	Long:  `Start the JSON API server the editing frontend talks to for laying out pages, resizing cells and adjusting crops.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		log.Info().Msg("Starting photobook editor")
		srv, err := editor.NewServer(cfg)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		addr := fmt.Sprintf(":%d", servePort)
		log.Info().
			Str("address", fmt.Sprintf("http://localhost%s", addr)).
			Str("album", cfg.AlbumPath).
			Str("photos", cfg.PhotosDir).
			Msg("Server listening")

		if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to run the editor server on")
}
