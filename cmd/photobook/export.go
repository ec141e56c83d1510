package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pjmuller/photobook/internal/album"
	"github.com/pjmuller/photobook/internal/config"
	"github.com/pjmuller/photobook/internal/images"
	"github.com/pjmuller/photobook/internal/render"
)

var exportOutDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the album to print-ready sheets",
	Long: `Render every interior page of the album to a 300 DPI JPEG sheet
sized for the print bureau. The first and last pages are cover pages and
are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if exportOutDir != "" {
			cfg.OutputDir = exportOutDir
		}

		a, err := album.NewStore(cfg.AlbumPath).Load()
		if err != nil {
			return fmt.Errorf("failed to load album: %w", err)
		}

		pages := render.InteriorPages(a)
		if len(pages) == 0 {
			return fmt.Errorf("album has no interior pages, only cover pages")
		}

		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		r := render.New(cfg, images.NewLoader(cfg.PhotosDir))
		bar := progressbar.Default(int64(len(pages)), "rendering")
		for i, page := range pages {
			out := filepath.Join(cfg.OutputDir, render.SheetFilename(i))
			if err := r.RenderPage(page, out); err != nil {
				return err
			}
			bar.Add(1)
		}

		log.Info().Int("pages", len(pages)).Str("dir", cfg.OutputDir).Msg("Export complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutDir, "output", "o", "", "Output directory for rendered sheets (overrides config)")
}
