package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pjmuller/photobook/internal/config"
	"github.com/pjmuller/photobook/internal/uploader"
)

var (
	uploadBucket   string
	uploadRegion   string
	uploadEndpoint string
	uploadPrefix   string
	uploadForce    bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload rendered sheets to the print bucket",
	Long:  `Upload every rendered sheet from the output directory to S3-compatible storage for the print bureau.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		entries, err := os.ReadDir(cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to read output directory (run export first): %w", err)
		}
		var sheets []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".jpg") {
				sheets = append(sheets, e.Name())
			}
		}
		if len(sheets) == 0 {
			return fmt.Errorf("no rendered sheets in %s", cfg.OutputDir)
		}

		ctx := cmd.Context()
		up, err := uploader.NewS3Uploader(ctx, uploader.S3Config{
			Endpoint: uploadEndpoint,
			Region:   uploadRegion,
			Bucket:   uploadBucket,
		})
		if err != nil {
			return err
		}

		bar := progressbar.Default(int64(len(sheets)), "uploading")
		uploaded := 0
		for _, name := range sheets {
			key := filepath.ToSlash(filepath.Join(uploadPrefix, name))

			if !uploadForce {
				exists, err := up.Exists(ctx, key)
				if err != nil {
					return err
				}
				if exists {
					bar.Add(1)
					continue
				}
			}

			f, err := os.Open(filepath.Join(cfg.OutputDir, name))
			if err != nil {
				return fmt.Errorf("failed to open sheet %s: %w", name, err)
			}
			err = up.Upload(ctx, key, f, uploader.DetectContentType(name))
			f.Close()
			if err != nil {
				return err
			}
			uploaded++
			bar.Add(1)
		}

		log.Info().Int("uploaded", uploaded).Int("skipped", len(sheets)-uploaded).Msg("Upload complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadBucket, "bucket", "", "Destination bucket")
	uploadCmd.Flags().StringVar(&uploadRegion, "region", "auto", "Bucket region")
	uploadCmd.Flags().StringVar(&uploadEndpoint, "endpoint", "", "Custom S3-compatible endpoint URL")
	uploadCmd.Flags().StringVar(&uploadPrefix, "prefix", "sheets", "Key prefix inside the bucket")
	uploadCmd.Flags().BoolVar(&uploadForce, "force", false, "Re-upload sheets that already exist")
	uploadCmd.MarkFlagRequired("bucket")
}
