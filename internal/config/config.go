package config

import (
	"fmt"
	"os"

	"github.com/pjmuller/photobook/internal/util"
)

// Config holds the fixed editor configuration. Every geometric constant the
// engines depend on lives here so that the persisted album and the print
// renderer agree on the same page metrics.
type Config struct {
	// Page content area in UI pixels
	PageWidth  int `yaml:"page_width"`
	PageHeight int `yaml:"page_height"`

	// Fixed gutter between cells and between rows/columns, in UI pixels
	Gutter int `yaml:"gutter"`

	// Minimum sizes enforced during gutter drags
	MinRowHeight int `yaml:"min_row_height"`
	MinCellWidth int `yaml:"min_cell_width"`

	// Zoom bounds for the crop engine
	MinZoom float64 `yaml:"min_zoom"`
	MaxZoom float64 `yaml:"max_zoom"`

	// Maximum distance at which a dragged gutter snaps to a sibling
	// row's/column's boundary, in UI pixels. Zero disables snapping.
	SnapThreshold int `yaml:"snap_threshold"`

	// Paths
	PhotosDir string `yaml:"photos_dir"`
	AlbumPath string `yaml:"album_path"`
	OutputDir string `yaml:"output_dir"`
}

// Default returns the configuration matching the product's page metrics.
func Default() *Config {
	return &Config{
		PageWidth:     730,
		PageHeight:    598,
		Gutter:        7,
		MinRowHeight:  60,
		MinCellWidth:  60,
		MinZoom:       1.0,
		MaxZoom:       3.0,
		SnapThreshold: 8,
		PhotosDir:     "photos",
		AlbumPath:     "album.json",
		OutputDir:     "print",
	}
}

// Load reads the configuration from a YAML file, falling back to defaults
// for a missing file. Zero-valued fields keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := util.LoadYAML(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("invalid page dimensions %dx%d", c.PageWidth, c.PageHeight)
	}
	if c.Gutter < 0 {
		return fmt.Errorf("invalid gutter %d", c.Gutter)
	}
	if c.MinZoom < 1 || c.MaxZoom < c.MinZoom {
		return fmt.Errorf("invalid zoom bounds [%g, %g]", c.MinZoom, c.MaxZoom)
	}
	return nil
}

// MinSizeFor returns the minimum free-axis size for an element: row heights
// and column-cell heights share the vertical minimum, cell widths and
// column widths share the horizontal one.
func (c *Config) MinSizeFor(vertical bool) int {
	if vertical {
		return c.MinRowHeight
	}
	return c.MinCellWidth
}
