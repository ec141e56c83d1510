// Package render produces print-ready sheets from an album document. It
// walks pages the same way the editor lays them out, recomputes each
// cell's crop from the stored focal point and zoom, and composes the
// photos onto a sheet sized for the print bureau.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/pjmuller/photobook/internal/album"
	"github.com/pjmuller/photobook/internal/config"
	"github.com/pjmuller/photobook/internal/crop"
	"github.com/pjmuller/photobook/internal/images"
)

// Print sheet metrics in millimeters. The 2mm margin bleeds past the
// bureau's 3mm cut line by 1mm.
const (
	sheetWidthMM  = 356.0
	sheetHeightMM = 296.0
	marginMM      = 2.0

	// Internal processing resolution
	targetDPI = 300.0

	// Photos below this effective DPI will look pixelated in print
	minDPIWarning = 200.0
)

// Renderer renders album pages to JPEG print sheets.
type Renderer struct {
	cfg    *config.Config
	loader *images.Loader

	// mm per UI pixel
	scale float64
}

// New creates a renderer for the configured page metrics.
func New(cfg *config.Config, loader *images.Loader) *Renderer {
	return &Renderer{
		cfg:    cfg,
		loader: loader,
		scale:  (sheetWidthMM - 2*marginMM) / float64(cfg.PageWidth),
	}
}

// InteriorPages returns the album's printable pages. The first and last
// pages are cover pages and are rendered by a separate cover process.
func InteriorPages(a *album.Album) []*album.Page {
	if len(a.Pages) <= 2 {
		return nil
	}
	return a.Pages[1 : len(a.Pages)-1]
}

// SheetFilename returns the output filename for interior page i (1-based
// in the printed book).
func SheetFilename(i int) string {
	return fmt.Sprintf("page-%03d.jpg", i+1)
}

// RenderPage composes one page onto a white sheet and writes it as JPEG.
func (r *Renderer) RenderPage(p *album.Page, outPath string) error {
	sheetW := mmToPx(sheetWidthMM)
	sheetH := mmToPx(sheetHeightMM)
	sheet := imaging.New(sheetW, sheetH, color.White)

	var err error
	groupOff := 0
	for i := 0; i < p.GroupCount(); i++ {
		g := p.Group(i)
		cellOff := 0
		for j := 0; j < g.CellCount(); j++ {
			w, h := g.CellDims(j)
			var x, y int
			if p.RowMajor() {
				x, y = cellOff, groupOff
			} else {
				x, y = groupOff, cellOff
			}
			sheet, err = r.renderCell(sheet, g.Cell(j), w, h, x, y)
			if err != nil {
				return err
			}
			cellOff += g.CellSize(j) + r.cfg.Gutter
		}
		groupOff += g.Size() + r.cfg.Gutter
	}

	if err := imaging.Save(sheet, outPath, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save sheet %s: %w", outPath, err)
	}
	return nil
}

// renderCell crops, resizes and pastes one photo. Cell geometry arrives in
// UI pixels; x and y are the cell's offsets inside the page content area.
func (r *Renderer) renderCell(sheet *image.NRGBA, c *album.Cell, cellW, cellH, x, y int) (*image.NRGBA, error) {
	if !c.HasPhoto() {
		return sheet, nil
	}

	src, err := imaging.Open(filepath.Join(r.loader.Dir(), c.Path), imaging.AutoOrientation(true))
	if err != nil {
		log.Warn().Err(err).Str("path", c.Path).Msg("Photo missing, leaving cell blank")
		return sheet, nil
	}
	bounds := src.Bounds()
	dims := album.ImageDimensions{Width: bounds.Dx(), Height: bounds.Dy()}

	rect := crop.Calculate(dims, cellW, cellH, *c.FocalPoint, c.Zoom,
		crop.Limits{Min: r.cfg.MinZoom, Max: r.cfg.MaxZoom})

	cellWMM := float64(cellW) * r.scale
	cellHMM := float64(cellH) * r.scale
	if dpi := rect.W / (cellWMM / 25.4); dpi < minDPIWarning {
		log.Warn().
			Str("path", c.Path).
			Float64("dpi", math.Round(dpi)).
			Msg("Photo below recommended print resolution")
	}

	cropped := imaging.Crop(src, image.Rect(
		int(math.Round(rect.X)),
		int(math.Round(rect.Y)),
		int(math.Round(rect.X+rect.W)),
		int(math.Round(rect.Y+rect.H)),
	))

	targetW := mmToPx(cellWMM)
	targetH := mmToPx(cellHMM)
	resized := imaging.Resize(cropped, targetW, targetH, imaging.Lanczos)

	px := mmToPx(marginMM + float64(x)*r.scale)
	py := mmToPx(marginMM + float64(y)*r.scale)
	return imaging.Paste(sheet, resized, image.Pt(px, py)), nil
}

func mmToPx(mm float64) int {
	return int(math.Round(mm / 25.4 * targetDPI))
}
