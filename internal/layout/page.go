package layout

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pjmuller/photobook/internal/album"
	"github.com/pjmuller/photobook/internal/config"
)

// BuildPage creates an empty page for the given template with all sizes at
// their defaults.
func BuildPage(id string, tpl Template, cfg *config.Config) *album.Page {
	p := &album.Page{ID: id, Layout: tpl.ID}
	build(p, tpl, cfg)
	return p
}

// NewPage creates an empty page with a fresh id.
func NewPage(templateID string, cfg *config.Config) (*album.Page, error) {
	tpl, ok := TemplateByID(templateID)
	if !ok {
		return nil, fmt.Errorf("unknown layout template %q", templateID)
	}
	return BuildPage(uuid.NewString(), tpl, cfg), nil
}

// build replaces the page's structure with a fresh one for tpl. The id is
// preserved; all cells come back empty.
func build(p *album.Page, tpl Template, cfg *config.Config) {
	p.Layout = tpl.ID
	p.Rows = nil
	p.Columns = nil
	if tpl.RowMajor {
		heights := DefaultSizes(len(tpl.Counts), cfg.PageHeight, cfg.Gutter)
		for i, count := range tpl.Counts {
			row := &album.Row{Height: heights[i]}
			for _, w := range DefaultSizes(count, cfg.PageWidth, cfg.Gutter) {
				row.Cells = append(row.Cells, &album.Cell{Width: w})
			}
			p.Rows = append(p.Rows, row)
		}
		return
	}
	widths := DefaultSizes(len(tpl.Counts), cfg.PageWidth, cfg.Gutter)
	for i, count := range tpl.Counts {
		col := &album.Column{Width: widths[i]}
		for _, h := range DefaultSizes(count, cfg.PageHeight, cfg.Gutter) {
			col.Cells = append(col.Cells, &album.Cell{Height: h})
		}
		p.Columns = append(p.Columns, col)
	}
}

// DefaultAlbum creates a fresh document: a cover page, interior pages and a
// back cover, all on the two-by-two template. The first and last pages are
// reserved for the cover by the print renderer.
func DefaultAlbum(cfg *config.Config, interiorPages int) *album.Album {
	if interiorPages < 1 {
		interiorPages = 1
	}
	tpl, _ := TemplateByID(TwoTwo)
	cover, _ := TemplateByID(Full)
	a := &album.Album{Version: album.Version}
	a.Pages = append(a.Pages, BuildPage(uuid.NewString(), cover, cfg))
	for i := 0; i < interiorPages; i++ {
		a.Pages = append(a.Pages, BuildPage(uuid.NewString(), tpl, cfg))
	}
	a.Pages = append(a.Pages, BuildPage(uuid.NewString(), cover, cfg))
	return a
}
