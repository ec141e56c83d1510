package layout

import (
	"fmt"

	"github.com/pjmuller/photobook/internal/album"
	"github.com/pjmuller/photobook/internal/config"
	"github.com/pjmuller/photobook/internal/crop"
)

// DimensionsFunc supplies intrinsic image dimensions for a photo path.
// The second return is false when the file cannot be measured right now.
type DimensionsFunc func(path string) (album.ImageDimensions, bool)

// Photo is a cell assignment carried across a layout change: the user's
// intent plus the last derived crop, kept so that a photo whose file is
// temporarily unavailable does not lose its crop.
type Photo struct {
	Path       string            `json:"path"`
	FocalPoint album.FocalPoint  `json:"focalPoint"`
	Zoom       float64           `json:"zoom"`
	CropX      float64           `json:"-"`
	CropY      float64           `json:"-"`
	CropW      float64           `json:"-"`
	CropH      float64           `json:"-"`
}

func photoFromCell(c *album.Cell) Photo {
	return Photo{
		Path:       c.Path,
		FocalPoint: *c.FocalPoint,
		Zoom:       c.Zoom,
		CropX:      c.CropX,
		CropY:      c.CropY,
		CropW:      c.CropW,
		CropH:      c.CropH,
	}
}

// ChangeLayout rebuilds the page for the target template, redistributing
// existing photo assignments in reading order and recropping every cell
// whose geometry changed. Focal point and zoom are never reset; only the
// derived crop rectangle is recomputed. Photos that no longer fit are
// returned so the image bank can offer them again. Targeting the current
// layout is a no-op.
func ChangeLayout(page *album.Page, targetID string, dims DimensionsFunc, cfg *config.Config) ([]Photo, error) {
	if targetID == page.Layout {
		return nil, nil
	}
	tpl, ok := TemplateByID(targetID)
	if !ok {
		return nil, fmt.Errorf("unknown layout template %q", targetID)
	}

	t := &transition{page: page, dims: dims, cfg: cfg}
	cur := page.Layout

	switch {
	case (cur == TwoThree && targetID == ThreeTwo) || (cur == ThreeTwo && targetID == TwoThree):
		// Mirrored stacked templates: swap row order, cells untouched.
		page.Rows[0], page.Rows[1] = page.Rows[1], page.Rows[0]
		page.Layout = targetID
		return nil, nil

	case cur == TwoTwo && (targetID == TwoThree || targetID == ThreeTwo):
		gaining := 0
		if targetID == TwoThree {
			gaining = 1
		}
		t.resetRow(page.Rows[gaining], 3)
		page.Layout = targetID
		return nil, nil

	case (cur == TwoThree || cur == ThreeTwo) && targetID == TwoTwo:
		shrinking := 0
		if cur == TwoThree {
			shrinking = 1
		}
		evicted := t.resetRow(page.Rows[shrinking], 2)
		page.Layout = targetID
		return evicted, nil

	case targetID == Full:
		// Only the reading-order-first photo survives at full bleed.
		photos := t.collect()
		build(page, tpl, cfg)
		if len(photos) == 0 {
			return nil, nil
		}
		t.place(page.Group(0), 0, photos[0])
		return photos[1:], nil

	default:
		// Generic rule: fresh structure, one-for-one placement in reading
		// order, overflow evicted. Also covers leaving the full-bleed
		// template, where the single photo lands in the first cell.
		photos := t.collect()
		build(page, tpl, cfg)
		evicted := t.fill(photos)
		return evicted, nil
	}
}

type transition struct {
	page *album.Page
	dims DimensionsFunc
	cfg  *config.Config
}

func (t *transition) limits() crop.Limits {
	return crop.Limits{Min: t.cfg.MinZoom, Max: t.cfg.MaxZoom}
}

// collect gathers every occupied cell's assignment in reading order.
func (t *transition) collect() []Photo {
	var photos []Photo
	t.page.EachCell(func(_, _ int, c *album.Cell) {
		if c.HasPhoto() {
			photos = append(photos, photoFromCell(c))
		}
	})
	return photos
}

// place assigns a photo to cell j of group g and recrops it against the
// cell's current geometry. Unknown image dimensions keep the carried crop.
func (t *transition) place(g album.Group, j int, ph Photo) {
	c := g.Cell(j)
	c.SetPhoto(ph.Path, ph.FocalPoint, ph.Zoom)
	if d, ok := t.dims(ph.Path); ok {
		w, h := g.CellDims(j)
		crop.Apply(c, d, w, h, t.limits())
	} else {
		c.CropX, c.CropY, c.CropW, c.CropH = ph.CropX, ph.CropY, ph.CropW, ph.CropH
	}
}

// fill walks the rebuilt structure in reading order, assigning photos
// one-for-one until photos or cells run out; the rest are evicted.
func (t *transition) fill(photos []Photo) []Photo {
	next := 0
	for i := 0; i < t.page.GroupCount(); i++ {
		g := t.page.Group(i)
		for j := 0; j < g.CellCount(); j++ {
			if next >= len(photos) {
				return nil
			}
			t.place(g, j, photos[next])
			next++
		}
	}
	return photos[next:]
}

// resetRow rebuilds one row with count equal-width cells, reassigning that
// row's photos in reading order. A photo beyond the new cell count is
// evicted (the third image of a row shrinking to two cells). The row's
// height and the sibling row stay untouched.
func (t *transition) resetRow(row *album.Row, count int) []Photo {
	var photos []Photo
	for _, c := range row.Cells {
		if c.HasPhoto() {
			photos = append(photos, photoFromCell(c))
		}
	}
	var evicted []Photo
	if len(photos) > count {
		evicted = photos[count:]
		photos = photos[:count]
	}

	widths := DefaultSizes(count, t.cfg.PageWidth, t.cfg.Gutter)
	row.Cells = row.Cells[:0]
	for _, w := range widths {
		row.Cells = append(row.Cells, &album.Cell{Width: w})
	}
	for j, ph := range photos {
		c := row.Cells[j]
		c.SetPhoto(ph.Path, ph.FocalPoint, ph.Zoom)
		if d, ok := t.dims(ph.Path); ok {
			crop.Apply(c, d, c.Width, row.Height, t.limits())
		} else {
			c.CropX, c.CropY, c.CropW, c.CropH = ph.CropX, ph.CropY, ph.CropW, ph.CropH
		}
	}
	return evicted
}
