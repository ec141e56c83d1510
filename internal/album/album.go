// Package album holds the plain data model of a photobook document: pages
// made of rows or columns of photo cells, plus the album.json store. The
// model is mutated only through the layout, resize and crop engines; this
// package carries no geometry logic of its own.
package album

import "encoding/json"

// Version is written into new documents as photobook_version.
const Version = "1.0"

// FocalPoint is the user's point of interest on a photo, as ratios of the
// source image dimensions in [0, 1].
type FocalPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ImageDimensions are the intrinsic pixel dimensions of a source photo,
// supplied by the image loader.
type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Cell is a single photo slot. In a row-based page a cell owns its Width
// and inherits its height from the row; in a column-based page it owns its
// Height and inherits its width from the column. A cell either holds a
// photo (Path, FocalPoint, Zoom and the four derived crop fields all set)
// or none of those fields.
type Cell struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	Path       string      `json:"path,omitempty"`
	FocalPoint *FocalPoint `json:"focalPoint,omitempty"`
	Zoom       float64     `json:"zoom,omitempty"`

	// Derived crop rectangle in source-image pixels
	CropX float64 `json:"crop_x"`
	CropY float64 `json:"crop_y"`
	CropW float64 `json:"crop_width"`
	CropH float64 `json:"crop_height"`
}

// HasPhoto reports whether the cell holds a photo.
func (c *Cell) HasPhoto() bool {
	return c.Path != "" && c.FocalPoint != nil
}

// SetPhoto assigns a photo with the given intent. The crop fields are left
// for the crop engine to fill in.
func (c *Cell) SetPhoto(path string, fp FocalPoint, zoom float64) {
	c.Path = path
	c.FocalPoint = &FocalPoint{X: fp.X, Y: fp.Y}
	c.Zoom = zoom
}

// ClearPhoto empties the cell, keeping its size.
func (c *Cell) ClearPhoto() {
	c.Path = ""
	c.FocalPoint = nil
	c.Zoom = 0
	c.CropX, c.CropY, c.CropW, c.CropH = 0, 0, 0, 0
}

// cellJSON is the persisted shape of a cell. Crop fields are pointers so
// that empty cells serialize without them while crop_x = 0 survives for
// occupied ones.
type cellJSON struct {
	Width      int         `json:"width,omitempty"`
	Height     int         `json:"height,omitempty"`
	Path       string      `json:"path,omitempty"`
	FocalPoint *FocalPoint `json:"focalPoint,omitempty"`
	Zoom       float64     `json:"zoom,omitempty"`
	CropX      *float64    `json:"crop_x,omitempty"`
	CropY      *float64    `json:"crop_y,omitempty"`
	CropW      *float64    `json:"crop_width,omitempty"`
	CropH      *float64    `json:"crop_height,omitempty"`
}

// MarshalJSON writes photo fields only for occupied cells.
func (c *Cell) MarshalJSON() ([]byte, error) {
	out := cellJSON{Width: c.Width, Height: c.Height}
	if c.HasPhoto() {
		fp := *c.FocalPoint
		out.Path = c.Path
		out.FocalPoint = &fp
		out.Zoom = c.Zoom
		cx, cy, cw, ch := c.CropX, c.CropY, c.CropW, c.CropH
		out.CropX, out.CropY, out.CropW, out.CropH = &cx, &cy, &cw, &ch
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the persisted cell shape.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var in cellJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = Cell{
		Width:      in.Width,
		Height:     in.Height,
		Path:       in.Path,
		FocalPoint: in.FocalPoint,
		Zoom:       in.Zoom,
	}
	if in.CropX != nil {
		c.CropX = *in.CropX
	}
	if in.CropY != nil {
		c.CropY = *in.CropY
	}
	if in.CropW != nil {
		c.CropW = *in.CropW
	}
	if in.CropH != nil {
		c.CropH = *in.CropH
	}
	return nil
}

// Row is a horizontal band of cells sharing one height.
type Row struct {
	Height int     `json:"height"`
	Cells  []*Cell `json:"cells"`
}

// Column is a vertical band of cells sharing one width.
type Column struct {
	Width int     `json:"width"`
	Cells []*Cell `json:"cells"`
}

// Page is one book page. A page has rows or columns, never both; the
// invariant is kept by constructing pages only through layout.BuildPage.
type Page struct {
	ID      string    `json:"id"`
	Layout  string    `json:"layout"`
	Rows    []*Row    `json:"rows,omitempty"`
	Columns []*Column `json:"columns,omitempty"`
}

// RowMajor reports whether the page is built from rows.
func (p *Page) RowMajor() bool {
	return len(p.Columns) == 0
}

// GroupCount returns the number of rows or columns.
func (p *Page) GroupCount() int {
	if p.RowMajor() {
		return len(p.Rows)
	}
	return len(p.Columns)
}

// Group returns an orientation-neutral view of row or column i.
func (p *Page) Group(i int) Group {
	return Group{page: p, index: i}
}

// EachCell visits every cell in reading order: rows top-to-bottom then
// left-to-right, columns left-to-right then top-to-bottom.
func (p *Page) EachCell(fn func(group, index int, c *Cell)) {
	for i := 0; i < p.GroupCount(); i++ {
		g := p.Group(i)
		for j := 0; j < g.CellCount(); j++ {
			fn(i, j, g.Cell(j))
		}
	}
}

// OccupiedCount returns the number of cells holding a photo.
func (p *Page) OccupiedCount() int {
	n := 0
	p.EachCell(func(_, _ int, c *Cell) {
		if c.HasPhoto() {
			n++
		}
	})
	return n
}

// Group is a sizing-neutral view over one row or column. Rows own a height
// and their cells own widths; columns are the transpose. Group lets the
// engines manipulate both through one accessor set.
type Group struct {
	page  *Page
	index int
}

// Size returns the group's owned dimension (row height or column width).
func (g Group) Size() int {
	if g.page.RowMajor() {
		return g.page.Rows[g.index].Height
	}
	return g.page.Columns[g.index].Width
}

// SetSize sets the group's owned dimension.
func (g Group) SetSize(v int) {
	if g.page.RowMajor() {
		g.page.Rows[g.index].Height = v
	} else {
		g.page.Columns[g.index].Width = v
	}
}

func (g Group) cells() []*Cell {
	if g.page.RowMajor() {
		return g.page.Rows[g.index].Cells
	}
	return g.page.Columns[g.index].Cells
}

// CellCount returns the number of cells in the group.
func (g Group) CellCount() int {
	return len(g.cells())
}

// Cell returns cell j of the group.
func (g Group) Cell(j int) *Cell {
	return g.cells()[j]
}

// CellSize returns cell j's free-axis size (width in a row, height in a
// column).
func (g Group) CellSize(j int) int {
	if g.page.RowMajor() {
		return g.cells()[j].Width
	}
	return g.cells()[j].Height
}

// SetCellSize sets cell j's free-axis size.
func (g Group) SetCellSize(j, v int) {
	if g.page.RowMajor() {
		g.cells()[j].Width = v
	} else {
		g.cells()[j].Height = v
	}
}

// CellDims returns cell j's full dimensions, combining its free-axis size
// with the group's owned dimension.
func (g Group) CellDims(j int) (w, h int) {
	if g.page.RowMajor() {
		return g.cells()[j].Width, g.Size()
	}
	return g.Size(), g.cells()[j].Height
}

// Album is the whole document.
type Album struct {
	Version string  `json:"photobook_version"`
	Pages   []*Page `json:"pages"`
}

// PageByID returns the page with the given id, or nil.
func (a *Album) PageByID(id string) *Page {
	for _, p := range a.Pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}
