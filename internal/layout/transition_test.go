package layout

import (
	"testing"

	"github.com/pjmuller/photobook/internal/album"
	"github.com/pjmuller/photobook/internal/config"
	"github.com/pjmuller/photobook/internal/crop"
)

func testDims(path string) (album.ImageDimensions, bool) {
	return album.ImageDimensions{Width: 4000, Height: 3000}, true
}

func noDims(path string) (album.ImageDimensions, bool) {
	return album.ImageDimensions{}, false
}

// fillPage assigns numbered photos to the first n cells in reading order
// and computes their crops.
func fillPage(t *testing.T, p *album.Page, n int, cfg *config.Config, dims DimensionsFunc) []string {
	t.Helper()
	var paths []string
	i := 0
	p.EachCell(func(gi, ci int, c *album.Cell) {
		if i >= n {
			return
		}
		path := "photo-" + string(rune('a'+i)) + ".jpg"
		c.SetPhoto(path, album.FocalPoint{X: 0.5, Y: 0.5}, 1)
		if d, ok := dims(path); ok {
			w, h := p.Group(gi).CellDims(ci)
			crop.Apply(c, d, w, h, crop.Limits{Min: cfg.MinZoom, Max: cfg.MaxZoom})
		}
		paths = append(paths, path)
		i++
	})
	return paths
}

func mustBuild(t *testing.T, id string, cfg *config.Config) *album.Page {
	t.Helper()
	tpl, ok := TemplateByID(id)
	if !ok {
		t.Fatalf("unknown template %s", id)
	}
	return BuildPage("page-1", tpl, cfg)
}

func TestChangeLayoutNoOp(t *testing.T) {
	cfg := config.Default()
	p := mustBuild(t, TwoTwo, cfg)
	fillPage(t, p, 4, cfg, testDims)

	evicted, err := ChangeLayout(p, TwoTwo, testDims, cfg)
	if err != nil {
		t.Fatalf("ChangeLayout failed: %v", err)
	}
	if len(evicted) != 0 {
		t.Errorf("no-op transition evicted %d photos", len(evicted))
	}
	if p.OccupiedCount() != 4 {
		t.Errorf("no-op transition changed occupancy to %d", p.OccupiedCount())
	}
}

func TestChangeLayoutUnknownTemplate(t *testing.T) {
	cfg := config.Default()
	p := mustBuild(t, TwoTwo, cfg)
	if _, err := ChangeLayout(p, "bogus", testDims, cfg); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestChangeLayoutMirrorSwapsRows(t *testing.T) {
	cfg := config.Default()
	p := mustBuild(t, ThreeTwo, cfg)
	fillPage(t, p, 5, cfg, testDims)

	// Record cell contents before the swap
	row0, row1 := p.Rows[0], p.Rows[1]
	before := make(map[*album.Cell]album.Cell)
	p.EachCell(func(_, _ int, c *album.Cell) { before[c] = *c })

	evicted, err := ChangeLayout(p, TwoThree, testDims, cfg)
	if err != nil {
		t.Fatalf("ChangeLayout failed: %v", err)
	}
	if len(evicted) != 0 {
		t.Errorf("mirror swap evicted %d photos", len(evicted))
	}
	if p.Layout != TwoThree {
		t.Errorf("layout = %s; want %s", p.Layout, TwoThree)
	}
	if p.Rows[0] != row1 || p.Rows[1] != row0 {
		t.Fatal("rows were not swapped in place")
	}
	// Every cell must be bit-identical: content, sizes and crops
	p.EachCell(func(_, _ int, c *album.Cell) {
		if *c != before[c] {
			t.Errorf("cell changed during mirror swap: %+v != %+v", *c, before[c])
		}
	})
}

func TestChangeLayoutToFullKeepsFirstPhoto(t *testing.T) {
	cfg := config.Default()
	p := mustBuild(t, TwoTwo, cfg)
	paths := fillPage(t, p, 4, cfg, testDims)

	evicted, err := ChangeLayout(p, Full, testDims, cfg)
	if err != nil {
		t.Fatalf("ChangeLayout failed: %v", err)
	}
	if len(evicted) != 3 {
		t.Fatalf("evicted %d photos; want 3", len(evicted))
	}
	if p.OccupiedCount() != 1 {
		t.Fatalf("occupied = %d; want 1", p.OccupiedCount())
	}

	cell := p.Rows[0].Cells[0]
	if cell.Path != paths[0] {
		t.Errorf("surviving photo = %s; want reading-order first %s", cell.Path, paths[0])
	}
	if cell.Width != cfg.PageWidth || p.Rows[0].Height != cfg.PageHeight {
		t.Errorf("full-bleed cell is %dx%d; want %dx%d", cell.Width, p.Rows[0].Height, cfg.PageWidth, cfg.PageHeight)
	}
	for i, ph := range evicted {
		if ph.Path != paths[i+1] {
			t.Errorf("evicted[%d] = %s; want %s", i, ph.Path, paths[i+1])
		}
	}
}

func TestChangeLayoutGainingThirdCell(t *testing.T) {
	cfg := config.Default()
	p := mustBuild(t, TwoTwo, cfg)
	fillPage(t, p, 4, cfg, testDims)

	topRow := p.Rows[0]
	topCells := append([]*album.Cell(nil), topRow.Cells...)

	evicted, err := ChangeLayout(p, TwoThree, testDims, cfg)
	if err != nil {
		t.Fatalf("ChangeLayout failed: %v", err)
	}
	if len(evicted) != 0 {
		t.Errorf("gaining a cell evicted %d photos", len(evicted))
	}

	// Untouched row keeps its exact cells
	if p.Rows[0] != topRow {
		t.Fatal("top row was rebuilt")
	}
	for i, c := range p.Rows[0].Cells {
		if c != topCells[i] {
			t.Errorf("top row cell %d was replaced", i)
		}
	}

	// Gaining row has three equal default widths with photos compacted in
	bottom := p.Rows[1]
	if len(bottom.Cells) != 3 {
		t.Fatalf("bottom row has %d cells; want 3", len(bottom.Cells))
	}
	wantWidths := DefaultSizes(3, cfg.PageWidth, cfg.Gutter)
	for i, c := range bottom.Cells {
		if c.Width != wantWidths[i] {
			t.Errorf("bottom cell %d width = %d; want %d", i, c.Width, wantWidths[i])
		}
	}
	if !bottom.Cells[0].HasPhoto() || !bottom.Cells[1].HasPhoto() || bottom.Cells[2].HasPhoto() {
		t.Error("photos not placed into the first two cells of the gaining row")
	}
	// Recropped against the new cell width: the crop keeps the cell's AR
	c := bottom.Cells[0]
	wantAR := float64(c.Width) / float64(bottom.Height)
	if gotAR := c.CropW / c.CropH; !approx(gotAR, wantAR, 1e-9) {
		t.Errorf("crop aspect ratio = %g; want %g", gotAR, wantAR)
	}
}

func TestChangeLayoutShrinkingRowEvictsThird(t *testing.T) {
	cfg := config.Default()
	p := mustBuild(t, ThreeTwo, cfg)
	paths := fillPage(t, p, 5, cfg, testDims)

	bottomRow := p.Rows[1]

	evicted, err := ChangeLayout(p, TwoTwo, testDims, cfg)
	if err != nil {
		t.Fatalf("ChangeLayout failed: %v", err)
	}
	if len(evicted) != 1 || evicted[0].Path != paths[2] {
		t.Fatalf("evicted = %+v; want the third photo %s", evicted, paths[2])
	}
	if p.Rows[1] != bottomRow {
		t.Error("untouched row was rebuilt")
	}

	shrunk := p.Rows[0]
	wantWidths := DefaultSizes(2, cfg.PageWidth, cfg.Gutter)
	if len(shrunk.Cells) != 2 {
		t.Fatalf("shrunk row has %d cells; want 2", len(shrunk.Cells))
	}
	for i, c := range shrunk.Cells {
		if c.Width != wantWidths[i] {
			t.Errorf("cell %d width = %d; want %d", i, c.Width, wantWidths[i])
		}
	}
	if shrunk.Cells[0].Path != paths[0] || shrunk.Cells[1].Path != paths[1] {
		t.Error("remaining photos not kept in reading order")
	}
}

func TestChangeLayoutGenericRowToColumn(t *testing.T) {
	cfg := config.Default()
	p := mustBuild(t, TwoTwo, cfg)
	paths := fillPage(t, p, 3, cfg, testDims)

	evicted, err := ChangeLayout(p, ColOneOne, testDims, cfg)
	if err != nil {
		t.Fatalf("ChangeLayout failed: %v", err)
	}
	// 1-1 has two cells for three photos
	if len(evicted) != 1 || evicted[0].Path != paths[2] {
		t.Fatalf("evicted = %+v; want %s", evicted, paths[2])
	}
	if p.RowMajor() {
		t.Fatal("page is still row-major after column transition")
	}
	if p.Columns[0].Cells[0].Path != paths[0] || p.Columns[1].Cells[0].Path != paths[1] {
		t.Error("photos not redistributed in reading order")
	}
	// Focal point and zoom survive, only the crop is recomputed
	c := p.Columns[0].Cells[0]
	if c.FocalPoint.X != 0.5 || c.FocalPoint.Y != 0.5 || c.Zoom != 1 {
		t.Errorf("intent changed during transition: %+v zoom %g", c.FocalPoint, c.Zoom)
	}
	wantAR := float64(p.Columns[0].Width) / float64(c.Height)
	if gotAR := c.CropW / c.CropH; !approx(gotAR, wantAR, 1e-9) {
		t.Errorf("crop aspect ratio = %g; want %g", gotAR, wantAR)
	}
}

func TestChangeLayoutOutOfFull(t *testing.T) {
	cfg := config.Default()
	p := mustBuild(t, Full, cfg)
	paths := fillPage(t, p, 1, cfg, testDims)

	evicted, err := ChangeLayout(p, TwoThree, testDims, cfg)
	if err != nil {
		t.Fatalf("ChangeLayout failed: %v", err)
	}
	if len(evicted) != 0 {
		t.Errorf("evicted %d photos leaving full bleed", len(evicted))
	}
	if p.Rows[0].Cells[0].Path != paths[0] {
		t.Error("photo did not land in the first cell of the new structure")
	}
	if p.OccupiedCount() != 1 {
		t.Errorf("occupied = %d; want 1", p.OccupiedCount())
	}
}

func TestChangeLayoutConservation(t *testing.T) {
	cfg := config.Default()
	ids := []string{Full, TwoTwo, TwoThree, ThreeTwo, ColOneOne, ColOneTwo, ColTwoOne}
	for _, from := range ids {
		for _, to := range ids {
			if from == to {
				continue
			}
			p := mustBuild(t, from, cfg)
			filled := 0
			p.EachCell(func(_, _ int, c *album.Cell) { filled++ })
			fillPage(t, p, filled, cfg, testDims)

			evicted, err := ChangeLayout(p, to, testDims, cfg)
			if err != nil {
				t.Fatalf("%s -> %s: %v", from, to, err)
			}
			after := p.OccupiedCount()
			if after > filled {
				t.Errorf("%s -> %s: occupancy grew from %d to %d", from, to, filled, after)
			}
			if len(evicted) != filled-after {
				t.Errorf("%s -> %s: evicted %d; want %d", from, to, len(evicted), filled-after)
			}
		}
	}
}

func TestChangeLayoutMissingDimensionsKeepsCrop(t *testing.T) {
	cfg := config.Default()
	p := mustBuild(t, TwoTwo, cfg)
	fillPage(t, p, 1, cfg, testDims)

	orig := *p.Rows[0].Cells[0]

	if _, err := ChangeLayout(p, ColOneOne, noDims, cfg); err != nil {
		t.Fatalf("ChangeLayout failed: %v", err)
	}
	c := p.Columns[0].Cells[0]
	if c.CropX != orig.CropX || c.CropY != orig.CropY || c.CropW != orig.CropW || c.CropH != orig.CropH {
		t.Error("crop values were not carried for an unmeasurable photo")
	}
}

func approx(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
