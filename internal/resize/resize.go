// Package resize implements the gutter-drag interaction: an Idle/Dragging
// state machine that moves the boundary between two adjacent elements
// while conserving their combined size, enforcing minimum sizes, snapping
// to sibling boundaries, and keeping crops glued to their focal points on
// every frame of the gesture.
package resize

import (
	"fmt"

	"github.com/pjmuller/photobook/internal/album"
	"github.com/pjmuller/photobook/internal/config"
	"github.com/pjmuller/photobook/internal/crop"
	"github.com/pjmuller/photobook/internal/layout"
)

// Target identifies which gutter family a drag operates on: the page's
// rows/columns themselves, or the cells inside one row/column.
type Target struct {
	PageLevel bool `json:"pageLevel"`
	Group     int  `json:"group"`
}

// Engine drives one gutter drag at a time. Move may be called at arbitrary
// frequency; it always recomputes from the start snapshot, so it is
// idempotent in the cumulative delta.
type Engine struct {
	cfg  *config.Config
	dims layout.DimensionsFunc

	dragging bool
	page     *album.Page
	target   Target
	boundary int
	start    []int
}

// New creates an idle engine.
func New(cfg *config.Config, dims layout.DimensionsFunc) *Engine {
	return &Engine{cfg: cfg, dims: dims}
}

// Dragging reports whether a gesture is in flight.
func (e *Engine) Dragging() bool {
	return e.dragging
}

// Start snapshots the sibling sizes around the given boundary and enters
// the Dragging state. boundary i is the gutter between elements i and i+1.
func (e *Engine) Start(page *album.Page, target Target, boundary int) error {
	if e.dragging {
		return fmt.Errorf("drag already in progress")
	}
	sizes := currentSizes(page, target)
	if sizes == nil {
		return fmt.Errorf("invalid resize target group %d", target.Group)
	}
	if boundary < 0 || boundary >= len(sizes)-1 {
		return fmt.Errorf("invalid boundary %d for %d elements", boundary, len(sizes))
	}
	e.dragging = true
	e.page = page
	e.target = target
	e.boundary = boundary
	e.start = sizes
	return nil
}

// Move applies the cumulative drag delta: only the two elements adjacent
// to the boundary change, their sum stays exactly the pair's start sum,
// and the shared boundary may snap to a matching boundary in a sibling
// row/column before minimum-size clamping.
func (e *Engine) Move(delta int) {
	if !e.dragging {
		return
	}
	b := e.boundary
	size1 := e.start[b] + delta

	if !e.target.PageLevel && e.cfg.SnapThreshold > 0 {
		size1 = e.snap(size1)
	}

	pair := e.start[b] + e.start[b+1]
	min := e.minSize()
	size1 = clampInt(size1, min, pair-min)
	size2 := pair - size1

	e.apply(b, size1, size2)
}

// End leaves the Dragging state. No geometry work is needed here: crops
// were kept current on every Move.
func (e *Engine) End() {
	e.reset()
}

// Cancel restores the pre-drag sizes exactly and leaves the Dragging
// state.
func (e *Engine) Cancel() {
	if !e.dragging {
		return
	}
	b := e.boundary
	e.apply(b, e.start[b], e.start[b+1])
	e.reset()
}

func (e *Engine) reset() {
	e.dragging = false
	e.page = nil
	e.start = nil
}

// minSize returns the configured minimum for the axis being dragged.
func (e *Engine) minSize() int {
	vertical := e.page.RowMajor() == e.target.PageLevel
	// Row heights and column-cell heights are vertical sizes; cell widths
	// and column widths are horizontal ones.
	return e.cfg.MinSizeFor(vertical)
}

// snap compares the candidate boundary position against the boundary
// positions of every other row/column on the page and snaps to the
// nearest one within the threshold, letting gutters align across rows
// that resize independently.
func (e *Engine) snap(size1 int) int {
	b := e.boundary
	lead := 0
	for k := 0; k < b; k++ {
		lead += e.start[k]
	}
	lead += b * e.cfg.Gutter
	pos := lead + size1

	best := size1
	bestDist := e.cfg.SnapThreshold + 1
	for gi := 0; gi < e.page.GroupCount(); gi++ {
		if gi == e.target.Group {
			continue
		}
		g := e.page.Group(gi)
		cum := 0
		for j := 0; j < g.CellCount()-1; j++ {
			cum += g.CellSize(j)
			candidate := cum + j*e.cfg.Gutter
			if dist := absInt(candidate - pos); dist < bestDist {
				bestDist = dist
				best = candidate - lead
			}
		}
	}
	return best
}

// apply writes the pair's new sizes into the model and recrops every
// occupied cell whose geometry changed, so the displayed crop follows the
// focal point in real time rather than only on release.
func (e *Engine) apply(b, size1, size2 int) {
	if e.target.PageLevel {
		g1 := e.page.Group(b)
		g2 := e.page.Group(b + 1)
		g1.SetSize(size1)
		g2.SetSize(size2)
		e.recropGroup(g1)
		e.recropGroup(g2)
		return
	}
	g := e.page.Group(e.target.Group)
	g.SetCellSize(b, size1)
	g.SetCellSize(b+1, size2)
	e.recropCell(g, b)
	e.recropCell(g, b+1)
}

func (e *Engine) recropGroup(g album.Group) {
	for j := 0; j < g.CellCount(); j++ {
		e.recropCell(g, j)
	}
}

func (e *Engine) recropCell(g album.Group, j int) {
	c := g.Cell(j)
	if !c.HasPhoto() {
		return
	}
	d, ok := e.dims(c.Path)
	if !ok {
		// Keep the previous crop until the image can be measured again
		return
	}
	w, h := g.CellDims(j)
	crop.Apply(c, d, w, h, crop.Limits{Min: e.cfg.MinZoom, Max: e.cfg.MaxZoom})
}

func currentSizes(page *album.Page, target Target) []int {
	if target.PageLevel {
		sizes := make([]int, page.GroupCount())
		for i := range sizes {
			sizes[i] = page.Group(i).Size()
		}
		return sizes
	}
	if target.Group < 0 || target.Group >= page.GroupCount() {
		return nil
	}
	g := page.Group(target.Group)
	sizes := make([]int, g.CellCount())
	for j := range sizes {
		sizes[j] = g.CellSize(j)
	}
	return sizes
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
