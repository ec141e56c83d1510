// Package layout defines the page template catalog, the default-size
// arithmetic that keeps every page summing exactly to the content area,
// and the layout transition engine.
package layout

// Template describes one page layout as an ordered list of cell counts,
// one entry per row (row-major) or per column (column-major). Templates
// declare shape only; pixel sizes are always recomputed by DefaultSizes.
type Template struct {
	ID       string
	RowMajor bool
	Counts   []int
}

// Template ids
const (
	Full         = "full" // single full-bleed cell
	TwoTwo       = "2-2"  // two rows of two cells
	TwoThree     = "2-3"  // 2-cell row over 3-cell row
	ThreeTwo     = "3-2"  // 3-cell row over 2-cell row
	ColOneOne    = "1-1"  // two full-height columns
	ColOneTwo    = "1-2"  // full column beside a 2-cell column
	ColTwoOne    = "2-1"  // 2-cell column beside a full column
)

var catalog = []Template{
	{ID: Full, RowMajor: true, Counts: []int{1}},
	{ID: TwoTwo, RowMajor: true, Counts: []int{2, 2}},
	{ID: TwoThree, RowMajor: true, Counts: []int{2, 3}},
	{ID: ThreeTwo, RowMajor: true, Counts: []int{3, 2}},
	{ID: ColOneOne, RowMajor: false, Counts: []int{1, 1}},
	{ID: ColOneTwo, RowMajor: false, Counts: []int{1, 2}},
	{ID: ColTwoOne, RowMajor: false, Counts: []int{2, 1}},
}

// Templates returns the full catalog in declaration order.
func Templates() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// TemplateByID looks up a template.
func TemplateByID(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
