// Package crop converts between the three representations of "which part
// of the photo shows in its cell": user intent (focal point + zoom), the
// persisted crop rectangle in source-image pixels, and the display
// transform used to render the photo inside the cell. All functions are
// pure and clamp their inputs, so they are total over their domains.
package crop

import "github.com/pjmuller/photobook/internal/album"

// Limits are the zoom bounds from configuration.
type Limits struct {
	Min float64
	Max float64
}

// Clamp clamps a zoom value into the limits.
func (z Limits) Clamp(v float64) float64 {
	return clamp(v, z.Min, z.Max)
}

// Rect is a crop rectangle in source-image pixels.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFocal(fp album.FocalPoint) album.FocalPoint {
	return album.FocalPoint{X: clamp(fp.X, 0, 1), Y: clamp(fp.Y, 0, 1)}
}

// Calculate derives the crop rectangle for a photo shown in a cellW by
// cellH cell with the given intent. The rectangle always has the cell's
// aspect ratio, never exceeds the image, and is clamped inside it, so the
// cell can never show blank space. Calling it twice with the same inputs
// yields the same rectangle.
func Calculate(img album.ImageDimensions, cellW, cellH int, fp album.FocalPoint, zoom float64, z Limits) Rect {
	imgW := float64(img.Width)
	imgH := float64(img.Height)
	cw := float64(cellW)
	ch := float64(cellH)

	fp = clampFocal(fp)
	zoom = z.Clamp(zoom)

	imgAR := imgW / imgH
	cellAR := cw / ch

	// Largest rectangle with the cell's aspect ratio that fits in the image
	var baseW, baseH float64
	if imgAR > cellAR {
		baseH = imgH
		baseW = imgH * cellAR
	} else {
		baseW = imgW
		baseH = imgW / cellAR
	}

	// Zoom shrinks the rectangle, magnifying the view
	w := baseW / zoom
	h := baseH / zoom

	x := fp.X*imgW - w/2
	y := fp.Y*imgH - h/2

	return Rect{
		X: clamp(x, 0, imgW-w),
		Y: clamp(y, 0, imgH-h),
		W: w,
		H: h,
	}
}

// Apply computes the crop for an occupied cell and stores it on the cell.
// Callers must only invoke it when the image dimensions are known; a cell
// whose photo cannot be measured keeps its previous crop values.
func Apply(c *album.Cell, img album.ImageDimensions, cellW, cellH int, z Limits) {
	if !c.HasPhoto() {
		return
	}
	r := Calculate(img, cellW, cellH, *c.FocalPoint, c.Zoom, z)
	c.CropX, c.CropY, c.CropW, c.CropH = r.X, r.Y, r.W, r.H
}

// MinScale is the smallest uniform scale at which the whole image still
// covers the cell; it is the zoom-1 scale in display space.
func MinScale(img album.ImageDimensions, cellW, cellH int) float64 {
	sx := float64(cellW) / float64(img.Width)
	sy := float64(cellH) / float64(img.Height)
	if sx > sy {
		return sx
	}
	return sy
}
