package crop

import "github.com/pjmuller/photobook/internal/album"

// Display is the transform applied to the whole unclipped image so that
// the intended rectangle lines up with the cell's clipping box: a uniform
// scale followed by a translation of the image origin relative to the
// cell's top-left corner.
type Display struct {
	Scale float64 `json:"scale"`
	TX    float64 `json:"tx"`
	TY    float64 `json:"ty"`
}

// clampTranslation keeps the scaled image edges outside the cell edges, so
// no blank space appears on any frame. Valid translations are negative or
// zero: the image origin sits at or left/above the cell origin.
func clampTranslation(d Display, img album.ImageDimensions, cellW, cellH int) Display {
	d.TX = clamp(d.TX, float64(cellW)-float64(img.Width)*d.Scale, 0)
	d.TY = clamp(d.TY, float64(cellH)-float64(img.Height)*d.Scale, 0)
	return d
}

// IntentToDisplay positions the image so the focal point lands at the
// cell's center at the requested zoom, then clamps the translation.
func IntentToDisplay(img album.ImageDimensions, cellW, cellH int, fp album.FocalPoint, zoom float64, z Limits) Display {
	fp = clampFocal(fp)
	scale := MinScale(img, cellW, cellH) * z.Clamp(zoom)
	d := Display{
		Scale: scale,
		TX:    float64(cellW)/2 - fp.X*float64(img.Width)*scale,
		TY:    float64(cellH)/2 - fp.Y*float64(img.Height)*scale,
	}
	return clampTranslation(d, img, cellW, cellH)
}

// DisplayToIntent locates the image pixel at the cell's center and derives
// the focal point and zoom back from a display transform. Round-trips
// through IntentToDisplay are exact except where the translation or zoom
// was clamped (focal points near an image border reconstruct to the
// clamped position; that is the expected boundary behavior).
func DisplayToIntent(img album.ImageDimensions, cellW, cellH int, d Display, z Limits) (album.FocalPoint, float64) {
	zoom := z.Clamp(d.Scale / MinScale(img, cellW, cellH))
	fp := album.FocalPoint{
		X: clamp((float64(cellW)/2-d.TX)/(float64(img.Width)*d.Scale), 0, 1),
		Y: clamp((float64(cellH)/2-d.TY)/(float64(img.Height)*d.Scale), 0, 1),
	}
	return fp, zoom
}

// Pan moves the image by a screen-space delta, keeping the cover clamp on
// every intermediate frame.
func Pan(d Display, img album.ImageDimensions, cellW, cellH int, dx, dy float64) Display {
	d.TX += dx
	d.TY += dy
	return clampTranslation(d, img, cellW, cellH)
}

// ZoomAt changes the scale while keeping the image point under the pointer
// (px, py in cell coordinates) stationary on screen, then re-clamps. The
// scale is bounded to the zoom limits expressed in display space.
func ZoomAt(d Display, img album.ImageDimensions, cellW, cellH int, px, py, newScale float64, z Limits) Display {
	ms := MinScale(img, cellW, cellH)
	newScale = clamp(newScale, ms*z.Min, ms*z.Max)

	// Image point currently under the pointer
	ix := (px - d.TX) / d.Scale
	iy := (py - d.TY) / d.Scale

	d.Scale = newScale
	d.TX = px - ix*newScale
	d.TY = py - iy*newScale
	return clampTranslation(d, img, cellW, cellH)
}
