package card

import (
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// MinFontSize is the smallest point size the fitter will return. Text that
// cannot fit even at this size is rendered best-effort and may overflow.
const MinFontSize = 16

// Fit binary-searches point sizes in [MinFontSize, maxSize] and returns the
// largest face whose rendered extent of text fits within targetW×targetH.
// Rendered extent is assumed non-decreasing in point size, which holds for
// scalable fonts.
func (f *Font) Fit(text string, targetW, targetH, maxSize int) (font.Face, int) {
	if maxSize < MinFontSize {
		return f.Face(MinFontSize), MinFontSize
	}

	dc := gg.NewContext(1, 1)
	lo, hi := MinFontSize, maxSize
	best := MinFontSize
	for lo <= hi {
		mid := (lo + hi) / 2
		dc.SetFontFace(f.Face(mid))
		w, h := dc.MeasureString(text)
		if w <= float64(targetW) && h <= float64(targetH) {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return f.Face(best), best
}

// Measure returns the rendered width and height of text at the given size,
// using the same metrics Fit uses to test candidate sizes. Callers can use it
// to verify that a size returned by Fit stays within a target extent.
func (f *Font) Measure(text string, size int) (float64, float64) {
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(f.Face(size))
	return dc.MeasureString(text)
}
