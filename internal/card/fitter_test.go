package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitReturnsLargestFeasibleSize(t *testing.T) {
	f := ResolveFont("")
	text := "Feliz Cumpleaños"
	targetW, targetH := 400, 100

	_, size := f.Fit(text, targetW, targetH, 70)
	require.GreaterOrEqual(t, size, MinFontSize)

	w, h := f.Measure(text, size)
	assert.LessOrEqual(t, w, float64(targetW))
	assert.LessOrEqual(t, h, float64(targetH))

	// Maximality: the next size up must overflow, unless the search ceiling
	// was reached.
	if size < 70 {
		w, h = f.Measure(text, size+1)
		assert.True(t, w > float64(targetW) || h > float64(targetH),
			"size %d fits but %d was returned", size+1, size)
	}
}

func TestFitMonotonicInBoxSize(t *testing.T) {
	f := ResolveFont("")
	text := "María José"

	_, small := f.Fit(text, 200, 60, 200)
	_, large := f.Fit(text, 400, 120, 200)
	assert.GreaterOrEqual(t, large, small)
}

func TestFitTooSmallBoxDegradesToMinSize(t *testing.T) {
	f := ResolveFont("")

	// A box far too small for any size in range: best-effort minimum.
	_, size := f.Fit("A very long recipient name indeed", 10, 8, 40)
	assert.Equal(t, MinFontSize, size)

	// Ceiling below the minimum size short-circuits.
	_, size = f.Fit("x", 500, 500, MinFontSize-1)
	assert.Equal(t, MinFontSize, size)
}

func TestResolveFontNeverFails(t *testing.T) {
	for _, path := range []string{"", "/nonexistent/font.ttf"} {
		f := ResolveFont(path)
		require.NotNil(t, f, "path %q", path)
		require.NotNil(t, f.Face(20), "path %q", path)
	}
}
