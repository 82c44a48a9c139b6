package card

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBottomBox(t *testing.T) {
	// 1080×1350 with the default ratio and margin:
	// h = int(1350*0.23) = 310, y = 1350-310+24, inner h = 310-48.
	box := BottomBox(1080, 1350, 0.23, 24)
	assert.Equal(t, TextBox{X: 24, Y: 1064, W: 1032, H: 262}, box)
}

func TestBottomBoxFormula(t *testing.T) {
	imgW, imgH := 800, 600
	ratio, margin := 0.25, 20

	box := BottomBox(imgW, imgH, ratio, margin)

	h := int(float64(imgH) * ratio)
	assert.Equal(t, margin, box.X)
	assert.Equal(t, imgH-h+margin, box.Y)
	assert.Equal(t, imgW-2*margin, box.W)
	assert.Equal(t, h-2*margin, box.H)
}

func TestParseBox(t *testing.T) {
	box, err := ParseBox("80,1210,410,180")
	require.NoError(t, err)
	assert.Equal(t, TextBox{X: 80, Y: 1210, W: 410, H: 180}, box)

	box, err = ParseBox(" 0, 0, 100, 50 ")
	require.NoError(t, err)
	assert.Equal(t, TextBox{X: 0, Y: 0, W: 100, H: 50}, box)
}

func TestParseBoxInvalid(t *testing.T) {
	for _, s := range []string{"", "1,2,3", "a,b,c,d", "0,0,-5,10", "0,0,10,0"} {
		_, err := ParseBox(s)
		assert.Error(t, err, "box %q", s)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("234,199,77")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 234, G: 199, B: 77, A: 255}, c)
}

func TestParseColorInvalid(t *testing.T) {
	for _, s := range []string{"", "1,2", "256,0,0", "-1,0,0", "a,b,c"} {
		_, err := ParseColor(s)
		assert.Error(t, err, "color %q", s)
	}
}
