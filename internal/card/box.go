package card

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// TextBox is a pixel rectangle a string must be rendered into without overflow.
type TextBox struct {
	X int
	Y int
	W int
	H int
}

// ParseBox parses an "x,y,w,h" box specification.
func ParseBox(s string) (TextBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return TextBox{}, fmt.Errorf("invalid box %q: want x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return TextBox{}, fmt.Errorf("invalid box %q: %w", s, err)
		}
		vals[i] = n
	}
	b := TextBox{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}
	if b.W <= 0 || b.H <= 0 {
		return TextBox{}, fmt.Errorf("invalid box %q: width and height must be positive", s)
	}
	return b, nil
}

// BottomBox computes the default name area: a horizontal band at the bottom
// of a W×H image occupying ratio of its height, inset by margin on all sides.
func BottomBox(imgW, imgH int, ratio float64, margin int) TextBox {
	h := int(float64(imgH) * ratio)
	return TextBox{
		X: margin,
		Y: imgH - h + margin,
		W: imgW - 2*margin,
		H: h - 2*margin,
	}
}

// ParseColor parses an "R,G,B" color with channels in [0,255].
func ParseColor(s string) (color.NRGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: want R,G,B", s)
	}
	vals := make([]uint8, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: channels must be 0-255", s)
		}
		vals[i] = uint8(n)
	}
	return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}, nil
}
