package card

import (
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.png")
	img := imaging.New(w, h, color.NRGBA{R: 30, G: 60, B: 120, A: 255})
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestComposeProducesImageOfTemplateSize(t *testing.T) {
	path := writeTemplate(t, 400, 500)
	c := NewComposer(ResolveFont(""), 0.23, 24)

	img, err := c.Compose(Request{
		TemplatePath: path,
		Name:         "Christian",
		Color:        color.NRGBA{R: 234, G: 199, B: 77, A: 255},
		StrokeWidth:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}

func TestComposeDoesNotMutateTemplate(t *testing.T) {
	path := writeTemplate(t, 200, 250)
	before, err := imaging.Open(path)
	require.NoError(t, err)

	c := NewComposer(ResolveFont(""), 0.23, 24)
	_, err = c.Compose(Request{TemplatePath: path, Name: "Ana", Shadow: true, StrokeWidth: 1})
	require.NoError(t, err)

	after, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestComposeMissingTemplate(t *testing.T) {
	c := NewComposer(ResolveFont(""), 0.23, 24)
	_, err := c.Compose(Request{TemplatePath: "/nonexistent/template.png", Name: "Ana"})
	assert.Error(t, err)
}

func TestComposeWithDateLine(t *testing.T) {
	path := writeTemplate(t, 1080, 1350)
	c := NewComposer(ResolveFont(""), 0.23, 24)

	img, err := c.Compose(Request{
		TemplatePath: path,
		Name:         "Laura",
		DateLine:     DateLine(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)),
		Color:        color.NRGBA{R: 234, G: 199, B: 77, A: 255},
	})
	require.NoError(t, err)
	assert.Equal(t, 1080, img.Bounds().Dx())
}

func TestSplitDateBoxRegionsDoNotOverlap(t *testing.T) {
	box := TextBox{X: 24, Y: 1035, W: 1032, H: 263}
	date, name := SplitDateBox(box)

	assert.Equal(t, box.Y, date.Y)
	assert.Equal(t, int(float64(box.H)*0.3), date.H)
	assert.Equal(t, box.Y+int(float64(box.H)*0.35), name.Y)
	assert.Equal(t, int(float64(box.H)*0.65), name.H)

	// The date region ends above the name region, leaving a gap.
	assert.LessOrEqual(t, date.Y+date.H, name.Y)
}

func TestDateAndNameTextStayInTheirRegions(t *testing.T) {
	f := ResolveFont("")
	box := TextBox{X: 24, Y: 1035, W: 1032, H: 263}
	dateBox, nameBox := SplitDateBox(box)

	_, dateSize := f.Fit("Friday 14 March", dateBox.W-innerMargin, dateBox.H-innerMargin, int(float64(dateBox.H)*0.7))
	dw, dh := f.Measure("Friday 14 March", dateSize)
	assert.LessOrEqual(t, dw, float64(dateBox.W-innerMargin))
	assert.LessOrEqual(t, dh, float64(dateBox.H-innerMargin))

	_, nameSize := f.Fit("Laura", nameBox.W-innerMargin, nameBox.H-innerMargin, int(float64(nameBox.H)*0.7))
	nw, nh := f.Measure("Laura", nameSize)
	assert.LessOrEqual(t, nw, float64(nameBox.W-innerMargin))
	assert.LessOrEqual(t, nh, float64(nameBox.H-innerMargin))
}

func TestDateLineFormat(t *testing.T) {
	d := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Friday 14 March", DateLine(d))
}
