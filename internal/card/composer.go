package card

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// innerMargin is subtracted from both box axes before fitting, leaving room
// for ascenders, descenders and shadow offsets.
const innerMargin = 8

// Request describes one card render. Immutable per render.
type Request struct {
	// TemplatePath is the base card image (PNG/JPG).
	TemplatePath string
	// Name is the recipient name drawn centered in the box.
	Name string
	// DateLine, when non-empty, is drawn small above the name.
	DateLine string
	// Box overrides the default bottom band when non-nil.
	Box *TextBox
	// Color is the main text fill.
	Color color.Color
	// YOffset shifts the name vertically inside the box (+down).
	YOffset int
	// Shadow draws a soft shadow behind the name.
	Shadow bool
	// StrokeWidth is the dark outline width around the name, 0 disables.
	StrokeWidth int
}

// Composer renders personalized cards from a template image.
type Composer struct {
	font        *Font
	bottomRatio float64
	margin      int
}

// NewComposer creates a Composer. bottomRatio and margin control the default
// text box placement when a request carries no explicit box.
func NewComposer(font *Font, bottomRatio float64, margin int) *Composer {
	return &Composer{font: font, bottomRatio: bottomRatio, margin: margin}
}

// Compose renders the request onto a fresh RGBA copy of the template and
// returns the resulting image. The template file is never modified.
func (c *Composer) Compose(req Request) (image.Image, error) {
	tpl, err := imaging.Open(req.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", req.TemplatePath, err)
	}

	// gg backs the context with a new RGBA image, so text and shadow
	// compositing stays lossless over translucent templates.
	dc := gg.NewContextForImage(tpl)

	box := BottomBox(dc.Width(), dc.Height(), c.bottomRatio, c.margin)
	if req.Box != nil {
		box = *req.Box
	}

	col := req.Color
	if col == nil {
		col = color.NRGBA{R: 234, G: 199, B: 77, A: 255}
	}

	if req.DateLine != "" {
		dateBox, nameBox := SplitDateBox(box)
		c.drawCentered(dc, dateBox, req.DateLine, col, 0, false, 0)
		box = nameBox
	}
	c.drawCentered(dc, box, req.Name, col, req.YOffset, req.Shadow, req.StrokeWidth)

	return dc.Image(), nil
}

// SplitDateBox divides a text box into a date sub-box spanning the top 30%
// and a name sub-box spanning the bottom 65%, leaving a gap between them.
func SplitDateBox(b TextBox) (date, name TextBox) {
	date = TextBox{X: b.X, Y: b.Y, W: b.W, H: int(float64(b.H) * 0.3)}
	name = TextBox{X: b.X, Y: b.Y + int(float64(b.H)*0.35), W: b.W, H: int(float64(b.H) * 0.65)}
	return date, name
}

// DateLine formats a day the way it appears on the card, e.g. "Monday 02 January".
func DateLine(t time.Time) string {
	return t.Format("Monday 02 January")
}

func (c *Composer) drawCentered(dc *gg.Context, box TextBox, text string, col color.Color, yOffset int, shadow bool, stroke int) {
	face, size := c.font.Fit(text, box.W-innerMargin, box.H-innerMargin, int(float64(box.H)*0.7))
	dc.SetFontFace(face)

	cx := float64(box.X) + float64(box.W)/2
	cy := float64(box.Y+yOffset) + float64(box.H)/2

	if shadow {
		off := float64(max(1, size*4/100))
		dc.SetRGBA255(0, 0, 0, 120)
		for _, d := range [][2]float64{{-off, -off}, {off, off}, {off, -off}, {-off, off}} {
			dc.DrawStringAnchored(text, cx+d[0], cy+d[1], 0.5, 0.5)
		}
	}

	if stroke > 0 {
		dc.SetRGBA255(0, 0, 0, 30)
		for dx := -stroke; dx <= stroke; dx++ {
			for dy := -stroke; dy <= stroke; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				dc.DrawStringAnchored(text, cx+float64(dx), cy+float64(dy), 0.5, 0.5)
			}
		}
	}

	dc.SetColor(col)
	dc.DrawStringAnchored(text, cx, cy, 0.5, 0.5)
}
