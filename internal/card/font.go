package card

import (
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// systemFonts are tried in order when no explicit font path is configured.
var systemFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSerif.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// builtinFont is the terminal fallback; it ships with the binary and always
// resolves.
var builtinFont = func() *truetype.Font {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic("card: embedded fallback font is invalid: " + err.Error())
	}
	return f
}()

// Font is a parsed scalable font that can produce faces at arbitrary sizes.
type Font struct {
	ttf *truetype.Font
}

// ResolveFont resolves a font from the explicit path if it exists, then from
// an ordered list of system fonts, and finally from the embedded fallback.
// Resolution never fails; a missing or unreadable font degrades silently.
func ResolveFont(path string) *Font {
	candidates := systemFonts
	if path != "" {
		candidates = append([]string{path}, systemFonts...)
	}
	for _, p := range candidates {
		if ttf, err := loadFontFile(p); err == nil {
			return &Font{ttf: ttf}
		}
	}
	return &Font{ttf: builtinFont}
}

func loadFontFile(path string) (*truetype.Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(b)
}

// Face returns a rendering face at the given point size.
func (f *Font) Face(size int) font.Face {
	return truetype.NewFace(f.ttf, &truetype.Options{Size: float64(size)})
}
