// fonts.go - Embedded font families with a per-size face cache. The app
// ships the Go font set so rendering never depends on system fonts.
package compose

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"

	"github.com/memeforge/memeforge/internal/model"
)

// FontManager parses the embedded families once and hands out faces at
// requested point sizes.
type FontManager struct {
	mu    sync.Mutex
	fonts map[model.FontChoice]*truetype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	choice model.FontChoice
	size   float64
}

var fontData = map[model.FontChoice][]byte{
	model.FontBold:     gobold.TTF,
	model.FontRegular:  goregular.TTF,
	model.FontItalic:   goitalic.TTF,
	model.FontMono:     gomono.TTF,
	model.FontSmallcap: gosmallcaps.TTF,
}

// NewFontManager parses every embedded family.
func NewFontManager() (*FontManager, error) {
	fm := &FontManager{
		fonts: make(map[model.FontChoice]*truetype.Font, len(fontData)),
		faces: make(map[faceKey]font.Face),
	}

	for choice, data := range fontData {
		parsed, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", choice, err)
		}
		fm.fonts[choice] = parsed
	}

	return fm, nil
}

// Face returns a font.Face for the family at the given size. Unknown
// choices fall back to the bold family.
func (fm *FontManager) Face(choice model.FontChoice, size float64) font.Face {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	parsed, ok := fm.fonts[choice]
	if !ok {
		choice = model.FontBold
		parsed = fm.fonts[choice]
	}

	key := faceKey{choice: choice, size: size}
	if face, ok := fm.faces[key]; ok {
		return face
	}

	face := truetype.NewFace(parsed, &truetype.Options{Size: size})
	fm.faces[key] = face
	return face
}
