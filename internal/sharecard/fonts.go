package sharecard

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceKey identifies a cached font face.
type faceKey struct {
	size float64
	bold bool
}

// fontCache parses the embedded Go fonts once and caches faces per size.
type fontCache struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

func newFontCache() (*fontCache, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	boldFont, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &fontCache{
		regular: regular,
		bold:    boldFont,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// face returns a cached face for the size/weight combination.
func (c *fontCache) face(size float64, bold bool) (font.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := faceKey{size: size, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	src := c.regular
	if bold {
		src = c.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face (size %.0f): %w", size, err)
	}
	c.faces[key] = f
	return f, nil
}
