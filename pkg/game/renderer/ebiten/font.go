package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fonts holds the UI faces.
type fonts struct {
	regular *text.GoTextFace
	bold    *text.GoTextFace
	title   *text.GoTextFace
}

func loadFonts() (*fonts, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("loading bold font: %w", err)
	}
	return &fonts{
		regular: &text.GoTextFace{Source: regular, Size: uiFontSize},
		bold:    &text.GoTextFace{Source: bold, Size: uiFontSize},
		title:   &text.GoTextFace{Source: bold, Size: titleFontSize},
	}, nil
}
