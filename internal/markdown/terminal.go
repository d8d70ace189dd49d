package markdown

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

type termKey struct {
	style string
	width int
}

// termCache holds one glamour renderer per style and width.
var termCache sync.Map // map[termKey]*glamour.TermRenderer

func termRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := termKey{style, width}
	if cached, ok := termCache.Load(key); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	termCache.Store(key, tr)
	return tr, nil
}

// Terminal renders Markdown for display in a terminal using a glamour
// standard style ("dark" when empty). Width zero disables wrapping.
func Terminal(md, style string, width int) (string, error) {
	if style == "" {
		style = styles.DarkStyle
	}
	tr, err := termRenderer(style, width)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	return tr.Render(md)
}
