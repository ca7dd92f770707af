package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// mdCache keeps one glamour renderer per (width, style) pair in use.
var mdCache = struct {
	sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}{}

// RenderMarkdown renders record content as terminal rich text using a
// glamour style ("dark", "light", "notty", ...). It returns content
// unchanged if rendering fails.
func RenderMarkdown(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}

	mdCache.Lock()
	defer mdCache.Unlock()

	if mdCache.renderer == nil || mdCache.width != width || mdCache.style != style {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		mdCache.renderer, mdCache.width, mdCache.style = r, width, style
	}

	rendered, err := mdCache.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
