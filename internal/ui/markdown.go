package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const (
	defaultRenderWidth = 80
	defaultRenderStyle = "dark"
)

// markdownCache holds the glamour renderer for the most recent width and style.
// Building a renderer parses the style sheet, so it is reused across entries.
type markdownCache struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
	width    int
	style    string
}

var renderers markdownCache

func (c *markdownCache) get(width int, style string) (*glamour.TermRenderer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.renderer != nil && c.width == width && c.style == style {
		return c.renderer, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	c.renderer, c.width, c.style = r, width, style
	return r, nil
}

func (c *markdownCache) reset() {
	c.mu.Lock()
	c.renderer = nil
	c.mu.Unlock()
}

// RenderMarkdown renders journal text as terminal rich text with the given
// glamour style. Entries are free text, so a failed render falls back to the
// text as written.
func RenderMarkdown(content string, width int, style string) string {
	if content == "" {
		return ""
	}
	if width < 1 {
		width = defaultRenderWidth
	}
	if style == "" {
		style = defaultRenderStyle
	}

	r, err := renderers.get(width, style)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
