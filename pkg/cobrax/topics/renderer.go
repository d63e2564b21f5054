package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for terminal display
type Renderer interface {
	// Render takes raw content and the source format (file extension)
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour; other formats pass
// through untouched
type GlamourRenderer struct {
	// Style is "dark", "light", "notty", "auto", or a path to a custom style
	Style string

	// Width is the word-wrap width; 0 auto-detects
	Width int
}

// NewGlamourRenderer creates a markdown renderer with terminal auto-detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
