package cli

import "github.com/charmbracelet/glamour"

// renderMarkdown pretty-prints generated content for terminals. Rendering is
// cosmetic only, so any failure falls back to the raw content.
func renderMarkdown(content string) string {
	rendered, err := glamour.Render(content, "dark")
	if err != nil || rendered == "" {
		return content
	}
	return rendered
}
