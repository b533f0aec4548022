package render

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Markdown renders an answer for the terminal. Off a terminal, or if
// rendering fails, the text is returned unchanged.
func Markdown(text string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return styled(text, glamour.WithAutoStyle())
}

func styled(text string, style glamour.TermRendererOption) string {
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(0))
	if err != nil {
		return text
	}
	rendered, err := r.Render(unwrapProse(text))
	if err != nil {
		return text
	}
	return rendered
}
