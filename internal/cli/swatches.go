package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jmylchreest/oltre/internal/colour"
	"github.com/jmylchreest/oltre/internal/plugin/output/common"
)

// swatcher renders colour chips for terminal output. Chips are blank unless
// the writer is a terminal, so piped output stays plain text.
type swatcher struct {
	renderer *lipgloss.Renderer
	enabled  bool
}

func newSwatcher(w io.Writer) swatcher {
	f, ok := w.(*os.File)
	return swatcher{
		renderer: lipgloss.NewRenderer(w),
		enabled:  ok && term.IsTerminal(int(f.Fd())),
	}
}

// chip returns a short block filled with c.
func (s swatcher) chip(c colour.RGB) string {
	if !s.enabled {
		return ""
	}
	return s.renderer.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render("      ")
}

// label renders text on c in whichever of black or white contrasts best.
func (s swatcher) label(c colour.RGB, text string) string {
	if !s.enabled {
		return text
	}
	fg, _ := common.ContrastLabel(c)
	return s.renderer.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fg.Hex())).
		Padding(0, 1).
		Render(text)
}

// pair renders sample text in fg on bg.
func (s swatcher) pair(fg, bg colour.RGB, text string) string {
	if !s.enabled {
		return ""
	}
	return s.renderer.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(fg.Hex())).
		Padding(0, 1).
		Render(text)
}

// grade colours a WCAG grade: green for AAA and AA, yellow for large text
// only, red for failures.
func (s swatcher) grade(g string) string {
	if !s.enabled {
		return g
	}
	c := lipgloss.Color("1")
	switch g {
	case "AAA", "AA":
		c = lipgloss.Color("2")
	case "AA Large":
		c = lipgloss.Color("3")
	}
	return s.renderer.NewStyle().Foreground(c).Bold(true).Render(g)
}
