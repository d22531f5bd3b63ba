package console

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

// theme renders console text, plain when colour is disabled.
type theme struct {
	enabled bool
}

func themeFor(out io.Writer, noColor bool) theme {
	if noColor {
		return theme{}
	}

	return theme{enabled: shouldUseStyling(out)}
}

// shouldUseStyling reports whether out is a terminal that wants colour.
func shouldUseStyling(out io.Writer) bool {
	if out == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := out.(*os.File); ok {
		return isTerminal(int(file.Fd()))
	}
	if fder, ok := out.(interface{ Fd() uintptr }); ok {
		return isTerminal(int(fder.Fd()))
	}

	return false
}

func (t theme) stylize(text string, style lipgloss.Style) string {
	if !t.enabled {
		return text
	}

	return style.Render(text)
}

func (t theme) title(text string) string {
	return t.stylize(text, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")))
}

func (t theme) question(text string) string {
	return t.stylize(text, lipgloss.NewStyle().Bold(true))
}

func (t theme) dim(text string) string {
	return t.stylize(text, lipgloss.NewStyle().Foreground(lipgloss.Color("244")))
}

func (t theme) success(text string) string {
	return t.stylize(text, lipgloss.NewStyle().Foreground(lipgloss.Color("42")))
}

func (t theme) warn(text string) string {
	return t.stylize(text, lipgloss.NewStyle().Foreground(lipgloss.Color("220")))
}

func (t theme) failure(text string) string {
	return t.stylize(text, lipgloss.NewStyle().Foreground(lipgloss.Color("196")))
}

func (t theme) box(text string) string {
	return t.stylize(text, lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("33")).
		Padding(0, 1))
}
