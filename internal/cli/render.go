package cli

import (
	"io"
	"os"
	"strings"

	"virusgame/internal/domain"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultWidth = 80

var kindColors = map[domain.Kind]*color.Color{
	domain.KindOrgan:     color.New(color.FgGreen, color.Bold),
	domain.KindVirus:     color.New(color.FgRed, color.Bold),
	domain.KindMedicine:  color.New(color.FgCyan, color.Bold),
	domain.KindTreatment: color.New(color.FgMagenta, color.Bold),
}

// paintCard colors a card name by its kind.
func paintCard(c domain.Card) string {
	if p, ok := kindColors[c.Kind()]; ok {
		return p.Sprint(c.String())
	}
	return c.String()
}

// termWidth is the width of w when it is a terminal, defaultWidth otherwise.
func termWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// wrap breaks text into lines no longer than width, indenting each by indent.
func wrap(text string, width int, indent string) string {
	limit := width - len(indent)
	if limit < 20 {
		limit = 20
	}
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(text) {
		switch {
		case line == 0:
			b.WriteString(indent)
		case line+1+len(word) > limit:
			b.WriteString("\n")
			b.WriteString(indent)
			line = 0
		default:
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
