package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// printer writes report text, colouring headings when out is a terminal.
type printer struct {
	out      io.Writer
	heading  *color.Color
	positive *color.Color
	warning  *color.Color
}

func newPrinter(out io.Writer) *printer {
	p := &printer{
		out:      out,
		heading:  color.New(color.FgBlue, color.Bold),
		positive: color.New(color.FgGreen),
		warning:  color.New(color.FgYellow),
	}
	if shouldColorize(out) {
		for _, c := range []*color.Color{p.heading, p.positive, p.warning} {
			c.EnableColor()
		}
	} else {
		for _, c := range []*color.Color{p.heading, p.positive, p.warning} {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) section(title string) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	p.heading.Fprintln(p.out, line)
}

func (p *printer) ok(format string, args ...any) {
	p.positive.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) warn(format string, args ...any) {
	p.warning.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) block(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(p.out, text)
}

// field prints an aligned "label: value" row.
func (p *printer) field(label string, value any) {
	fmt.Fprintf(p.out, "  %-*s %v\n", fieldLabelWidth, label+":", value)
}

const fieldLabelWidth = 22

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatCount(n int64) string {
	return humanize.Comma(n)
}
