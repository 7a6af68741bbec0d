package main

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"apollo/internal/scanner"
)

// barProgress drives a terminal progress bar during scans.
type barProgress struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// newScanProgress returns a progress bar on stderr when it is a terminal.
func newScanProgress(out io.Writer) scanner.Progress {
	if file, ok := out.(*os.File); !ok || !shouldColorize(file) {
		return nil
	}
	return &barProgress{out: out}
}

func (p *barProgress) Begin(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetDescription("Indexing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *barProgress) Step(string) {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *barProgress) End() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
