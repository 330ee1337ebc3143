package cmd

import (
	"fmt"
	"io"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// newProgressBar returns a counter bar written to out, or to an
// ANSI-aware stderr when out is nil.
func newProgressBar(out io.Writer, total int, label string, visible bool) *progressbar.ProgressBar {
	if out == nil {
		out = ansi.NewAnsiStderr()
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(out)
		}),
	)
}
