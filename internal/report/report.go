package report

import (
	"errors"
	"fmt"
	"io"

	"FileHashValidator/internal/index"
	"FileHashValidator/internal/verify"

	"github.com/fatih/color"
)

// Printer renders verification results for humans.
type Printer struct {
	w       io.Writer
	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

func NewPrinter(w io.Writer, colorize bool) *Printer {
	p := &Printer{
		w:       w,
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.success, p.warn, p.fail} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) Summary(s *verify.Summary) {
	for _, m := range s.Mismatches {
		fmt.Fprintf(p.w, "%s %s (%s)\n", p.warn.Sprint("MISMATCH"), m.Record.Path, m.Record.Algorithm)
		fmt.Fprintf(p.w, "  expected: %s\n", m.Record.Expected)
		fmt.Fprintf(p.w, "  actual:   %s\n", m.Actual)
	}
	for _, e := range s.ReadErrors {
		fmt.Fprintf(p.w, "%s %s (%s): %v\n", p.fail.Sprint("READ ERROR"), e.Record.Path, e.Record.Algorithm, e.Err)
	}

	status := p.success.Sprint("OK")
	if s.Failed() {
		status = p.fail.Sprint("FAILED")
	}
	fmt.Fprintf(p.w, "%s total=%d ok=%d mismatched=%d read_errors=%d\n",
		status, s.Total, s.OK, len(s.Mismatches), len(s.ReadErrors))
}

// Error reports a manifest failure.
func (p *Printer) Error(err error) {
	var ve *index.ValidationError
	label := "manifest error"
	if errors.As(err, &ve) {
		label = "invalid manifest"
	}
	fmt.Fprintf(p.w, "%s: %v\n", p.fail.Sprint(label), err)
}

// ExitCode maps the result of a run to the process exit status.
// Any error here means the manifest could not be turned into records.
func ExitCode(s *verify.Summary, err error) int {
	if err != nil {
		return verify.ExitManifest
	}
	if s == nil {
		return verify.ExitOK
	}
	return s.ExitCode()
}
