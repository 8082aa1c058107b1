package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/g5becks/md2docx/internal/batch"
	"github.com/g5becks/md2docx/internal/convert"
	"github.com/g5becks/md2docx/internal/markdown"
)

type styles struct {
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	dim    *color.Color
	bold   *color.Color
}

func newStyles() styles {
	return styles{
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		dim:    color.New(color.Faint),
		bold:   color.New(color.Bold),
	}
}

// ConvertPrinter reports the outcome of a single conversion.
type ConvertPrinter struct {
	w io.Writer
	s styles
}

// NewConvertPrinter creates a ConvertPrinter that writes to stdout.
func NewConvertPrinter() *ConvertPrinter {
	return NewConvertPrinterWithWriter(os.Stdout)
}

func NewConvertPrinterWithWriter(w io.Writer) *ConvertPrinter {
	return &ConvertPrinter{w: w, s: newStyles()}
}

// PrintResult prints the confirmation line naming both paths. Dry runs name
// the output that would have been written, followed by block counts.
func (p *ConvertPrinter) PrintResult(r *convert.Result) {
	if r == nil {
		return
	}

	if !r.Written {
		fmt.Fprintf(p.w, "%s %s → %s %s\n",
			p.s.yellow.Sprint("dry-run:"),
			r.Input,
			r.Output,
			p.s.dim.Sprint(formatCounts(r.Counts)),
		)
		return
	}

	fmt.Fprintf(p.w, "%s Converted %s → %s\n",
		p.s.green.Sprint("✓"),
		r.Input,
		r.Output,
	)
}

// BatchPrinter renders batch progress events to stderr with colored output.
type BatchPrinter struct {
	w      io.Writer
	dryRun bool
	mu     sync.Mutex
	s      styles
}

// NewBatchPrinter creates a BatchPrinter that writes to stderr.
func NewBatchPrinter(dryRun bool) *BatchPrinter {
	return NewBatchPrinterWithWriter(os.Stderr, dryRun)
}

func NewBatchPrinterWithWriter(w io.Writer, dryRun bool) *BatchPrinter {
	return &BatchPrinter{
		w:      w,
		dryRun: dryRun,
		s:      newStyles(),
	}
}

// HandleEvent is the callback wired into batch.Options.OnEvent.
func (p *BatchPrinter) HandleEvent(e batch.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case batch.EventFileStart:
		fmt.Fprintf(p.w, "%s converting %s...\n",
			p.s.dim.Sprint("⟳"),
			p.s.bold.Sprint(e.Input),
		)

	case batch.EventFileDone:
		p.handleDone(e)
	}
}

func (p *BatchPrinter) handleDone(e batch.Event) {
	name := p.s.bold.Sprint(e.Input)

	if e.Err != nil {
		fmt.Fprintf(p.w, "%s %s: %s\n", p.s.red.Sprint("✗"), name, e.Err)
		return
	}

	if e.Result == nil {
		return
	}

	if e.Result.Skipped {
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.s.dim.Sprint("—"),
			name,
			p.s.dim.Sprint("(up to date)"),
		)
		return
	}

	fmt.Fprintf(p.w, "%s %s → %s %s\n",
		p.s.green.Sprint("✓"),
		name,
		e.Result.Output,
		p.s.dim.Sprint(formatCounts(e.Result.Counts)),
	)
}

// PrintSummary renders a final summary line after the batch completes.
func (p *BatchPrinter) PrintSummary(r *batch.RunResult) {
	if r == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w)

	label := "batch complete"
	if p.dryRun {
		label = p.s.yellow.Sprint("dry-run complete")
	}

	line := fmt.Sprintf("%s: %d file(s), %d converted, %d up-to-date",
		label,
		r.Files,
		r.Converted,
		r.Skipped,
	)

	if r.Errors > 0 {
		line += ", " + p.s.red.Sprintf("%d failed", r.Errors)
	}

	fmt.Fprintln(p.w, line)

	if p.dryRun {
		fmt.Fprintln(p.w, p.s.dim.Sprint("no files were written"))
	}
}

// formatCounts lists non-zero block counts in kind order, for example
// "(2 heading, 1 table)".
func formatCounts(counts map[markdown.BlockKind]int) string {
	var parts []string
	for _, kind := range markdown.Kinds() {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}

	if len(parts) == 0 {
		return "(empty)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
