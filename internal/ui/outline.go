package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/g5becks/md2docx/internal/markdown"
	"github.com/g5becks/md2docx/internal/parser"
)

// OutlineReport combines the heading outline of an input with the blocks the
// converter would emit for it.
type OutlineReport struct {
	Input       string                     `json:"input"`
	Output      string                     `json:"output"`
	Description string                     `json:"description,omitempty"`
	Lines       int                        `json:"lines"`
	Headings    []parser.Heading           `json:"headings"`
	Blocks      map[markdown.BlockKind]int `json:"blocks"`
}

type OutlineOptions struct {
	JSON bool
}

func RenderOutline(w io.Writer, report OutlineReport, opts OutlineOptions) error {
	if opts.JSON {
		return renderOutlineJSON(w, report)
	}

	renderOutlineTable(w, report)
	return nil
}

func renderOutlineJSON(w io.Writer, report OutlineReport) error {
	if report.Headings == nil {
		report.Headings = []parser.Heading{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode outline json: %w", err)
	}

	return nil
}

func renderOutlineTable(w io.Writer, report OutlineReport) {
	fmt.Fprintf(w, "%s (%d lines) → %s\n", report.Input, report.Lines, report.Output)
	if report.Description != "" {
		fmt.Fprintln(w, report.Description)
	}
	fmt.Fprintln(w)

	if len(report.Headings) == 0 {
		fmt.Fprintln(w, "No headings found.")
	} else {
		headings := table.NewWriter()
		headings.SetOutputMirror(w)
		headings.SetStyle(table.StyleRounded)
		headings.AppendHeader(table.Row{"LINE", "LEVEL", "HEADING"})

		for _, h := range report.Headings {
			indent := strings.Repeat("  ", max(h.Level-1, 0))
			headings.AppendRow(table.Row{h.Line, h.Level, indent + h.Text})
		}

		headings.Render()
	}

	blocks := table.NewWriter()
	blocks.SetOutputMirror(w)
	blocks.SetStyle(table.StyleRounded)
	blocks.AppendHeader(table.Row{"BLOCK", "COUNT"})

	total := 0
	for _, kind := range markdown.Kinds() {
		n := report.Blocks[kind]
		if n == 0 {
			continue
		}
		total += n
		blocks.AppendRow(table.Row{string(kind), n})
	}
	blocks.AppendFooter(table.Row{"TOTAL", total})

	blocks.Render()
}
