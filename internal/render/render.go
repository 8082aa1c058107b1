// Package render builds DOCX documents from scanned Markdown blocks.
package render

import (
	"io"
	"math"
	"strconv"

	docx "github.com/fumiama/go-docx"

	"github.com/g5becks/md2docx/internal/config"
	"github.com/g5becks/md2docx/internal/markdown"
)

const (
	twipsPerInch  = 1440
	twipsPerPoint = 20
	preserveSpace = "preserve"
)

// Document is an append-only DOCX body. Every block shares one Style.
type Document struct {
	doc   *docx.Docx
	style config.Style
}

func New(style config.Style) *Document {
	return &Document{
		doc:   docx.New().WithDefaultTheme(),
		style: style,
	}
}

// Render appends every block in order.
func (d *Document) Render(blocks []markdown.Block) {
	for _, b := range blocks {
		switch b.Kind {
		case markdown.BlockHeading:
			d.Heading(b.Text(), b.Level)
		case markdown.BlockParagraph, markdown.BlockBullet, markdown.BlockNumbered:
			d.Paragraph(b.Runs)
		case markdown.BlockCode:
			d.CodeBlock(b.Code)
		case markdown.BlockTable:
			d.Table(b.Header, b.Rows)
		case markdown.BlockSpacer:
			d.Spacer()
		}
	}
}

// Heading appends a heading paragraph. Levels outside 1..4 are clamped.
func (d *Document) Heading(text string, level int) {
	level = min(max(level, 1), 4)
	hs := d.style.HeadingFor(level)

	p := d.doc.AddParagraph().Style("Heading" + strconv.Itoa(level))
	r := p.AddText(text).Bold()
	d.font(r, d.style.BodyFont, hs.Size)
	if hs.Color != "" {
		r.Color(hs.Color)
	}
}

func (d *Document) Paragraph(runs []markdown.Run) {
	p := d.doc.AddParagraph()
	for _, run := range runs {
		r := p.AddText(run.Text)
		d.font(r, d.style.BodyFont, d.style.BodySize)
		if run.Bold {
			r.Bold()
		}
	}
}

// CodeBlock appends one indented, shaded monospace paragraph. Newlines in
// code become line breaks inside it.
func (d *Document) CodeBlock(code string) {
	p := d.doc.AddParagraph()
	p.Properties = &docx.ParagraphProperties{
		Ind: &docx.Ind{
			Left: int(math.Round(d.style.CodeIndent * twipsPerInch)),
		},
		Spacing: &docx.Spacing{
			Before: int(math.Round(d.style.CodeSpacing * twipsPerPoint)),
		},
	}
	if d.style.CodeShade != "" {
		p.Properties.Shade = &docx.Shade{Val: "clear", Color: "auto", Fill: d.style.CodeShade}
	}

	r := p.AddText(code)
	d.font(r, d.style.CodeFont, d.style.CodeSize)
}

// Table appends a bordered table with a bold header row followed by rows.
// Each row must have len(header) cells.
func (d *Document) Table(header []string, rows [][]string) {
	if len(header) == 0 {
		return
	}

	border := d.style.TableBorder
	table := d.doc.AddTable(1+len(rows), len(header), 0, &docx.APITableBorderColors{
		Top:     border,
		Left:    border,
		Bottom:  border,
		Right:   border,
		InsideH: border,
		InsideV: border,
	})

	for j, text := range header {
		cell := table.TableRows[0].TableCells[j]
		if d.style.TableHeaderShade != "" {
			cell.Shade("clear", "auto", d.style.TableHeaderShade)
		}
		r := cell.AddParagraph().AddText(text).Bold()
		d.font(r, d.style.BodyFont, d.style.BodySize)
	}

	for i, row := range rows {
		cells := table.TableRows[i+1].TableCells
		for j := range cells {
			var text string
			if j < len(row) {
				text = row[j]
			}
			r := cells[j].AddParagraph().AddText(text)
			d.font(r, d.style.BodyFont, d.style.BodySize)
		}
	}
}

// Spacer appends an empty paragraph.
func (d *Document) Spacer() {
	d.doc.AddParagraph()
}

// Len reports how many body elements have been appended.
func (d *Document) Len() int {
	return len(d.doc.Document.Body.Items)
}

// WriteTo serializes the document as a DOCX archive.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	tw := &trackingWriter{w: w}
	if _, err := d.doc.WriteTo(tw); err != nil {
		return tw.n, err
	}

	// The archive's central directory is written on close, whose error the
	// library drops.
	return tw.n, tw.err
}

func (d *Document) font(r *docx.Run, name string, size float64) {
	r.Font(name, name, name, "")
	r.Size(halfPoints(size))
	for _, child := range r.Children {
		if t, ok := child.(*docx.Text); ok {
			t.XMLSpace = preserveSpace
		}
	}
}

func halfPoints(size float64) string {
	return strconv.Itoa(int(math.Round(size * 2)))
}

type trackingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	t.n += int64(n)
	if err != nil && t.err == nil {
		t.err = err
	}
	return n, err
}
