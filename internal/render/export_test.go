package render

import docx "github.com/fumiama/go-docx"

// BodyItems exposes the underlying body elements for assertions.
func BodyItems(d *Document) []any {
	return d.doc.Document.Body.Items
}

// HalfPoints exports halfPoints for testing.
//
//nolint:gochecknoglobals // Test-only exports
var HalfPoints = halfPoints

// Paragraphs filters body items down to paragraphs.
func Paragraphs(items []any) []*docx.Paragraph {
	var out []*docx.Paragraph
	for _, item := range items {
		if p, ok := item.(*docx.Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables filters body items down to tables.
func Tables(items []any) []*docx.Table {
	var out []*docx.Table
	for _, item := range items {
		if t, ok := item.(*docx.Table); ok {
			out = append(out, t)
		}
	}
	return out
}
