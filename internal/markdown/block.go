// Package markdown classifies a constrained Markdown subset line by line into
// document blocks.
package markdown

import "strings"

type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockBullet    BlockKind = "bullet"
	BlockNumbered  BlockKind = "numbered"
	BlockCode      BlockKind = "code"
	BlockTable     BlockKind = "table"
	BlockSpacer    BlockKind = "spacer"
)

// Kinds lists every block kind in a stable display order.
func Kinds() []BlockKind {
	return []BlockKind{
		BlockHeading,
		BlockParagraph,
		BlockBullet,
		BlockNumbered,
		BlockCode,
		BlockTable,
		BlockSpacer,
	}
}

// Run is a span of paragraph text sharing one style.
type Run struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Block is one top-level element of the output document.
//
// Heading, paragraph, bullet and numbered blocks carry Runs. Code blocks carry
// Code. Tables carry Header and Rows, every row having len(Header) cells.
type Block struct {
	Kind   BlockKind  `json:"kind"`
	Line   int        `json:"line"`
	Level  int        `json:"level,omitempty"`
	Runs   []Run      `json:"runs,omitempty"`
	Code   string     `json:"code,omitempty"`
	Header []string   `json:"header,omitempty"`
	Rows   [][]string `json:"rows,omitempty"`
}

// Text joins the block's runs.
func (b Block) Text() string {
	if b.Kind == BlockCode {
		return b.Code
	}

	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Count tallies blocks by kind.
func Count(blocks []Block) map[BlockKind]int {
	counts := make(map[BlockKind]int, len(Kinds()))
	for _, b := range blocks {
		counts[b.Kind]++
	}
	return counts
}
