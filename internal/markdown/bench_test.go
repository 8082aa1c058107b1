package markdown_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/g5becks/md2docx/internal/markdown"
)

func BenchmarkScan1000Sections(b *testing.B) {
	lines := markdown.SplitLines([]byte(buildBenchmarkDocument(1000)))
	var blocks []markdown.Block

	b.ResetTimer()
	for b.Loop() {
		blocks = markdown.Scan(lines, markdown.Options{})
	}

	if len(blocks) == 0 {
		b.Fatal("expected blocks")
	}
}

func BenchmarkParseInline(b *testing.B) {
	line := strings.Repeat("plain **bold** text ", 50)

	for b.Loop() {
		_ = markdown.ParseInline(line)
	}
}

func buildBenchmarkDocument(sections int) string {
	var sb strings.Builder

	for i := range sections {
		fmt.Fprintf(&sb, `## Section %d

Some **bold** text for section %d.

- first item
- second item

1. numbered

| Key | Value |
|-----|-------|
| a   | %d    |

`+"```go\nfmt.Println(%d)\n```\n\n", i, i, i, i)
	}

	return sb.String()
}
