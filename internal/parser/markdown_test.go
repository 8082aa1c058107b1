package parser_test

import (
	"testing"

	"github.com/g5becks/md2docx/internal/parser"
)

func TestMarkdownParser_CanParse(t *testing.T) {
	p := parser.NewMarkdownParser()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"markdown file", "README.md", true},
		{"long extension", "guide.markdown", true},
		{"mdx file", "component.mdx", false},
		{"text file", "notes.txt", false},
		{"uppercase", "DOC.MD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CanParse(tt.path); got != tt.want {
				t.Errorf("CanParse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarkdownParser_Parse(t *testing.T) {
	p := parser.NewMarkdownParser()

	tests := []struct {
		name         string
		content      string
		wantDesc     string
		wantHeadings int
		wantLines    int
	}{
		{
			name:         "ATX headings",
			content:      "# Main Title\n## Section 1\n### Subsection\n## Section 2",
			wantDesc:     "Main Title",
			wantHeadings: 4,
			wantLines:    4,
		},
		{
			name:         "frontmatter title and description",
			content:      "---\ntitle: My Document\ndescription: A test document\n---\n# Content\n",
			wantDesc:     "My Document - A test document",
			wantHeadings: 1,
			wantLines:    5,
		},
		{
			name:         "H1 with paragraph",
			content:      "# Introduction\nThis is the first paragraph.\n\nMore content here.",
			wantDesc:     "Introduction - This is the first paragraph.",
			wantHeadings: 1,
			wantLines:    4,
		},
		{
			name:         "paragraph before any heading",
			content:      "Preface text.\n\n# Title\nBody.",
			wantDesc:     "Title",
			wantHeadings: 1,
			wantLines:    4,
		},
		{
			name:         "no headings",
			content:      "Only a paragraph of text.",
			wantDesc:     "Only a paragraph of text.",
			wantHeadings: 0,
			wantLines:    1,
		},
		{
			name:         "empty file",
			content:      "",
			wantDesc:     "",
			wantHeadings: 0,
			wantLines:    0,
		},
		{
			name:         "code blocks ignored",
			content:      "# Real Heading\n```\n# Fake Heading\n```",
			wantDesc:     "Real Heading",
			wantHeadings: 1,
			wantLines:    4,
		},
		{
			name:         "bold markers are not part of the text",
			content:      "# Report\nSome **bold** words.",
			wantDesc:     "Report - Some bold words.",
			wantHeadings: 1,
			wantLines:    2,
		},
		{
			name:         "BOM stripped",
			content:      "\xEF\xBB\xBF# Title",
			wantDesc:     "Title",
			wantHeadings: 1,
			wantLines:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Parse([]byte(tt.content))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if result.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", result.Description, tt.wantDesc)
			}

			if len(result.Headings) != tt.wantHeadings {
				t.Errorf("Headings count = %d, want %d", len(result.Headings), tt.wantHeadings)
			}

			if result.Lines != tt.wantLines {
				t.Errorf("Lines = %d, want %d", result.Lines, tt.wantLines)
			}
		})
	}
}

func TestMarkdownParser_HeadingLevelsAndText(t *testing.T) {
	result, err := parser.NewMarkdownParser().Parse([]byte("# Level 1\n## Level 2\n### Level 3\n#### Level 4"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []parser.Heading{
		{Level: 1, Text: "Level 1", Line: 1},
		{Level: 2, Text: "Level 2", Line: 2},
		{Level: 3, Text: "Level 3", Line: 3},
		{Level: 4, Text: "Level 4", Line: 4},
	}

	if len(result.Headings) != len(want) {
		t.Fatalf("Headings count = %d, want %d", len(result.Headings), len(want))
	}

	for i, heading := range result.Headings {
		if heading != want[i] {
			t.Errorf("Heading[%d] = %+v, want %+v", i, heading, want[i])
		}
	}
}

func TestMarkdownParser_HeadingLineNumbers(t *testing.T) {
	t.Parallel()

	p := parser.NewMarkdownParser()

	tests := []struct {
		name      string
		content   string
		wantLines []int
	}{
		{
			name:      "blank lines between headings",
			content:   "# Title\n\nSome text.\n\n## Section\n\n### Sub",
			wantLines: []int{1, 5, 7},
		},
		{
			name:      "frontmatter offsets line numbers",
			content:   "---\ntitle: Test\n---\n\n## Query Basics\n\n### Details",
			wantLines: []int{5, 7},
		},
		{
			name:      "setext headings",
			content:   "Title\n=====\n\nSection\n------\n\n### ATX",
			wantLines: []int{1, 4, 7},
		},
		{
			name:      "headings inside code fences ignored",
			content:   "# Real\n\n```\n# Fake\n```\n\n## Also Real",
			wantLines: []int{1, 7},
		},
		{
			name:      "empty heading marker skipped",
			content:   "#\n\n# Named",
			wantLines: []int{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := p.Parse([]byte(tt.content))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if len(result.Headings) != len(tt.wantLines) {
				t.Fatalf("Headings count = %d, want %d", len(result.Headings), len(tt.wantLines))
			}

			for i, heading := range result.Headings {
				if heading.Line != tt.wantLines[i] {
					t.Errorf("Heading[%d] %q: Line = %d, want %d", i, heading.Text, heading.Line, tt.wantLines[i])
				}
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	tests := map[string]int{
		"":           0,
		"one":        1,
		"one\n":      1,
		"one\ntwo":   2,
		"a\r\nb\r\n": 2,
		"\n":         1,
	}

	for content, want := range tests {
		if got := parser.CountLines([]byte(content)); got != want {
			t.Errorf("CountLines(%q) = %d, want %d", content, got, want)
		}
	}
}

func TestForPath(t *testing.T) {
	if _, ok := parser.ForPath("page.mdx").(*parser.MDXParser); !ok {
		t.Errorf("ForPath(page.mdx) is not an MDX parser")
	}

	for _, path := range []string{"README.md", "notes", "https://example.com/raw"} {
		if _, ok := parser.ForPath(path).(*parser.MarkdownParser); !ok {
			t.Errorf("ForPath(%q) is not a Markdown parser", path)
		}
	}
}
