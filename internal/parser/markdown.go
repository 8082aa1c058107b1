package parser

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

const (
	setextH1Level = 1
	setextH2Level = 2
	maxATXLevel   = 6
)

type MarkdownParser struct{}

func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

func (p *MarkdownParser) CanParse(path string) bool {
	return DetectFileType(path) == "md"
}

func (p *MarkdownParser) Parse(content []byte) (*Result, error) {
	content = StripBOM(content)
	body, fmTitle, fmDesc := StripFrontmatter(content)

	doc := parser.NewWithExtensions(parser.CommonExtensions).Parse(body)

	w := &outlineWalker{}
	ast.WalkFunc(doc, w.visit)

	// gomarkdown keeps no source positions, so lines are recovered from the
	// raw text, offset by the frontmatter that was cut off.
	fmLines := bytes.Count(content[:len(content)-len(body)], []byte("\n"))
	assignHeadingLines(w.headings, body, fmLines)

	return &Result{
		Description: describe(fmTitle, fmDesc, w),
		Headings:    w.headings,
		Lines:       CountLines(content),
	}, nil
}

// CountLines counts lines the way the converter splits them: a trailing
// newline does not start another line.
func CountLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}

	n := bytes.Count(content, []byte("\n"))
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

type outlineWalker struct {
	headings       []Heading
	firstH1        string
	firstParagraph string
	afterH1        string
}

func (w *outlineWalker) visit(node ast.Node, entering bool) ast.WalkStatus {
	if !entering {
		return ast.GoToNext
	}

	switch n := node.(type) {
	case *ast.Heading:
		text := plainText(n)
		if text == "" {
			return ast.GoToNext
		}

		w.headings = append(w.headings, Heading{Level: n.Level, Text: text})
		if n.Level == 1 && w.firstH1 == "" {
			w.firstH1 = text
		}
	case *ast.Paragraph:
		if w.firstParagraph != "" {
			return ast.GoToNext
		}

		if text := plainText(n); text != "" {
			w.firstParagraph = text
			if w.firstH1 != "" {
				w.afterH1 = text
			}
		}
	}

	return ast.GoToNext
}

// plainText concatenates the literal text under node with whitespace
// collapsed to single spaces.
func plainText(node ast.Node) string {
	var buf strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if text, ok := n.(*ast.Text); ok && entering {
			buf.Write(text.Literal)
		}
		return ast.GoToNext
	})

	return strings.Join(strings.Fields(buf.String()), " ")
}

// assignHeadingLines walks the raw lines in document order and gives each
// heading the 1-based line where its marker appears.
func assignHeadingLines(headings []Heading, body []byte, lineOffset int) {
	if len(headings) == 0 {
		return
	}

	lines := bytes.Split(body, []byte("\n"))
	next := 0
	inFence := false

	for i := 0; i < len(lines) && next < len(headings); i++ {
		trimmed := bytes.TrimSpace(lines[i])

		if isFenceMarker(trimmed) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		level := atxLevel(lines[i])
		if level == 0 {
			level = setextLevel(lines, i, trimmed)
		}

		if level != 0 && level == headings[next].Level {
			headings[next].Line = lineOffset + i + 1
			next++
		}
	}
}

func isFenceMarker(trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~"))
}

// atxLevel returns 1-6 for an ATX heading line, or 0.
func atxLevel(line []byte) int {
	indent := 0
	for indent < len(line) && indent < 4 && line[indent] == ' ' {
		indent++
	}
	if indent >= 4 || indent >= len(line) || line[indent] != '#' {
		return 0
	}

	level := 0
	for indent+level < len(line) && line[indent+level] == '#' {
		level++
	}

	rest := line[indent+level:]
	if level > maxATXLevel || len(rest) == 0 || (rest[0] != ' ' && rest[0] != '\t') {
		return 0
	}

	// Headings without text are dropped from the outline.
	if len(bytes.Trim(rest, " \t\r#")) == 0 {
		return 0
	}
	return level
}

// setextLevel returns 1 for a line underlined with "=", 2 for "-", or 0.
func setextLevel(lines [][]byte, i int, trimmed []byte) int {
	if i+1 >= len(lines) || len(trimmed) == 0 {
		return 0
	}

	underline := bytes.TrimSpace(lines[i+1])
	switch {
	case repeats(underline, '='):
		return setextH1Level
	case repeats(underline, '-'):
		return setextH2Level
	default:
		return 0
	}
}

func repeats(b []byte, ch byte) bool {
	return len(b) > 0 && len(bytes.Trim(b, string(ch))) == 0
}

func describe(fmTitle, fmDesc string, w *outlineWalker) string {
	switch {
	case fmTitle != "" && fmDesc != "":
		return fmTitle + " - " + fmDesc
	case fmTitle != "":
		return fmTitle
	case fmDesc != "":
		return fmDesc
	case w.firstH1 != "" && w.afterH1 != "":
		return w.firstH1 + " - " + w.afterH1
	case w.firstH1 != "":
		return w.firstH1
	default:
		return w.firstParagraph
	}
}
