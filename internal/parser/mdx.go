package parser

import (
	"bytes"
	"regexp"
)

var (
	importLineRegex = regexp.MustCompile(`^\s*import\s+`)
	exportMetaRegex = regexp.MustCompile(`^\s*export\s+(const|let|var|default)\b`)
)

// MDXParser outlines MDX files by dropping module syntax and delegating to
// the Markdown parser.
type MDXParser struct {
	md *MarkdownParser
}

func NewMDXParser() *MDXParser {
	return &MDXParser{md: NewMarkdownParser()}
}

func (p *MDXParser) CanParse(path string) bool {
	return DetectFileType(path) == "mdx"
}

func (p *MDXParser) Parse(content []byte) (*Result, error) {
	content = StripBOM(content)

	result, err := p.md.Parse(StripMDXSyntax(content))
	if err != nil {
		return nil, err
	}

	result.Lines = CountLines(content)
	return result, nil
}

// StripMDXSyntax blanks top-level import and export statements, following
// multi-line statements until their braces balance. Blanked lines stay in
// place so line numbers still match the source.
func StripMDXSyntax(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	inFence := false
	depth := 0

	for i, line := range lines {
		if depth > 0 {
			depth += braceDelta(line)
			lines[i] = nil
			continue
		}

		if isFenceMarker(bytes.TrimSpace(line)) {
			inFence = !inFence
			continue
		}

		if !inFence && (importLineRegex.Match(line) || exportMetaRegex.Match(line)) {
			depth = braceDelta(line)
			lines[i] = nil
		}
	}

	return bytes.Join(lines, []byte("\n"))
}

func braceDelta(line []byte) int {
	return bytes.Count(line, []byte("{")) - bytes.Count(line, []byte("}"))
}
