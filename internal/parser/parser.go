package parser

// Parser extracts a description and heading outline from file content.
type Parser interface {
	Parse(content []byte) (*Result, error)
	CanParse(path string) bool
}

type Result struct {
	Description string    `json:"description,omitempty"`
	Headings    []Heading `json:"headings"`
	Lines       int       `json:"lines"`
}

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

// ForPath picks the parser for path by extension. Anything that is not MDX
// is treated as Markdown.
func ForPath(path string) Parser {
	if mdx := NewMDXParser(); mdx.CanParse(path) {
		return mdx
	}

	return NewMarkdownParser()
}
