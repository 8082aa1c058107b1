package parser

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

func IsValidUTF8(content []byte) bool {
	return utf8.Valid(content)
}

// StripBOM removes a leading UTF-8 byte order mark.
func StripBOM(content []byte) []byte {
	return bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
}

// DetectFileType maps a path's extension to "md", "mdx", or "unknown".
func DetectFileType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "md"
	case ".mdx":
		return "mdx"
	default:
		return "unknown"
	}
}

// StripFrontmatter removes YAML frontmatter (--- delimited) and returns
// the remaining content and extracted title/description if present.
func StripFrontmatter(content []byte) ([]byte, string, string) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return content, "", ""
	}

	start := bytes.IndexByte(content, '\n') + 1

	closing := []byte("\n---\n")
	end := bytes.Index(content[start:], closing)
	if end == -1 {
		closing = []byte("\n---\r\n")
		end = bytes.Index(content[start:], closing)
		if end == -1 {
			return content, "", ""
		}
	}

	frontmatter := content[start : start+end]
	body := content[start+end+len(closing):]

	var title, description string
	for line := range bytes.SplitSeq(frontmatter, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if after, ok := bytes.CutPrefix(line, []byte("title:")); ok {
			title = strings.Trim(strings.TrimSpace(string(after)), `"'`)
		} else if after, ok := bytes.CutPrefix(line, []byte("description:")); ok {
			description = strings.Trim(strings.TrimSpace(string(after)), `"'`)
		}
	}

	return body, title, description
}
