package markdown

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	fenceMarker     = "```"
	spacerMarker    = "---"
	tableSeparator  = "|---"
	maxHeadingLevel = 4
	defaultBullet   = "•"
)

var (
	orderedItemRegex = regexp.MustCompile(`^\d+\.`)
	newlineReplacer  = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// Options tunes block text that depends on presentation.
type Options struct {
	// Bullet prefixes unordered list items. Defaults to "•".
	Bullet string
}

// SplitLines splits content into lines, accepting LF, CRLF and lone CR
// endings. A final line ending does not produce a trailing empty line.
func SplitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	text := newlineReplacer.Replace(string(content))
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

type scanner struct {
	lines  []string
	bullet string

	pos        int
	inFence    bool
	fenceStart int
	code       []string

	blocks []Block
}

// Scan classifies lines into blocks. The first matching rule wins: code
// fence, fenced content, heading, spacer, bullet, numbered item, inline bold,
// table, plain paragraph. Blank lines produce nothing.
//
// Scan never fails: malformed input degrades to the plainest matching block.
func Scan(lines []string, opts Options) []Block {
	bullet := opts.Bullet
	if bullet == "" {
		bullet = defaultBullet
	}

	s := &scanner{
		lines:  lines,
		bullet: bullet,
	}

	for s.pos < len(s.lines) {
		s.step()
	}

	if s.inFence {
		s.flushCode()
	}

	return s.blocks
}

func (s *scanner) step() {
	line := strings.TrimRightFunc(s.lines[s.pos], unicode.IsSpace)
	lineNo := s.pos + 1

	if strings.HasPrefix(line, fenceMarker) {
		if s.inFence {
			s.flushCode()
		} else {
			s.inFence = true
			s.fenceStart = lineNo
		}
		s.pos++
		return
	}

	if s.inFence {
		s.code = append(s.code, line)
		s.pos++
		return
	}

	if level, text, ok := headingOf(line); ok {
		s.emit(Block{Kind: BlockHeading, Line: lineNo, Level: level, Runs: plainRuns(text)})
		s.pos++
		return
	}

	switch {
	case strings.HasPrefix(strings.TrimSpace(line), spacerMarker):
		s.emit(Block{Kind: BlockSpacer, Line: lineNo})

	case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
		s.emit(Block{Kind: BlockBullet, Line: lineNo, Runs: plainRuns(s.bullet + " " + line[2:])})

	case orderedItemRegex.MatchString(line):
		s.emit(Block{Kind: BlockNumbered, Line: lineNo, Runs: plainRuns(line)})

	case strings.Contains(line, boldDelim):
		s.emit(Block{Kind: BlockParagraph, Line: lineNo, Runs: ParseInline(line)})

	case strings.Contains(line, "|") && !strings.HasPrefix(line, tableSeparator):
		if s.scanTable(lineNo, line) {
			return
		}
		s.emit(Block{Kind: BlockParagraph, Line: lineNo, Runs: plainRuns(line)})

	case strings.TrimSpace(line) != "":
		s.emit(Block{Kind: BlockParagraph, Line: lineNo, Runs: plainRuns(line)})
	}

	s.pos++
}

// scanTable consumes a header, its separator and the contiguous pipe rows
// after it. It reports false, consuming nothing, when line does not start a
// table.
func (s *scanner) scanTable(lineNo int, line string) bool {
	header := splitCells(line)
	if len(header) == 0 {
		return false
	}

	next := s.pos + 1
	if next >= len(s.lines) || !strings.HasPrefix(s.lines[next], tableSeparator) {
		return false
	}

	table := Block{Kind: BlockTable, Line: lineNo, Header: header}

	s.pos += 2
	for s.pos < len(s.lines) && strings.Contains(s.lines[s.pos], "|") {
		if cells := splitCells(s.lines[s.pos]); len(cells) == len(header) {
			table.Rows = append(table.Rows, cells)
		}
		s.pos++
	}

	s.emit(table)
	return true
}

func (s *scanner) flushCode() {
	s.emit(Block{Kind: BlockCode, Line: s.fenceStart, Code: strings.Join(s.code, "\n")})
	s.code = nil
	s.inFence = false
}

func (s *scanner) emit(b Block) {
	s.blocks = append(s.blocks, b)
}

// headingOf matches "# " through "#### ".
func headingOf(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}

	if level == 0 || level > maxHeadingLevel || level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}

	return level, line[level+1:], true
}

// splitCells drops the segments outside the outer pipes and trims the rest.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return nil
	}

	cells := parts[1 : len(parts)-1]
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}

	return cells
}

func plainRuns(text string) []Run {
	return []Run{{Text: text}}
}
