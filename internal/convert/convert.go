// Package convert runs the Markdown to DOCX pipeline for a single input:
// load, normalize, scan, render, save.
package convert

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/samber/oops"

	"github.com/g5becks/md2docx/internal/config"
	"github.com/g5becks/md2docx/internal/markdown"
	"github.com/g5becks/md2docx/internal/parser"
	"github.com/g5becks/md2docx/internal/render"
	"github.com/g5becks/md2docx/internal/source"
)

const docxExt = ".docx"

// Loader reads an input location completely.
type Loader interface {
	Load(ctx context.Context, location string) (*source.Input, error)
}

type Request struct {
	// Input is a file path or an http(s) URL.
	Input string
	// Output defaults to ResolveOutputPath(Input).
	Output string
	Style  config.Style
	// DryRun scans the input without building or writing a document.
	DryRun bool
}

type Result struct {
	Input   string
	Output  string
	Blocks  []markdown.Block
	Counts  map[markdown.BlockKind]int
	Written bool
}

type Converter struct {
	loader Loader
}

func New(loader Loader) *Converter {
	return &Converter{loader: loader}
}

// Convert converts req.Input with a default loader.
func Convert(ctx context.Context, req Request) (*Result, error) {
	loader := source.NewLoader()
	defer func() {
		_ = loader.Close()
	}()

	return New(loader).Convert(ctx, req)
}

// Convert reads the whole input before touching the output, so a failed
// read never creates or truncates the output file.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	input, err := c.loader.Load(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	return ConvertInput(ctx, input, req)
}

// ConvertInput converts an input that has already been loaded.
func ConvertInput(ctx context.Context, input *source.Input, req Request) (*Result, error) {
	content, err := Normalize(input.Name, input.Content)
	if err != nil {
		return nil, oops.With("input", input.Location).Wrap(err)
	}

	blocks := markdown.Scan(markdown.SplitLines(content), markdown.Options{Bullet: req.Style.Bullet})

	output := req.Output
	if output == "" {
		output = ResolveOutputPath(input.Location)
	}

	result := &Result{
		Input:  input.Location,
		Output: output,
		Blocks: blocks,
		Counts: markdown.Count(blocks),
	}

	if req.DryRun {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := render.New(req.Style)
	doc.Render(blocks)

	if err := doc.Save(output); err != nil {
		return nil, err
	}

	result.Written = true
	return result, nil
}

// Normalize strips a UTF-8 byte order mark and rejects content that is not
// valid UTF-8. Any other content, control characters included, is passed to
// the scanner as is. MDX module statements are blanked for .mdx inputs.
func Normalize(name string, content []byte) ([]byte, error) {
	content = parser.StripBOM(content)

	if !parser.IsValidUTF8(content) {
		return nil, oops.
			Code(source.CodeInputUnreadable).
			Hint("Re-save the file as UTF-8").
			Errorf("input is not valid UTF-8")
	}

	if parser.DetectFileType(name) == "mdx" {
		content = parser.StripMDXSyntax(content)
	}

	return content, nil
}

// ResolveOutputPath derives the DOCX path for input. A Markdown extension
// (.md, .markdown, .mdx, any case) is replaced with .docx; any other name
// gets .docx appended. URL inputs resolve to their basename in the working
// directory.
func ResolveOutputPath(input string) string {
	if source.IsRemote(input) {
		input = source.RemoteName(input)
	}

	ext := filepath.Ext(input)
	if parser.DetectFileType(input) != "unknown" {
		return strings.TrimSuffix(input, ext) + docxExt
	}

	return input + docxExt
}
