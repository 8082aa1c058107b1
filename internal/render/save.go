package render

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

// CodeOutputUnwritable marks failures to create or write the output file.
const CodeOutputUnwritable = "OUTPUT_UNWRITABLE"

// Save writes the document to path through a temporary sibling file, so an
// existing file at path is only replaced by a complete document.
func (d *Document) Save(path string) error {
	dir := filepath.Dir(path)

	tempFile, err := os.CreateTemp(dir, ".md2docx-*.tmp")
	if err != nil {
		return oops.
			Code(CodeOutputUnwritable).
			With("path", path).
			Hint("Check that the output directory exists and is writable").
			Wrapf(err, "creating temporary output file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, writeErr := d.WriteTo(tempFile); writeErr != nil {
		_ = tempFile.Close()
		return oops.
			Code(CodeOutputUnwritable).
			With("path", path).
			Wrapf(writeErr, "writing document")
	}

	_ = tempFile.Chmod(0o644)

	if closeErr := tempFile.Close(); closeErr != nil {
		return oops.
			Code(CodeOutputUnwritable).
			With("path", path).
			Wrapf(closeErr, "closing temporary output file")
	}

	if renameErr := os.Rename(tempPath, path); renameErr != nil {
		return oops.
			Code(CodeOutputUnwritable).
			With("from", tempPath).
			With("to", path).
			Wrapf(renameErr, "replacing output file")
	}

	return nil
}
