package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

const starterConfig = `# md2docx configuration.
# Every setting is optional; omitted values use the built-in defaults.

[style]
body_font = "Calibri"
body_size = 11
code_font = "Consolas"
code_size = 9
# Left indent of code blocks, in inches.
code_indent = 0.5
# Space before and after code blocks, in points.
code_spacing = 6
code_shade = "F3F4F6"
bullet = "•"
table_border = "4F81BD"
# table_header_shade = "DBE5F1"

[style.heading1]
size = 18
color = "000000"

[style.heading2]
size = 14
color = "1F2937"

[batch]
patterns = ["**/*.{md,markdown,mdx}"]
exclude = ["node_modules/**", "**/CHANGELOG.md"]
# output = "dist/docx"
parallel = 3
`

// WriteStarter writes a commented starter config into dir.
func WriteStarter(dir string, force bool) (string, error) {
	path := filepath.Join(dir, DefaultFilename())

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", oops.
				Code("CONFIG_EXISTS").
				With("path", path).
				Hint("Pass --force to overwrite it").
				Errorf("config file %q already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", oops.Wrapf(err, "checking config file %q", path)
		}
	}

	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return "", oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "writing starter config")
	}

	return path, nil
}
