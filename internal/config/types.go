package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

const (
	DefaultBodyFont    = "Calibri"
	DefaultBodySize    = 11
	DefaultCodeFont    = "Consolas"
	DefaultCodeSize    = 9
	DefaultCodeIndent  = 0.5
	DefaultCodeSpacing = 6
	DefaultCodeShade   = "F3F4F6"
	DefaultBullet      = "•"
	DefaultTableBorder = "4F81BD"
	DefaultParallel    = 3

	hexColorLength = 6
)

// DefaultPatterns matches every extension single-file conversion accepts.
func DefaultPatterns() []string {
	return []string{"**/*.{md,markdown,mdx}"}
}

type Config struct {
	Style     Style  `koanf:"style"`
	Batch     Batch  `koanf:"batch"`
	ConfigDir string `koanf:"-"`
}

// Style replaces the document-wide "Normal" style mutation: every builder
// receives one explicitly.
type Style struct {
	BodyFont         string       `koanf:"body_font"          validate:"required"`
	BodySize         float64      `koanf:"body_size"          validate:"gt=0,lte=96"`
	CodeFont         string       `koanf:"code_font"          validate:"required"`
	CodeSize         float64      `koanf:"code_size"          validate:"gt=0,lte=96"`
	CodeIndent       float64      `koanf:"code_indent"        validate:"gte=0,lte=4"`
	CodeSpacing      float64      `koanf:"code_spacing"       validate:"gte=0,lte=72"`
	CodeShade        string       `koanf:"code_shade"         validate:"omitempty,hex_color"`
	Bullet           string       `koanf:"bullet"             validate:"required"`
	TableBorder      string       `koanf:"table_border"       validate:"omitempty,hex_color"`
	TableHeaderShade string       `koanf:"table_header_shade" validate:"omitempty,hex_color"`
	Heading1         HeadingStyle `koanf:"heading1"`
	Heading2         HeadingStyle `koanf:"heading2"`
	Heading3         HeadingStyle `koanf:"heading3"`
	Heading4         HeadingStyle `koanf:"heading4"`
}

type HeadingStyle struct {
	Size  float64 `koanf:"size"  validate:"gt=0,lte=96"`
	Color string  `koanf:"color" validate:"omitempty,hex_color"`
}

type Batch struct {
	Patterns []string `koanf:"patterns"`
	Exclude  []string `koanf:"exclude"`
	Output   string   `koanf:"output"`
	Parallel int      `koanf:"parallel" validate:"gte=1,lte=64"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func DefaultStyle() Style {
	return Default().Style
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
		return isHexColor(fl.Field().String())
	})

	return v
}

// ApplyDefaults fills every unset field of a config built in code. Loaded
// configs start from Default instead, so explicit zero values survive.
func (c *Config) ApplyDefaults() {
	c.Style.applyDefaults()
	c.normalize()
}

// normalize fills the batch settings whose zero value is unusable and
// canonicalizes colors.
func (c *Config) normalize() {
	if len(c.Batch.Patterns) == 0 {
		c.Batch.Patterns = DefaultPatterns()
	}

	if c.Batch.Parallel == 0 {
		c.Batch.Parallel = DefaultParallel
	}

	c.Style.upperColors()
}

func (s *Style) applyDefaults() {
	if s.BodyFont == "" {
		s.BodyFont = DefaultBodyFont
	}
	if s.BodySize == 0 {
		s.BodySize = DefaultBodySize
	}
	if s.CodeFont == "" {
		s.CodeFont = DefaultCodeFont
	}
	if s.CodeSize == 0 {
		s.CodeSize = DefaultCodeSize
	}
	if s.CodeIndent == 0 {
		s.CodeIndent = DefaultCodeIndent
	}
	if s.CodeSpacing == 0 {
		s.CodeSpacing = DefaultCodeSpacing
	}
	if s.CodeShade == "" {
		s.CodeShade = DefaultCodeShade
	}
	if s.Bullet == "" {
		s.Bullet = DefaultBullet
	}
	if s.TableBorder == "" {
		s.TableBorder = DefaultTableBorder
	}

	s.Heading1.applyDefaults(18, "000000")
	s.Heading2.applyDefaults(14, "1F2937")
	s.Heading3.applyDefaults(13, "")
	s.Heading4.applyDefaults(12, "")
}

func (s *Style) upperColors() {
	s.CodeShade = strings.ToUpper(s.CodeShade)
	s.TableBorder = strings.ToUpper(s.TableBorder)
	s.TableHeaderShade = strings.ToUpper(s.TableHeaderShade)
	for _, h := range []*HeadingStyle{&s.Heading1, &s.Heading2, &s.Heading3, &s.Heading4} {
		h.Color = strings.ToUpper(h.Color)
	}
}

func (h *HeadingStyle) applyDefaults(size float64, color string) {
	if h.Size == 0 {
		h.Size = size
	}
	if h.Color == "" {
		h.Color = color
	}
}

// HeadingFor returns the style for a heading level, clamping to 1..4.
func (s Style) HeadingFor(level int) HeadingStyle {
	switch {
	case level <= 1:
		return s.Heading1
	case level == 2:
		return s.Heading2
	case level == 3:
		return s.Heading3
	default:
		return s.Heading4
	}
}

// Fingerprint identifies a style so batch runs can detect style changes.
func (s Style) Fingerprint() string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c *Config) Validate() error {
	v := newValidator()

	sections := []struct {
		name  string
		value any
	}{
		{"style", c.Style},
		{"batch", c.Batch},
	}

	for _, section := range sections {
		valErr := v.Struct(section.value)
		if valErr == nil {
			continue
		}

		var validationErrors validator.ValidationErrors
		if !errors.As(valErr, &validationErrors) {
			return oops.
				Code("CONFIG_INVALID").
				With("section", section.name).
				Wrapf(valErr, "validating %s section", section.name)
		}

		for _, fe := range validationErrors {
			return mapValidationError(section.name, fe)
		}
	}

	return nil
}

func mapValidationError(section string, fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "hex_color":
		return oops.
			Code("CONFIG_INVALID").
			With("section", section).
			With("field", field).
			With("value", fe.Value()).
			Hint("Colors are six hex digits without '#', e.g. 1F2937").
			Errorf("invalid color %q for %s.%s", fe.Value(), section, field)

	case "required":
		return oops.
			Code("CONFIG_INVALID").
			With("section", section).
			With("field", field).
			Errorf("missing %s.%s", section, field)

	case "gt", "gte", "lte":
		return oops.
			Code("CONFIG_INVALID").
			With("section", section).
			With("field", field).
			With("value", fe.Value()).
			Hint("Check the allowed range for this setting").
			Errorf("%s.%s is out of range: %v", section, field, fe.Value())

	default:
		return oops.
			Code("CONFIG_INVALID").
			With("section", section).
			With("field", field).
			With("tag", fe.Tag()).
			Errorf("validation failed for field %q in %s", field, section)
	}
}

func isHexColor(value string) bool {
	if len(value) != hexColorLength {
		return false
	}

	for _, r := range value {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}

	return true
}
