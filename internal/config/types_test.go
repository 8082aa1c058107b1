package config_test

import (
	"testing"

	"github.com/g5becks/md2docx/internal/config"
)

func TestDefaultStyleMatchesClassicLook(t *testing.T) {
	style := config.DefaultStyle()

	if style.BodyFont != "Calibri" || style.BodySize != 11 {
		t.Fatalf("body = %s %vpt, want Calibri 11pt", style.BodyFont, style.BodySize)
	}

	if style.CodeFont != "Consolas" || style.CodeSize != 9 {
		t.Fatalf("code = %s %vpt, want Consolas 9pt", style.CodeFont, style.CodeSize)
	}

	if style.CodeIndent != 0.5 {
		t.Fatalf("CodeIndent = %v, want 0.5", style.CodeIndent)
	}

	if style.Heading1.Size != 18 || style.Heading1.Color != "000000" {
		t.Fatalf("Heading1 = %+v, want 18pt 000000", style.Heading1)
	}

	if style.Heading2.Size != 14 || style.Heading2.Color != "1F2937" {
		t.Fatalf("Heading2 = %+v, want 14pt 1F2937", style.Heading2)
	}

	if style.Bullet != "•" {
		t.Fatalf("Bullet = %q, want •", style.Bullet)
	}
}

func TestHeadingFor(t *testing.T) {
	style := config.DefaultStyle()

	tests := []struct {
		level int
		want  float64
	}{
		{0, 18},
		{1, 18},
		{2, 14},
		{3, 13},
		{4, 12},
		{6, 12},
	}

	for _, tt := range tests {
		if got := style.HeadingFor(tt.level).Size; got != tt.want {
			t.Errorf("HeadingFor(%d).Size = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestFingerprintChangesWithStyle(t *testing.T) {
	a := config.DefaultStyle()
	b := config.DefaultStyle()

	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("identical styles have different fingerprints")
	}

	b.BodyFont = "Georgia"
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("different styles share a fingerprint")
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestValidateRejectsShortColor(t *testing.T) {
	cfg := config.Default()
	cfg.Style.Heading2.Color = "FFF"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() error = nil, want invalid color")
	}
}
