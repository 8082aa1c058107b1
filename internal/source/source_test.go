package source_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/oops"

	"github.com/g5becks/md2docx/internal/source"
)

func requireCode(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("error = nil, want %s", code)
	}

	oopsErr, ok := oops.AsOops(err)
	if !ok || oopsErr.Code() != code {
		t.Fatalf("error = %v, want code %s", err, code)
	}
}

func TestRemoteName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		url  string
		want string
	}{
		{name: "path basename", url: "https://example.com/docs/guide.md", want: "guide.md"},
		{name: "query ignored", url: "https://example.com/docs/readme.md?lang=en", want: "readme.md"},
		{name: "trailing slash", url: "https://example.com/docs/", want: "docs"},
		{name: "no path", url: "https://example.com", want: "document.md"},
		{name: "invalid url", url: ":// bad", want: "document.md"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := source.RemoteName(tc.url); got != tc.want {
				t.Fatalf("RemoteName(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestIsRemote(t *testing.T) {
	t.Parallel()

	testCases := map[string]bool{
		"https://example.com/a.md": true,
		"HTTP://example.com/a.md":  true,
		"docs/a.md":                false,
		"ftp://example.com/a.md":   false,
		"./https.md":               false,
	}

	for location, want := range testCases {
		if got := source.IsRemote(location); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", location, got, want)
		}
	}
}

func TestLoadLocalFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("# Notes\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	input, err := source.NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if input.Name != "notes.md" || input.Remote {
		t.Fatalf("input = %+v, want local notes.md", input)
	}

	if string(input.Content) != "# Notes\n" {
		t.Fatalf("Content = %q", input.Content)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := source.NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	requireCode(t, err, source.CodeInputUnreadable)
}

func TestLoadDirectory(t *testing.T) {
	t.Parallel()

	_, err := source.NewLoader().Load(context.Background(), t.TempDir())
	requireCode(t, err, source.CodeInputUnreadable)

	if !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("error = %q, want directory error", err.Error())
	}
}

func TestLoadCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := source.NewLoader().Load(ctx, "anything.md"); err == nil {
		t.Fatalf("Load() error = nil, want context error")
	}
}

func TestLoadURL(t *testing.T) {
	t.Parallel()

	var gotAgent string
	loader := source.NewMockLoader(func(req *http.Request) *http.Response {
		gotAgent = req.Header.Get("User-Agent")
		return source.NewHTTPResponse(req, http.StatusOK, "# Remote\n", nil)
	})

	input, err := loader.Load(context.Background(), "https://example.test/docs/remote.md")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !input.Remote || input.Name != "remote.md" {
		t.Fatalf("input = %+v, want remote remote.md", input)
	}

	if string(input.Content) != "# Remote\n" {
		t.Fatalf("Content = %q", input.Content)
	}

	if gotAgent != "md2docx" {
		t.Fatalf("User-Agent = %q, want md2docx", gotAgent)
	}
}

func TestLoadURLFailureStatus(t *testing.T) {
	t.Parallel()

	loader := source.NewMockLoader(func(req *http.Request) *http.Response {
		return source.NewHTTPResponse(req, http.StatusNotFound, "missing", nil)
	})

	_, err := loader.Load(context.Background(), "https://example.test/missing.md")
	requireCode(t, err, source.CodeInputUnreadable)

	if !strings.Contains(err.Error(), "non-success status 404") {
		t.Fatalf("error = %q, want status error", err.Error())
	}
}
