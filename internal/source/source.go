// Package source reads conversion inputs from local files or http(s) URLs.
package source

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	neturl "net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/samber/oops"
	"resty.dev/v3"
)

// CodeInputUnreadable marks inputs that cannot be read or decoded.
const CodeInputUnreadable = "INPUT_UNREADABLE"

const (
	userAgent       = "md2docx"
	httpTimeout     = 30 * time.Second
	defaultBasename = "document.md"
)

// Input is a fully read conversion input.
type Input struct {
	Location string
	// Name is the base filename of the input, used to derive output paths.
	Name    string
	Remote  bool
	Content []byte
}

// Loader reads inputs. The zero value is not usable; call NewLoader.
type Loader struct {
	client *resty.Client
}

func NewLoader() *Loader {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetTimeout(httpTimeout)

	return &Loader{client: client}
}

// Close releases idle HTTP connections.
func (l *Loader) Close() error {
	return l.client.Close()
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load reads location completely. Remote locations are fetched with GET.
func (l *Loader) Load(ctx context.Context, location string) (*Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if IsRemote(location) {
		return l.fetch(ctx, location)
	}

	return readFile(location)
}

func readFile(location string) (*Input, error) {
	info, err := os.Stat(location)
	if err != nil {
		hint := "Check that the input file exists and is readable"
		if errors.Is(err, fs.ErrNotExist) {
			hint = "Check the input path for typos"
		}

		return nil, oops.
			Code(CodeInputUnreadable).
			With("path", location).
			Hint(hint).
			Wrapf(err, "reading input file")
	}

	if info.IsDir() {
		return nil, oops.
			Code(CodeInputUnreadable).
			With("path", location).
			Hint("Use the batch command to convert a directory").
			Errorf("input %q is a directory", location)
	}

	content, err := os.ReadFile(location)
	if err != nil {
		return nil, oops.
			Code(CodeInputUnreadable).
			With("path", location).
			Wrapf(err, "reading input file")
	}

	return &Input{
		Location: location,
		Name:     path.Base(strings.ReplaceAll(location, "\\", "/")),
		Content:  content,
	}, nil
}

func (l *Loader) fetch(ctx context.Context, location string) (*Input, error) {
	response, err := l.client.R().SetContext(ctx).Get(location)
	if err != nil {
		return nil, oops.
			Code(CodeInputUnreadable).
			With("url", location).
			Wrapf(err, "downloading input")
	}

	if response.StatusCode() < http.StatusOK || response.StatusCode() >= http.StatusMultipleChoices {
		return nil, oops.
			Code(CodeInputUnreadable).
			With("url", location).
			With("status", response.StatusCode()).
			Errorf("input url returned non-success status %d", response.StatusCode())
	}

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, oops.
			Code(CodeInputUnreadable).
			With("url", location).
			Wrapf(err, "reading response body")
	}

	return &Input{
		Location: location,
		Name:     RemoteName(location),
		Remote:   true,
		Content:  content,
	}, nil
}

// RemoteName returns the last path segment of rawURL, or a fixed fallback
// when the URL has no usable path.
func RemoteName(rawURL string) string {
	parsed, err := neturl.Parse(rawURL)
	if err == nil {
		baseName := path.Base(parsed.Path)
		if baseName != "" && baseName != "." && baseName != "/" {
			return baseName
		}
	}

	return defaultBasename
}
