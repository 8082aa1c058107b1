package source

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RoundTripFunc adapts a function into an http.RoundTripper.
type RoundTripFunc func(*http.Request) *http.Response

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// NewMockLoader creates a Loader whose HTTP client uses handler as transport.
func NewMockLoader(handler RoundTripFunc) *Loader {
	loader := NewLoader()
	loader.client.SetTransport(handler)

	return loader
}

// NewHTTPResponse creates a mock HTTP response for tests.
func NewHTTPResponse(
	req *http.Request,
	status int,
	body string,
	header http.Header,
) *http.Response {
	if header == nil {
		header = make(http.Header)
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Header:        header,
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
