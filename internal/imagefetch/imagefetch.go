// Package imagefetch loads a user photo from a local path or an HTTP URL
// and decodes it into an image. Remote loads are a single attempt with a
// timeout; the caller decides how to surface a failure.
package imagefetch

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for the formats phones produce
	_ "image/png"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultTimeout is the HTTP timeout for remote photo loads.
const DefaultTimeout = 30 * time.Second

// Error represents a failure to load or decode a photo.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("image load error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("image load error for %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures remote fetching.
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout}
}

// Load reads and decodes an image from a file path or http(s) URL.
func Load(ctx context.Context, source string, opts *Options) (image.Image, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return loadURL(ctx, source, opts)
	}
	return loadFile(source)
}

func loadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Source: path, Message: "failed to open file", Cause: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &Error{Source: path, Message: "failed to decode image", Cause: err}
	}
	return img, nil
}

func loadURL(ctx context.Context, source string, opts *Options) (image.Image, error) {
	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		return nil, &Error{Source: source, Message: "invalid URL", Cause: err}
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &Error{Source: source, Message: "failed to create request", Cause: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{Source: source, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Source: source, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, &Error{Source: source, Message: "failed to decode image", Cause: err}
	}
	return img, nil
}
