// Package pad talks to the collaborative note service protokolle are written in.
package pad

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/browser"

	"github.com/fscs/prototool/pkg/api"
	"github.com/fscs/prototool/pkg/core"
)

// DefaultURLTemplate is the note of a meeting; {date} becomes YYYY-MM-DD.
const DefaultURLTemplate = "https://pad.hhu.de/{date}-FSR-Informatik"

// Client implements core.Pad.
type Client struct {
	template string
	http     *http.Client
	open     func(string) error
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithURLTemplate sets the note URL template. It must contain {date}.
func WithURLTemplate(tmpl string) Option {
	return func(c *Client) {
		if tmpl != "" {
			c.template = tmpl
		}
	}
}

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithOpener replaces the browser launcher.
func WithOpener(open func(url string) error) Option {
	return func(c *Client) {
		if open != nil {
			c.open = open
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a pad client.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		template: DefaultURLTemplate,
		http:     http.DefaultClient,
		open:     browser.OpenURL,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !strings.Contains(c.template, "{date}") {
		return nil, fmt.Errorf("pad url template %q lacks {date}", c.template)
	}
	if _, err := url.Parse(strings.ReplaceAll(c.template, "{date}", "2006-01-02")); err != nil {
		return nil, fmt.Errorf("invalid pad url template: %w", err)
	}
	return c, nil
}

// URLFor derives the note URL of the meeting on date, read in date's own location.
func (c *Client) URLFor(date time.Time) string {
	return strings.ReplaceAll(c.template, "{date}", date.Format("2006-01-02"))
}

// Open shows the note in the default browser.
func (c *Client) Open(ctx context.Context, noteURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.logger.Info("opening pad", "url", noteURL)
	if err := c.open(noteURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// Download fetches the raw text of the note at noteURL from <origin><path>/download.
func (c *Client) Download(ctx context.Context, noteURL string) (string, error) {
	target, err := DownloadURL(noteURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}

	c.logger.Debug("downloading pad", "url", target)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &api.HTTPError{StatusCode: resp.StatusCode, URL: target}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrNetwork, err)
	}
	return string(body), nil
}

// DownloadURL strips query and fragment from noteURL and appends /download to its path.
func DownloadURL(noteURL string) (string, error) {
	u, err := url.Parse(noteURL)
	if err != nil {
		return "", fmt.Errorf("invalid pad url %q: %w", noteURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid pad url %q: scheme and host required", noteURL)
	}

	origin := u.Scheme + "://" + u.Host
	return origin + strings.TrimSuffix(u.EscapedPath(), "/") + "/download", nil
}

var _ core.Pad = (*Client)(nil)
