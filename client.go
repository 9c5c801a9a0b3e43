package voltwire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultRequestTimeout bounds every runtime-originated request. The
// reference behavior waited forever; an explicit bound means a hung request
// cannot leave its source element busy indefinitely.
const DefaultRequestTimeout = 10 * time.Second

// Client performs the runtime's HTTP traffic: action posts, SPA page
// fetches, and prefetches. It never retries; callers decide what a failure
// means (actions log and drop, navigations fall back to a full page load).
type Client struct {
	hc  *http.Client
	log *slog.Logger
}

// NewClient wraps an http.Client. A nil client gets the default timeout.
func NewClient(hc *http.Client, logger *slog.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultRequestTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{hc: hc, log: logger}
}

// Action posts a component action to the current page URL and decodes the
// structured response. The form must already contain the reserved action
// field and the flat property encoding.
func (c *Client) Action(ctx context.Context, pageURL string, form url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pageURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(HeaderRequest, "true")
	req.Header.Set(HeaderRequestedWith, XMLHTTPRequest)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return &out, nil
}

// Page is the result of an SPA navigation fetch.
type Page struct {
	// URL is the final URL after any server-side redirects.
	URL string

	// Redirected reports whether the transport followed a redirect; the
	// navigator then adopts URL in history before swapping content.
	Redirected bool

	// Body is the full HTML document text.
	Body string
}

// Page fetches a full document for SPA navigation. target must be absolute.
func (c *Client) Page(ctx context.Context, target string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigationFailed, err)
	}
	req.Header.Set(HeaderSPA, "true")
	req.Header.Set(HeaderRequestedWith, XMLHTTPRequest)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status %d", ErrNavigationFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNavigationFailed, err)
	}

	final := target
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	return &Page{
		URL:        final,
		Redirected: final != target,
		Body:       string(body),
	}, nil
}

// Prefetch issues a fire-and-forget GET for a hover prefetch. The response
// is discarded and failures are swallowed beyond a debug log.
func (c *Client) Prefetch(ctx context.Context, target string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.log.Debug("voltwire: prefetch request build failed", "url", target, "err", err)
		return
	}
	req.Header.Set(HeaderPrefetch, "true")

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug("voltwire: prefetch failed", "url", target, "err", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
}
