package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"rapidaid-dashboard-service/internal/platform/obs"
	"strings"
	"time"
)

const (
	defaultMaxHops    = 5
	defaultMaxRetries = 4
	userAgent         = "rapidaid-dashboard/1.0 (+link-resolver)"
)

// HTTPLinkResolver expands short map links by walking their redirect chain
// one hop at a time and returning the final URL. Redirects are followed
// manually so each hop's Location can be read without fetching page bodies.
//
// The resolver is safe for concurrent use.
type HTTPLinkResolver struct {
	session    *http.Client
	allowed    []string
	maxHops    int
	maxRetries int
	backoff    time.Duration
}

// DefaultAllowedHosts are the domains a redirect chain may visit. A host is
// allowed when it equals an entry or is a subdomain of one.
var DefaultAllowedHosts = []string{"google.com", "goo.gl"}

// NewHTTPLinkResolver builds a resolver that only contacts
// DefaultAllowedHosts plus extraHosts.
func NewHTTPLinkResolver(timeout time.Duration, extraHosts ...string) *HTTPLinkResolver {
	allowed := make([]string, 0, len(DefaultAllowedHosts)+len(extraHosts))
	for _, h := range append(append([]string{}, DefaultAllowedHosts...), extraHosts...) {
		if h = normalizeHost(h); h != "" {
			allowed = append(allowed, h)
		}
	}

	return &HTTPLinkResolver{
		allowed: allowed,
		session: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxHops:    defaultMaxHops,
		maxRetries: defaultMaxRetries,
		backoff:    200 * time.Millisecond,
	}
}

var (
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrHostNotAllowed   = errors.New("host not allowed")
)

// Resolve follows redirects starting at link and returns the last URL.
// A link that does not redirect resolves to itself.
func (r *HTTPLinkResolver) Resolve(ctx context.Context, link string) (_ string, err error) {
	defer obs.Time(ctx, "link.resolve")(&err)

	current, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("resolve link: parse %q: %w", link, err)
	}
	if current.Scheme != "http" && current.Scheme != "https" {
		return "", fmt.Errorf("resolve link: unsupported scheme %q", current.Scheme)
	}

	for hop := 0; hop <= r.maxHops; hop++ {
		if !r.hostAllowed(current) {
			return "", fmt.Errorf("resolve link: hop %d %q: %w", hop, current.Redacted(), ErrHostNotAllowed)
		}

		next, redirected, err := r.step(ctx, current)
		if err != nil {
			return "", fmt.Errorf("resolve link: hop %d %q: %w", hop, current, err)
		}
		if !redirected {
			return current.String(), nil
		}
		current = next
	}

	return "", fmt.Errorf("resolve link %q: %w (max %d)", link, ErrTooManyRedirects, r.maxHops)
}

// step issues one request and reports where it redirects to, if anywhere.
func (r *HTTPLinkResolver) step(ctx context.Context, u *url.URL) (*url.URL, bool, error) {
	resp, err := r.doWithRetry(ctx, func() (*http.Request, error) {
		return r.newRequest(ctx, u.String())
	})
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
	default:
		return nil, false, nil
	}

	loc := resp.Header.Get("Location")
	if loc == "" {
		return nil, false, fmt.Errorf("redirect status %d without Location", resp.StatusCode)
	}
	next, err := u.Parse(loc)
	if err != nil {
		return nil, false, fmt.Errorf("parse Location %q: %w", loc, err)
	}
	return next, true, nil
}

func (r *HTTPLinkResolver) hostAllowed(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := normalizeHost(u.Hostname())
	if host == "" {
		return false
	}
	for _, a := range r.allowed {
		if host == a || strings.HasSuffix(host, "."+a) {
			return true
		}
	}
	return false
}

func normalizeHost(h string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(h)), ".")
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (r *HTTPLinkResolver) newRequest(ctx context.Context, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")
	return req, nil
}

func (r *HTTPLinkResolver) do(req *http.Request) (*http.Response, error) {
	resp, err := r.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429 and 5xx
// responses) using exponential backoff while respecting context cancellation.
func (r *HTTPLinkResolver) doWithRetry(
	ctx context.Context,
	makeReq func() (*http.Request, error),
) (*http.Response, error) {
	backoff := r.backoff
	var lastErr error

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := r.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == r.maxRetries {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Anything else from http.Client.Do is a transport failure.
	return true
}
