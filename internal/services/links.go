package services

import (
	"context"
	"log"
	"net/url"
	"rapidaid-dashboard-service/internal/geolink"
	"rapidaid-dashboard-service/internal/platform/obs"
	"rapidaid-dashboard-service/internal/ports"
	"strings"
)

// Hosts whose links are redirects that carry no coordinates themselves.
// An entry is a host name, optionally followed by a path prefix.
var DefaultShortLinkHosts = []string{"maps.app.goo.gl", "goo.gl/maps"}

type shortLinkHost struct {
	host string
	path string
}

func parseShortLinkHosts(hosts []string) []shortLinkHost {
	out := make([]shortLinkHost, 0, len(hosts))
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		h = strings.TrimPrefix(strings.TrimPrefix(h, "https://"), "http://")
		host, path, _ := strings.Cut(h, "/")
		host = strings.TrimSuffix(strings.ToLower(host), ".")
		if host == "" {
			continue
		}
		if path = strings.Trim(path, "/"); path != "" {
			path = "/" + path
		}
		out = append(out, shortLinkHost{host: host, path: path})
	}
	return out
}

// ShortLinkHostnames returns the bare host names of the given short link
// hosts, for allow-listing them in a resolver.
func ShortLinkHostnames(hosts []string) []string {
	parsed := parseShortLinkHosts(hosts)
	out := make([]string, 0, len(parsed))
	for _, h := range parsed {
		out = append(out, h.host)
	}
	return out
}

// LinkService evaluates location links for the HTTP layer and station
// registration. It wraps the pure geolink.Validator and, when a resolver is
// configured, expands short links that would otherwise only produce a
// "coordinates missing" warning.
type LinkService struct {
	validator  *geolink.Validator
	resolver   ports.LinkResolver
	cache      ports.LinkCache
	metrics    *obs.Metrics
	shortHosts []shortLinkHost
}

// NewLinkService builds a LinkService. resolver, cache and metrics may be nil.
func NewLinkService(
	validator *geolink.Validator,
	resolver ports.LinkResolver,
	cache ports.LinkCache,
	metrics *obs.Metrics,
) *LinkService {
	return &LinkService{
		validator:  validator,
		resolver:   resolver,
		cache:      cache,
		metrics:    metrics,
		shortHosts: parseShortLinkHosts(DefaultShortLinkHosts),
	}
}

// WithShortLinkHosts replaces the hosts whose links are expanded. A list
// with no usable entries keeps the current hosts.
func (s *LinkService) WithShortLinkHosts(hosts []string) *LinkService {
	if parsed := parseShortLinkHosts(hosts); len(parsed) > 0 {
		s.shortHosts = parsed
	}
	return s
}

// Evaluate returns the verdict for link. A short link is expanded and the
// expansion's verdict is used only when it yields coordinates; otherwise the
// unexpanded verdict stands.
func (s *LinkService) Evaluate(ctx context.Context, link string) geolink.Feedback {
	fb := s.validator.Evaluate(link)

	if fb.Category == geolink.CategoryWarning && fb.Coordinates == nil && s.resolver != nil {
		trimmed := strings.TrimSpace(link)
		if s.isShortLink(trimmed) {
			if expanded, ok := s.expand(ctx, trimmed); ok {
				if resolved := s.validator.Evaluate(expanded); resolved.Coordinates != nil {
					fb = resolved
				}
			}
		}
	}

	s.metrics.ObserveVerdict(string(fb.Category))
	return fb
}

// IsAcceptable is Evaluate(ctx, link).Valid.
func (s *LinkService) IsAcceptable(ctx context.Context, link string) bool {
	return s.Evaluate(ctx, link).Valid
}

// isShortLink reports whether link is an https URL on one of the short link
// hosts. Only the parsed host and path count; the rest of the URL is ignored.
func (s *LinkService) isShortLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil || u.Scheme != "https" || u.User != nil {
		return false
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	for _, h := range s.shortHosts {
		if host != h.host {
			continue
		}
		if h.path == "" || u.Path == h.path || strings.HasPrefix(u.Path, h.path+"/") {
			return true
		}
	}
	return false
}

// expand resolves a short link through the cache, falling back to the resolver.
// Cache failures are logged and never fail the evaluation.
func (s *LinkService) expand(ctx context.Context, link string) (string, bool) {
	if s.cache != nil {
		hits, err := s.cache.GetMany(ctx, []string{link})
		switch {
		case err != nil:
			s.metrics.ObserveCache("error")
			log.Printf("req_id=%s link cache read failed: %v", obs.RequestID(ctx), err)
		case hits[link] != "":
			s.metrics.ObserveCache("hit")
			return hits[link], true
		default:
			s.metrics.ObserveCache("miss")
		}
	}

	expanded, err := s.resolver.Resolve(ctx, link)
	if err != nil {
		log.Printf("req_id=%s resolve short link failed: %v", obs.RequestID(ctx), err)
		return "", false
	}

	if s.cache != nil {
		if err := s.cache.PutMany(ctx, map[string]string{link: expanded}); err != nil {
			log.Printf("req_id=%s link cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	return expanded, true
}
