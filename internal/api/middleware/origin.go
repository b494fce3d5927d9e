package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// AnyOrigin in an origin list disables origin checks.
const AnyOrigin = "*"

// OriginPolicy decides which browser origins may reach the API. Requests
// without an Origin header come from non-browser clients and are allowed.
type OriginPolicy struct {
	any     bool
	allowed map[string]struct{}
}

// NewOriginPolicy allows the listed origins, compared case-insensitively.
// An empty list allows only same-host pages.
func NewOriginPolicy(origins []string) *OriginPolicy {
	p := &OriginPolicy{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == AnyOrigin {
			p.any = true
			continue
		}
		if o != "" {
			p.allowed[strings.ToLower(strings.TrimSuffix(o, "/"))] = struct{}{}
		}
	}
	return p
}

// AllowsAny reports whether every origin is accepted.
func (p *OriginPolicy) AllowsAny() bool {
	return p.any
}

// Allowed reports whether origin is listed.
func (p *OriginPolicy) Allowed(origin string) bool {
	if p.any {
		return true
	}
	_, ok := p.allowed[strings.ToLower(origin)]
	return ok
}

// CheckRequest accepts a request with no Origin, a same-host Origin or a
// listed one. It fits websocket.Upgrader.CheckOrigin.
func (p *OriginPolicy) CheckRequest(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || p.Allowed(origin) {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}
