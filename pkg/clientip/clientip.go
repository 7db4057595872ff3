package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders are consulted in order when the service runs behind a proxy.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Resolver extracts the originating client address of a request.
// The zero value trusts no headers and uses RemoteAddr only.
type Resolver struct {
	headers []string
}

// NewResolver returns a Resolver that trusts the given proxy headers, in
// priority order. X-Forwarded-For is read left to right.
func NewResolver(headers ...string) Resolver {
	return Resolver{headers: headers}
}

// FromRequest returns the normalized client IP or "" when none is valid.
func (res Resolver) FromRequest(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
