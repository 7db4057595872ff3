package clientip

import "net/http"

// Middleware resolves the client IP once per request and stores it in the
// request context.
func (res Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithIP(r.Context(), res.FromRequest(r))))
	})
}

// KeyFunc returns the stored client IP, resolving it when Middleware did not
// run. It fits ratelimiter.KeyFunc.
func (res Resolver) KeyFunc(r *http.Request) string {
	if ip := FromContext(r.Context()); ip != "" {
		return ip
	}
	return res.FromRequest(r)
}
