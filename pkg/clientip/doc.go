// Package clientip resolves the originating client address of a request.
//
// Only headers explicitly trusted through NewResolver are consulted; a
// service exposed directly to clients should trust none, since any client
// can forge them. The resolved address feeds request logs and the publish
// rate limiter.
//
//	res := clientip.NewResolver(clientip.DefaultHeaders...)
//	r.Use(res.Middleware)
//	ip := clientip.FromContext(req.Context())
//
// Invalid header values are skipped. When nothing valid is found the result
// is an empty string.
package clientip
