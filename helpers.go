package voltwire

import "net/http"

// Server-side request classification helpers. The client engine sets these
// headers; servers implementing the wire contract use them to decide between
// a full page, a structured action response, or prefetch handling.

// IsRuntimeRequest reports whether the request is a runtime action post.
// Servers should reject mutating requests without this marker, which keeps
// plain cross-origin form posts out without extra tokens.
func IsRuntimeRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// IsSPARequest reports whether the request is an intercepted SPA
// navigation. Servers may use this to skip expensive chrome, though the
// client swaps only the main landmark either way.
func IsSPARequest(r *http.Request) bool {
	return r.Header.Get(HeaderSPA) == "true"
}

// IsPrefetchRequest reports whether the request is a hover prefetch whose
// response will be discarded. Servers should avoid side effects here.
func IsPrefetchRequest(r *http.Request) bool {
	return r.Header.Get(HeaderPrefetch) == "true"
}

// IsAsyncRequest reports whether the request carries the standard
// asynchronous-request marker.
func IsAsyncRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequestedWith) == XMLHTTPRequest
}
