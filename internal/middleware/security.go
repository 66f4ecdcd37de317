package middleware

import "net/http"

// SecurityHeaders adds defensive headers to every response
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent MIME sniffing
		w.Header().Set(HeaderContentType, HeaderValueNoSniff)
		// Prevent clickjacking
		w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
		// Enable XSS protection (for older browsers)
		w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
		// Control referrer information
		w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

		next.ServeHTTP(w, r)
	})
}

// RequestSizeLimit caps request body sizes to prevent memory exhaustion
func RequestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
