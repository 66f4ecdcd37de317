package middleware

// HTTP Header Names
const (
	// HeaderAuthorization carries the bearer token
	HeaderAuthorization = "Authorization"

	// HeaderContentType prevents MIME sniffing when set to nosniff
	HeaderContentType = "X-Content-Type-Options"

	// HeaderFrameOptions controls frame embedding
	HeaderFrameOptions = "X-Frame-Options"

	// HeaderXSSProtection enables legacy browser XSS filters
	HeaderXSSProtection = "X-XSS-Protection"

	// HeaderReferrerPolicy controls referrer information
	HeaderReferrerPolicy = "Referrer-Policy"
)

// HTTP Header Values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"

	// BearerPrefix is the expected scheme prefix on the Authorization header
	BearerPrefix = "Bearer "
)

// Error Messages
const (
	ErrMsgMissingToken = "Missing or malformed authorization header"
	ErrMsgInvalidToken = "Invalid or expired token"
	ErrMsgAdminOnly    = "Admin access required"
)
