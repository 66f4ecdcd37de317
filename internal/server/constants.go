package server

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
)

// Request limits
const (
	// MaxRequestBytes caps JSON request bodies. Multipart uploads have their
	// own larger limit on the upload routes.
	MaxRequestBytes = 1 << 20

	// MaxUploadRequestBytes caps multipart upload bodies: the image size
	// limit plus headroom for multipart framing.
	MaxUploadRequestBytes = (2 << 20) + (256 << 10)
)

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
