package protocol

// ErrorCode identifies the type of error reported to the client.
type ErrorCode string

const (
	ErrInvalidEvent  ErrorCode = "invalid_event"   // Malformed event
	ErrInvalidPath   ErrorCode = "invalid_path"    // Path rejected before resolution
	ErrRouteNotFound ErrorCode = "route_not_found" // No route for a named target
	ErrServerError   ErrorCode = "server_error"    // Internal server error
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Fatal   bool      `json:"fatal,omitempty"` // If true, the connection is closed after the frame
}
