package constants

const (
	// ContextKeyUserID is the session key and gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyPrincipal is the gin context key holding the resolved access.Principal.
	ContextKeyPrincipal = "principal"
	// ContextKeyRequestID is the gin context key holding the request correlation ID.
	ContextKeyRequestID = "request_id"

	SessionCookieName = "pm_session"
	HeaderRequestID   = "X-Request-ID"

	MinPasswordLength = 8

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	MaxAIGeneratedTasks = 20

	// DateLayout is the wire format for task due dates.
	DateLayout = "2006-01-02"
)
