package response

// Common response messages shared across handlers and middleware.
const (
	ErrTokenRequired      = "Access denied. No token provided."
	ErrTokenInvalid       = "Invalid or expired token."
	ErrAdminAccessOnly    = "Admin access required."
	ErrCandidateOnly      = "Candidate access required."
	ErrSessionInvalidated = "Session invalidated. Please login again."
	ErrSessionActive      = "Another session is already active. Contact admin to reset."
	ErrInvalidCredentials = "Invalid credentials."
	ErrAccountInactive    = "Account is deactivated."
	ErrRateLimited        = "Too many requests. Please try again later."
	ErrNotFound           = "Resource not found."
	ErrInternal           = "Internal server error."
)
