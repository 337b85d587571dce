package constants

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// Context keys shared by middleware and handlers
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUser     = "current_user"
	ContextKeyProject  = "project"
	ContextKeyCategory = "category"
	ContextKeyEntry    = "entry"
)

// Session
const (
	SessionCookieName = "expensy_session"
	SessionKeyToken   = "token"
)

const (
	MinPasswordLength = 8

	// DateLayout is the wire format of calendar dates.
	DateLayout = "2006-01-02"
)
