package constants

// Session
const (
	SessionCookieName = "task_session"
	ContextKeyUserID  = "user_id"
)

// Password policy: minimum length plus at least one uppercase letter and one
// digit, checked on signup and on password change.
const MinPasswordLength = 8

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// MaxAIGeneratedTasks caps how many suggestions a single generation request
// may return.
const MaxAIGeneratedTasks = 20
