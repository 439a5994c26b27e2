package constants

const (
	// SessionCookieName is the name of the portal session cookie
	SessionCookieName = "onboarding_session"

	// Session and gin context keys
	ContextKeyToken   = "auth_token"
	ContextKeyUserID  = "user_id"
	ContextKeyRole    = "user_role"
	ContextKeyName    = "user_name"
	ContextKeyEmail   = "user_email"
	ContextKeyExpires = "token_expires_at"

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// DefaultUpcomingLimit is how many upcoming tasks the employee dashboard shows
	DefaultUpcomingLimit = 3

	// RecentTasksPreview is how many tasks the employee dashboard lists
	RecentTasksPreview = 6

	// TodaysTasksPreview is how many of today's tasks the admin dashboard lists
	TodaysTasksPreview = 4

	// MaxAIGeneratedTasks caps the number of drafts accepted from one AI call
	MaxAIGeneratedTasks = 20

	// MaxBulkUploadBytes caps the size of an uploaded employee CSV
	MaxBulkUploadBytes = 2 << 20
)
