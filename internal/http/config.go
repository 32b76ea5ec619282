package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Books BookStore

	// Optional audit trail; nil disables the corresponding feature
	BookAuditor     BookAuditor
	AuditReader     AuditReader
	PayloadRecorder PayloadRecorder

	// Health checks
	Database    Pinger
	BookCounter BookCounter

	// Request policy
	ReadOnly    bool
	RateLimiter *RateLimiter

	// Application info
	Version string
}
