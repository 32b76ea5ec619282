package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		RateLimit
		Audit
		Tasks
	}

	HTTP struct {
		Port     int32
		Host     string
		ReadOnly bool // Reject every write request with 403
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	RateLimit struct {
		RequestsPerSecond float64 // 0 disables rate limiting
		Burst             int
	}
	Audit struct {
		Dir             string // Raw payload snapshots; empty disables
		DatabasePath    string // SQLite audit trail; empty disables
		RetentionDays   int    // Days to keep audit events (default: 30)
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

// AuditDatabaseEnabled reports whether audit events are persisted.
func (c *Config) AuditDatabaseEnabled() bool {
	return c.Audit.DatabasePath != ""
}

// TasksEnabled reports whether the background queue should run.
// The queue keeps its state next to the audit database, so it needs one.
func (c *Config) TasksEnabled() bool {
	return c.Tasks.Enabled && c.AuditDatabaseEnabled()
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", DefaultHost)
	v.SetDefault("read_only", false)
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 10)

	v.SetDefault("audit_dir", "")
	v.SetDefault("audit_database_path", "")
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port:     v.GetInt32("PORT"),
			Host:     v.GetString("HOST"),
			ReadOnly: v.GetBool("READ_ONLY"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		RateLimit: RateLimit{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Audit: Audit{
			Dir:             v.GetString("AUDIT_DIR"),
			DatabasePath:    v.GetString("AUDIT_DATABASE_PATH"),
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
