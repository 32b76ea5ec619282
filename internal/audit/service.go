package audit

import (
	"log"
	"sync"
	"time"

	"github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// RequestMeta identifies the request that triggered an event.
type RequestMeta struct {
	RequestID string
	IPAddress string
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Flush waits for all pending asynchronous events to be written.
func (s *Service) Flush() {
	s.wg.Wait()
}

// LogBookCreate records a successful book creation.
func (s *Service) LogBookCreate(bookID, name string, meta RequestMeta) {
	s.LogAsync(bookEvent(entities.AuditEventCreate, "Created book: ", bookID, name, meta))
}

// LogBookUpdate records a successful book update.
func (s *Service) LogBookUpdate(bookID, name string, meta RequestMeta) {
	s.LogAsync(bookEvent(entities.AuditEventUpdate, "Updated book: ", bookID, name, meta))
}

// LogBookDelete records a successful book deletion.
func (s *Service) LogBookDelete(bookID, name string, meta RequestMeta) {
	s.LogAsync(bookEvent(entities.AuditEventDelete, "Deleted book: ", bookID, name, meta))
}

// LogCleanup records the outcome of a retention cleanup run.
func (s *Service) LogCleanup(deleted int64, retention time.Duration, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSystem,
		Action:      "audit_cleanup",
		Description: "Removed expired audit events",
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"deleted_count":   deleted,
		"retention_hours": int(retention.Hours()),
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(eventType, limit, offset)
}

// GetBookHistory returns every recorded event for one book, oldest first.
func (s *Service) GetBookHistory(bookID string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(bookID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func bookEvent(eventType entities.AuditEventType, prefix, bookID, name string, meta RequestMeta) *entities.AuditEvent {
	return &entities.AuditEvent{
		EventType:   eventType,
		Action:      "book_" + string(eventType),
		Description: truncate(prefix+name, 500),
		EntityType:  "book",
		EntityID:    bookID,
		RequestID:   meta.RequestID,
		IPAddress:   meta.IPAddress,
		Status:      entities.AuditStatusSuccess,
	}
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
