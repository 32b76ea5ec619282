package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const defaultAuditPageSize = 50

// AuditReader is satisfied by *audit.Service.
type AuditReader interface {
	GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error)
	GetBookHistory(bookID string) ([]entities.AuditEvent, error)
}

var auditEventTypes = map[entities.AuditEventType]bool{
	entities.AuditEventCreate: true,
	entities.AuditEventUpdate: true,
	entities.AuditEventDelete: true,
	entities.AuditEventSystem: true,
}

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{reader: reader}
}

// ListEvents returns audit events, most recent first.
// GET /api/audit?limit=&offset=&type=
func (ac *AuditController) ListEvents(c *gin.Context) {
	limit, ok := parseQueryInt(c, "limit", defaultAuditPageSize)
	if !ok {
		return
	}
	if limit == 0 {
		limit = defaultAuditPageSize
	}
	offset, ok := parseQueryInt(c, "offset", 0)
	if !ok {
		return
	}

	eventType := entities.AuditEventType(c.Query("type"))
	if eventType != "" && !auditEventTypes[eventType] {
		respondFail(c, http.StatusBadRequest, "invalid type")
		return
	}

	events, total, err := ac.reader.GetEvents(eventType, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	respondSuccess(c, PaginatedResponse{
		Items:   events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}

// BookHistory returns every audit event recorded for one book id,
// including books that have since been deleted.
// GET /api/audit/books/:bookId
func (ac *AuditController) BookHistory(c *gin.Context) {
	events, err := ac.reader.GetBookHistory(c.Param("bookId"))
	if err != nil {
		respondInternalError(c, err, "book history")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}
	respondSuccess(c, gin.H{"events": events})
}
