package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/bookshelf"
)

// --- Response Types ---

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Status  bookshelf.Status `json:"status"`
	Message string           `json:"message,omitempty"`
	Data    any              `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Items   any   `json:"items"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// --- Response Helpers ---

// respondResult writes a collection Result as an envelope, using its code
// as the HTTP status.
func respondResult(c *gin.Context, res bookshelf.Result) {
	c.JSON(res.Code, Envelope{Status: res.Status, Message: res.Message, Data: res.Data})
}

// respondSuccess sends a 200 OK envelope carrying data.
func respondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Status: bookshelf.StatusSuccess, Data: data})
}

// respondFail sends a client error envelope.
func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Status: bookshelf.StatusFail, Message: message})
}

// abortFail is respondFail for middleware: it also stops the chain.
func abortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Status: bookshelf.StatusFail, Message: message})
}

// respondInternalError logs the error and sends a 500 error envelope.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, Envelope{Status: bookshelf.StatusError, Message: "internal server error"})
}

// --- Parameter Parsing ---

// parseQueryInt reads a non-negative integer query parameter, falling back
// to def when the parameter is absent. Responds with 400 on bad input.
func parseQueryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		respondFail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

// requestMeta collects the request identity recorded with audit events.
func requestMeta(c *gin.Context) audit.RequestMeta {
	return audit.RequestMeta{
		RequestID: c.GetString(ContextKeyRequestID),
		IPAddress: c.ClientIP(),
	}
}
