package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/audit"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupAuditService(t *testing.T) *audit.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))

	return audit.NewService(auditrepo.NewRepository(db))
}

func setupAuditRouter(reader AuditReader) *gin.Engine {
	controller := NewAuditController(reader)
	router := gin.New()
	router.GET("/api/audit", controller.ListEvents)
	router.GET("/api/audit/books/:bookId", controller.BookHistory)
	return router
}

func getPage(t *testing.T, router *gin.Engine, path string) (int, PaginatedResponse, []entities.AuditEvent) {
	t.Helper()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		return w.Code, PaginatedResponse{}, nil
	}

	var response struct {
		Status string `json:"status"`
		Data   struct {
			PaginatedResponse
			Items []entities.AuditEvent `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "success", response.Status)
	return w.Code, response.Data.PaginatedResponse, response.Data.Items
}

func TestAuditController_ListEvents(t *testing.T) {
	svc := setupAuditService(t)
	meta := audit.RequestMeta{RequestID: "r1", IPAddress: "127.0.0.1"}
	svc.LogBookCreate("b1", "Dune", meta)
	svc.Flush()
	svc.LogBookUpdate("b1", "Dune Messiah", meta)
	svc.Flush()
	svc.LogBookDelete("b1", "Dune Messiah", meta)
	svc.Flush()

	router := setupAuditRouter(svc)

	t.Run("lists all events newest first", func(t *testing.T) {
		code, page, items := getPage(t, router, "/api/audit")

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, defaultAuditPageSize, page.Limit)
		assert.False(t, page.HasMore)
		require.Len(t, items, 3)
		assert.Equal(t, entities.AuditEventDelete, items[0].EventType)
	})

	t.Run("paginates", func(t *testing.T) {
		code, page, items := getPage(t, router, "/api/audit?limit=2&offset=0")

		require.Equal(t, http.StatusOK, code)
		assert.Len(t, items, 2)
		assert.True(t, page.HasMore)
	})

	t.Run("filters by type", func(t *testing.T) {
		code, page, items := getPage(t, router, "/api/audit?type=create")

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, items, 1)
		assert.Equal(t, "b1", items[0].EntityID)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		code, _, _ := getPage(t, router, "/api/audit?type=bogus")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("rejects bad limit", func(t *testing.T) {
		code, _, _ := getPage(t, router, "/api/audit?limit=x")
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestAuditController_BookHistory(t *testing.T) {
	svc := setupAuditService(t)
	svc.LogBookCreate("b1", "Dune", audit.RequestMeta{})
	svc.LogBookCreate("b2", "Emma", audit.RequestMeta{})
	svc.Flush()

	router := setupAuditRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/audit/books/b1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			Events []entities.AuditEvent `json:"events"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data.Events, 1)
	assert.Equal(t, "b1", response.Data.Events[0].EntityID)
}
