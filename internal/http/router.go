package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Logger())
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.Handler())
	}
	if cfg.ReadOnly {
		router.Use(ReadOnlyMiddleware())
	}

	health := NewHealthController(cfg.Database, cfg.BookCounter, cfg.Version)
	books := NewBooksController(cfg.Books, cfg.BookAuditor, cfg.PayloadRecorder)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Books endpoints
	router.POST("/books", books.AddBook)
	router.GET("/books", books.ListBooks)
	router.GET("/books/:bookId", books.GetBook)
	router.PUT("/books/:bookId", books.EditBook)
	router.DELETE("/books/:bookId", books.DeleteBook)

	// Audit endpoints
	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader)
		router.GET("/api/audit", auditController.ListEvents)
		router.GET("/api/audit/books/:bookId", auditController.BookHistory)
	}

	router.NoRoute(func(c *gin.Context) {
		respondFail(c, http.StatusNotFound, "route not found")
	})
	router.NoMethod(func(c *gin.Context) {
		respondFail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	return router
}
