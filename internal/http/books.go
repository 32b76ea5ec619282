package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/bookshelf"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const messageInvalidPayload = "invalid request payload"

// BookStore is the collection behind the books endpoints.
type BookStore interface {
	Create(input entities.BookInput) bookshelf.Result
	List(filter bookshelf.Filter) bookshelf.Result
	Get(id string) bookshelf.Result
	Update(id string, input entities.BookInput) bookshelf.Result
	Delete(id string) bookshelf.Result
}

// BookAuditor records successful mutations.
type BookAuditor interface {
	LogBookCreate(bookID, name string, meta audit.RequestMeta)
	LogBookUpdate(bookID, name string, meta audit.RequestMeta)
	LogBookDelete(bookID, name string, meta audit.RequestMeta)
}

// PayloadRecorder keeps a copy of raw write payloads.
type PayloadRecorder interface {
	SaveJSON(data any) (string, error)
}

type BooksController struct {
	store    BookStore
	auditor  BookAuditor
	recorder PayloadRecorder
}

// NewBooksController wires the controller. auditor and recorder may be nil.
func NewBooksController(store BookStore, auditor BookAuditor, recorder PayloadRecorder) *BooksController {
	return &BooksController{
		store:    store,
		auditor:  auditor,
		recorder: recorder,
	}
}

// AddBook creates a book.
// POST /books
func (bc *BooksController) AddBook(c *gin.Context) {
	input, ok := bc.bindInput(c)
	if !ok {
		return
	}

	res := bc.store.Create(input)
	if created, ok := res.Created(); ok && bc.auditor != nil {
		bc.auditor.LogBookCreate(created.BookID, input.Name, requestMeta(c))
	}
	respondResult(c, res)
}

// ListBooks returns book summaries, optionally filtered by
// ?name=, ?reading=0|1 and ?finished=0|1.
// GET /books
func (bc *BooksController) ListBooks(c *gin.Context) {
	filter := bookshelf.NewFilter(c.Query("name"), c.Query("reading"), c.Query("finished"))
	respondResult(c, bc.store.List(filter))
}

// GetBook returns the full record of a book.
// GET /books/:bookId
func (bc *BooksController) GetBook(c *gin.Context) {
	respondResult(c, bc.store.Get(c.Param("bookId")))
}

// EditBook replaces every mutable field of a book.
// PUT /books/:bookId
func (bc *BooksController) EditBook(c *gin.Context) {
	input, ok := bc.bindInput(c)
	if !ok {
		return
	}

	id := c.Param("bookId")
	res := bc.store.Update(id, input)
	if res.IsSuccess() && bc.auditor != nil {
		bc.auditor.LogBookUpdate(id, input.Name, requestMeta(c))
	}
	respondResult(c, res)
}

// DeleteBook removes a book.
// DELETE /books/:bookId
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id := c.Param("bookId")

	// Name is only needed for the audit trail.
	name := ""
	if bc.auditor != nil {
		if data, ok := bc.store.Get(id).Book(); ok {
			name = data.Book.Name
		}
	}

	res := bc.store.Delete(id)
	if res.IsSuccess() && bc.auditor != nil {
		bc.auditor.LogBookDelete(id, name, requestMeta(c))
	}
	respondResult(c, res)
}

// bindInput decodes the JSON body. Responds with 400 when it cannot be
// decoded into a BookInput.
func (bc *BooksController) bindInput(c *gin.Context) (entities.BookInput, bool) {
	var input entities.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondFail(c, http.StatusBadRequest, messageInvalidPayload)
		return input, false
	}

	if bc.recorder != nil {
		if _, err := bc.recorder.SaveJSON(input); err != nil {
			log.Printf("Failed to save payload snapshot: %v", err)
		}
	}
	return input, true
}
