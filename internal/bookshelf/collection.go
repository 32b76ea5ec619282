// Package bookshelf holds the in-memory book collection and the rules that
// guard it. Every operation returns a Result instead of an error so callers
// can map outcomes straight onto a response envelope.
package bookshelf

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	MessageBookAdded   = "book added successfully"
	MessageAddFailed   = "book failed to be added"
	MessageBookUpdated = "book updated successfully"
	MessageBookDeleted = "book deleted successfully"
	MessageIDNotFound  = "id not found"
	updateFailedPrefix = "update failed: "
	deleteFailedPrefix = "delete failed: "
	maxIDAttempts      = 5
)

// IDGenerator produces opaque identifiers for new books.
type IDGenerator func() string

// NewID returns a random UUIDv4 string.
func NewID() string {
	return uuid.New().String()
}

// Option configures a Collection.
type Option func(*Collection)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Collection) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Collection) {
		if now != nil {
			c.now = now
		}
	}
}

// Collection is an ordered set of books owned by the process.
// Insertion order is the listing order. All methods are safe for
// concurrent use; each one holds the lock for its whole duration.
type Collection struct {
	mu    sync.RWMutex
	books []entities.Book
	newID IDGenerator
	now   func() time.Time
}

// NewCollection creates an empty collection.
func NewCollection(opts ...Option) *Collection {
	c := &Collection{
		books: make([]entities.Book, 0),
		newID: NewID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create validates the input and appends a new book.
func (c *Collection) Create(input entities.BookInput) Result {
	if err := Validate(input); err != nil {
		return fail(http.StatusBadRequest, err.Error())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.unusedID()
	if err != nil {
		log.Printf("Failed to add book %q: %v", input.Name, err)
		return internalError(MessageAddFailed)
	}

	now := c.now()
	book := entities.Book{
		ID:         id,
		InsertedAt: now,
	}
	apply(&book, input, now)
	c.books = append(c.books, book)

	if c.indexOf(id) == -1 {
		log.Printf("Book %s was appended but cannot be found", id)
		return internalError(MessageAddFailed)
	}

	return success(http.StatusCreated, MessageBookAdded, CreatedData{BookID: id})
}

// List returns the summaries of all books matching the filter,
// in collection order.
func (c *Collection) List(filter Filter) Result {
	c.mu.RLock()
	defer c.mu.RUnlock()

	books := make([]entities.BookSummary, 0, len(c.books))
	for _, book := range c.books {
		if filter.Match(book) {
			books = append(books, book.ToSummary())
		}
	}
	return success(http.StatusOK, "", ListData{Books: books})
}

// Get returns the full record of the first book with the given id.
func (c *Collection) Get(id string) Result {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOf(id)
	if idx == -1 {
		return fail(http.StatusNotFound, ErrBookNotFound.Error())
	}
	return success(http.StatusOK, "", BookData{Book: c.books[idx]})
}

// Update replaces every mutable field of the book with the given id.
// Validation runs before the lookup, so an invalid payload against an
// unknown id yields 400 rather than 404.
func (c *Collection) Update(id string, input entities.BookInput) Result {
	if err := Validate(input); err != nil {
		return fail(http.StatusBadRequest, updateFailedPrefix+err.Error())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx == -1 {
		return fail(http.StatusNotFound, updateFailedPrefix+MessageIDNotFound)
	}

	apply(&c.books[idx], input, c.now())
	return success(http.StatusOK, MessageBookUpdated, nil)
}

// Delete removes the book with the given id, keeping the order of the rest.
func (c *Collection) Delete(id string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx == -1 {
		return fail(http.StatusNotFound, deleteFailedPrefix+MessageIDNotFound)
	}

	c.books = append(c.books[:idx], c.books[idx+1:]...)
	return success(http.StatusOK, MessageBookDeleted, nil)
}

// Len returns the number of books in the collection.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

// indexOf must be called with the lock held.
func (c *Collection) indexOf(id string) int {
	for i := range c.books {
		if c.books[i].ID == id {
			return i
		}
	}
	return -1
}

// unusedID must be called with the write lock held.
func (c *Collection) unusedID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := c.newID()
		if id != "" && c.indexOf(id) == -1 {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrIDExhausted, maxIDAttempts)
}

// apply copies the client-settable fields and recomputes the derived ones.
func apply(book *entities.Book, input entities.BookInput, now time.Time) {
	book.Name = input.Name
	book.Year = input.Year
	book.Author = input.Author
	book.Summary = input.Summary
	book.Publisher = input.Publisher
	book.PageCount = input.PageCount
	book.ReadPage = input.ReadPage
	book.Reading = input.Reading
	book.Finished = book.IsFinished()
	book.UpdatedAt = now
}
