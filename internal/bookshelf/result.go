package bookshelf

import (
	"net/http"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Status is the outcome kind carried by every Result.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFail    Status = "fail"  // client-side problem: validation or unknown id
	StatusError   Status = "error" // server-side inconsistency
)

// Result is the uniform outcome of a collection operation.
// Code mirrors the HTTP status the operation maps to.
type Result struct {
	Status  Status
	Code    int
	Message string
	Data    any
}

// CreatedData is returned by a successful create.
type CreatedData struct {
	BookID string `json:"bookId"`
}

// ListData is returned by list.
type ListData struct {
	Books []entities.BookSummary `json:"books"`
}

// BookData is returned by a successful get.
type BookData struct {
	Book entities.Book `json:"book"`
}

func success(code int, message string, data any) Result {
	return Result{Status: StatusSuccess, Code: code, Message: message, Data: data}
}

func fail(code int, message string) Result {
	return Result{Status: StatusFail, Code: code, Message: message}
}

func internalError(message string) Result {
	return Result{Status: StatusError, Code: http.StatusInternalServerError, Message: message}
}

// IsSuccess reports whether the operation succeeded.
func (r Result) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Created returns the data of a successful create, if any.
func (r Result) Created() (CreatedData, bool) {
	d, ok := r.Data.(CreatedData)
	return d, ok
}

// List returns the data of a list call, if any.
func (r Result) List() (ListData, bool) {
	d, ok := r.Data.(ListData)
	return d, ok
}

// Book returns the data of a successful get, if any.
func (r Result) Book() (BookData, bool) {
	d, ok := r.Data.(BookData)
	return d, ok
}
