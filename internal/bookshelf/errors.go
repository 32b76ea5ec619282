package bookshelf

import (
	"errors"

	"github.com/mrlokans/bookshelf/internal/entities"
)

var (
	ErrNameRequired             = errors.New("name is required")
	ErrReadPageExceedsPageCount = errors.New("readPage must not exceed pageCount")
	ErrBookNotFound             = errors.New("book not found")
	ErrIDExhausted              = errors.New("could not generate an unused id")
)

// Validate checks the two rules every stored book must satisfy.
// The name rule is checked first.
func Validate(input entities.BookInput) error {
	if input.Name == "" {
		return ErrNameRequired
	}
	if input.ReadPage > input.PageCount {
		return ErrReadPageExceedsPageCount
	}
	return nil
}
