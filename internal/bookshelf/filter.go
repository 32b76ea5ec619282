package bookshelf

import (
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// TriState is an optional boolean filter.
type TriState int

const (
	Any TriState = iota
	No
	Yes
)

// ParseTriState maps the query values "0" and "1" to No and Yes.
// Every other value, including the empty string, means no filtering.
func ParseTriState(value string) TriState {
	switch value {
	case "0":
		return No
	case "1":
		return Yes
	default:
		return Any
	}
}

func (t TriState) matches(v bool) bool {
	switch t {
	case No:
		return !v
	case Yes:
		return v
	default:
		return true
	}
}

// Filter narrows the result of List. Zero value matches everything.
type Filter struct {
	Name     string // case-insensitive substring of the book name
	Reading  TriState
	Finished TriState
}

// NewFilter builds a Filter from raw query values.
func NewFilter(name, reading, finished string) Filter {
	return Filter{
		Name:     name,
		Reading:  ParseTriState(reading),
		Finished: ParseTriState(finished),
	}
}

// Match reports whether the book satisfies every criterion of the filter.
func (f Filter) Match(book entities.Book) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(book.Name), strings.ToLower(f.Name)) {
		return false
	}
	return f.Reading.matches(book.Reading) && f.Finished.matches(book.Finished)
}
