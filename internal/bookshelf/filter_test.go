package bookshelf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestParseTriState(t *testing.T) {
	tests := []struct {
		value string
		want  TriState
	}{
		{"0", No},
		{"1", Yes},
		{"", Any},
		{"true", Any},
		{"2", Any},
		{" 1", Any},
	}

	for _, tc := range tests {
		t.Run("value "+tc.value, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseTriState(tc.value))
		})
	}
}

func TestFilter_Match(t *testing.T) {
	book := entities.Book{Name: "Fable", Reading: true, Finished: false}

	assert.True(t, Filter{}.Match(book))
	assert.True(t, Filter{Name: "AB"}.Match(book))
	assert.True(t, Filter{Name: "fable"}.Match(book))
	assert.False(t, Filter{Name: "fables"}.Match(book))
	assert.True(t, Filter{Reading: Yes}.Match(book))
	assert.False(t, Filter{Reading: No}.Match(book))
	assert.True(t, Filter{Finished: No}.Match(book))
	assert.False(t, Filter{Finished: Yes}.Match(book))
	assert.False(t, Filter{Name: "ab", Reading: No}.Match(book))
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(entities.BookInput{}), ErrNameRequired)
	assert.ErrorIs(t, Validate(entities.BookInput{Name: "x", PageCount: 1, ReadPage: 2}), ErrReadPageExceedsPageCount)
	assert.NoError(t, Validate(entities.BookInput{Name: "x", PageCount: 2, ReadPage: 2}))
	assert.NoError(t, Validate(entities.BookInput{Name: "x"}))
}
