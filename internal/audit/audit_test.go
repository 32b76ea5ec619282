package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestAuditor(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "audit")

	auditor := NewAuditor(tempDir)

	t.Run("SaveJSON creates audit directory and saves file", func(t *testing.T) {
		payload := entities.BookInput{
			Name:      "Dune",
			Author:    "Frank Herbert",
			PageCount: 412,
			ReadPage:  12,
			Reading:   true,
		}

		filename, err := auditor.SaveJSON(payload)
		require.NoError(t, err)
		assert.NotEmpty(t, filename)
		assert.Contains(t, filename, ".json")

		_, err = os.Stat(tempDir)
		assert.NoError(t, err)

		fileContent, err := os.ReadFile(filepath.Join(tempDir, filename))
		require.NoError(t, err)

		var saved map[string]interface{}
		require.NoError(t, json.Unmarshal(fileContent, &saved))

		assert.Equal(t, "Dune", saved["name"])
		assert.Equal(t, float64(412), saved["pageCount"])
		assert.Equal(t, true, saved["reading"])
	})

	t.Run("SaveJSON generates unique filenames", func(t *testing.T) {
		testData := map[string]string{"key": "value"}

		filename1, err := auditor.SaveJSON(testData)
		require.NoError(t, err)

		filename2, err := auditor.SaveJSON(testData)
		require.NoError(t, err)

		assert.NotEqual(t, filename1, filename2)
	})

	t.Run("SaveJSON fails on unmarshalable data", func(t *testing.T) {
		_, err := auditor.SaveJSON(map[string]any{"ch": make(chan int)})
		assert.Error(t, err)
	})
}
