package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditor(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "audit")
	auditor := NewAuditor(tempDir)

	t.Run("SaveJSON creates audit directory and saves file", func(t *testing.T) {
		testData := map[string]interface{}{
			"content":  "TY  - JOUR",
			"fileName": "refs.ris",
			"size":     10,
		}

		filename, err := auditor.SaveJSON("convert", testData)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(filename, "convert-"))
		assert.True(t, strings.HasSuffix(filename, ".json"))

		fileContent, err := os.ReadFile(filepath.Join(tempDir, filename))
		require.NoError(t, err)

		var savedData map[string]interface{}
		require.NoError(t, json.Unmarshal(fileContent, &savedData))
		assert.Equal(t, "refs.ris", savedData["fileName"])
		assert.Equal(t, float64(10), savedData["size"])
	})

	t.Run("SaveJSON generates unique filenames", func(t *testing.T) {
		filename1, err := auditor.SaveJSON("convert", map[string]string{"key": "value"})
		require.NoError(t, err)

		filename2, err := auditor.SaveJSON("convert", map[string]string{"key": "value"})
		require.NoError(t, err)

		assert.NotEqual(t, filename1, filename2)
	})

	t.Run("SaveJSON reports unmarshalable data", func(t *testing.T) {
		_, err := auditor.SaveJSON("convert", map[string]any{"ch": make(chan int)})
		assert.Error(t, err)
	})
}

func TestAuditor_Enabled(t *testing.T) {
	var nilAuditor *Auditor
	assert.False(t, nilAuditor.Enabled())
	assert.False(t, NewAuditor("").Enabled())
	assert.True(t, NewAuditor("./audit").Enabled())
}
