package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()

	logger, path, err := InitLogger(dir, "test", false)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "rosterctl_test_"))

	logger.Debug("Validating day off", zap.Int64("employee_id", 4))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "Validating day off", entry["msg"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, float64(4), entry["employee_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestInitLogger_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	_, path, err := InitLogger(dir, "prod", true)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
