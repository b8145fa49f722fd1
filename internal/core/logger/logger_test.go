package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nzyazin/ledger/internal/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_SplitsByLevel(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, cleanup, err := logger.NewLogger(dir)
	require.NoError(t, err)

	log.Info("transaction processed", logger.StringField("reference", "Uber * 8721"))
	log.Warn("classification degraded", logger.StringField("reference", "KFC"))
	cleanup()

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)

	assert.Contains(t, string(info), `"message":"transaction processed"`)
	assert.NotContains(t, string(info), "classification degraded")
	assert.Contains(t, string(errs), `"level":"warn"`)
	assert.NotContains(t, string(errs), "transaction processed")
}
