package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/orderrelay/pkg/logger"
)

func TestWithRotatingFile(t *testing.T) {
	t.Parallel()

	t.Run("tees into the file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "orderrelay.log")
		buf := &bytes.Buffer{}

		log := logger.New(
			logger.WithOutput(buf),
			logger.WithRotatingFile(logger.FileConfig{Path: path, MaxSizeMB: 1}),
		)
		log.Info("order ready", logger.OrderRef("ORD-1"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"order_ref":"ORD-1"`)
		assert.Equal(t, buf.String(), string(data))
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithRotatingFile(logger.FileConfig{}))
		log.Info("hello")
		assert.Contains(t, buf.String(), "hello")
	})
}
