package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)
	fn()
	return buf.String()
}

func TestSetVerbose(t *testing.T) {
	t.Run("enables verbose mode", func(t *testing.T) {
		SetVerbose(true)
		defer SetVerbose(false)
		assert.True(t, IsVerbose())
	})

	t.Run("disables verbose mode", func(t *testing.T) {
		SetVerbose(false)
		assert.False(t, IsVerbose())
	})
}

func TestDebug(t *testing.T) {
	t.Run("prints when verbose", func(t *testing.T) {
		SetVerbose(true)
		defer SetVerbose(false)

		out := captureOutput(t, func() {
			Debug("resolving %d identifiers", 3)
		})
		assert.Equal(t, "[DEBUG] resolving 3 identifiers\n", out)
	})

	t.Run("silent when not verbose", func(t *testing.T) {
		SetVerbose(false)

		out := captureOutput(t, func() {
			Debug("hidden")
		})
		assert.Empty(t, out)
	})
}

func TestPhase(t *testing.T) {
	t.Run("prints header when verbose", func(t *testing.T) {
		SetVerbose(true)
		defer SetVerbose(false)

		out := captureOutput(t, func() {
			Phase("Matching")
		})
		assert.Equal(t, "\n=== Matching ===\n", out)
	})
}

func TestInfoAndWarn(t *testing.T) {
	SetVerbose(true)
	defer SetVerbose(false)

	out := captureOutput(t, func() {
		Info("baseline %s", "2014/10/01")
		Warn("stale pointer")
	})
	assert.Contains(t, out, "[INFO] baseline 2014/10/01\n")
	assert.Contains(t, out, "[WARN] stale pointer\n")
}
