package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	cleanup := setupTestServices(t, nil, nil)
	defer cleanup()

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "blastdiff version")
}
