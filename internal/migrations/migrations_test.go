package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUp(t *testing.T) {
	scripts, err := Up()
	require.NoError(t, err)
	require.Len(t, scripts, 1)
	assert.Contains(t, scripts[0], "CREATE TABLE IF NOT EXISTS kv_entries")
}
