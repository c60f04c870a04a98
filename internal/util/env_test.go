package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("PROVGRAPH_TEST_STRING", "value")
	t.Setenv("PROVGRAPH_TEST_INT", "12")
	t.Setenv("PROVGRAPH_TEST_BAD_INT", "twelve")
	t.Setenv("PROVGRAPH_TEST_BOOL", "true")
	t.Setenv("PROVGRAPH_TEST_BAD_BOOL", "yes")

	assert.Equal(t, "value", GetEnv("PROVGRAPH_TEST_STRING"))
	assert.Equal(t, "", GetEnv("PROVGRAPH_TEST_MISSING"))
	assert.Equal(t, "value", GetEnvString("PROVGRAPH_TEST_STRING", "default"))
	assert.Equal(t, "default", GetEnvString("PROVGRAPH_TEST_MISSING", "default"))

	assert.Equal(t, 12, GetEnvInt("PROVGRAPH_TEST_INT", 3))
	assert.Equal(t, 3, GetEnvInt("PROVGRAPH_TEST_BAD_INT", 3))
	assert.Equal(t, 3, GetEnvInt("PROVGRAPH_TEST_MISSING", 3))

	assert.True(t, GetEnvBool("PROVGRAPH_TEST_BOOL", false))
	assert.True(t, GetEnvBool("PROVGRAPH_TEST_BAD_BOOL", true))
	assert.False(t, GetEnvBool("PROVGRAPH_TEST_MISSING", false))
}

func TestLoadEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PROVGRAPH_TEST_FROM_FILE=file\nPROVGRAPH_TEST_PRESET=file\n"), 0o600))
	t.Setenv("PROVGRAPH_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("PROVGRAPH_TEST_FROM_FILE") })

	LoadEnv(path)

	assert.Equal(t, "file", GetEnv("PROVGRAPH_TEST_FROM_FILE"))
	assert.Equal(t, "env", GetEnv("PROVGRAPH_TEST_PRESET"))
}
