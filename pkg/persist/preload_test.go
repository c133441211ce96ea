package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PRELOAD")

	ids := []string{"system", "default", "analytics"}
	require.NoError(t, WritePreload(path, ids))

	got, err := ReadPreload(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, got)
}

func TestPreloadRejectsTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PRELOAD")
	require.NoError(t, WritePreload(path, []string{"system"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	truncated := raw[:len(raw)-2]
	require.NoError(t, os.WriteFile(path, truncated, 0o644))

	_, err = ReadPreload(path)
	require.Error(t, err)
	var mfe *MalformedFileError
	assert.ErrorAs(t, err, &mfe)
}

func TestPreloadMarkMatchesNativeOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PRELOAD")
	require.NoError(t, WritePreload(path, []string{"system"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, nativeMark(), raw[0])
}
