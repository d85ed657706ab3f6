package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohmanhakim/dom-patcher/pkg/fileutil"
)

func TestGetFileExtension(t *testing.T) {
	assert.Equal(t, "json", fileutil.GetFileExtension("output/abc.json"))
	assert.Equal(t, "md", fileutil.GetFileExtension("summary.md"))
	assert.Equal(t, "", fileutil.GetFileExtension("no-extension"))
	assert.Equal(t, "html", fileutil.GetFileExtension("a.b.html"))
}

func TestEnsureDir_CreatesNestedPath(t *testing.T) {
	base := t.TempDir()

	err := fileutil.EnsureDir(base, "nested", "deeper")

	require.Nil(t, err)
	info, statErr := os.Stat(filepath.Join(base, "nested", "deeper"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestEnsureDir_ExistingDirIsFine(t *testing.T) {
	base := t.TempDir()

	require.Nil(t, fileutil.EnsureDir(base))
	require.Nil(t, fileutil.EnsureDir(base))
}

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "result.json")

	err := fileutil.WriteFile(path, []byte(`{"ok":true}`))

	require.Nil(t, err)
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, `{"ok":true}`, string(content))
}

func TestWriteFile_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")

	require.Nil(t, fileutil.WriteFile(path, []byte("first")))
	require.Nil(t, fileutil.WriteFile(path, []byte("second")))

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "second", string(content))
}
