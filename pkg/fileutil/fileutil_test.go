package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/flowmap/pkg/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "yaml config", path: "config.yaml", expected: "yaml"},
		{name: "json config", path: "/etc/flowmap/config.json", expected: "json"},
		{name: "multiple dots", path: "report.tar.gz", expected: "gz"},
		{name: "no extension", path: "README", expected: ""},
		{name: "dotfile", path: ".flowmap", expected: "flowmap"},
		{name: "uppercase is lowered", path: "CONFIG.YML", expected: "yml"},
		{name: "empty string", path: "", expected: ""},
		{name: "dot at end", path: "file.", expected: ""},
		{name: "directory path", path: "/some/directory/", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fileutil.GetFileExtension(tt.path))
		})
	}
}

func TestEnsureDir_MultiplePathComponents(t *testing.T) {
	tmpDir := t.TempDir()

	err := fileutil.EnsureDir(tmpDir, "parent", "child")
	require.Nil(t, err)

	info, statErr := os.Stat(filepath.Join(tmpDir, "parent", "child"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestEnsureDir_DirectoryAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "existing"), 0755))

	err := fileutil.EnsureDir(tmpDir, "existing")
	assert.Nil(t, err)
}

func TestEnsureDir_PermissionError(t *testing.T) {
	if filepath.Separator == '\\' || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	tmpDir := t.TempDir()
	readonlyDir := filepath.Join(tmpDir, "readonly")
	require.NoError(t, os.MkdirAll(readonlyDir, 0555))

	err := fileutil.EnsureDir(readonlyDir, "subdir")
	require.NotNil(t, err)

	var fileErr *fileutil.FileError
	if assert.ErrorAs(t, err, &fileErr) {
		assert.False(t, fileErr.Retryable)
		assert.Equal(t, fileutil.ErrCausePathError, fileErr.Cause)
	}
}

func TestWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "reports")

	path, err := fileutil.WriteFile(outDir, "map.json", []byte(`{"ok":true}`))
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(outDir, "map.json"), path)

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, `{"ok":true}`, string(content))
}

func TestWriteFile_TargetIsDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "taken"), 0755))

	_, err := fileutil.WriteFile(tmpDir, "taken", []byte("x"))
	require.NotNil(t, err)

	var fileErr *fileutil.FileError
	if assert.ErrorAs(t, err, &fileErr) {
		assert.Equal(t, fileutil.ErrCauseWriteError, fileErr.Cause)
	}
}
