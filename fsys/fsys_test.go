package fsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_WriteAppendRead(t *testing.T) {
	fs := Memory()
	require.NoError(t, fs.Underlying().MkdirAll("/work", DirPerm))

	require.NoError(t, fs.WriteFile("/work/index.ts", []byte("a\n"), FilePerm))
	require.NoError(t, fs.AppendFile("/work/index.ts", []byte("b\n"), FilePerm))

	data, err := fs.ReadFile("/work/index.ts")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))

	require.NoError(t, fs.WriteFile("/work/index.ts", []byte("c\n"), FilePerm))
	data, err = fs.ReadFile("/work/index.ts")
	require.NoError(t, err)
	assert.Equal(t, "c\n", string(data), "WriteFile truncates")
}

func TestMemory_AppendCreates(t *testing.T) {
	fs := Memory()
	require.NoError(t, fs.Underlying().MkdirAll("/work", DirPerm))

	require.NoError(t, fs.AppendFile("/work/new.ts", []byte("x"), FilePerm))
	assert.True(t, IsRegular(fs, "/work/new.ts"))
}

func TestMkdir(t *testing.T) {
	fs := Memory()
	require.NoError(t, fs.Underlying().MkdirAll("/work", DirPerm))

	require.NoError(t, fs.Mkdir("/work/card", DirPerm))
	assert.True(t, IsDir(fs, "/work/card"))

	err := fs.Mkdir("/work/card", DirPerm)
	require.Error(t, err)
	assert.True(t, os.IsExist(err))

	err = fs.Mkdir("/missing/card", DirPerm)
	assert.Error(t, err, "parent must exist")
	assert.False(t, IsDir(fs, "/missing"))
}

func TestMkdir_ParentIsFile(t *testing.T) {
	fs := Memory()
	require.NoError(t, fs.Underlying().MkdirAll("/work", DirPerm))
	require.NoError(t, fs.WriteFile("/work/file", nil, FilePerm))

	assert.Error(t, fs.Mkdir("/work/file/child", DirPerm))
}

func TestOS_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := OS()

	target := filepath.Join(dir, "module")
	require.NoError(t, fs.Mkdir(target, DirPerm))

	path := filepath.Join(target, "index.ts")
	require.NoError(t, fs.WriteFile(path, []byte("export {};\n"), FilePerm))
	require.NoError(t, fs.AppendFile(path, []byte("// more\n"), FilePerm))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export {};\n// more\n", string(onDisk))

	info, err := fs.Lstat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
