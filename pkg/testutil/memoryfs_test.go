package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFSWriteAndRead(t *testing.T) {
	fs := NewMemoryFS()

	err := fs.WriteFile("/project/app/main.go", []byte("package main"), 0644)
	require.NoError(t, err)

	data, err := fs.ReadFile("/project/app/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main", string(data))

	// Parent directories were created implicitly
	info, err := fs.Stat("/project/app")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryFSReadMissing(t *testing.T) {
	fs := NewMemoryFS()

	_, err := fs.ReadFile("/nope")
	assert.Error(t, err)
}

func TestMemoryFSRename(t *testing.T) {
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFile("/a.tmp", []byte("x"), 0644))

	require.NoError(t, fs.Rename("/a.tmp", "/a"))

	_, err := fs.ReadFile("/a.tmp")
	assert.Error(t, err)

	data, err := fs.ReadFile("/a")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestMemoryFSErrorInjection(t *testing.T) {
	injected := errors.New("disk on fire")
	fs := NewMemoryFS().WithError("/bad", injected)

	err := fs.WriteFile("/bad", []byte("x"), 0644)
	assert.ErrorIs(t, err, injected)
}

func TestMemoryFSReadDir(t *testing.T) {
	fs := NewMemoryFS()
	require.NoError(t, fs.WriteFile("/dir/b.txt", []byte("b"), 0644))
	require.NoError(t, fs.WriteFile("/dir/a.txt", []byte("a"), 0644))

	entries, err := fs.ReadDir("/dir")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "b.txt", entries[1].Name())
}
