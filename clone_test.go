package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_DownloadsTree(t *testing.T) {
	f := newFakeOSF(t)
	f.folders["/docs/"] = true
	f.files["/top.txt"] = "one"
	f.files["/docs/inner.txt"] = "two"

	t.Chdir(t.TempDir())

	_, err := runCommand(t, f, "clone", "out")
	require.NoError(t, err)

	top, err := os.ReadFile(filepath.Join("out", "osfstorage", "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(top))

	inner, err := os.ReadFile(filepath.Join("out", "osfstorage", "docs", "inner.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(inner))
}

func TestClone_DefaultsToProjectID(t *testing.T) {
	f := newFakeOSF(t)
	f.files["/top.txt"] = "one"

	t.Chdir(t.TempDir())

	_, err := runCommand(t, f, "clone")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join("abc12", "osfstorage", "top.txt"))
	assert.NoError(t, statErr)
}

func TestClone_UpdateSkipsMatching(t *testing.T) {
	f := newFakeOSF(t)
	f.files["/top.txt"] = "same"
	f.md5s["/top.txt"] = "51037a4a37730f52c8732586d3aaa316" // md5("same")

	t.Chdir(t.TempDir())

	localPath := filepath.Join("out", "osfstorage", "top.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(localPath), 0o755))
	require.NoError(t, os.WriteFile(localPath, []byte("same"), 0o644))

	before, err := os.Stat(localPath)
	require.NoError(t, err)

	_, err = runCommand(t, f, "clone", "-U", "out")
	require.NoError(t, err)

	after, err := os.Stat(localPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}
