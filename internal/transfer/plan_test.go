package transfer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestCheckLocalTarget(t *testing.T) {
	dir := t.TempDir()
	existing := writeTestFile(t, dir, "present.txt", "x")
	missing := filepath.Join(dir, "absent.txt")

	assert.NoError(t, CheckLocalTarget(missing, false, false))
	assert.NoError(t, CheckLocalTarget(existing, true, false))
	assert.NoError(t, CheckLocalTarget(existing, false, true))

	err := CheckLocalTarget(existing, false, false)
	require.Error(t, err)

	var exists *ErrLocalExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, existing, exists.Path)
	assert.Contains(t, err.Error(), "not overwriting")
}

func TestPlanFetch(t *testing.T) {
	dir := t.TempDir()
	existing := writeTestFile(t, dir, "present.txt", "hello")
	missing := filepath.Join(dir, "absent.txt")

	helloMD5, err := ChecksumFile(existing)
	require.NoError(t, err)

	tests := []struct {
		name      string
		path      string
		remoteMD5 string
		force     bool
		update    bool
		want      Outcome
		wantErr   bool
	}{
		{name: "absent target", path: missing, want: OutcomeWrite},
		{name: "existing no flags", path: existing, want: OutcomeSkipExists, wantErr: true},
		{name: "existing force", path: existing, force: true, want: OutcomeOverwrite},
		{name: "existing update matching hash", path: existing, update: true, remoteMD5: helloMD5, want: OutcomeSkipUnchanged},
		{name: "existing update different hash", path: existing, update: true, remoteMD5: "deadbeef", want: OutcomeOverwrite},
		{name: "existing update no remote hash", path: existing, update: true, want: OutcomeOverwrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanFetch(tt.path, tt.remoteMD5, tt.force, tt.update)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecksumFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "data.txt", "hello world")

	sum, err := ChecksumFile(path)
	require.NoError(t, err)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", sum)

	_, err = ChecksumFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRemoteBase(t *testing.T) {
	// Without a trailing separator the directory nests under its own name.
	assert.Equal(t, "dest/src", RemoteBase("src", "dest"))
	assert.Equal(t, "dest/src", RemoteBase(filepath.Join("tmp", "src"), "dest"))

	// A trailing separator uploads the contents only.
	assert.Equal(t, "dest", RemoteBase("src/", "dest"))
	assert.Equal(t, "src", RemoteBase("src", ""))
}

func TestPlanRecursiveUpload(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "top.txt", "1")
	writeTestFile(t, dir, filepath.Join("sub", "inner.txt"), "2")
	writeTestFile(t, dir, filepath.Join("sub", "deep", "leaf.txt"), "3")

	items, err := PlanRecursiveUpload(dir, "base")
	require.NoError(t, err)

	got := map[string]string{}
	for _, item := range items {
		got[item.RemotePath] = item.LocalPath
	}

	assert.Equal(t, map[string]string{
		"base/top.txt":           filepath.Join(dir, "top.txt"),
		"base/sub/inner.txt":     filepath.Join(dir, "sub", "inner.txt"),
		"base/sub/deep/leaf.txt": filepath.Join(dir, "sub", "deep", "leaf.txt"),
	}, got)
}

func TestPlanRecursiveUpload_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "file.txt", "x")

	_, err := PlanRecursiveUpload(path, "base")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to be a directory")
}

func TestClassifyMoveTarget(t *testing.T) {
	tests := []struct {
		target string
		want   MoveTarget
	}{
		{"", MoveTarget{}},
		{"newname.txt", MoveTarget{Rename: "newname.txt"}},
		{"folder/", MoveTarget{FolderPath: "folder"}},
		{"folder/newname.txt", MoveTarget{FolderPath: "folder", Rename: "newname.txt"}},
		// The split happens at the first separator; the remainder is the
		// rename even when it contains separators itself.
		{"a/b/c.txt", MoveTarget{FolderPath: "a", Rename: "b/c.txt"}},
		{"a/b/", MoveTarget{FolderPath: "a/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMoveTarget(tt.target))
		})
	}
}
