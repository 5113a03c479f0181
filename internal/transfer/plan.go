package transfer

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Outcome classifies what a transfer decided to do with its target.
type Outcome int

const (
	// OutcomeWrite: target absent, write it.
	OutcomeWrite Outcome = iota
	// OutcomeSkipExists: target exists and no flag allows touching it.
	OutcomeSkipExists
	// OutcomeSkipUnchanged: target exists and its content already matches.
	OutcomeSkipUnchanged
	// OutcomeOverwrite: target exists and will be replaced.
	OutcomeOverwrite
)

// ErrLocalExists is returned when a download target exists and neither
// force nor update permits overwriting. The check runs before any network
// call.
type ErrLocalExists struct {
	Path string
}

func (e *ErrLocalExists) Error() string {
	return fmt.Sprintf("local file %s already exists, not overwriting", e.Path)
}

// CheckLocalTarget validates a download destination before any network
// traffic: an existing local file without force or update aborts the fetch.
func CheckLocalTarget(localPath string, force, update bool) error {
	if _, err := os.Stat(localPath); err != nil {
		return nil
	}

	if !force && !update {
		return &ErrLocalExists{Path: localPath}
	}

	return nil
}

// PlanFetch decides the outcome for downloading onto localPath. remoteMD5 is
// the backend-reported content hash; with update set and no force, a hash
// match skips the write.
func PlanFetch(localPath, remoteMD5 string, force, update bool) (Outcome, error) {
	if _, err := os.Stat(localPath); err != nil {
		return OutcomeWrite, nil
	}

	switch {
	case force:
		return OutcomeOverwrite, nil
	case update:
		local, err := ChecksumFile(localPath)
		if err != nil {
			return OutcomeSkipExists, err
		}

		if remoteMD5 != "" && local == remoteMD5 {
			return OutcomeSkipUnchanged, nil
		}

		return OutcomeOverwrite, nil
	default:
		return OutcomeSkipExists, &ErrLocalExists{Path: localPath}
	}
}

// ChecksumFile returns the hex md5 digest of the file at path, streaming in
// blocks so large files stay cheap.
func ChecksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s for checksum: %w", path, err)
	}
	defer f.Close()

	h := md5.New() //nolint:gosec // content fingerprint, not a security boundary
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// UploadItem maps one local file to its remote destination path.
type UploadItem struct {
	LocalPath  string
	RemotePath string
}

// RemoteBase computes the remote base directory for a recursive upload.
// A source without a trailing separator nests its contents under its own
// name; a trailing separator means "contents only". The planner itself
// always joins against the returned base.
func RemoteBase(source, remotePath string) string {
	if strings.HasSuffix(source, string(os.PathSeparator)) || strings.HasSuffix(source, "/") {
		return remotePath
	}

	return path.Join(remotePath, filepath.Base(source))
}

// PlanRecursiveUpload walks every file under source and maps it to a remote
// path under remoteBase, preserving the relative directory structure.
// source must be a directory.
func PlanRecursiveUpload(source, remoteBase string) ([]UploadItem, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("stating upload source: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("expected source (%s) to be a directory when using recursive mode", source)
	}

	var items []UploadItem

	err = filepath.WalkDir(source, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(source, filepath.Dir(p))
		if err != nil {
			return err
		}

		items = append(items, UploadItem{
			LocalPath:  p,
			RemotePath: path.Join(remoteBase, filepath.ToSlash(rel), d.Name()),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking upload source %s: %w", source, err)
	}

	return items, nil
}

// MoveTarget classifies a move destination path (provider already split off,
// trailing separators preserved).
type MoveTarget struct {
	// FolderPath is the destination folder within the provider; "" targets
	// the provider root.
	FolderPath string
	// Rename is the new name at the destination; "" keeps the current name.
	Rename string
}

// ClassifyMoveTarget maps the raw target path to exactly one of four shapes:
// a trailing separator is a pure folder target, an internal separator splits
// folder from rename at the first separator, the empty path is the provider
// root, and a bare name is a rename at the root.
func ClassifyMoveTarget(targetPath string) MoveTarget {
	switch {
	case strings.HasSuffix(targetPath, "/"):
		return MoveTarget{FolderPath: strings.TrimSuffix(targetPath, "/")}
	case strings.Contains(targetPath, "/"):
		i := strings.Index(targetPath, "/")
		return MoveTarget{FolderPath: targetPath[:i], Rename: targetPath[i+1:]}
	case targetPath == "":
		return MoveTarget{}
	default:
		return MoveTarget{Rename: targetPath}
	}
}
