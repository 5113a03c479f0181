// Package transfer holds the decision logic for moving bytes between the
// local filesystem and OSF storage providers: materializing remote folder
// chains, classifying move targets, choosing overwrite outcomes, and
// filtering listings.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tonimelisma/osf-go/internal/osfapi"
	"github.com/tonimelisma/osf-go/internal/remotepath"
)

// EnsureFolder returns the folder at folderPath inside store, creating
// missing segments on the way. An existing folder is returned as-is with no
// side effect. Each missing segment costs exactly one folder-creation call,
// outermost first. Folders are re-listed per call; there is no cache.
func EnsureFolder(ctx context.Context, store *osfapi.Storage, folderPath string) (*osfapi.Folder, error) {
	var found *osfapi.Folder

	for f, err := range store.Folders(ctx) {
		if err != nil {
			return nil, err
		}

		if remotepath.Normalize(f.Path) == folderPath {
			found = f
		}
	}

	if found != nil {
		return found, nil
	}

	if i := strings.Index(folderPath, "/"); i >= 0 {
		parent, err := EnsureFolder(ctx, store, folderPath[:i])
		if err != nil {
			return nil, err
		}

		return parent.CreateFolder(ctx, folderPath[i+1:])
	}

	return store.CreateFolder(ctx, folderPath)
}

// CreateFile writes content as relPath inside store, materializing
// intermediate folders first. When the file already exists the write is
// governed by force and update: either flag replaces the existing content
// unconditionally, neither is an error. content must be seekable so the
// body can be replayed after a create-conflict turns into an update.
func CreateFile(ctx context.Context, store *osfapi.Storage, relPath string, content io.ReadSeeker, force, update bool) error {
	dir, name := "", relPath
	if i := strings.LastIndex(relPath, "/"); i >= 0 {
		dir, name = relPath[:i], relPath[i+1:]
	}

	var err error
	if dir == "" {
		err = store.CreateFile(ctx, name, content)
	} else {
		var parent *osfapi.Folder

		parent, err = EnsureFolder(ctx, store, dir)
		if err != nil {
			return err
		}

		err = parent.CreateFile(ctx, name, content)
	}

	if err == nil {
		return nil
	}

	if !errors.Is(err, osfapi.ErrConflict) {
		return err
	}

	if !force && !update {
		return fmt.Errorf("file %s already exists; use --force to overwrite or --update to upload anyway", relPath)
	}

	// Replace the existing file. Note: unlike fetch, update performs no
	// checksum comparison here, so an unchanged file is still rewritten.
	existing, err := findFile(ctx, store, relPath)
	if err != nil {
		return err
	}

	if existing == nil {
		return fmt.Errorf("file %s conflicted on upload but was not found for update", relPath)
	}

	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s for update: %w", relPath, err)
	}

	return existing.Update(ctx, content)
}

// findFile locates a file in store by exact normalized path.
func findFile(ctx context.Context, store *osfapi.Storage, relPath string) (*osfapi.File, error) {
	for f, err := range store.Files(ctx) {
		if err != nil {
			return nil, err
		}

		if remotepath.Normalize(f.Path) == relPath {
			return f, nil
		}
	}

	return nil, nil
}

// FindFile is the exported form of the exact-path lookup used by fetch,
// move, and remove.
func FindFile(ctx context.Context, store *osfapi.Storage, relPath string) (*osfapi.File, error) {
	return findFile(ctx, store, relPath)
}

// FindFolder locates a folder in store by exact normalized path.
func FindFolder(ctx context.Context, store *osfapi.Storage, relPath string) (*osfapi.Folder, error) {
	for f, err := range store.Folders(ctx) {
		if err != nil {
			return nil, err
		}

		if remotepath.Normalize(f.Path) == relPath {
			return f, nil
		}
	}

	return nil, nil
}
