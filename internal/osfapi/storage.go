package osfapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
)

// Storage is one storage provider attached to a project (osfstorage, or a
// linked add-on). It owns a tree of files and folders.
type Storage struct {
	client *Client

	// Name is the provider name, e.g. "osfstorage".
	Name string

	uploadURL    string
	newFolderURL string
	filesURL     string
}

func newStorage(c *Client, r resource) *Storage {
	name := r.Attributes.Name
	if name == "" {
		name = r.Attributes.Provider
	}

	return &Storage{
		client:       c,
		Name:         name,
		uploadURL:    r.Links.Upload,
		newFolderURL: r.Links.NewFolder,
		filesURL:     r.childrenURL(),
	}
}

// Files returns every file under the provider, walking folders depth-first,
// as a lazy sequence that pulls listing pages on demand. Iteration stops at
// the first error.
func (s *Storage) Files(ctx context.Context) iter.Seq2[*File, error] {
	return func(yield func(*File, error) bool) {
		s.client.walk(ctx, s.filesURL, func(r resource) bool {
			if r.Attributes.Kind != "file" {
				return true
			}

			f, err := newFile(s.client, r), error(nil)

			return yield(f, err)
		}, func(err error) {
			yield(nil, err)
		})
	}
}

// Folders returns every folder under the provider, walking depth-first.
// A folder is yielded before its children.
func (s *Storage) Folders(ctx context.Context) iter.Seq2[*Folder, error] {
	return func(yield func(*Folder, error) bool) {
		s.client.walk(ctx, s.filesURL, func(r resource) bool {
			if r.Attributes.Kind != "folder" {
				return true
			}

			return yield(newFolder(s.client, r), nil)
		}, func(err error) {
			yield(nil, err)
		})
	}
}

// walk traverses a provider tree depth-first starting from listURL, calling
// visit for every resource (files and folders). visit returning false stops
// the walk. Errors are reported through fail and stop the walk.
func (c *Client) walk(ctx context.Context, listURL string, visit func(resource) bool, fail func(error)) {
	var recurse func(string) bool

	recurse = func(pageURL string) bool {
		for pageURL != "" {
			var page listResponse
			if err := c.getJSON(ctx, pageURL, &page); err != nil {
				fail(fmt.Errorf("listing files: %w", err))
				return false
			}

			for _, r := range page.Data {
				if !visit(r) {
					return false
				}

				if r.Attributes.Kind == "folder" {
					if child := r.childrenURL(); child != "" {
						if !recurse(child) {
							return false
						}
					}
				}
			}

			pageURL = page.Links.Next
		}

		return true
	}

	recurse(listURL)
}

// CreateFile uploads content as a new file named name directly under the
// provider root. A name collision is an ErrConflict-kind failure.
func (s *Storage) CreateFile(ctx context.Context, name string, r io.Reader) error {
	return s.client.createFile(ctx, s.uploadURL, name, r)
}

// CreateFolder creates a folder named name under the provider root.
func (s *Storage) CreateFolder(ctx context.Context, name string) (*Folder, error) {
	return s.client.createFolder(ctx, s.newFolderURL, name)
}

func (s *Storage) destinationPath() string { return "/" }

// MoveDestination is the container a move targets: the Storage itself for
// the provider root, or a Folder.
type MoveDestination interface {
	destinationPath() string
}

// createFile PUTs content to a Waterbutler upload URL.
func (c *Client) createFile(ctx context.Context, uploadURL, name string, r io.Reader) error {
	c.logger.Info("creating file",
		slog.String("name", name),
	)

	resp, err := c.do(ctx, http.MethodPut, addQuery(uploadURL, "kind", "file", "name", name), r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("osf: draining upload response: %w", err)
	}

	return nil
}

// createFolder PUTs a new folder to a Waterbutler new-folder URL and decodes
// the created resource so the caller can keep creating children under it.
func (c *Client) createFolder(ctx context.Context, newFolderURL, name string) (*Folder, error) {
	c.logger.Info("creating folder",
		slog.String("name", name),
	)

	resp, err := c.do(ctx, http.MethodPut, addQuery(newFolderURL, "kind", "folder", "name", name), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc singleResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("osf: decoding create folder response: %w", err)
	}

	return newFolder(c, doc.Data), nil
}

// moveItem POSTs a Waterbutler move action for a file or folder.
func (c *Client) moveItem(ctx context.Context, moveURL, provider string, dest MoveDestination, rename string, force bool) error {
	req := moveRequest{
		Action:   "move",
		Path:     dest.destinationPath(),
		Provider: provider,
		Rename:   rename,
	}
	if force {
		req.Conflict = "replace"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("osf: marshaling move request: %w", err)
	}

	c.logger.Info("moving item",
		slog.String("provider", provider),
		slog.String("path", req.Path),
		slog.String("rename", rename),
	)

	resp, err := c.do(ctx, http.MethodPost, moveURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("osf: draining move response: %w", err)
	}

	return nil
}

// deleteItem issues a Waterbutler delete.
func (c *Client) deleteItem(ctx context.Context, deleteURL string) error {
	resp, err := c.do(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("osf: draining delete response: %w", err)
	}

	return nil
}
