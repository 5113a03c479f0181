package osfapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// File is a remote file. Path is the materialized path within its provider
// and always begins with a separator.
type File struct {
	client *Client

	Name string
	Path string
	// Size is nil when the backend did not report one.
	Size *int64
	// DateModified is the backend's ISO-8601 timestamp, or "" when absent.
	DateModified string

	hashes map[string]string

	downloadURL string
	uploadURL   string
	deleteURL   string
	moveURL     string
}

func newFile(c *Client, r resource) *File {
	path := r.Attributes.Materialized
	if path == "" {
		path = r.Attributes.Path
	}

	f := &File{
		client:       c,
		Name:         r.Attributes.Name,
		Path:         path,
		Size:         r.Attributes.Size,
		DateModified: r.Attributes.DateModified,
		downloadURL:  r.Links.Download,
		uploadURL:    r.Links.Upload,
		deleteURL:    r.Links.Delete,
		moveURL:      r.Links.Move,
	}

	if r.Attributes.Extra != nil {
		f.hashes = r.Attributes.Extra.Hashes
	}

	return f
}

// MD5 returns the backend-reported md5 content hash, or "" when absent.
func (f *File) MD5() string {
	return f.hashes["md5"]
}

// WriteTo streams the file's content to w, returning the number of bytes
// written. The response body is released on every path.
func (f *File) WriteTo(ctx context.Context, w io.Writer) (int64, error) {
	f.client.logger.Info("downloading file",
		slog.String("path", f.Path),
	)

	resp, err := f.client.do(ctx, http.MethodGet, f.downloadURL, nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("osf: streaming %s: %w", f.Path, err)
	}

	return n, nil
}

// Update replaces the file's content with r.
func (f *File) Update(ctx context.Context, r io.Reader) error {
	f.client.logger.Info("updating file",
		slog.String("path", f.Path),
	)

	resp, err := f.client.do(ctx, http.MethodPut, addQuery(f.uploadURL, "kind", "file"), r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("osf: draining update response: %w", err)
	}

	return nil
}

// Remove deletes the file.
func (f *File) Remove(ctx context.Context) error {
	f.client.logger.Info("removing file",
		slog.String("path", f.Path),
	)

	return f.client.deleteItem(ctx, f.deleteURL)
}

// MoveTo moves the file into dest on the named provider. rename, when
// non-empty, gives the file a new name at the destination; force replaces
// an existing entry.
func (f *File) MoveTo(ctx context.Context, provider string, dest MoveDestination, rename string, force bool) error {
	return f.client.moveItem(ctx, f.moveURL, provider, dest, rename, force)
}
