package osfapi

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Folder is a remote folder. Path is the materialized path within its
// provider, beginning with a separator.
type Folder struct {
	client *Client

	Name string
	Path string

	uploadURL    string
	newFolderURL string
	deleteURL    string
	moveURL      string
	filesURL     string
}

func newFolder(c *Client, r resource) *Folder {
	path := r.Attributes.Materialized
	if path == "" {
		path = r.Attributes.Path
	}

	return &Folder{
		client:       c,
		Name:         r.Attributes.Name,
		Path:         path,
		uploadURL:    r.Links.Upload,
		newFolderURL: r.Links.NewFolder,
		deleteURL:    r.Links.Delete,
		moveURL:      r.Links.Move,
		filesURL:     r.childrenURL(),
	}
}

// CreateFile uploads content as a new file named name inside the folder.
func (f *Folder) CreateFile(ctx context.Context, name string, r io.Reader) error {
	return f.client.createFile(ctx, f.uploadURL, name, r)
}

// CreateFolder creates a child folder named name.
func (f *Folder) CreateFolder(ctx context.Context, name string) (*Folder, error) {
	return f.client.createFolder(ctx, f.newFolderURL, name)
}

// Remove deletes the folder and everything under it.
func (f *Folder) Remove(ctx context.Context) error {
	f.client.logger.Info("removing folder",
		slog.String("path", f.Path),
	)

	return f.client.deleteItem(ctx, f.deleteURL)
}

// MoveTo moves the folder into dest on the named provider.
func (f *Folder) MoveTo(ctx context.Context, provider string, dest MoveDestination, rename string, force bool) error {
	return f.client.moveItem(ctx, f.moveURL, provider, dest, rename, force)
}

func (f *Folder) destinationPath() string {
	p := f.Path
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	if !strings.HasSuffix(p, "/") {
		p += "/"
	}

	return p
}
