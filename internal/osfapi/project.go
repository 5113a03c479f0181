package osfapi

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
)

// projectTypes are the JSON:API resource types that can be opened as a
// project. Anything else (preprints, users, ...) is a resolution failure.
var projectTypes = map[string]bool{
	"nodes":         true,
	"registrations": true,
}

// Project is a fetched OSF project (or registration). It is the entry point
// to the project's storage providers.
type Project struct {
	client *Client

	ID    string
	Title string

	storagesURL string
}

// ResourceType looks up the JSON:API type for a GUID via the guids endpoint.
func (c *Client) ResourceType(ctx context.Context, id string) (string, error) {
	var doc singleResponse
	if err := c.getJSON(ctx, c.endpoint("guids", id), &doc); err != nil {
		return "", fmt.Errorf("resolving %q: %w", id, err)
	}

	return doc.Data.Type, nil
}

// Project fetches the project with the given GUID. The GUID is first
// resolved to its resource type; only projects and registrations are
// supported.
func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	resourceType, err := c.ResourceType(ctx, id)
	if err != nil {
		return nil, err
	}

	if !projectTypes[resourceType] {
		return nil, fmt.Errorf(
			"%q is of unrecognized type %q: only projects and registrations are supported", id, resourceType)
	}

	var doc singleResponse
	if err := c.getJSON(ctx, c.endpoint(resourceType, id), &doc); err != nil {
		return nil, fmt.Errorf("fetching project %q: %w", id, err)
	}

	c.logger.Debug("fetched project",
		slog.String("id", doc.Data.ID),
		slog.String("type", resourceType),
	)

	return &Project{
		client:      c,
		ID:          doc.Data.ID,
		Title:       doc.Data.Attributes.Title,
		storagesURL: doc.Data.childrenURL(),
	}, nil
}

// Storages returns the project's storage providers as a lazy sequence,
// pulling additional pages on demand. Iteration stops at the first error.
func (p *Project) Storages(ctx context.Context) iter.Seq2[*Storage, error] {
	return func(yield func(*Storage, error) bool) {
		next := p.storagesURL

		for next != "" {
			var page listResponse
			if err := p.client.getJSON(ctx, next, &page); err != nil {
				yield(nil, fmt.Errorf("listing storage providers: %w", err))
				return
			}

			for i := range page.Data {
				if !yield(newStorage(p.client, page.Data[i]), nil) {
					return
				}
			}

			next = page.Links.Next
		}
	}
}

// Storage looks up a storage provider by name. A missing provider is an
// ErrNotFound-kind failure.
func (p *Project) Storage(ctx context.Context, name string) (*Storage, error) {
	for store, err := range p.Storages(ctx) {
		if err != nil {
			return nil, err
		}

		if store.Name == name {
			return store, nil
		}
	}

	return nil, fmt.Errorf("project %s has no storage provider %q: %w", p.ID, name, ErrNotFound)
}
