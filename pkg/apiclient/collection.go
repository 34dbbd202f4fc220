package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Collection exposes the uniform endpoint set every entity resource offers.
type Collection struct {
	client   *Client
	resource string
}

// Collection returns the endpoints for a resource such as "accounts".
func (c *Client) Collection(resource string) Collection {
	return Collection{client: c, resource: strings.Trim(resource, "/")}
}

// ListRecords fetches every live record of a resource. It lets the client act
// as the lister behind the reference resolver.
func (c *Client) ListRecords(ctx context.Context, resource string) ([]Record, error) {
	return c.Collection(resource).List(ctx)
}

// Resource reports the resource name.
func (c Collection) Resource() string {
	return c.resource
}

// List fetches GET /{resource}/all.
func (c Collection) List(ctx context.Context) ([]Record, error) {
	out, err := c.client.Request(ctx, http.MethodGet, c.path("all"), nil)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(out)
}

// ListDeleted fetches GET /{resource}/deleted, the soft-delete bin.
func (c Collection) ListDeleted(ctx context.Context) ([]Record, error) {
	out, err := c.client.Request(ctx, http.MethodGet, c.path("deleted"), nil)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(out)
}

// Get fetches GET /{resource}/{id}.
func (c Collection) Get(ctx context.Context, id string) (Record, error) {
	out, err := c.client.Request(ctx, http.MethodGet, c.path(url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(out)
}

// Create posts to /{resource}/create and returns the created record when the
// server echoes one.
func (c Collection) Create(ctx context.Context, payload map[string]any) (Record, error) {
	out, err := c.client.Request(ctx, http.MethodPost, c.path("create"), payload)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(out)
}

// Update patches /{resource}/{id}/update with a partial payload.
func (c Collection) Update(ctx context.Context, id string, payload map[string]any) (Record, error) {
	out, err := c.client.Request(ctx, http.MethodPatch, c.path(url.PathEscape(id), "update"), payload)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(out)
}

// Delete soft-deletes via DELETE /{resource}/{id}/delete.
func (c Collection) Delete(ctx context.Context, id string) error {
	_, err := c.client.Request(ctx, http.MethodDelete, c.path(url.PathEscape(id), "delete"), nil)
	return err
}

// Restore un-deletes via POST /{resource}/{id}/restore.
func (c Collection) Restore(ctx context.Context, id string) error {
	_, err := c.client.Request(ctx, http.MethodPost, c.path(url.PathEscape(id), "restore"), nil)
	return err
}

// ForceDelete permanently removes a soft-deleted record via
// DELETE /{resource}/{id}/force-delete.
func (c Collection) ForceDelete(ctx context.Context, id string) error {
	_, err := c.client.Request(ctx, http.MethodDelete, c.path(url.PathEscape(id), "force-delete"), nil)
	return err
}

func (c Collection) path(segments ...string) string {
	return "/" + c.resource + "/" + strings.Join(segments, "/")
}
