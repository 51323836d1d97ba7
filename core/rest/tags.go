package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quoteme/go-quoteme/core/listview"
)

// ListTags fetches every tag, normalized against the Tags view.
func (c *Client) ListTags(ctx context.Context) ([]listview.Record, error) {
	var env struct {
		Tags []listview.Record `json:"tags"`
	}
	if err := c.do(ctx, http.MethodGet, "/tags", nil, &env); err != nil {
		return nil, err
	}
	return normalizeAll(listview.Tags, env.Tags), nil
}

// CreateTag creates a new tag and returns the created record.
func (c *Client) CreateTag(ctx context.Context, name string) (listview.Record, error) {
	var rec listview.Record
	if err := c.do(ctx, http.MethodPost, "/tags", map[string]any{"name": name}, &rec); err != nil {
		return nil, err
	}
	return listview.Normalize(listview.Tags, rec), nil
}

// DeleteTag removes a tag by id.
func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tags/%d", id), nil, nil)
}
