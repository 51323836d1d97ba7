package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quoteme/go-quoteme/core/listview"
)

// ListQuotes fetches every quote from the backend. The response arrives as
// a JSON envelope under the "quotes" key; records are normalized against
// the Quotes view.
func (c *Client) ListQuotes(ctx context.Context) ([]listview.Record, error) {
	var env struct {
		Quotes []listview.Record `json:"quotes"`
	}
	if err := c.do(ctx, http.MethodGet, "/quotes", nil, &env); err != nil {
		return nil, err
	}
	return normalizeAll(listview.Quotes, env.Quotes), nil
}

// CreateQuote submits a new quote and returns the created record.
func (c *Client) CreateQuote(ctx context.Context, quote, author, tag string) (listview.Record, error) {
	body := map[string]any{"quote": quote, "author": author, "tag": tag}
	var rec listview.Record
	if err := c.do(ctx, http.MethodPost, "/quotes", body, &rec); err != nil {
		return nil, err
	}
	return listview.Normalize(listview.Quotes, rec), nil
}

// UpdateQuote applies a partial update to an existing quote.
func (c *Client) UpdateQuote(ctx context.Context, id int64, fields map[string]any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/quotes/%d", id), fields, nil)
}

// DeleteQuote removes a quote by id.
func (c *Client) DeleteQuote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/quotes/%d", id), nil, nil)
}
