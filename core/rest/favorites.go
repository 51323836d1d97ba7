package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quoteme/go-quoteme/core/listview"
)

// ListFavorites fetches the caller's favorite quotes. Favorites are plain
// quote records and normalize against the Quotes view.
func (c *Client) ListFavorites(ctx context.Context) ([]listview.Record, error) {
	var env struct {
		Favorites []listview.Record `json:"favorites"`
	}
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, &env); err != nil {
		return nil, err
	}
	return normalizeAll(listview.Quotes, env.Favorites), nil
}

// AddFavorite marks a quote as a favorite of the caller.
func (c *Client) AddFavorite(ctx context.Context, quoteID int64) error {
	return c.do(ctx, http.MethodPost, "/favorites", map[string]any{"quote_id": quoteID}, nil)
}

// RemoveFavorite removes a quote from the caller's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, quoteID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d", quoteID), nil, nil)
}
