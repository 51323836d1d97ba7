package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quoteme/go-quoteme/core/listview"
)

// ListSubscribers fetches every daily-nuggets subscriber, normalized
// against the Subscribers view.
func (c *Client) ListSubscribers(ctx context.Context) ([]listview.Record, error) {
	var env struct {
		Subscribers []listview.Record `json:"subscribers"`
	}
	if err := c.do(ctx, http.MethodGet, "/subscribers", nil, &env); err != nil {
		return nil, err
	}
	return normalizeAll(listview.Subscribers, env.Subscribers), nil
}

// Subscribe enrolls an email address for daily nuggets at the given
// frequency with the selected categories.
func (c *Client) Subscribe(ctx context.Context, email, frequency string, categories []string) error {
	body := map[string]any{
		"email":      email,
		"frequency":  frequency,
		"categories": categories,
	}
	return c.do(ctx, http.MethodPost, "/subscribers", body, nil)
}

// Unsubscribe removes a subscriber by id.
func (c *Client) Unsubscribe(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/subscribers/%d", id), nil, nil)
}
