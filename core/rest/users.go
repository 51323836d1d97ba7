package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quoteme/go-quoteme/core/listview"
)

// ListUsers fetches every user, normalized against the Users view. The
// backend restricts this to admin callers; non-admins get ErrForbidden.
func (c *Client) ListUsers(ctx context.Context) ([]listview.Record, error) {
	var env struct {
		Users []listview.Record `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/users", nil, &env); err != nil {
		return nil, err
	}
	return normalizeAll(listview.Users, env.Users), nil
}

// SetUserAdmin grants or revokes a user's admin flag.
func (c *Client) SetUserAdmin(ctx context.Context, id int64, admin bool) error {
	body := map[string]any{"is_admin": admin}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", id), body, nil)
}

// DeleteUser removes a user account by id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}
