package api

import (
	"context"
	"fmt"
)

func (c *Client) CheckFavorite(ctx context.Context, novelID string) (bool, error) {
	var out struct {
		Favorited bool `json:"favorited"`
	}
	if err := c.get(ctx, fmt.Sprintf("/favorites/%s", novelID), &out); err != nil {
		return false, err
	}
	return out.Favorited, nil
}

func (c *Client) AddFavorite(ctx context.Context, novelID string) error {
	return c.post(ctx, fmt.Sprintf("/favorites/%s", novelID), nil, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, novelID string) error {
	return c.delete(ctx, fmt.Sprintf("/favorites/%s", novelID), nil)
}
