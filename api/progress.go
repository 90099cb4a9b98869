package api

import (
	"context"
	"fmt"

	"novelreader/model"
)

// UpdateProgress upserts the remote reading-progress record for the
// acting user. Best-effort from the reader's perspective.
func (c *Client) UpdateProgress(ctx context.Context, novelID, chapterID string, chapterNumber int) error {
	body := map[string]any{
		"chapterId":     chapterID,
		"chapterNumber": chapterNumber,
	}
	return c.put(ctx, fmt.Sprintf("/novels/%s/progress", novelID), body, nil)
}

// RecordVisit adds the novel to the acting user's reading history.
func (c *Client) RecordVisit(ctx context.Context, novelID string) error {
	body := map[string]any{"novelId": novelID}
	return c.post(ctx, "/reading-history", body, nil)
}

func (c *Client) History(ctx context.Context) ([]model.ReadingProgress, error) {
	var out struct {
		History []model.ReadingProgress `json:"history"`
	}
	if err := c.get(ctx, "/reading-history", &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *Client) DeleteHistory(ctx context.Context, novelID string) error {
	return c.delete(ctx, fmt.Sprintf("/reading-history/%s", novelID), nil)
}

func (c *Client) ClearHistory(ctx context.Context) error {
	return c.delete(ctx, "/reading-history", nil)
}
