package api

import (
	"context"
	"fmt"

	"novelreader/model"
)

func (c *Client) GetNovel(ctx context.Context, novelID string) (*model.Novel, error) {
	var novel model.Novel
	if err := c.get(ctx, fmt.Sprintf("/novels/%s", novelID), &novel); err != nil {
		return nil, err
	}
	return &novel, nil
}

// LatestNovels is the degraded-data fallback when the direct novel
// lookup fails; some fields may be missing from the listing payload.
func (c *Client) LatestNovels(ctx context.Context, limit int) ([]model.Novel, error) {
	var out struct {
		Novels []model.Novel `json:"novels"`
	}
	if err := c.get(ctx, fmt.Sprintf("/novels/latest?limit=%d", limit), &out); err != nil {
		return nil, err
	}
	return out.Novels, nil
}

func (c *Client) GetChapters(ctx context.Context, novelID string) ([]model.Chapter, error) {
	var out struct {
		Chapters []model.Chapter `json:"chapters"`
	}
	if err := c.get(ctx, fmt.Sprintf("/novels/%s/chapters", novelID), &out); err != nil {
		return nil, err
	}
	return out.Chapters, nil
}

// GetChapterContent fetches the chapter body by novel id and chapter
// number. A response without a content field counts as a failure.
func (c *Client) GetChapterContent(ctx context.Context, novelID string, chapterNumber int) (string, error) {
	var out struct {
		Content *string `json:"content"`
	}
	if err := c.get(ctx, fmt.Sprintf("/novels/%s/chapters/%d/content", novelID, chapterNumber), &out); err != nil {
		return "", err
	}
	if out.Content == nil {
		return "", &Error{Kind: KindRemote, Message: "chapter content missing"}
	}
	return *out.Content, nil
}
