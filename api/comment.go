package api

import (
	"context"
	"fmt"

	"novelreader/model"
)

// ListComments returns one page of top-level comments for a chapter,
// each pre-populated with its full reply list, plus the total count of
// top-level comments.
func (c *Client) ListComments(ctx context.Context, chapterID string, page, pageSize int) ([]model.Comment, int, error) {
	var out struct {
		Comments []model.Comment `json:"comments"`
		Total    int             `json:"total"`
	}
	path := fmt.Sprintf("/comments?chapterId=%s&page=%d&limit=%d", chapterID, page, pageSize)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, 0, err
	}
	return out.Comments, out.Total, nil
}

func (c *Client) CreateComment(ctx context.Context, content, novelID, chapterID string) error {
	body := map[string]any{
		"content":   content,
		"novelId":   novelID,
		"chapterId": chapterID,
	}
	return c.post(ctx, "/comments", body, nil)
}

// CreateReply stores a reply under parentCommentID. replyToUser is set
// when the reply targets another reply rather than the comment itself.
func (c *Client) CreateReply(ctx context.Context, content, novelID, parentCommentID, chapterID string, replyToUser model.UserID) error {
	body := map[string]any{
		"content":   content,
		"novelId":   novelID,
		"commentId": parentCommentID,
		"chapterId": chapterID,
	}
	if !replyToUser.IsZero() {
		body["replyToUserId"] = string(replyToUser)
	}
	return c.post(ctx, "/comments/replies", body, nil)
}

// likeResult carries the server-authoritative liker set and count.
type likeResult struct {
	Likes     []model.UserID `json:"likes"`
	LikeCount int            `json:"likeCount"`
}

// Like works on comments and replies alike; the endpoint does not
// distinguish between them.
func (c *Client) Like(ctx context.Context, itemID string) ([]model.UserID, int, error) {
	var out likeResult
	if err := c.post(ctx, fmt.Sprintf("/comments/%s/like", itemID), nil, &out); err != nil {
		return nil, 0, err
	}
	return out.Likes, out.LikeCount, nil
}

func (c *Client) Unlike(ctx context.Context, itemID string) ([]model.UserID, int, error) {
	var out likeResult
	if err := c.delete(ctx, fmt.Sprintf("/comments/%s/like", itemID), &out); err != nil {
		return nil, 0, err
	}
	return out.Likes, out.LikeCount, nil
}

// DeleteComment deletes a comment or a reply by id; the call shape is
// the same for both.
func (c *Client) DeleteComment(ctx context.Context, itemID string) error {
	return c.delete(ctx, fmt.Sprintf("/comments/%s", itemID), nil)
}
