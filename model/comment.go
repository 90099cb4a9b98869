package model

import "time"

// Comment is a top-level comment on a (novel, chapter) pair. Replies
// are embedded; they are never paginated independently.
type Comment struct {
	ID        string    `json:"id"`
	User      UserRef   `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	LikeCount int       `json:"likeCount"`
	Likes     []UserID  `json:"likes"`
	Replies   []Reply   `json:"replies"`
}

// Reply lives inside its parent comment's reply list. ReplyToUser is
// set when the reply targets another reply rather than the comment.
type Reply struct {
	ID          string    `json:"id"`
	User        UserRef   `json:"user"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	LikeCount   int       `json:"likeCount"`
	Likes       []UserID  `json:"likes"`
	ReplyToUser *UserRef  `json:"replyToUser,omitempty"`
}

// Liked reports whether id is in the liker set.
func Liked(likes []UserID, id UserID) bool {
	if id.IsZero() {
		return false
	}
	for _, l := range likes {
		if l == id {
			return true
		}
	}
	return false
}
