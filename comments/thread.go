// Package comments manages the two-level comment tree for one chapter:
// paginated top-level comments with embedded replies, posting, like
// toggling, and permission-gated two-step deletion.
package comments

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"novelreader/log"
	"novelreader/model"
)

var (
	// ErrLoginRequired gates posting, replying, liking, and deleting.
	ErrLoginRequired = errors.New("login required")
	// ErrEmptyContent rejects whitespace-only submissions before any
	// network call is made.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrItemNotFound reports an id absent from the loaded page.
	ErrItemNotFound = errors.New("comment not found")
)

const (
	DefaultPageSize = 10
	// noteTTL is how long transient acknowledgments and per-item
	// permission errors stay visible.
	noteTTL = 3 * time.Second
)

// API is the slice of the remote service the thread consumes.
type API interface {
	ListComments(ctx context.Context, chapterID string, page, pageSize int) ([]model.Comment, int, error)
	CreateComment(ctx context.Context, content, novelID, chapterID string) error
	CreateReply(ctx context.Context, content, novelID, parentCommentID, chapterID string, replyToUser model.UserID) error
	Like(ctx context.Context, itemID string) ([]model.UserID, int, error)
	Unlike(ctx context.Context, itemID string) ([]model.UserID, int, error)
	DeleteComment(ctx context.Context, itemID string) error
}

// DeleteKind distinguishes how a successful delete mutates the tree;
// the remote call itself is identity-agnostic.
type DeleteKind int

const (
	KindComment DeleteKind = iota
	KindReply
)

// DeleteTarget is the pending-delete descriptor held between the
// request and the confirmation dialog's outcome.
type DeleteTarget struct {
	ID   string
	Kind DeleteKind
	// ParentID addresses the reply list a reply is removed from.
	ParentID string
}

type itemError struct {
	msg     string
	expires time.Time
}

// Thread is the comment tree for exactly one (novel, chapter) pair.
// novelAuthorID is passed in from the reading session; it is not
// derivable from the comments themselves.
type Thread struct {
	api API

	mu            sync.Mutex
	novelID       string
	chapterID     string
	novelAuthorID model.UserID
	user          *model.User
	pageSize      int
	now           func() time.Time

	comments []model.Comment
	total    int
	page     int
	loadSeq  uint64
	loadErr  string

	expanded    map[string]bool
	itemErrs    map[string]itemError
	pending     *DeleteTarget
	note        string
	noteExpires time.Time
}

func NewThread(api API, novelID, chapterID string, novelAuthorID model.UserID, user *model.User) *Thread {
	return &Thread{
		api:           api,
		novelID:       novelID,
		chapterID:     chapterID,
		novelAuthorID: novelAuthorID,
		user:          user,
		pageSize:      DefaultPageSize,
		page:          1,
		now:           time.Now,
		expanded:      make(map[string]bool),
		itemErrs:      make(map[string]itemError),
	}
}

// SetPageSize overrides the page size; it applies from the next load.
func (t *Thread) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	t.mu.Lock()
	t.pageSize = n
	t.mu.Unlock()
}

// Load fetches one page of top-level comments, replacing the current
// page. Responses of superseded loads are discarded, so rapid page
// clicks settle on the page requested last. Previously viewed pages
// are never served from a cache.
func (t *Thread) Load(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	t.mu.Lock()
	t.loadSeq++
	seq := t.loadSeq
	chapterID := t.chapterID
	pageSize := t.pageSize
	t.mu.Unlock()

	comments, total, err := t.api.ListComments(ctx, chapterID, page, pageSize)

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.loadSeq {
		return nil
	}
	if err != nil {
		t.loadErr = err.Error()
		return err
	}
	t.comments = comments
	t.total = total
	t.page = page
	t.loadErr = ""
	return nil
}

// SetChapter re-targets the thread at another chapter and reloads.
func (t *Thread) SetChapter(ctx context.Context, novelID, chapterID string, novelAuthorID model.UserID) error {
	t.mu.Lock()
	t.novelID = novelID
	t.chapterID = chapterID
	t.novelAuthorID = novelAuthorID
	t.comments = nil
	t.total = 0
	t.expanded = make(map[string]bool)
	t.itemErrs = make(map[string]itemError)
	t.pending = nil
	t.mu.Unlock()
	return t.Load(ctx, 1)
}

// SetUser swaps the acting identity and refetches the current page:
// visibility of delete controls depends on who is looking.
func (t *Thread) SetUser(ctx context.Context, user *model.User) error {
	t.mu.Lock()
	t.user = user
	page := t.page
	t.mu.Unlock()
	return t.Load(ctx, page)
}

// Post submits a top-level comment. The new comment's position is
// decided by the server, so the page is refetched rather than patched.
func (t *Thread) Post(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	t.mu.Lock()
	user := t.user
	novelID, chapterID, page := t.novelID, t.chapterID, t.page
	t.mu.Unlock()
	if user == nil {
		return ErrLoginRequired
	}

	if err := t.api.CreateComment(ctx, content, novelID, chapterID); err != nil {
		return err
	}

	t.mu.Lock()
	t.note = "comment posted"
	t.noteExpires = t.now().Add(noteTTL)
	t.mu.Unlock()

	return t.Load(ctx, page)
}

// Reply submits a reply under parentCommentID. replyTo marks a reply
// aimed at another reply's author; it still lands in the same parent's
// reply list. On success the parent is forced into the expanded state
// so the new reply is visible without an extra click.
func (t *Thread) Reply(ctx context.Context, parentCommentID, content string, replyTo model.UserID) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}
	t.mu.Lock()
	user := t.user
	novelID, chapterID, page := t.novelID, t.chapterID, t.page
	t.mu.Unlock()
	if user == nil {
		return ErrLoginRequired
	}

	if err := t.api.CreateReply(ctx, content, novelID, parentCommentID, chapterID, replyTo); err != nil {
		return err
	}

	t.mu.Lock()
	t.expanded[parentCommentID] = true
	t.mu.Unlock()

	return t.Load(ctx, page)
}

// ToggleLike likes or unlikes itemID based on whether the acting user
// is currently in its liker set; a like is never issued while already
// liked, and vice versa. On success the liker set and count come from
// the server's response, never from local arithmetic, so concurrent
// likers cannot cause drift.
func (t *Thread) ToggleLike(ctx context.Context, itemID string) error {
	t.mu.Lock()
	user := t.user
	if user == nil {
		t.mu.Unlock()
		return ErrLoginRequired
	}
	likes, found := t.likerSetLocked(itemID)
	t.mu.Unlock()
	if !found {
		return ErrItemNotFound
	}

	var (
		newLikes []model.UserID
		count    int
		err      error
	)
	if model.Liked(likes, user.ID) {
		newLikes, count, err = t.api.Unlike(ctx, itemID)
	} else {
		newLikes, count, err = t.api.Like(ctx, itemID)
	}
	if err != nil {
		log.Warn("failed to toggle like", zap.String("item", itemID), zap.Error(err))
		return err
	}

	t.mu.Lock()
	t.applyLikesLocked(itemID, newLikes, count)
	t.mu.Unlock()
	return nil
}

func (t *Thread) likerSetLocked(itemID string) ([]model.UserID, bool) {
	for i := range t.comments {
		if t.comments[i].ID == itemID {
			return t.comments[i].Likes, true
		}
		for j := range t.comments[i].Replies {
			if t.comments[i].Replies[j].ID == itemID {
				return t.comments[i].Replies[j].Likes, true
			}
		}
	}
	return nil, false
}

func (t *Thread) applyLikesLocked(itemID string, likes []model.UserID, count int) {
	for i := range t.comments {
		if t.comments[i].ID == itemID {
			t.comments[i].Likes = likes
			t.comments[i].LikeCount = count
			return
		}
		for j := range t.comments[i].Replies {
			if t.comments[i].Replies[j].ID == itemID {
				t.comments[i].Replies[j].Likes = likes
				t.comments[i].Replies[j].LikeCount = count
				return
			}
		}
	}
}

// CanDelete exposes the permission rule for the thread's novel.
func (t *Thread) CanDelete(author model.UserID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return CanDelete(t.user, author, t.novelAuthorID)
}

// RequestDelete is step one of deletion. Without permission it leaves
// a transient inline error on that item only and opens no dialog; with
// permission it records the pending target and reports that the
// confirmation dialog should open. No network call happens here.
func (t *Thread) RequestDelete(target DeleteTarget) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	author, found := t.authorOfLocked(target)
	if !found {
		t.itemErrs[target.ID] = itemError{msg: ErrItemNotFound.Error(), expires: t.now().Add(noteTTL)}
		return false
	}
	if !CanDelete(t.user, author, t.novelAuthorID) {
		t.itemErrs[target.ID] = itemError{
			msg:     "you do not have permission to delete this",
			expires: t.now().Add(noteTTL),
		}
		return false
	}
	t.pending = &target
	return true
}

func (t *Thread) authorOfLocked(target DeleteTarget) (model.UserID, bool) {
	for i := range t.comments {
		if target.Kind == KindComment {
			if t.comments[i].ID == target.ID {
				return t.comments[i].User.ID, true
			}
			continue
		}
		if t.comments[i].ID != target.ParentID {
			continue
		}
		for j := range t.comments[i].Replies {
			if t.comments[i].Replies[j].ID == target.ID {
				return t.comments[i].Replies[j].User.ID, true
			}
		}
	}
	return "", false
}

// PendingDelete returns the target awaiting confirmation, nil when no
// dialog is open.
func (t *Thread) PendingDelete() *DeleteTarget {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

func (t *Thread) CancelDelete() {
	t.mu.Lock()
	t.pending = nil
	t.mu.Unlock()
}

// ConfirmDelete is step two: the actual remote delete. The dialog
// closes whatever the outcome. A deleted comment leaves the page array
// and decrements the total (floored at zero); a deleted reply only
// leaves its parent's reply list, because the total tracks top-level
// comments alone.
func (t *Thread) ConfirmDelete(ctx context.Context) error {
	t.mu.Lock()
	target := t.pending
	t.pending = nil
	t.mu.Unlock()
	if target == nil {
		return nil
	}

	if err := t.api.DeleteComment(ctx, target.ID); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if target.Kind == KindComment {
		for i := range t.comments {
			if t.comments[i].ID == target.ID {
				t.comments = append(t.comments[:i], t.comments[i+1:]...)
				break
			}
		}
		if t.total > 0 {
			t.total--
		}
		return nil
	}
	for i := range t.comments {
		if t.comments[i].ID != target.ParentID {
			continue
		}
		replies := t.comments[i].Replies
		for j := range replies {
			if replies[j].ID == target.ID {
				t.comments[i].Replies = append(replies[:j], replies[j+1:]...)
				break
			}
		}
		break
	}
	return nil
}

// # Pagination

func (t *Thread) TotalPages() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return (t.total + t.pageSize - 1) / t.pageSize
}

// ShowPagination reports whether page controls should render at all.
func (t *Thread) ShowPagination() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total > t.pageSize
}

// # Reply visibility

func (t *Thread) ToggleReplies(commentID string) {
	t.mu.Lock()
	t.expanded[commentID] = !t.expanded[commentID]
	t.mu.Unlock()
}

func (t *Thread) Expanded(commentID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expanded[commentID]
}

// # Transient state

// ItemError returns the inline error for one item, "" once expired.
func (t *Thread) ItemError(itemID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ie, ok := t.itemErrs[itemID]
	if !ok {
		return ""
	}
	if t.now().After(ie.expires) {
		delete(t.itemErrs, itemID)
		return ""
	}
	return ie.msg
}

// Note returns the transient success acknowledgment, "" once expired.
func (t *Thread) Note() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.note == "" || t.now().After(t.noteExpires) {
		t.note = ""
		return ""
	}
	return t.note
}

// # Accessors

func (t *Thread) Comments() []model.Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

func (t *Thread) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

func (t *Thread) Page() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

func (t *Thread) LoadError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadErr
}
