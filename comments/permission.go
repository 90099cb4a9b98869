package comments

import "novelreader/model"

// CanDelete applies identically to comments and replies: the author,
// an administrator, or the novel's creator may delete. Identities are
// already normalized to model.UserID at the decoding boundary, so the
// comparison here is never field-name-sensitive. Recomputed per check,
// never cached, so it cannot go stale across login/logout.
func CanDelete(user *model.User, author, novelAuthor model.UserID) bool {
	if user == nil || user.ID.IsZero() {
		return false
	}
	if user.IsAdmin {
		return true
	}
	if user.ID == author {
		return true
	}
	return !novelAuthor.IsZero() && user.ID == novelAuthor
}
