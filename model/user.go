package model

import "encoding/json"

// UserID is the normalized identity of a platform user. All identity
// fields coming off the wire are converted to this type on receipt so
// comparisons are never sensitive to which field name carried the id.
type UserID string

func (id UserID) IsZero() bool {
	return id == ""
}

// User is the authenticated account acting in this client.
type User struct {
	ID      UserID `json:"id"`
	PenName string `json:"penName"`
	IsAdmin bool   `json:"isAdmin"`
}

// UserRef is the author reference embedded in comments and replies.
type UserRef struct {
	ID      UserID
	PenName string
	Avatar  string
}

// The API is inconsistent about the identity field name ("id" on the
// account endpoints, "_id" on embedded comment authors), so decoding
// accepts both and normalizes into ID.
func (u *UserRef) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string `json:"id"`
		AltID    string `json:"_id"`
		PenName  string `json:"penName"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		raw.ID = raw.AltID
	}
	if raw.PenName == "" {
		raw.PenName = raw.Username
	}
	u.ID = UserID(raw.ID)
	u.PenName = raw.PenName
	u.Avatar = raw.Avatar
	return nil
}

func (u UserRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string `json:"id"`
		PenName string `json:"penName"`
		Avatar  string `json:"avatar,omitempty"`
	}{string(u.ID), u.PenName, u.Avatar})
}
