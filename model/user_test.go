package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelreader/model"
)

func TestUserRef_UnmarshalNormalizesIdentity(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantID  model.UserID
		wantPen string
	}{
		{"account_shape", `{"id":"u1","penName":"Ana"}`, "u1", "Ana"},
		{"embedded_shape", `{"_id":"u2","username":"ben"}`, "u2", "ben"},
		{"both_prefers_id", `{"id":"u3","_id":"u4","penName":"Cleo"}`, "u3", "Cleo"},
		{"empty", `{}`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref model.UserRef
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &ref))
			assert.Equal(t, tt.wantID, ref.ID)
			assert.Equal(t, tt.wantPen, ref.PenName)
		})
	}
}

func TestLiked(t *testing.T) {
	likes := []model.UserID{"u1", "u2"}

	assert.True(t, model.Liked(likes, "u1"))
	assert.False(t, model.Liked(likes, "u3"))
	assert.False(t, model.Liked(likes, ""))
	assert.False(t, model.Liked(nil, "u1"))
}
