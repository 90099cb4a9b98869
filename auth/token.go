package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"novelreader/model"
)

// UserFromToken extracts the acting user's identity from an access
// token. The client only reads claims; signature verification is the
// server's job on every authenticated call.
func UserFromToken(token string) (*model.User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %v", err)
	}

	id := stringClaim(claims, "sub")
	if id == "" {
		id = stringClaim(claims, "id")
	}
	if id == "" {
		return nil, fmt.Errorf("token carries no user id")
	}

	penName := stringClaim(claims, "penName")
	if penName == "" {
		penName = stringClaim(claims, "username")
	}

	return &model.User{
		ID:      model.UserID(id),
		PenName: penName,
		IsAdmin: stringClaim(claims, "role") == "admin",
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
