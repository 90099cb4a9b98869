package api

import "context"

// Login exchanges credentials for an access token. The token is also
// installed on this client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]any{
		"username": username,
		"password": password,
	}
	if err := c.post(ctx, "/auth/login", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", &Error{Kind: KindRemote, Message: "login response missing token"}
	}
	c.SetToken(out.Token)
	return out.Token, nil
}
