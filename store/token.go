package store

const settingToken = "auth_token"

// Token returns the saved access token, or "" when logged out.
func (s *Store) Token() (string, error) {
	value, _, err := s.getSetting(settingToken)
	return value, err
}

func (s *Store) SetToken(token string) error {
	return s.setSetting(settingToken, token)
}

func (s *Store) ClearToken() error {
	return s.deleteSetting(settingToken)
}
