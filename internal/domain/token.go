package domain

// TokenPair is what credential endpoints return: a short-lived access token
// and the refresh token whose value is now the account's single valid slot.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
