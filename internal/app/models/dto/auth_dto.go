package dto

// GoogleLoginRequest carries the authorization code from the OAuth
// redirect back to the backend for token exchange.
type GoogleLoginRequest struct {
	Code string `json:"code" binding:"required"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64        `json:"expiresIn" example:"86400"`
	User        UserResponse `json:"user"`
}
