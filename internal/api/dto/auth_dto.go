package dto

// TokenRequest is the form-encoded login payload; username carries the email.
type TokenRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// TokenResponse is the bearer token envelope.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
