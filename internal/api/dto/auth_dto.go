package dto

// Data Transfer Objects for the signup / token exchange flow

// SignupRequest: payload for requesting a confirmation code
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required,max=150,username"`
}

// TokenRequest: payload for exchanging a confirmation code for an access token
type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: response payload carrying the minted access token
type TokenResponse struct {
	Token string `json:"token"`
}
