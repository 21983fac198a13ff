package auth

import "github.com/haianhng/cafepos-backend/pkg/db/models"

// LoginInput carries credentials plus the caller's IP for throttling.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// TokenPair is the access/refresh pair handed to clients on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult pairs the minted tokens with the signed-in account.
type LoginResult struct {
	TokenPair
	User *models.User `json:"user"`
}

// RefreshInput rotates a session. The access token may be expired, the
// refresh token must not be.
type RefreshInput struct {
	AccessToken  string
	RefreshToken string
}
