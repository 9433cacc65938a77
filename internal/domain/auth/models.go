package auth

// User is an account allowed to request access tokens.
type User struct {
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	Disabled     bool
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

const TokenTypeBearer = "bearer"
