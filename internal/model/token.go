package model

// TokenManager generates and validates access/refresh tokens. Verification
// is pure: no store lookup is needed to check an access token.
type TokenManager interface {
	GenerateAccessToken(userID int64) (string, error)
	GenerateRefreshToken(userID int64) (token string, jti string, err error)
	ParseAccessToken(token string) (int64, error)
	ParseRefreshToken(token string) (userID int64, jti string, err error)
}
