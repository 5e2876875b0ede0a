package logic

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenType = "bearer"

// issueToken signs an HS256 access token carrying the account email.
func issueToken(secret string, expireSeconds int64, email string) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"iat":   now,
		"exp":   now + expireSeconds,
		"email": email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
