package stream

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptyUserID = errors.New("stream: user id is required")

// UserClaims are the claims of a client-side user token.
type UserClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type serverClaims struct {
	Server bool `json:"server"`
	jwt.RegisteredClaims
}

// CreateToken signs a user token locally with the API secret. A zero validity
// produces a token without expiry.
func (c *Client) CreateToken(userID string, validity time.Duration) (string, error) {
	if userID == "" {
		return "", ErrEmptyUserID
	}

	now := c.now()
	claims := UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// ParseToken verifies a user token issued by CreateToken.
func (c *Client) ParseToken(tokenString string) (UserClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return UserClaims{}, err
	}

	claims, ok := parsed.Claims.(*UserClaims)
	if !ok || !parsed.Valid {
		return UserClaims{}, jwt.ErrTokenInvalidClaims
	}
	return *claims, nil
}

func newServerToken(secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, serverClaims{Server: true})
	return token.SignedString(secret)
}
