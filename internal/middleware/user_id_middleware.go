package middleware

import (
	gateway_errors "stream-gateway/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	UserIDParam = "user_id"
	userIDKey   = "gateway.user_id"
)

// UserIDFromQuery returns the user_id query parameter, or ErrMissingIdentifier
// when it is absent or empty.
func UserIDFromQuery(c *gin.Context) (string, error) {
	userID := c.Query(UserIDParam)
	if userID == "" {
		return "", gateway_errors.ErrMissingIdentifier
	}
	return userID, nil
}

// RequireUserID rejects requests without a user_id before they reach the
// handler. The identifier is available to handlers through GetUserID.
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := UserIDFromQuery(c)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
