package utils

import (
	"github.com/gin-gonic/gin"
)

// UserClaims is the identity resolved from a valid access token.
type UserClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	SessionID uint   `json:"sid"`
}

type contextKey string

const UserContextKey contextKey = "user"

func SetUser(c *gin.Context, user *UserClaims) {
	c.Set(string(UserContextKey), user)
}

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}
