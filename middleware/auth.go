package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/models"
	"github.com/media-blog/api-go/utils"
	"gorm.io/gorm"
)

// AuthMiddleware accepts a Bearer access token whose session is still open
// and whose user is active. Anything else is rejected before the handler runs.
func AuthMiddleware(db *gorm.DB, tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}

		bearerToken := strings.Fields(authHeader)
		if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := tokens.Parse(bearerToken[1], utils.TokenTypeAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		var open int64
		err = db.WithContext(c.Request.Context()).
			Model(&models.RefreshToken{}).
			Joins("JOIN users ON users.id = refresh_tokens.user_id").
			Where("refresh_tokens.id = ? AND users.id = ? AND users.is_active = ?", claims.SessionID, claims.UserID, true).
			Count(&open).Error
		if err != nil {
			log.Printf("Failed to check session %d: %v", claims.SessionID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check credentials"})
			return
		}
		if open == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		utils.SetUser(c, &utils.UserClaims{
			UserID:    claims.UserID,
			Username:  claims.Username,
			SessionID: claims.SessionID,
		})

		c.Next()
	}
}
