package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/models"
	"github.com/media-blog/api-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB     *gorm.DB
	Tokens *utils.TokenIssuer
}

func NewAuthController(db *gorm.DB, tokens *utils.TokenIssuer) *AuthController {
	return &AuthController{DB: db, Tokens: tokens}
}

// HashPassword hashes a plain password for storage on models.User.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// ObtainToken exchanges username and password for an access/refresh pair and
// opens a new session.
func (ac *AuthController) ObtainToken(c *gin.Context) {
	var input TokenObtainRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := ac.DB.WithContext(c.Request.Context())

	var user models.User
	if err := db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials"})
		return
	}

	jti := utils.NewTokenID()
	session := models.RefreshToken{
		UserID:         user.ID,
		Token:          jti,
		ExpirationDate: time.Now().Add(ac.Tokens.RefreshLifetime),
	}

	tx := db.Begin()
	if err := tx.Create(&session).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to create session for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}
	if err := tx.Model(&user).Update("last_login", time.Now()).Error; err != nil {
		tx.Rollback()
		log.Printf("Failed to update last login for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	pair, err := ac.issuePair(&user, session.ID, jti)
	if err != nil {
		tx.Rollback()
		log.Printf("Failed to sign tokens for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, pair)
}

// RefreshToken rotates the session: the presented refresh token stops being
// valid and a new pair is returned.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input TokenRefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := ac.Tokens.Parse(input.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
		return
	}

	db := ac.DB.WithContext(c.Request.Context())

	var session models.RefreshToken
	err = db.Preload("User").
		Where("id = ? AND user_id = ?", claims.SessionID, claims.UserID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is blacklisted"})
		return
	}
	if err != nil {
		log.Printf("Failed to load session %d: %v", claims.SessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not refresh token"})
		return
	}

	if session.Token != claims.Id {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is blacklisted"})
		return
	}
	if session.Expired(time.Now()) {
		if err := db.Delete(&session).Error; err != nil {
			log.Printf("Failed to delete expired session %d: %v", session.ID, err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
		return
	}
	if !session.User.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials"})
		return
	}

	// Compare-and-swap on the stored JWT ID so two concurrent refreshes
	// with the same token cannot both succeed.
	jti := utils.NewTokenID()
	result := db.Model(&models.RefreshToken{}).
		Where("id = ? AND token = ?", session.ID, claims.Id).
		Updates(map[string]interface{}{
			"token":           jti,
			"expiration_date": time.Now().Add(ac.Tokens.RefreshLifetime),
		})
	if result.Error != nil {
		log.Printf("Failed to rotate session %d: %v", session.ID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not refresh token"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is blacklisted"})
		return
	}

	pair, err := ac.issuePair(&session.User, session.ID, jti)
	if err != nil {
		log.Printf("Failed to sign tokens for user %d: %v", session.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not refresh token"})
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Logout ends the session of a refresh token. Access tokens of that session
// are rejected from then on.
func (ac *AuthController) Logout(c *gin.Context) {
	var input TokenRefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := ac.Tokens.Parse(input.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
		return
	}

	result := ac.DB.WithContext(c.Request.Context()).Where("id = ? AND token = ?", claims.SessionID, claims.Id).Delete(&models.RefreshToken{})
	if result.Error != nil {
		log.Printf("Failed to delete session %d: %v", claims.SessionID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (ac *AuthController) issuePair(user *models.User, sessionID uint, jti string) (*TokenPairResponse, error) {
	access, _, err := ac.Tokens.Issue(user.ID, user.Username, sessionID, utils.TokenTypeAccess, "")
	if err != nil {
		return nil, err
	}
	refresh, _, err := ac.Tokens.Issue(user.ID, user.Username, sessionID, utils.TokenTypeRefresh, jti)
	if err != nil {
		return nil, err
	}
	return &TokenPairResponse{TokenType: "Bearer", Access: access, Refresh: refresh}, nil
}
