package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("token is invalid or expired")
	ErrWrongTokenType = errors.New("token has wrong type")
)

// TokenClaims are carried by both access and refresh tokens. SessionID points
// at the refresh session row; the JWT ID of a refresh token must match the
// one stored on that row.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	SessionID uint   `json:"sid"`
	jwt.StandardClaims
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	Secret          []byte
	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
}

func NewTokenIssuer(secret string, accessLifetime, refreshLifetime time.Duration) *TokenIssuer {
	return &TokenIssuer{
		Secret:          []byte(secret),
		AccessLifetime:  accessLifetime,
		RefreshLifetime: refreshLifetime,
	}
}

// NewTokenID returns a fresh JWT ID.
func NewTokenID() string {
	return uuid.New().String()
}

// Issue signs a token of the given type. jti may be empty for access tokens.
func (i *TokenIssuer) Issue(userID uint, username string, sessionID uint, tokenType, jti string) (string, time.Time, error) {
	lifetime := i.AccessLifetime
	if tokenType == TokenTypeRefresh {
		lifetime = i.RefreshLifetime
	}
	if jti == "" {
		jti = NewTokenID()
	}

	now := time.Now()
	expiresAt := now.Add(lifetime)
	claims := TokenClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			Id:        jti,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign %s token: %w", tokenType, err)
	}
	return token, expiresAt, nil
}

// Parse verifies signature, expiry and type of a token.
func (i *TokenIssuer) Parse(tokenString, tokenType string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.Secret, nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
