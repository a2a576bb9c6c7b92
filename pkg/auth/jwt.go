// Package auth issues and verifies the identity tokens that both the REST
// API and the realtime gateway authenticate with.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig represents JWT configuration
type JWTConfig struct {
	SecretKey     string        // Secret key for signing tokens
	TokenTTL      time.Duration // Token time to live
	Issuer        string        // Token issuer
	SigningMethod jwt.SigningMethod
}

// DefaultJWTConfig returns default JWT configuration
func DefaultJWTConfig(secretKey string) *JWTConfig {
	return &JWTConfig{
		SecretKey:     secretKey,
		TokenTTL:      7 * 24 * time.Hour,
		Issuer:        "LingChat",
		SigningMethod: jwt.SigningMethodHS256,
	}
}

// IdentityClaims carries the decoded identity: the opaque user id plus the
// name fields the gateway derives the display name from.
type IdentityClaims struct {
	UserID    string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}

// DisplayName joins the name fields the way the chat UI shows them.
func (c *IdentityClaims) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

// JWTManager handles JWT operations
type JWTManager struct {
	config *JWTConfig
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(config *JWTConfig) *JWTManager {
	if config == nil {
		panic("JWTConfig cannot be nil")
	}
	if config.SecretKey == "" {
		panic("JWTConfig.SecretKey cannot be empty")
	}
	return &JWTManager{config: config}
}

// GenerateToken generates an identity token
func (m *JWTManager) GenerateToken(userID, firstName, lastName string) (string, error) {
	claims := &IdentityClaims{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    m.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(m.config.SigningMethod, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

// ValidateToken validates and parses an identity token
func (m *JWTManager) ValidateToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*IdentityClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
