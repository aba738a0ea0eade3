// Package security provides JWT session tokens, password hashing and secure
// random generation.
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Session lifetime matches the storefront's remember-me window.
const sessionTokenTTL = 30 * 24 * time.Hour

// SessionClaims is the identity carried by a signed-in request.
type SessionClaims struct {
	UserID string
	Role   string
}

// GenerateSessionToken creates a signed JWT for the given user identity.
func GenerateSessionToken(userID, role, jwtSecret string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(sessionTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ValidateSessionToken verifies the token signature and expiry and returns
// the embedded identity.
func ValidateSessionToken(tokenString, jwtSecret string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, errors.New("token missing subject")
	}

	return &SessionClaims{UserID: userID, Role: role}, nil
}
