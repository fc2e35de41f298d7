// Package auth provides the authentication primitives of the server:
// signed access tokens, password hashing and the resource ownership policy.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/miniblog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenValidityDuration is the lifetime of an access token. Tokens carry no
// server-side state, so expiry is the only way one becomes unusable.
const TokenValidityDuration = time.Hour

// Claims holds the registered claims plus the subject user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs an HS256 token binding userID with issuance time now
// and expiry now+validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies signature and expiry and returns the embedded
// subject user ID. Expired tokens yield common.ErrTokenExpired, everything
// else that fails to parse yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// RefreshToken verifies the incoming token under the same rules as
// GetUserIDFromToken (expiry included) and mints a fresh token for the same
// subject with a new validity window. The old token stays valid until its own
// expiry; there is no revocation.
func RefreshToken(tokenString string, secretKey []byte, validityDuration time.Duration) (string, error) {
	userID, err := GetUserIDFromToken(tokenString, secretKey)
	if err != nil {
		return "", err
	}
	return GenerateToken(userID, secretKey, validityDuration)
}
