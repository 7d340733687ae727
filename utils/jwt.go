package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"laundrify/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "laundrify-dev"
	}
	return []byte(secret)
}

// HashToken computes a SHA-256 hash of the token string. Session entries are
// keyed by the hash so raw tokens never land in the store.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// TokenExpiry returns the expiry time encoded in a valid token.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, errors.New("invalid token claims")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("token has no expiry")
	}
	return time.Unix(int64(exp), 0), nil
}
