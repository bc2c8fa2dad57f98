package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims the auth middleware reads from a bearer token.
type TokenClaims struct {
	UserID   string
	Email    string
	Metadata map[string]any // hosted auth tokens carry user_metadata
}

func GenerateJWT(secret []byte, userID, email string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  "authenticated",
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString(secret)
	return signed, exp, err
}

// ParseJWT validates an HS256 token (ours or the hosted auth's) and returns its subject.
func ParseJWT(secret []byte, tokenString string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return TokenClaims{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return TokenClaims{}, errors.New("subject claim missing")
	}
	email, _ := claims["email"].(string)
	meta, _ := claims["user_metadata"].(map[string]any)
	return TokenClaims{UserID: sub, Email: email, Metadata: meta}, nil
}
