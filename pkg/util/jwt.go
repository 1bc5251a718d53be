package util

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the name of the HTTP-only cookie carrying the session token.
const SessionCookie = "token"

// Claims is the identity carried by a session token.
type Claims struct {
	UserID   string
	Email    string
	Username string
}

// GenerateJWT creates a session token for a given user.
func GenerateJWT(c Claims, secret string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  c.UserID,
		"email":    c.Email,
		"username": c.Username,
		"exp":      time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates a token and extracts the session claims.
func ParseJWT(tokenStr, secret string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, err
	}

	if !token.Valid {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, jwt.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, jwt.ErrTokenMalformed
	}

	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)

	return Claims{
		UserID:   userID,
		Email:    email,
		Username: username,
	}, nil
}

// ExtractToken pulls the session token from the request: the session cookie
// first, then an Authorization bearer header.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}
