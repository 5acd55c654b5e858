package utilities

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type Claims struct {
	UserID    string `json:"uid"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

var jwtKey = []byte("events-planner-dev-secret")

// SetJWTSecret overrides the signing key. Called once from main with the
// configured secret.
func SetJWTSecret(secret string) {
	if secret != "" {
		jwtKey = []byte(secret)
	}
}

func GenerateJWT(userID, role, email, name, sessionID string) (string, time.Time, error) {
	expirationTime := time.Now().Add(5 * time.Hour)
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		Email:     email,
		Name:      name,
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey)
	if err != nil {
		return "", time.Now(), err
	}
	return tokenString, expirationTime, nil
}

func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
