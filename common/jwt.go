package common

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var authJWTSecret string

func InitAuthJWT() {
	authJWTSecret = os.Getenv("JWT_SECRET")
	if authJWTSecret == "" {
		authJWTSecret = "jenai-dev-secret"
		SysLog("JWT_SECRET not set, using insecure development secret")
	}
}

// AuthTokenClaims is the payload carried by every access token.
type AuthTokenClaims struct {
	UserId   int    `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateAuthToken(userId int, username string, role string) (string, error) {
	claims := AuthTokenClaims{
		UserId:   userId,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authJWTSecret))
}

func ParseAuthToken(tokenString string) (*AuthTokenClaims, error) {
	claims := &AuthTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(authJWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
