package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func getJWTSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

func GenerateToken(accountID, email, address string) (string, error) {
	if accountID == "" {
		return "", errors.New("empty accountID passed to GenerateToken")
	}
	if address == "" {
		return "", errors.New("empty address passed to GenerateToken")
	}

	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"accountID": accountID,
		"email":     email,
		"address":   address,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenString string) (string, string, string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", "", "", err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", "", errors.New("invalid token claims")
	}

	accountID, _ := claims["accountID"].(string)
	email, _ := claims["email"].(string)
	address, _ := claims["address"].(string)

	return accountID, email, address, nil
}
