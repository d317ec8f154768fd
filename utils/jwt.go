package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"societydesk/models"
)

// GenerateJWT signs a credential asserting {id, name, phone, role} with an
// expiry. The same claim shape is used for all three roles.
func GenerateJWT(p models.PrincipalInfo, secret []byte, expiresInHours int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": p.ID,
		"name":    p.Name,
		"phone":   p.Phone,
		"role":    p.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(expiresInHours) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseJWT validates a signed credential and returns the asserted principal.
// Expired or malformed tokens return an error.
func ParseJWT(tokenString string, secret []byte) (*models.PrincipalInfo, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid token: user_id not found")
	}
	role, ok := claims["role"].(string)
	if !ok || !models.ValidRole(models.Role(role)) {
		return nil, fmt.Errorf("invalid token: unknown role")
	}

	p := &models.PrincipalInfo{
		ID:   int64(idFloat),
		Role: role,
	}
	if name, ok := claims["name"].(string); ok {
		p.Name = name
	}
	if phone, ok := claims["phone"].(string); ok {
		p.Phone = phone
	}
	return p, nil
}
