package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tartil-app/recital-service/internal/models"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims represents the session claims transmitted via the session cookie.
// Role is embedded so handlers can authorize without a user lookup.
type Claims struct {
	jwt.RegisteredClaims
	Name  string  `json:"name"`
	Role  string  `json:"role"`
	Level *string `json:"level,omitempty"`
}

func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin.String()
}

func (c *Claims) IsStudent() bool {
	return c.Role == models.RoleStudent.String()
}

// TokenManager signs and parses HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "recital-service",
	}
}

func (m *TokenManager) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Name:  user.Name,
		Role:  user.Role,
		Level: user.Level,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// TTL reports the configured token lifetime, used for the cookie max age.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}
