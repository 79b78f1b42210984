package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ecoengage/service/config"
)

const (
	// SignupTokenTTL is the lifetime of tokens issued at sign-up.
	SignupTokenTTL = 10 * 24 * time.Hour
	// SigninTokenTTL is the lifetime of tokens issued at sign-in.
	SigninTokenTTL = 24 * time.Hour
)

// Claims defines the JWT claims carried by every access token. There is no
// revocation path; expiry is the only invalidation mechanism.
type Claims struct {
	Email     string `json:"email"`
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed JWT for the given identity.
func GenerateToken(email, userID, firstName, lastName string, duration time.Duration) (string, error) {
	cfg := config.Get()

	claims := Claims{
		Email:     email,
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates a JWT signature and expiry and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
