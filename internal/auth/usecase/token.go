package usecase

import (
	"errors"
	"time"

	"taskmanager-backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token: the user id plus the standard
// expiry claims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies stateless HS256 bearer tokens. There is no
// revocation list; a token stays valid until it expires.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

func (m *TokenManager) Generate(userID string) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify returns the user id carried by a valid token. Every failure is
// reported as apperror.ErrUnauthorized.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", apperror.New(apperror.ErrUnauthorized, "No token, authorization denied")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperror.New(apperror.ErrUnauthorized, "Token has expired")
		}
		return "", apperror.New(apperror.ErrUnauthorized, "Token is not valid")
	}
	if !token.Valid || claims.UserID == "" {
		return "", apperror.New(apperror.ErrUnauthorized, "Token is not valid")
	}

	return claims.UserID, nil
}
