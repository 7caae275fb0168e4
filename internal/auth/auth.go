// Package auth implements the placeholder admin login: a single static
// credential exchanged for a short-lived session token. It is not a security
// boundary and deliberately has no user store.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrBadToken       = errors.New("invalid token")
)

type Service struct {
	username string
	password string
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(username, password, secret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &Service{
		username: username,
		password: password,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Enabled reports whether a credential is configured at all. With none, the
// API runs open and login is rejected outright.
func (s *Service) Enabled() bool {
	return s != nil && s.username != "" && s.password != ""
}

func (s *Service) Login(username, password string) (string, error) {
	if !s.Enabled() {
		return "", ErrBadCredentials
	}
	if username != s.username || password != s.password {
		return "", ErrBadCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Service) Verify(raw string) error {
	tok, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return ErrBadToken
	}
	if !tok.Valid {
		return ErrBadToken
	}
	return nil
}
