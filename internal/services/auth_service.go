package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"busfinder/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin = "admin"

// AuthService guards the admin endpoints with one bcrypt-hashed account
// and HS256 tokens.
type AuthService struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TokenTTL     time.Duration
	Now          func() time.Time
}

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 24 * time.Hour
}

// enabled is false until both a password hash and a signing secret are
// configured. While disabled no token is issued or accepted.
func (s AuthService) enabled() bool {
	return strings.TrimSpace(s.PasswordHash) != "" && len(s.Secret) > 0
}

// Login checks the credentials and issues a token.
func (s AuthService) Login(username, password string) (string, time.Time, error) {
	if !s.enabled() {
		return "", time.Time{}, domain.UnauthorizedError{Msg: "admin login disabled"}
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.Username)) != 1 {
		return "", time.Time{}, domain.UnauthorizedError{Msg: "invalid username or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, domain.UnauthorizedError{Msg: "invalid username or password", Err: err}
	}

	issued := s.now()
	exp := issued.Add(s.ttl())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return signed, exp, nil
}

// ParseToken validates raw and returns who it was issued to.
func (s AuthService) ParseToken(raw string) (domain.RequestContext, error) {
	if !s.enabled() {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "admin login disabled"}
	}
	claims := &adminClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.RequestContext{}, domain.UnauthorizedError{Msg: "token expired", Err: err}
		}
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: fmt.Sprintf("invalid token: %v", err), Err: err}
	}
	return domain.RequestContext{Subject: claims.Subject, Role: claims.Role}, nil
}
