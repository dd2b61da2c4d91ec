package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"parking-api/config"
)

// ErrInvalidCredentials is returned when a username or password does not match.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Issuer checks login credentials and signs HS256 bearer tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	users  map[string]string // username -> bcrypt hash
	now    func() time.Time
}

// NewIssuer builds an Issuer from the auth configuration.
func NewIssuer(cfg config.AuthConfig) *Issuer {
	users := make(map[string]string, len(cfg.Users))
	for _, u := range cfg.Users {
		users[u.Username] = u.PasswordHash
	}
	return &Issuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		users:  users,
		now:    time.Now,
	}
}

// Login verifies the credentials and returns a signed token with its expiry.
func (i *Issuer) Login(username, password string) (string, time.Time, error) {
	hash, ok := i.users[username]
	if !ok || hash == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return i.Issue(username)
}

// Issue signs a token for subject.
func (i *Issuer) Issue(subject string) (string, time.Time, error) {
	now := i.now().UTC()
	exp := now.Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
		ID:        strconv.FormatInt(now.UnixNano(), 36),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses raw and returns its subject.
func (i *Issuer) Verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return "", err
	}
	if !tok.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
