// Package auth issues and verifies the bearer tokens staff use for the
// back-office endpoints.
package auth

import (
	"errors"
	"fmt"
	"labourdesk/backend/internal/config"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// RoleStaff is the only role accepted by the back-office endpoints.
const RoleStaff = "staff"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrForbidden    = errors.New("token does not grant staff access")
)

// StaffClaims are the claims carried by a staff token.
type StaffClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
	now    func() time.Time
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret), now: time.Now}
}

// IssueStaffToken signs an HS256 token for staff member subject valid for ttl.
func (a *Authenticator) IssueStaffToken(subject string, ttl time.Duration) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	if ttl <= 0 {
		ttl = config.StaffTokenTTL
	}

	now := a.now()
	claims := StaffClaims{
		Role: RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    config.StaffTokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseStaffToken verifies signature, issuer, expiry and role and returns
// the claims.
func (a *Authenticator) ParseStaffToken(raw string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(config.StaffTokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleStaff || claims.Subject == "" {
		return nil, ErrForbidden
	}
	return claims, nil
}
