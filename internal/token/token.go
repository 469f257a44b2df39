// Package token issues and verifies the signed bearer tokens used by the
// member API. Tokens are self-contained HS256 JWTs; there is no server-side
// session store and no revocation, expiry is the only termination mechanism.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired is returned by Verify when the token's expiry has passed.
	ErrExpired = errors.New("token expired")
	// ErrMalformed is returned by Verify for any structural or signature
	// failure that is not an expiry.
	ErrMalformed = errors.New("malformed token")
)

// Claims is the JWT payload.
type Claims struct {
	MemberID string `json:"memberId"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a symmetric secret. The secret is
// injected from validated configuration; there is no fallback value.
type Service struct {
	secret []byte
	expiry time.Duration
}

func NewService(secret string, expiry time.Duration) *Service {
	return &Service{secret: []byte(secret), expiry: expiry}
}

// Issue produces a signed token embedding the member identifier and email.
func (s *Service) Issue(memberID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		MemberID: memberID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// It distinguishes ErrExpired from ErrMalformed so the transport layer can
// report "Token expired" separately from "Invalid token".
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}
