// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidPIN     = errors.New("invalid admin pin")
	ErrInvalidSession = errors.New("invalid session token")
)

// Session lifetimes. A voter session covers one trip through the
// voting booth; an admin session covers an election day.
const (
	VoterSessionTTL = 15 * time.Minute
	AdminSessionTTL = 8 * time.Hour
)

const (
	audienceVoter = "voter"
	audienceAdmin = "admin"
)

// VerifyPIN compares the operator's input against the configured PIN
// in constant time. Hashing both sides first keeps the comparison
// length-independent. An empty configured PIN locks the admin panel
// rather than opening it.
func VerifyPIN(input, configured string) error {
	if configured == "" {
		return ErrInvalidPIN
	}
	a := sha256.Sum256([]byte(input))
	b := sha256.Sum256([]byte(configured))
	if !hmac.Equal(a[:], b[:]) {
		return ErrInvalidPIN
	}
	return nil
}

type voterClaims struct {
	Token     string `json:"tok"`
	VoterName string `json:"name"`
	jwt.RegisteredClaims
}

// IssueVoterSession signs a short-lived session carrying the voter's
// token and roster name. The token never leaves the signed payload;
// the client only echoes the session back.
func IssueVoterSession(secret []byte, token, voterName string) (string, error) {
	now := time.Now()
	claims := voterClaims{
		Token:     token,
		VoterName: voterName,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{audienceVoter},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(VoterSessionTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign voter session: %w", err)
	}
	return signed, nil
}

// ParseVoterSession validates a voter session and returns the token
// and voter name it carries.
func ParseVoterSession(secret []byte, session string) (token, voterName string, err error) {
	var claims voterClaims
	if err := parse(secret, session, audienceVoter, &claims); err != nil {
		return "", "", err
	}
	if claims.Token == "" {
		return "", "", ErrInvalidSession
	}
	return claims.Token, claims.VoterName, nil
}

// IssueAdminSession signs an admin session after a successful PIN
// check.
func IssueAdminSession(secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Audience:  jwt.ClaimStrings{audienceAdmin},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(AdminSessionTTL)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign admin session: %w", err)
	}
	return signed, nil
}

// ParseAdminSession validates an admin session.
func ParseAdminSession(secret []byte, session string) error {
	var claims jwt.RegisteredClaims
	return parse(secret, session, audienceAdmin, &claims)
}

func parse(secret []byte, session, audience string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(session, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if !parsed.Valid {
		return ErrInvalidSession
	}
	return nil
}
