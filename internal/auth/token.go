// ABOUTME: Signed session cookie values using HS256 JWTs
// ABOUTME: Wraps an opaque session ID so tampered cookies are rejected before lookup

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum session secret length in bytes
const MinSecretLength = 16

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
	ErrShortSecret  = fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
)

// CookieSigner signs and verifies the session ID carried by the session cookie
type CookieSigner struct {
	secret []byte
}

// NewCookieSigner creates a signer with the given HMAC secret
func NewCookieSigner(secret []byte) (*CookieSigner, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrShortSecret
	}
	return &CookieSigner{secret: secret}, nil
}

// Sign returns a token carrying sessionID in its "sub" claim
func (s *CookieSigner) Sign(sessionID string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Verify validates the token and returns the session ID from the "sub" claim
func (s *CookieSigner) Verify(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	return claims.Subject, nil
}
