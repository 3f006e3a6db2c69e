// Package token validates the opaque credential that authorizes an exam
// attempt. The token is an HS256 JWT binding the taker to one simulator;
// the engine only checks presence, validity, and the simulator match.
// Issuing tokens is the auth collaborator's job (Issue exists for the CLI
// and tests).
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalid  = errors.New("token: invalid")
	ErrMismatch = errors.New("token: simulator mismatch")
)

// Claims extends JWT standard claims with the simulator binding.
type Claims struct {
	jwt.RegisteredClaims
	SimulatorID string `json:"simulator_id"`
}

// Issue creates a signed token authorizing one simulator attempt.
func Issue(secret []byte, simulatorID string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   simulatorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SimulatorID: simulatorID,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims.
func Validate(secret []byte, tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// MatchSimulator checks that the claims authorize the given simulator.
func (c *Claims) MatchSimulator(simulatorID string) error {
	if c.SimulatorID != simulatorID {
		return ErrMismatch
	}
	return nil
}
