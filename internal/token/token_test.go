package token

import (
	"errors"
	"testing"
	"time"
)

var secret = []byte("test-secret")

func TestIssueValidate(t *testing.T) {
	signed, err := Issue(secret, "sim-7", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := Validate(secret, signed)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.SimulatorID != "sim-7" {
		t.Errorf("SimulatorID = %q, want sim-7", claims.SimulatorID)
	}
	if claims.ID == "" {
		t.Error("missing jti")
	}
	if err := claims.MatchSimulator("sim-7"); err != nil {
		t.Errorf("MatchSimulator: %v", err)
	}
}

func TestMatchSimulatorRejectsOther(t *testing.T) {
	signed, _ := Issue(secret, "sim-7", time.Hour)
	claims, _ := Validate(secret, signed)

	if err := claims.MatchSimulator("sim-8"); !errors.Is(err, ErrMismatch) {
		t.Errorf("MatchSimulator(sim-8) = %v, want ErrMismatch", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, _ := Issue(secret, "sim-7", time.Hour)

	if _, err := Validate([]byte("other"), signed); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate with wrong secret = %v, want ErrInvalid", err)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	signed, _ := Issue(secret, "sim-7", -time.Minute)

	if _, err := Validate(secret, signed); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate of expired token = %v, want ErrInvalid", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := Validate(secret, "not.a.token"); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate of garbage = %v, want ErrInvalid", err)
	}
}
