package session

import (
	"encoding/json"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Reason explains a validation verdict.
type Reason string

const (
	ReasonOK        Reason = "ok"
	ReasonMalformed Reason = "malformed"
	ReasonExpired   Reason = "expired"
)

// Validation is the verdict for one token.
type Validation struct {
	Usable bool
	Reason Reason
}

// Validator checks token structure and expiry locally. The signature
// segment is never inspected; the server is the authority on it.
type Validator struct {
	now func() time.Time
}

// NewValidator returns a validator using the wall clock.
func NewValidator() *Validator {
	return &Validator{now: func() time.Time { return time.Now().UTC() }}
}

// NewValidatorWithClock returns a validator with an injected clock.
func NewValidatorWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Validate reports whether token is usable. Malformed: not exactly three
// non-empty dot-separated segments, or a claims segment that does not decode
// to JSON. Expired: an exp claim at or before the current instant. A
// well-formed token without an exp claim is usable.
func (v *Validator) Validate(token string) Validation {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Validation{Reason: ReasonMalformed}
	}
	for _, part := range parts {
		if part == "" {
			return Validation{Reason: ReasonMalformed}
		}
	}

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return Validation{Reason: ReasonMalformed}
	}
	var claims jwt.RegisteredClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Validation{Reason: ReasonMalformed}
	}

	if claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(v.now()) {
		return Validation{Reason: ReasonExpired}
	}
	return Validation{Usable: true, Reason: ReasonOK}
}
