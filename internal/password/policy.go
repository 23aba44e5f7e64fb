// Package password validates and hashes user passwords.
package password

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultMinLength is the minimal accepted password length.
const DefaultMinLength = 8

var (
	// ErrWeakPassword matches every policy violation.
	ErrWeakPassword = errors.New("weak password")
	// ErrPasswordRequired is returned for an empty password.
	ErrPasswordRequired = &PolicyError{Reason: "Password is required"}
)

// PolicyError describes why a password was rejected.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string {
	return e.Reason
}

// Is reports any policy violation as ErrWeakPassword.
func (e *PolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Policy checks password strength.
type Policy struct {
	minLength int
}

// NewPolicy creates a policy with the given minimal length.
// Lengths below DefaultMinLength are raised to it.
func NewPolicy(minLength int) *Policy {
	if minLength < DefaultMinLength {
		minLength = DefaultMinLength
	}
	return &Policy{minLength: minLength}
}

// MinLength returns the minimal accepted length in characters.
func (p *Policy) MinLength() int {
	return p.minLength
}

// Validate returns nil for an acceptable password or a *PolicyError.
func (p *Policy) Validate(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < p.minLength {
		return &PolicyError{Reason: fmt.Sprintf("Password must be at least %d characters", p.minLength)}
	}
	return nil
}
