package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier hashes and checks passwords with bcrypt.
type PasswordVerifier struct {
	cost int
}

// NewPasswordVerifier uses bcrypt.DefaultCost when cost is out of range.
func NewPasswordVerifier(cost int) *PasswordVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordVerifier{cost: cost}
}

func (v *PasswordVerifier) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), v.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrVerifierMalfunction, err)
	}
	return string(hash), nil
}

// Verify returns (false, nil) for a wrong password and ErrVerifierMalfunction
// when the stored hash cannot be used at all.
func (v *PasswordVerifier) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrVerifierMalfunction, err)
	}
}
