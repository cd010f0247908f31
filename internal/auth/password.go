package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the cost `gamebot hash-password` uses for account hashes.
const bcryptCost = 10

// HashPassword generates a bcrypt hash for the accounts section of the config.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword compares a bcrypt hashed password with its plaintext version.
func ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// CheckAccounts reports the first account whose configured hash is not a
// bcrypt hash, so a mistyped config fails at startup instead of at login.
func CheckAccounts(accounts map[string]string) error {
	for name, hash := range accounts {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return fmt.Errorf("account %q: invalid password hash: %w", name, err)
		}
		if err := ValidateNick(name); err != nil {
			return fmt.Errorf("account %q: %w", name, err)
		}
	}
	return nil
}
