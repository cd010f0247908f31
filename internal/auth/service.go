package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when account/password don't match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidNick is returned when a requested nick doesn't meet constraints.
	ErrInvalidNick = errors.New("invalid nick")
)

// Service provides authentication operations against the configured accounts.
type Service struct {
	accounts  map[string]string
	jwtConfig *JWTConfig
}

// NewService creates a new authentication service. accounts maps account
// names to bcrypt password hashes.
func NewService(accounts map[string]string, jwtConfig *JWTConfig) *Service {
	cp := make(map[string]string, len(accounts))
	for name, hash := range accounts {
		cp[name] = hash
	}
	return &Service{
		accounts:  cp,
		jwtConfig: jwtConfig,
	}
}

// Login validates credentials and returns a JWT token whose nick is the account name.
func (s *Service) Login(_ context.Context, account, password string) (string, error) {
	hash, ok := s.accounts[account]
	if !ok {
		return "", ErrInvalidCredentials
	}

	if errPwd := ComparePassword(hash, password); errPwd != nil {
		return "", ErrInvalidCredentials
	}

	token, err := GenerateToken(s.jwtConfig, account, account)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// Guest returns a guest token. An empty nick gets a random one.
// Account names are reserved and cannot be taken by guests.
func (s *Service) Guest(_ context.Context, nick string) (token, assigned string, err error) {
	nick = strings.TrimSpace(nick)
	if nick == "" {
		suffix, err := generateSessionID()
		if err != nil {
			return "", "", fmt.Errorf("generate guest nick: %w", err)
		}
		nick = "guest-" + suffix[:8]
	}
	if err := ValidateNick(nick); err != nil {
		return "", "", err
	}
	if _, reserved := s.accounts[nick]; reserved {
		return "", "", ErrInvalidNick
	}

	token, err = GenerateToken(s.jwtConfig, nick, "")
	if err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	return token, nick, nil
}

// IssueToken signs a token without checking credentials. Used by the CLI.
func (s *Service) IssueToken(nick, account string) (string, error) {
	if err := ValidateNick(nick); err != nil {
		return "", err
	}
	return GenerateToken(s.jwtConfig, nick, account)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}

// ValidateNick checks length and characters of a nick.
func ValidateNick(nick string) error {
	if len(nick) < 2 || len(nick) > 32 {
		return ErrInvalidNick
	}
	for _, r := range nick {
		if r <= ' ' || r == '#' || r == ':' || r == ',' {
			return ErrInvalidNick
		}
	}
	return nil
}

// generateSessionID generates a random hex string.
func generateSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
