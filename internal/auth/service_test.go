package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestAuthService(t *testing.T) *Service {
	t.Helper()

	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	jwtConfig := &JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}

	return NewService(map[string]string{"alice": hash}, jwtConfig)
}

func TestLogin_IssuesAccountToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("expected login success, got %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Nick != "alice" || claims.Account != "alice" || claims.IsGuest {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "bob", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGuest_AssignsNick(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	token, nick, err := svc.Guest(ctx, "")
	if err != nil {
		t.Fatalf("expected guest success, got %v", err)
	}
	if !strings.HasPrefix(nick, "guest-") {
		t.Fatalf("unexpected guest nick %q", nick)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Nick != nick || claims.Account != "" || !claims.IsGuest {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Trimmed before validation.
	if _, nick, err = svc.Guest(ctx, " bob "); err != nil || nick != "bob" {
		t.Fatalf("expected bob, got %q (%v)", nick, err)
	}
}

func TestGuest_RejectsInvalidOrReservedNick(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	for _, nick := range []string{"a", "two words", "#room", "alice"} {
		if _, _, err := svc.Guest(ctx, nick); !errors.Is(err, ErrInvalidNick) {
			t.Fatalf("nick %q: expected ErrInvalidNick, got %v", nick, err)
		}
	}
}

func TestIssueToken(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.IssueToken("mod", "mod")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Subject != "mod" || claims.Account != "mod" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCheckAccounts(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := CheckAccounts(map[string]string{"boss": hash}); err != nil {
		t.Fatalf("valid accounts rejected: %v", err)
	}
	if err := CheckAccounts(map[string]string{"boss": "plaintext"}); err == nil {
		t.Fatal("expected error for plaintext password")
	}
	if err := CheckAccounts(map[string]string{"#boss": hash}); err == nil {
		t.Fatal("expected error for invalid account name")
	}
}

func TestValidateTokenChecksAudienceAndSubject(t *testing.T) {
	cfg := &JWTConfig{Secret: []byte("secret-key"), Issuer: "gamebot", Audience: "gamebot", TTL: time.Hour}

	other := *cfg
	other.Audience = "elsewhere"
	token, err := GenerateToken(&other, "alice", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateToken(cfg, token); err == nil {
		t.Fatal("expected audience mismatch to fail")
	}

	token, err = GenerateToken(cfg, "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateToken(cfg, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
