package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-0123456789abcdef"

func signToken(t *testing.T, method jwt.SigningMethod, email string, expiresAt time.Time) string {
	t.Helper()
	claims := UserClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return signed
}

func TestTokenContextAcceptsValidToken(t *testing.T) {
	ctx := NewTokenContext(testSecret)
	token := signToken(t, jwt.SigningMethodHS256, "ada@example.com", time.Now().Add(time.Hour))

	if err := ctx.SetToken(token); err != nil {
		t.Fatalf("set token failed: %v", err)
	}
	if !ctx.IsAuthenticated() {
		t.Fatalf("expected authenticated")
	}
	if got := ctx.CurrentUserEmail(); got != "ada@example.com" {
		t.Fatalf("expected email from claims, got %q", got)
	}
}

func TestTokenContextRejectsExpiredToken(t *testing.T) {
	ctx := NewTokenContext(testSecret)
	token := signToken(t, jwt.SigningMethodHS256, "ada@example.com", time.Now().Add(-time.Minute))

	if err := ctx.SetToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
	if ctx.IsAuthenticated() {
		t.Fatalf("expired token must not authenticate")
	}
}

func TestTokenContextRejectsWrongSecret(t *testing.T) {
	ctx := NewTokenContext("another-secret")
	token := signToken(t, jwt.SigningMethodHS256, "ada@example.com", time.Now().Add(time.Hour))

	if err := ctx.SetToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenContextRejectsWrongSigningMethod(t *testing.T) {
	ctx := NewTokenContext(testSecret)
	token := signToken(t, jwt.SigningMethodHS512, "ada@example.com", time.Now().Add(time.Hour))

	if err := ctx.SetToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for HS512 token, got %v", err)
	}
}

func TestTokenContextRequiresSecret(t *testing.T) {
	ctx := NewTokenContext("")
	if err := ctx.SetToken("anything"); !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing, got %v", err)
	}
}

func TestTokenContextClearToken(t *testing.T) {
	ctx := NewTokenContext(testSecret)
	token := signToken(t, jwt.SigningMethodHS256, "ada@example.com", time.Now().Add(time.Hour))
	if err := ctx.SetToken(token); err != nil {
		t.Fatalf("set token failed: %v", err)
	}

	ctx.ClearToken()
	if ctx.IsAuthenticated() {
		t.Fatalf("expected unauthenticated after clear")
	}
	if got := ctx.CurrentUserEmail(); got != "" {
		t.Fatalf("expected empty email after clear, got %q", got)
	}
}
