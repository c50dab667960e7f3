package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	manager := NewJWTManager(testSecret, "glossary-test", 15*time.Minute)

	token, err := manager.GenerateToken("ops", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Subject != "ops" {
		t.Errorf("expected subject 'ops', got %q", claims.Subject)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("expected role %q, got %q", RoleAdmin, claims.Role)
	}
	if claims.TokenID.String() == "" {
		t.Error("expected token id")
	}
	if time.Until(claims.Expires) <= 0 {
		t.Errorf("expected future expiry, got %v", claims.Expires)
	}
}

func TestJWTManager_TokenIDsAreUnique(t *testing.T) {
	manager := NewJWTManager(testSecret, "glossary-test", time.Minute)

	seen := make(map[string]bool)
	for range 20 {
		token, err := manager.GenerateToken("ops", RoleAdmin)
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}
		claims, err := manager.ValidateToken(token)
		if err != nil {
			t.Fatalf("ValidateToken failed: %v", err)
		}
		id := claims.TokenID.String()
		if seen[id] {
			t.Fatalf("duplicate token id %s", id)
		}
		seen[id] = true
	}
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, "glossary-test", -1*time.Hour)

	token, err := manager.GenerateToken("ops", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = manager.ValidateToken(token)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTManager_ValidateToken_InvalidSignature(t *testing.T) {
	manager1 := NewJWTManager(testSecret, "glossary-test", 15*time.Minute)
	manager2 := NewJWTManager("different-secret-32-chars-long-for-security!!", "glossary-test", 15*time.Minute)

	token, err := manager1.GenerateToken("ops", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := manager2.ValidateToken(token); err == nil {
		t.Fatal("expected error for invalid signature, got nil")
	}
}

func TestJWTManager_ValidateToken_Malformed(t *testing.T) {
	manager := NewJWTManager(testSecret, "glossary-test", 15*time.Minute)

	for _, token := range []string{"not.a.jwt", "invalid-token", "header.payload"} {
		if _, err := manager.ValidateToken(token); err == nil {
			t.Errorf("expected error for malformed token %q, got nil", token)
		}
	}
}

func TestJWTManager_ValidateToken_WrongIssuer(t *testing.T) {
	manager1 := NewJWTManager(testSecret, "glossary-test", 15*time.Minute)
	manager2 := NewJWTManager(testSecret, "wrong-issuer", 15*time.Minute)

	token, err := manager1.GenerateToken("ops", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = manager2.ValidateToken(token)
	if !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Fatalf("expected ErrTokenInvalidIssuer, got %v", err)
	}
}

func TestJWTManager_ValidateToken_EmptyString(t *testing.T) {
	manager := NewJWTManager(testSecret, "glossary-test", 15*time.Minute)

	_, err := manager.ValidateToken("")
	if !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected 'empty' error, got: %v", err)
	}
}

func TestJWTManager_ValidateToken_NoneAlgorithmRejected(t *testing.T) {
	manager := NewJWTManager(testSecret, "glossary-test", 15*time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "ops",
		Issuer:    "glossary-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Fatal("expected error for alg=none token")
	}
}
