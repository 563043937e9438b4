package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	j := NewJWT("my-secret-key")

	accountID := int64(123)
	email := "test@example.com"

	token, err := j.Issue(accountID, email)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	claims, err := j.Verify(token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if claims.AccountID != accountID {
		t.Errorf("Verify() got AccountID %d, want %d", claims.AccountID, accountID)
	}
	if claims.Email != email {
		t.Errorf("Verify() got Email %s, want %s", claims.Email, email)
	}
}

func TestJWT_TamperedToken(t *testing.T) {
	j := NewJWT("my-secret-key")

	token, err := j.Issue(1, "test@example.com")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token format: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + ".invalid-signature"

	if _, err := j.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() accepted tampered signature, err = %v", err)
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := NewJWT("secret-a")
	verifier := NewJWT("secret-b")

	token, err := issuer.Issue(1, "test@example.com")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() accepted token signed with different secret, err = %v", err)
	}
}

func TestJWT_InvalidFormat(t *testing.T) {
	j := NewJWT("my-secret-key")

	for _, bad := range []string{"", "garbage", "invalid.token"} {
		if _, err := j.Verify(bad); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q) accepted malformed token, err = %v", bad, err)
		}
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	// Issue with a TTL already in the past.
	j := &JWT{secret: []byte("my-secret-key"), ttl: -time.Minute}

	token, err := j.Issue(1, "expired@example.com")
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	if _, err := j.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() accepted expired token, err = %v", err)
	}
}
