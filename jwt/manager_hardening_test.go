package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
)

func TestParseRefreshRejectsWrongAlgorithm(t *testing.T) {
	m := newEdManager(t)

	claims := RefreshClaims{
		SID: "sess-1",
		UID: "u1",
		RegisteredClaims: gjwt.RegisteredClaims{
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodHS256, claims).
		SignedString([]byte("secret-secret-secret-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.ParseRefresh(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for algorithm substitution, got %v", err)
	}
}

func TestParseRefreshRejectsNoneAlgorithm(t *testing.T) {
	m := newEdManager(t)

	claims := RefreshClaims{
		SID: "sess-1",
		UID: "u1",
		RegisteredClaims: gjwt.RegisteredClaims{
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodNone, claims).
		SignedString(gjwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.ParseRefresh(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for alg=none, got %v", err)
	}
}

func TestParseRefreshRejectsForeignKey(t *testing.T) {
	m := newEdManager(t)
	other := newEdManager(t)

	token, err := other.CreateRefresh("sess-1", "u1")
	if err != nil {
		t.Fatalf("create refresh: %v", err)
	}

	if _, err := m.ParseRefresh(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for wrong key, got %v", err)
	}
}

func TestParseRefreshRejectsTamperedPayload(t *testing.T) {
	m := newEdManager(t)

	token, err := m.CreateRefresh("sess-1", "u1")
	if err != nil {
		t.Fatalf("create refresh: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	// Flip a byte in the payload; the signature no longer covers it.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.ParseRefresh(tampered); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for tampered payload, got %v", err)
	}
}

func TestParseRefreshRejectsGarbage(t *testing.T) {
	m := newEdManager(t)

	for _, token := range []string{"", "x", "a.b", "a.b.c", "....."} {
		if _, err := m.ParseRefresh(token); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestParseRefreshRejectsWrongIssuer(t *testing.T) {
	pub, priv := newEdKeys(t)
	m, err := NewManager(Config{
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		SigningMethod: MethodEd25519,
		PrivateKey:    priv,
		PublicKey:     pub,
		Issuer:        "gosession",
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	claims := RefreshClaims{
		SID: "sess-1",
		UID: "u1",
		RegisteredClaims: gjwt.RegisteredClaims{
			ExpiresAt: gjwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "someone-else",
		},
	}
	token, err := gjwt.NewWithClaims(gjwt.SigningMethodEdDSA, claims).SignedString(priv)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := m.ParseRefresh(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for wrong issuer, got %v", err)
	}
}
