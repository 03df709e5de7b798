package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var (
	testHashKey  = []byte("0123456789abcdef0123456789abcdef")
	testBlockKey = []byte("0123456789abcdef")
)

func requestWithCookie(t *testing.T, v *SessionVerifier, id Identity) *http.Request {
	t.Helper()
	encoded, err := v.Encode(id)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: encoded})
	return r
}

func TestVerifyRoundTrip(t *testing.T) {
	v := NewSessionVerifier(testHashKey, testBlockKey)

	id, ok := v.Verify(requestWithCookie(t, v, Identity{UID: "hacker-1", Role: RoleMentor}))
	if !ok {
		t.Fatal("expected verification to succeed")
	}
	if id.UID != "hacker-1" || id.Role != RoleMentor {
		t.Errorf("identity = %+v", id)
	}
}

func TestVerifyDefaultsUnknownRoleToHacker(t *testing.T) {
	v := NewSessionVerifier(testHashKey, testBlockKey)

	id, ok := v.Verify(requestWithCookie(t, v, Identity{UID: "u1", Role: Role("superuser")}))
	if !ok {
		t.Fatal("expected verification to succeed")
	}
	if id.Role != RoleHacker {
		t.Errorf("role = %s, want %s", id.Role, RoleHacker)
	}
}

func TestVerifyRejectsMissingCookie(t *testing.T) {
	v := NewSessionVerifier(testHashKey, testBlockKey)
	if _, ok := v.Verify(httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Error("expected verification to fail without a cookie")
	}
}

func TestVerifyRejectsForgedCookie(t *testing.T) {
	signer := NewSessionVerifier([]byte("ffffffffffffffffffffffffffffffff"), testBlockKey)
	verifier := NewSessionVerifier(testHashKey, testBlockKey)

	if _, ok := verifier.Verify(requestWithCookie(t, signer, Identity{UID: "u1", Role: RoleHacker})); ok {
		t.Error("expected cookie signed with a different key to be rejected")
	}
}
