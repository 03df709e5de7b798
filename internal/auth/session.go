package auth

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

// CookieName matches what the identity provider sets.
const CookieName = "__session"

// SessionVerifier decodes and authenticates session cookies. The keys must
// match the ones the identity provider signs with.
type SessionVerifier struct {
	sc *securecookie.SecureCookie
}

func NewSessionVerifier(hashKey, blockKey []byte) *SessionVerifier {
	return &SessionVerifier{sc: securecookie.New(hashKey, blockKey)}
}

// Verify extracts the caller identity from the request's session cookie.
func (v *SessionVerifier) Verify(r *http.Request) (Identity, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Identity{}, false
	}

	value := map[string]string{}
	if err := v.sc.Decode(CookieName, c.Value, &value); err != nil {
		return Identity{}, false
	}

	uid := value["uid"]
	if uid == "" {
		return Identity{}, false
	}

	role := Role(value["role"])
	switch role {
	case RoleMentor, RoleAdmin:
	default:
		role = RoleHacker
	}

	return Identity{UID: uid, Role: role}, true
}

// Encode builds a cookie value for an identity. Session issuance lives in
// the identity provider; this exists for the seeder and tests.
func (v *SessionVerifier) Encode(id Identity) (string, error) {
	return v.sc.Encode(CookieName, map[string]string{
		"uid":  id.UID,
		"role": string(id.Role),
	})
}
