package auth

import (
	"net/http"

	"hackportal/pkg/apperr"
	"hackportal/pkg/httputil"
	"hackportal/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// Require wraps a route so it only runs with a verified identity of one of
// the allowed roles. An empty allow list means any authenticated caller.
func Require(v *SessionVerifier, log *logger.Logger, next httprouter.Handle, allowed ...Role) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, ok := v.Verify(r)
		if !ok {
			_ = httputil.WriteError(w, apperr.Unauthorized("Invalid or missing session cookie"))
			return
		}

		if len(allowed) > 0 && !roleAllowed(id.Role, allowed) {
			log.Warn("Role check failed", "uid", id.UID, "role", id.Role, "path", r.URL.Path)
			_ = httputil.WriteError(w, apperr.Forbidden("Insufficient permissions"))
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), id)), ps)
	}
}

func roleAllowed(role Role, allowed []Role) bool {
	for _, a := range allowed {
		if role == a || role == RoleAdmin {
			return true
		}
	}
	return false
}
