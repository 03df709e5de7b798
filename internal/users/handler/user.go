package handler

import (
	"encoding/json"
	"net/http"

	"hackportal/internal/auth"
	"hackportal/internal/users/service"
	"hackportal/pkg/apperr"
	"hackportal/pkg/httputil"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service  service.UserService
	verifier *auth.SessionVerifier
	log      *logger.Logger
}

func NewUserHandler(svc service.UserService, verifier *auth.SessionVerifier, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service:  svc,
		verifier: verifier,
		log:      log,
	}
}

// RegisterRoutes mounts the profile routes. "me" is resolved inside the :id
// handlers because httprouter rejects a static sibling of a wildcard.
func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	authed := func(next httprouter.Handle) httprouter.Handle {
		return auth.Require(h.verifier, h.log, next)
	}

	router.GET("/api/v1/users/:id", authed(h.Get))
	router.PATCH("/api/v1/users/:id", authed(h.Update))
}

// Get returns the caller's own profile for id "me", a trimmed public
// profile for anyone else.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	target := ps.ByName("id")
	var (
		user *model.User
		err  error
	)
	if target == "me" || target == id.UID {
		user, err = h.service.Profile(r.Context(), id.UID)
	} else {
		user, err = h.service.PublicProfile(r.Context(), target)
	}
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}
	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "error", err)
	}
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	target := ps.ByName("id")
	if target != "me" && target != id.UID {
		h.writeError(w, "Update", apperr.Forbidden("You can only update your own profile"))
		return
	}

	var update model.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "Update", apperr.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.UpdateProfile(r.Context(), id.UID, &update); err != nil {
		h.writeError(w, "Update", err)
		return
	}
	if err := httputil.WriteAck(w, "Profile updated"); err != nil {
		h.log.Error("failed to write ack response", "handler", "Update", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
