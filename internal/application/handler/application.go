package handler

import (
	"encoding/json"
	"net/http"

	"hackportal/internal/application/service"
	"hackportal/internal/auth"
	"hackportal/pkg/apperr"
	"hackportal/pkg/httputil"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ApplicationHandler struct {
	service  service.ApplicationService
	verifier *auth.SessionVerifier
	log      *logger.Logger
}

func NewApplicationHandler(svc service.ApplicationService, verifier *auth.SessionVerifier, log *logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service:  svc,
		verifier: verifier,
		log:      log,
	}
}

func (h *ApplicationHandler) RegisterRoutes(router *httprouter.Router) {
	authed := func(next httprouter.Handle) httprouter.Handle {
		return auth.Require(h.verifier, h.log, next)
	}

	router.GET("/api/v1/application/status", authed(h.Status))
	router.GET("/api/v1/application/questions", authed(h.Questions))
	router.PATCH("/api/v1/application", authed(h.Submit))
}

func (h *ApplicationHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	app, err := h.service.Status(r.Context(), id.UID)
	if err != nil {
		h.writeError(w, "Status", err)
		return
	}
	if err := httputil.WriteSuccess(w, app); err != nil {
		h.log.Error("failed to write success response", "handler", "Status", "error", err)
	}
}

func (h *ApplicationHandler) Questions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	state := model.ApplicationState(r.URL.Query().Get("state"))
	if state == "" {
		h.writeError(w, "Questions", apperr.InvalidInput("state query parameter is required"))
		return
	}

	questions, err := h.service.Questions(r.Context(), state)
	if err != nil {
		h.writeError(w, "Questions", err)
		return
	}
	if err := httputil.WriteSuccess(w, questions); err != nil {
		h.log.Error("failed to write success response", "handler", "Questions", "error", err)
	}
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	var sub service.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.writeError(w, "Submit", apperr.InvalidInput("Invalid request body"))
		return
	}

	app, err := h.service.Submit(r.Context(), id.UID, &sub)
	if err != nil {
		h.writeError(w, "Submit", err)
		return
	}
	if err := httputil.WriteSuccess(w, app); err != nil {
		h.log.Error("failed to write success response", "handler", "Submit", "error", err)
	}
}

func (h *ApplicationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
