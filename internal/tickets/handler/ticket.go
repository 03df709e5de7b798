package handler

import (
	"encoding/json"
	"net/http"

	"hackportal/internal/auth"
	"hackportal/internal/tickets/repository"
	"hackportal/internal/tickets/service"
	"hackportal/pkg/apperr"
	"hackportal/pkg/httputil"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type TicketHandler struct {
	service  service.TicketService
	verifier *auth.SessionVerifier
	log      *logger.Logger
}

func NewTicketHandler(svc service.TicketService, verifier *auth.SessionVerifier, log *logger.Logger) *TicketHandler {
	return &TicketHandler{
		service:  svc,
		verifier: verifier,
		log:      log,
	}
}

func (h *TicketHandler) RegisterRoutes(router *httprouter.Router) {
	authed := func(next httprouter.Handle) httprouter.Handle {
		return auth.Require(h.verifier, h.log, next)
	}

	router.GET("/api/v1/tickets", authed(h.List))
	router.POST("/api/v1/tickets", authed(h.Create))
	router.GET("/api/v1/tickets/:id", authed(h.GetByID))
	router.PATCH("/api/v1/tickets/:id", authed(h.Update))
	router.DELETE("/api/v1/tickets/:id", authed(h.Delete))
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	var ticket model.Ticket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		h.writeError(w, "Create", apperr.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), id.UID, &ticket); err != nil {
		h.writeError(w, "Create", err)
		return
	}
	if err := httputil.WriteCreated(w, ticket); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := ticketFilter(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	tickets, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}
	if err := httputil.WriteSuccess(w, tickets); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *TicketHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ticket, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}
	if err := httputil.WriteSuccess(w, ticket); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	var update model.TicketUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "Update", apperr.InvalidInput("Invalid request body"))
		return
	}

	isMentor := id.IsMentor() || id.Role == auth.RoleAdmin
	if err := h.service.Update(r.Context(), id.UID, isMentor, ps.ByName("id"), &update); err != nil {
		h.writeError(w, "Update", err)
		return
	}
	if err := httputil.WriteAck(w, "Ticket updated"); err != nil {
		h.log.Error("failed to write ack response", "handler", "Update", "error", err)
	}
}

func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	if err := h.service.Delete(r.Context(), id.UID, ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *TicketHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func ticketFilter(r *http.Request) (repository.TicketFilter, error) {
	var filter repository.TicketFilter

	filter.RequestorID = r.URL.Query().Get("requestorId")

	for name, dst := range map[string]**bool{
		"resolved": &filter.Resolved,
		"taken":    &filter.Taken,
	} {
		if r.URL.Query().Get(name) == "" {
			continue
		}
		v, err := httputil.ParseBoolFlag(r, name)
		if err != nil {
			return filter, err
		}
		*dst = &v
	}

	limit, err := httputil.ParseLimit(r)
	if err != nil {
		return filter, err
	}
	filter.Limit = limit
	return filter, nil
}
