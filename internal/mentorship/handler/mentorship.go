package handler

import (
	"encoding/json"
	"net/http"

	"hackportal/internal/auth"
	"hackportal/internal/mentorship/service"
	"hackportal/pkg/apperr"
	"hackportal/pkg/httputil"
	"hackportal/pkg/logger"
	"hackportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type MentorshipHandler struct {
	service  service.MentorshipService
	verifier *auth.SessionVerifier
	log      *logger.Logger
}

func NewMentorshipHandler(svc service.MentorshipService, verifier *auth.SessionVerifier, log *logger.Logger) *MentorshipHandler {
	return &MentorshipHandler{
		service:  svc,
		verifier: verifier,
		log:      log,
	}
}

func (h *MentorshipHandler) RegisterRoutes(router *httprouter.Router) {
	mentor := func(next httprouter.Handle) httprouter.Handle {
		return auth.Require(h.verifier, h.log, next, auth.RoleMentor)
	}
	hacker := func(next httprouter.Handle) httprouter.Handle {
		return auth.Require(h.verifier, h.log, next, auth.RoleHacker)
	}

	router.GET("/api/v1/mentorship/config", auth.Require(h.verifier, h.log, h.GetConfig))

	router.GET("/api/v1/mentorship/mentor/my-mentorships", mentor(h.GetMentorSlots))
	router.GET("/api/v1/mentorship/mentor/my-mentorships/:id", mentor(h.GetMentorSlot))
	router.POST("/api/v1/mentorship/mentor/my-mentorships/:id", mentor(h.AnnotateSlot))

	router.GET("/api/v1/mentorship/hacker/mentors", hacker(h.GetMentors))
	router.GET("/api/v1/mentorship/hacker/mentorships", hacker(h.GetMentorSchedule))
	router.POST("/api/v1/mentorship/hacker/mentorships/book", hacker(h.Book))
	router.POST("/api/v1/mentorship/hacker/mentorships/cancel", hacker(h.Cancel))
	router.GET("/api/v1/mentorship/hacker/my-mentorships", hacker(h.GetMyBookings))
}

func (h *MentorshipHandler) GetConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cfg, err := h.service.Config(r.Context())
	if err != nil {
		h.writeError(w, "GetConfig", err)
		return
	}
	h.writeSuccess(w, "GetConfig", cfg)
}

func (h *MentorshipHandler) GetMentorSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	opts, err := viewOptions(r)
	if err != nil {
		h.writeError(w, "GetMentorSlots", err)
		return
	}

	slots, err := h.service.MentorSlots(r.Context(), id.UID, opts)
	if err != nil {
		h.writeError(w, "GetMentorSlots", err)
		return
	}
	h.writeSuccess(w, "GetMentorSlots", slots)
}

func (h *MentorshipHandler) GetMentorSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	slot, err := h.service.MentorSlot(r.Context(), id.UID, id.IsMentor(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetMentorSlot", err)
		return
	}
	h.writeSuccess(w, "GetMentorSlot", slot)
}

func (h *MentorshipHandler) AnnotateSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	var annotations model.SlotAnnotations
	if err := json.NewDecoder(r.Body).Decode(&annotations); err != nil {
		h.writeError(w, "AnnotateSlot", apperr.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.AnnotateSlot(r.Context(), id.UID, ps.ByName("id"), &annotations); err != nil {
		h.writeError(w, "AnnotateSlot", err)
		return
	}
	if err := httputil.WriteAck(w, "Slot updated"); err != nil {
		h.log.Error("failed to write ack response", "handler", "AnnotateSlot", "error", err)
	}
}

func (h *MentorshipHandler) GetMentors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, err := httputil.ParseLimit(r)
	if err != nil {
		h.writeError(w, "GetMentors", err)
		return
	}

	mentors, err := h.service.Mentors(r.Context(), limit)
	if err != nil {
		h.writeError(w, "GetMentors", err)
		return
	}
	h.writeSuccess(w, "GetMentors", mentors)
}

func (h *MentorshipHandler) GetMentorSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	mentorID := r.URL.Query().Get("mentorId")
	if mentorID == "" {
		h.writeError(w, "GetMentorSchedule", apperr.InvalidInput("mentorId query parameter is required"))
		return
	}

	limit, err := httputil.ParseLimit(r)
	if err != nil {
		h.writeError(w, "GetMentorSchedule", err)
		return
	}

	views, err := h.service.MentorSchedule(r.Context(), mentorID, limit)
	if err != nil {
		h.writeError(w, "GetMentorSchedule", err)
		return
	}
	h.writeSuccess(w, "GetMentorSchedule", views)
}

type bookRequest struct {
	Mentorships []model.BookingRequest `json:"mentorships"`
}

func (h *MentorshipHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Book", apperr.InvalidInput("Invalid request body"))
		return
	}

	n, err := h.service.BookMany(r.Context(), id.UID, req.Mentorships)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	message := "Mentorship slot booked"
	if n > 1 {
		message = "Mentorship slots booked"
	}
	if err := httputil.WriteAck(w, message); err != nil {
		h.log.Error("failed to write ack response", "handler", "Book", "error", err)
	}
}

type cancelRequest struct {
	ID string `json:"id"`
}

func (h *MentorshipHandler) Cancel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Cancel", apperr.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.CancelOne(r.Context(), id.UID, req.ID); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}
	if err := httputil.WriteAck(w, "Booking cancelled"); err != nil {
		h.log.Error("failed to write ack response", "handler", "Cancel", "error", err)
	}
}

func (h *MentorshipHandler) GetMyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, _ := auth.IdentityFrom(r.Context())

	opts, err := viewOptions(r)
	if err != nil {
		h.writeError(w, "GetMyBookings", err)
		return
	}

	views, err := h.service.HackerBookings(r.Context(), id.UID, opts)
	if err != nil {
		h.writeError(w, "GetMyBookings", err)
		return
	}
	h.writeSuccess(w, "GetMyBookings", views)
}

func viewOptions(r *http.Request) (service.ViewOptions, error) {
	var opts service.ViewOptions
	var err error

	if opts.UpcomingOnly, err = httputil.ParseBoolFlag(r, "upcomingOnly"); err != nil {
		return opts, err
	}
	if opts.RecentOnly, err = httputil.ParseBoolFlag(r, "recentOnly"); err != nil {
		return opts, err
	}
	if opts.BookedOnly, err = httputil.ParseBoolFlag(r, "isBooked"); err != nil {
		return opts, err
	}
	if opts.AvailableOnly, err = httputil.ParseBoolFlag(r, "isAvailable"); err != nil {
		return opts, err
	}
	if opts.Limit, err = httputil.ParseLimit(r); err != nil {
		return opts, err
	}
	return opts, nil
}

func (h *MentorshipHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "error", err)
	}
}

func (h *MentorshipHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}
