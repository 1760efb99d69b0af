package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"venuedesk/internal/bookings/service"
	apperrors "venuedesk/pkg/errors"
	httputil "venuedesk/pkg/http"
	"venuedesk/pkg/logger"
	"venuedesk/pkg/middleware"
	"venuedesk/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, auth *middleware.Authenticator, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type statusResponse struct {
	Status bool `json:"status"`
}

type availabilityResponse struct {
	Availability bool `json:"availability"`
}

type specificRequest struct {
	VenueID   string `json:"venue_id"`
	EventDate string `json:"eventDate"`
	Partition string `json:"partition"`
}

type checkAvailabilityRequest struct {
	PropertyID string `json:"propertyId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, statusResponse{Status: true}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) CreateInquiry(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, "CreateInquiry", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.CreateInquiry(r.Context(), &booking); err != nil {
		h.writeError(w, "CreateInquiry", err)
		return
	}

	if err := httputil.WriteCreated(w, statusResponse{Status: true}); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateInquiry", "error", err)
	}
}

func (h *BookingHandler) ListConfirmed(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.ListConfirmedForAccount(r.Context(), ps.ByName("accountId"))
	if err != nil {
		h.writeError(w, "ListConfirmed", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListConfirmed", "error", err)
	}
}

func (h *BookingHandler) ListInquiries(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookings, err := h.service.ListInquiriesForAccount(r.Context(), ps.ByName("accountId"))
	if err != nil {
		h.writeError(w, "ListInquiries", err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListInquiries", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		h.writeError(w, "Cancel", apperrors.Unauthorized("Token not found, access denied"))
		return
	}

	if err := h.service.Cancel(r.Context(), ps.ByName("id"), principal.AccountID); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, statusResponse{Status: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "error", err)
	}
}

// CheckSlot answers the fine-grained single-slot question for one venue
// partition on one day.
func (h *BookingHandler) CheckSlot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req specificRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "CheckSlot", apperrors.InvalidInput("Invalid request body"))
		return
	}

	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		h.writeError(w, "CheckSlot", apperrors.InvalidInput("eventDate must be an RFC3339 timestamp or YYYY-MM-DD date"))
		return
	}

	free, err := h.service.CheckSlot(r.Context(), req.VenueID, req.Partition, eventDate)
	if err != nil {
		h.writeError(w, "CheckSlot", err)
		return
	}

	if err := httputil.WriteSuccess(w, availabilityResponse{Availability: free}); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckSlot", "error", err)
	}
}

// CheckAvailability answers the coarse catalog question: which active
// venues are free anywhere in the window.
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req checkAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "CheckAvailability", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if req.StartDate == "" || req.EndDate == "" {
		h.writeError(w, "CheckAvailability", apperrors.Validation("Missing required fields", map[string]any{
			"errors": missingDateFields(req.StartDate, req.EndDate),
		}))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		h.writeError(w, "CheckAvailability", apperrors.InvalidInput("startDate must be an RFC3339 timestamp or YYYY-MM-DD date"))
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		h.writeError(w, "CheckAvailability", apperrors.InvalidInput("endDate must be an RFC3339 timestamp or YYYY-MM-DD date"))
		return
	}

	report, err := h.service.CheckAvailability(r.Context(), req.PropertyID, startDate, endDate)
	if err != nil {
		h.writeError(w, "CheckAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, report); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func missingDateFields(startDate, endDate string) []map[string]string {
	var fields []map[string]string
	if startDate == "" {
		fields = append(fields, map[string]string{"field": "startDate", "message": "Select Start Date"})
	}
	if endDate == "" {
		fields = append(fields, map[string]string{"field": "endDate", "message": "Select End Date"})
	}
	return fields
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/booking", h.auth.Require(h.Create))
	router.GET("/api/booking/:accountId", h.auth.Require(h.ListConfirmed))
	router.POST("/api/booking/cancel/:id", h.auth.Require(h.Cancel))
	router.POST("/api/booking/specific", h.CheckSlot)
	router.POST("/api/booking/check_availability", h.CheckAvailability)
	router.POST("/api/inquiry", h.CreateInquiry)
	router.GET("/api/inquiry/:accountId", h.auth.Require(h.ListInquiries))
}
