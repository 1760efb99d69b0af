package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"venuedesk/internal/accounts/service"
	apperrors "venuedesk/pkg/errors"
	httputil "venuedesk/pkg/http"
	"venuedesk/pkg/logger"
	"venuedesk/pkg/middleware"
	"venuedesk/pkg/model"
)

type AccountHandler struct {
	service service.AccountService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewAccountHandler(service service.AccountService, auth *middleware.Authenticator, log *logger.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type statusResponse struct {
	Status bool `json:"status"`
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, "Register", apperrors.InvalidInput("Invalid request body"))
		return
	}

	token, err := h.service.Register(r.Context(), &input)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteCreated(w, tokenResponse{Token: token}); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "error", err)
	}
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, "Login", apperrors.InvalidInput("Invalid request body"))
		return
	}

	token, err := h.service.Login(r.Context(), &input)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httputil.WriteSuccess(w, tokenResponse{Token: token}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

// Current returns the principal the presented token belongs to, resolved
// from the collection matching the token kind.
func (h *AccountHandler) Current(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		h.writeError(w, "Current", apperrors.Unauthorized("Token not found, access denied"))
		return
	}

	if principal.Kind == service.KindCustomer {
		h.CurrentCustomer(w, r, ps)
		return
	}

	account, err := h.service.GetCurrent(r.Context(), principal.AccountID)
	if err != nil {
		h.writeError(w, "Current", err)
		return
	}

	if err := httputil.WriteSuccess(w, account); err != nil {
		h.log.Error("failed to write success response", "handler", "Current", "error", err)
	}
}

func (h *AccountHandler) CurrentCustomer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		h.writeError(w, "CurrentCustomer", apperrors.Unauthorized("Token not found, access denied"))
		return
	}

	customer, err := h.service.GetCurrentCustomer(r.Context(), principal.AccountID)
	if err != nil {
		h.writeError(w, "CurrentCustomer", err)
		return
	}

	if err := httputil.WriteSuccess(w, customer); err != nil {
		h.log.Error("failed to write success response", "handler", "CurrentCustomer", "error", err)
	}
}

// UpdateProfile lets an account edit its own profile. Editing someone else's
// profile is rejected, not just ignored.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		h.writeError(w, "UpdateProfile", apperrors.Unauthorized("Token not found, access denied"))
		return
	}

	id := ps.ByName("id")
	if principal.AccountID != id {
		h.writeError(w, "UpdateProfile", apperrors.Forbidden("Cannot update another account"))
		return
	}

	var account model.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		h.writeError(w, "UpdateProfile", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.UpdateProfile(r.Context(), id, &account); err != nil {
		h.writeError(w, "UpdateProfile", err)
		return
	}

	if err := httputil.WriteSuccess(w, statusResponse{Status: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateProfile", "error", err)
	}
}

func (h *AccountHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input service.CustomerRegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, "RegisterCustomer", apperrors.InvalidInput("Invalid request body"))
		return
	}

	token, err := h.service.RegisterCustomer(r.Context(), &input)
	if err != nil {
		h.writeError(w, "RegisterCustomer", err)
		return
	}

	if err := httputil.WriteCreated(w, tokenResponse{Token: token}); err != nil {
		h.log.Error("failed to write created response", "handler", "RegisterCustomer", "error", err)
	}
}

func (h *AccountHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *AccountHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/users", h.Register)
	router.PUT("/api/users/:id", h.auth.Require(h.UpdateProfile))
	router.POST("/api/auth", h.Login)
	router.GET("/api/auth", h.auth.Require(h.Current))
	router.GET("/api/auth/customer", h.auth.Require(h.CurrentCustomer))
	router.POST("/api/customer/register", h.RegisterCustomer)
}
