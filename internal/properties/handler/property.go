package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"venuedesk/internal/properties/service"
	apperrors "venuedesk/pkg/errors"
	httputil "venuedesk/pkg/http"
	"venuedesk/pkg/logger"
	"venuedesk/pkg/middleware"
	"venuedesk/pkg/model"
)

type PropertyHandler struct {
	service service.PropertyService
	auth    *middleware.Authenticator
	log     *logger.Logger
}

func NewPropertyHandler(service service.PropertyService, auth *middleware.Authenticator, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

type statusResponse struct {
	Status bool `json:"status"`
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var property model.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if property.UserID == "" {
		if principal, ok := middleware.PrincipalFrom(r.Context()); ok {
			property.UserID = principal.AccountID
		}
	}

	if err := h.service.Create(r.Context(), &property); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, statusResponse{Status: true}); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var property model.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("param"), &property); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, statusResponse{Status: true}); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *PropertyHandler) Catalog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	catalog, err := h.service.GetCatalog(r.Context())
	if err != nil {
		h.writeError(w, "Catalog", err)
		return
	}

	if err := httputil.WriteSuccess(w, catalog); err != nil {
		h.log.Error("failed to write success response", "handler", "Catalog", "error", err)
	}
}

func (h *PropertyHandler) ListByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	properties, err := h.service.ListByOwner(r.Context(), ps.ByName("param"))
	if err != nil {
		h.writeError(w, "ListByOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, properties); err != nil {
		h.log.Error("failed to write success response", "handler", "ListByOwner", "error", err)
	}
}

func (h *PropertyHandler) GetSingle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	property, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetSingle", err)
		return
	}

	if err := httputil.WriteSuccess(w, property); err != nil {
		h.log.Error("failed to write success response", "handler", "GetSingle", "error", err)
	}
}

func (h *PropertyHandler) Activate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.setActive(w, r, ps, true, "Activate")
}

func (h *PropertyHandler) Deactivate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.setActive(w, r, ps, false, "Deactivate")
}

func (h *PropertyHandler) setActive(w http.ResponseWriter, r *http.Request, ps httprouter.Params, active bool, name string) {
	var err error
	if active {
		err = h.service.Activate(r.Context(), ps.ByName("id"))
	} else {
		err = h.service.Deactivate(r.Context(), ps.ByName("id"))
	}
	if err != nil {
		h.writeError(w, name, err)
		return
	}

	if err := httputil.WriteSuccess(w, statusResponse{Status: true}); err != nil {
		h.log.Error("failed to write success response", "handler", name, "error", err)
	}
}

func (h *PropertyHandler) AddPackage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var pkg model.Package
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		h.writeError(w, "AddPackage", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if pkg.UserID == "" {
		if principal, ok := middleware.PrincipalFrom(r.Context()); ok {
			pkg.UserID = principal.AccountID
		}
	}

	if err := h.service.AddPackage(r.Context(), &pkg); err != nil {
		h.writeError(w, "AddPackage", err)
		return
	}

	if err := httputil.WriteCreated(w, statusResponse{Status: true}); err != nil {
		h.log.Error("failed to write created response", "handler", "AddPackage", "error", err)
	}
}

func (h *PropertyHandler) ListOwnerPackages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	packages, err := h.service.ListPackagesByOwner(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "ListOwnerPackages", err)
		return
	}

	if err := httputil.WriteSuccess(w, packages); err != nil {
		h.log.Error("failed to write success response", "handler", "ListOwnerPackages", "error", err)
	}
}

func (h *PropertyHandler) ListVenuePackages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	refs, err := h.service.ListVenuePackages(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "ListVenuePackages", err)
		return
	}

	if err := httputil.WriteSuccess(w, refs); err != nil {
		h.log.Error("failed to write success response", "handler", "ListVenuePackages", "error", err)
	}
}

// dispatchGet routes GET /api/property/:param/:id. The first segment cannot
// be a dedicated static route because it shares its position with the owner
// id wildcard, which httprouter does not allow.
func (h *PropertyHandler) dispatchGet(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("param") {
	case "single":
		h.GetSingle(w, r, ps)
	case "packages":
		h.auth.Require(h.ListOwnerPackages)(w, r, ps)
	case "venue-packages":
		h.auth.Require(h.ListVenuePackages)(w, r, ps)
	default:
		h.writeError(w, "dispatchGet", apperrors.NotFound("Resource"))
	}
}

func (h *PropertyHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func (h *PropertyHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/property", h.auth.Require(h.Create))
	router.PUT("/api/property/:param", h.auth.Require(h.Update))
	router.GET("/api/property", h.Catalog)
	router.GET("/api/property/:param", h.auth.Require(h.ListByOwner))
	router.GET("/api/property/:param/:id", h.dispatchGet)
	router.POST("/api/property/deactivate/:id", h.auth.Require(h.Deactivate))
	router.POST("/api/property/activate/:id", h.auth.Require(h.Activate))
	router.POST("/api/property/packages", h.auth.Require(h.AddPackage))
}
