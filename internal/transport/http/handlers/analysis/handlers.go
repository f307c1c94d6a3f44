package analysishandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"skillhub/internal/domain/analysis"
	"skillhub/internal/domain/assessment"
	"skillhub/internal/platform/cache"
	"skillhub/internal/platform/logger"
	"skillhub/internal/transport/http/api"
	"skillhub/internal/transport/http/middleware"
)

type Handler struct {
	Service *analysis.Service
	Log     *logger.Logger
}

func NewHandler(service *analysis.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.With(middleware.RequireAdmin).Get("/admin", h.handleAdminAnalysis)
		r.Get("/distributions", h.handleDistributions)
		r.Get("/rankings", h.handleRankings)
		r.Get("/organization", h.handleOrganizationAnalysis)
		r.Get("/organization/export", h.handleOrganizationExport)
		r.Get("/employees/{email}", h.handleEmployeeAnalysis)
	})
	r.Get("/soft-skills", h.handleSoftSkills)
	r.With(middleware.RequireAdmin).Post("/admin/cache/invalidate", h.handleInvalidateCache)
}

func (h *Handler) handleAdminAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.AdminAnalysis(r.Context())
	if err != nil {
		h.fail(w, r, "admin analysis failed", err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDistributions(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Distributions(r.Context())
	if err != nil {
		h.fail(w, r, "distributions failed", err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRankings(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Rankings(r.Context())
	if err != nil {
		h.fail(w, r, "rankings failed", err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleOrganizationAnalysis(w http.ResponseWriter, r *http.Request) {
	capability := r.URL.Query().Get("capability")
	result, err := h.Service.OrganizationAnalysis(r.Context(), capability)
	if err != nil {
		h.fail(w, r, "organization analysis failed", err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleEmployeeAnalysis(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	result, err := h.Service.EmployeeAnalysis(r.Context(), email)
	if err != nil {
		h.fail(w, r, "employee analysis failed", err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSoftSkills(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.Service.SoftSkills(r.Context())
	if err != nil {
		h.fail(w, r, "soft skills failed", err)
		return
	}
	if catalog == nil {
		catalog = []assessment.SoftSkillDefinition{}
	}
	api.Success(w, catalog, middleware.GetRequestID(r.Context()))
}

type invalidateRequest struct {
	Category string `json:"category"`
}

func (h *Handler) handleInvalidateCache(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.InvalidateCache(r.Context(), req.Category); err != nil {
		if errors.Is(err, cache.ErrUnknownCategory) {
			api.Fail(w, http.StatusBadRequest, "bad_request",
				fmt.Sprintf("unknown category %q, expected all|analysis|skills", req.Category),
				middleware.GetRequestID(r.Context()))
			return
		}
		h.fail(w, r, "cache invalidation failed", err)
		return
	}
	api.Success(w, map[string]string{"invalidated": req.Category}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	requestID := middleware.GetRequestID(r.Context())
	if errors.Is(err, assessment.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
		return
	}
	h.Log.Error(msg, "err", err, "requestId", requestID)
	api.Fail(w, http.StatusInternalServerError, "internal", msg, requestID)
}
