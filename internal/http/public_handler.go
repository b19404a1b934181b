package http

import (
	"net/http"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

const (
	notFoundPage    = "<!DOCTYPE html><html><head><title>Page not found</title></head><body><h1>Page not found</h1></body></html>"
	unavailablePage = "<!DOCTYPE html><html><head><title>Page unavailable</title></head><body><h1>This page is temporarily unavailable</h1></body></html>"
)

// PublicHandler serves the pages visitors see. None of its routes need an owner.
type PublicHandler struct {
	templates domain.TemplateService
	campaigns domain.CampaignService
	version   string
	logger    logger.Logger
}

func NewPublicHandler(templates domain.TemplateService, campaigns domain.CampaignService, version string, logger logger.Logger) *PublicHandler {
	return &PublicHandler{
		templates: templates,
		campaigns: campaigns,
		version:   version,
		logger:    logger,
	}
}

func (h *PublicHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /builder-preview/{slug}", h.handleBuilderPreview)
	mux.HandleFunc("GET /view/{token}", h.handleView)
	mux.HandleFunc("GET /health", h.handleHealth)
}

// handleBuilderPreview renders a template by slug, personalized from p_ query parameters
func (h *PublicHandler) handleBuilderPreview(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	pc := domain.PersonalizationFromQuery(r.URL.Query())

	html, err := h.templates.RenderPreview(r.Context(), slug, pc)
	if err != nil {
		h.writePageError(w, err, "slug", slug)
		return
	}
	writeHTML(w, http.StatusOK, html)
}

// handleView renders the personalized page a campaign link points to
func (h *PublicHandler) handleView(w http.ResponseWriter, r *http.Request) {
	html, err := h.campaigns.RenderPersonalizedPage(r.Context(), r.PathValue("token"))
	if err != nil {
		h.writePageError(w, err, "path", "/view")
		return
	}
	writeHTML(w, http.StatusOK, html)
}

func (h *PublicHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *PublicHandler) writePageError(w http.ResponseWriter, err error, key, value string) {
	if domain.IsNotFound(err) {
		writeHTML(w, http.StatusNotFound, notFoundPage)
		return
	}
	h.logger.WithFields(map[string]interface{}{
		"error": err.Error(),
		key:     value,
	}).Error("Failed to render public page")
	writeHTML(w, http.StatusInternalServerError, unavailablePage)
}
