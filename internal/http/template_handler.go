package http

import (
	"net/http"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/http/middleware"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// TemplateHandler serves the page builder: templates, their sections and the section palette
type TemplateHandler struct {
	service domain.TemplateService
	logger  logger.Logger
}

func NewTemplateHandler(service domain.TemplateService, logger logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		service: service,
		logger:  logger,
	}
}

type deleteTemplateRequest struct {
	ID string `json:"id"`
}

func (h *TemplateHandler) RegisterRoutes(mux *http.ServeMux) {
	routes := map[string]http.HandlerFunc{
		"/api/sections.catalog":       h.handleCatalog,
		"/api/templates.list":         h.handleList,
		"/api/templates.get":          h.handleGet,
		"/api/templates.create":       h.handleCreate,
		"/api/templates.update":       h.handleUpdate,
		"/api/templates.delete":       h.handleDelete,
		"/api/templates.render":       h.handleRender,
		"/api/sections.add":           h.handleAddSection,
		"/api/sections.updateContent": h.handleUpdateContent,
		"/api/sections.updateStyle":   h.handleUpdateStyle,
		"/api/sections.move":          h.handleMoveSection,
		"/api/sections.duplicate":     h.handleDuplicateSection,
		"/api/sections.delete":        h.handleDeleteSection,
	}
	for pattern, handler := range routes {
		mux.Handle(pattern, middleware.RequireOwner(handler))
	}
}

func (h *TemplateHandler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sections": h.service.Catalog(),
	})
}

func (h *TemplateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	templates, err := h.service.ListTemplates(r.Context(), ownerID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "list templates")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
	})
}

func (h *TemplateHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "Missing template ID", http.StatusBadRequest)
		return
	}

	template, err := h.service.GetTemplate(r.Context(), ownerID(r), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "get template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateTemplateRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	template, err := h.service.CreateTemplate(r.Context(), ownerID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "create template")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.UpdateTemplateRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	template, err := h.service.UpdateTemplate(r.Context(), ownerID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "update template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req deleteTemplateRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing template ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), ownerID(r), req.ID); err != nil {
		writeServiceError(w, h.logger, err, "delete template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"success": true,
	})
}

// handleRender returns the composed HTML of a template for the given values
func (h *TemplateHandler) handleRender(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.RenderTemplateRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	html, err := h.service.RenderTemplate(r.Context(), ownerID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "render template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"html": html,
	})
}

func (h *TemplateHandler) handleAddSection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.AddSectionRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	template, err := h.service.AddSection(r.Context(), ownerID(r), &req)
	h.writeTemplate(w, template, err, "add section")
}

func (h *TemplateHandler) handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	h.updateSection(w, r, "update section content", func(req *domain.UpdateSectionRequest) {
		req.Style = nil
	})
}

func (h *TemplateHandler) handleUpdateStyle(w http.ResponseWriter, r *http.Request) {
	h.updateSection(w, r, "update section style", func(req *domain.UpdateSectionRequest) {
		req.Content = nil
	})
}

// updateSection decodes a patch and narrows it to the half the route edits
func (h *TemplateHandler) updateSection(w http.ResponseWriter, r *http.Request, action string, narrow func(*domain.UpdateSectionRequest)) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.UpdateSectionRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	narrow(&req)

	template, err := h.service.UpdateSection(r.Context(), ownerID(r), &req)
	h.writeTemplate(w, template, err, action)
}

func (h *TemplateHandler) handleMoveSection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.MoveSectionRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	template, err := h.service.MoveSection(r.Context(), ownerID(r), &req)
	h.writeTemplate(w, template, err, "move section")
}

func (h *TemplateHandler) handleDuplicateSection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.SectionRefRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	template, err := h.service.DuplicateSection(r.Context(), ownerID(r), &req)
	h.writeTemplate(w, template, err, "duplicate section")
}

func (h *TemplateHandler) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.SectionRefRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	template, err := h.service.DeleteSection(r.Context(), ownerID(r), &req)
	h.writeTemplate(w, template, err, "delete section")
}

func (h *TemplateHandler) writeTemplate(w http.ResponseWriter, template *domain.PageTemplate, err error, action string) {
	if err != nil {
		writeServiceError(w, h.logger, err, action)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}
