package http

import (
	"net/http"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/http/middleware"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// VariableHandler exposes the variable registry
type VariableHandler struct {
	service domain.VariableService
	logger  logger.Logger
}

func NewVariableHandler(service domain.VariableService, logger logger.Logger) *VariableHandler {
	return &VariableHandler{
		service: service,
		logger:  logger,
	}
}

func (h *VariableHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/variables.list", middleware.RequireOwner(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/variables.create", middleware.RequireOwner(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/variables.update", middleware.RequireOwner(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/variables.delete", middleware.RequireOwner(http.HandlerFunc(h.handleDelete)))
}

// handleList returns the built-in variables followed by the owner's
func (h *VariableHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	set, err := h.service.ListVariables(r.Context(), ownerID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "list variables")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"variables": set.All(),
	})
}

func (h *VariableHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateVariableRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	variable, err := h.service.CreateVariable(r.Context(), ownerID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "create variable")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"variable": variable,
	})
}

func (h *VariableHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.UpdateVariableRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	variable, err := h.service.UpdateVariable(r.Context(), ownerID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "update variable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"variable": variable,
	})
}

func (h *VariableHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.DeleteVariableRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if req.ID == "" {
		WriteJSONError(w, "Missing variable ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteVariable(r.Context(), ownerID(r), req.ID); err != nil {
		writeServiceError(w, h.logger, err, "delete variable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"success": true,
	})
}
