package http

import (
	"net/http"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/http/middleware"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

type CampaignHandler struct {
	service domain.CampaignService
	logger  logger.Logger
}

func NewCampaignHandler(service domain.CampaignService, logger logger.Logger) *CampaignHandler {
	return &CampaignHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CampaignHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/campaigns.list", middleware.RequireOwner(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/campaigns.create", middleware.RequireOwner(http.HandlerFunc(h.handleCreate)))
}

func (h *CampaignHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	campaigns, err := h.service.ListCampaigns(r.Context(), ownerID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "list campaigns")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"campaigns": campaigns,
	})
}

func (h *CampaignHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateCampaignRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	campaign, err := h.service.CreateCampaign(r.Context(), ownerID(r), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "create campaign")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"campaign": campaign,
	})
}
