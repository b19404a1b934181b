package http

import (
	"errors"
	"net/http"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/http/middleware"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// multipartOverhead is the slack allowed on top of the file limit for form framing
const multipartOverhead = 64 << 10

// ImportHandler drives the contact import flow, one session per import
type ImportHandler struct {
	service        domain.ImportService
	maxUploadBytes int64
	logger         logger.Logger
}

func NewImportHandler(service domain.ImportService, maxUploadBytes int64, logger logger.Logger) *ImportHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = domain.DefaultMaxUploadBytes
	}
	return &ImportHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type importSessionRequest struct {
	SessionID string `json:"session_id"`
}

type chooseSourceRequest struct {
	SessionID string              `json:"session_id"`
	Source    domain.ImportSource `json:"source"`
}

type fetchSheetRequest struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type mapColumnRequest struct {
	SessionID string              `json:"session_id"`
	Field     domain.ContactField `json:"field"`
	// Column is empty to clear the mapping
	Column string `json:"column"`
}

type selectPreviewRequest struct {
	SessionID string `json:"session_id"`
	Index     int    `json:"index"`
}

type renderImportPreviewRequest struct {
	SessionID  string `json:"session_id"`
	TemplateID string `json:"template_id"`
}

type commitImportRequest struct {
	SessionID  string `json:"session_id"`
	CampaignID string `json:"campaign_id"`
}

func (h *ImportHandler) RegisterRoutes(mux *http.ServeMux) {
	routes := map[string]http.HandlerFunc{
		"/api/imports.start":        h.handleStart,
		"/api/imports.get":          h.handleGet,
		"/api/imports.cancel":       h.handleCancel,
		"/api/imports.chooseSource": h.handleChooseSource,
		"/api/imports.upload":       h.handleUpload,
		"/api/imports.fetchSheet":   h.handleFetchSheet,
		"/api/imports.map":          h.handleMap,
		"/api/imports.back":         h.handleBack,
		"/api/imports.preview":      h.handlePreview,
		"/api/imports.select":       h.handleSelect,
		"/api/imports.render":       h.handleRender,
		"/api/imports.commit":       h.handleCommit,
	}
	for pattern, handler := range routes {
		mux.Handle(pattern, middleware.RequireOwner(handler))
	}
}

func (h *ImportHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	snapshot, err := h.service.StartImport(r.Context(), ownerID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "start import")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"import": snapshot,
	})
}

func (h *ImportHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		WriteJSONError(w, "Missing session ID", http.StatusBadRequest)
		return
	}

	snapshot, err := h.service.GetImport(r.Context(), ownerID(r), sessionID)
	h.writeSnapshot(w, snapshot, err, "get import")
}

func (h *ImportHandler) handleCancel(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSession(w, r)
	if !ok {
		return
	}

	if err := h.service.CancelImport(r.Context(), ownerID(r), req.SessionID); err != nil {
		writeServiceError(w, h.logger, err, "cancel import")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{
		"success": true,
	})
}

func (h *ImportHandler) handleChooseSource(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req chooseSourceRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	snapshot, err := h.service.ChooseSource(r.Context(), ownerID(r), req.SessionID, req.Source)
	h.writeSnapshot(w, snapshot, err, "choose import source")
}

// handleUpload accepts a multipart form with session_id and file fields
func (h *ImportHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeServiceError(w, h.logger, &domain.TooLargeError{Size: tooLarge.Limit + 1, Limit: h.maxUploadBytes}, "upload import file")
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to read uploaded file")
		WriteJSONError(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	snapshot, err := h.service.UploadFile(r.Context(), ownerID(r), r.FormValue("session_id"), header.Filename, header.Size, file)
	h.writeSnapshot(w, snapshot, err, "upload import file")
}

func (h *ImportHandler) handleFetchSheet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req fetchSheetRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	snapshot, err := h.service.FetchSheet(r.Context(), ownerID(r), req.SessionID, req.URL)
	h.writeSnapshot(w, snapshot, err, "fetch sheet")
}

func (h *ImportHandler) handleMap(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req mapColumnRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	snapshot, err := h.service.MapColumn(r.Context(), ownerID(r), req.SessionID, req.Field, req.Column)
	h.writeSnapshot(w, snapshot, err, "map column")
}

func (h *ImportHandler) handleBack(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSession(w, r)
	if !ok {
		return
	}

	snapshot, err := h.service.Back(r.Context(), ownerID(r), req.SessionID)
	h.writeSnapshot(w, snapshot, err, "go back")
}

func (h *ImportHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSession(w, r)
	if !ok {
		return
	}

	snapshot, err := h.service.GoToPreview(r.Context(), ownerID(r), req.SessionID)
	h.writeSnapshot(w, snapshot, err, "open preview")
}

func (h *ImportHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req selectPreviewRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	snapshot, err := h.service.SelectPreview(r.Context(), ownerID(r), req.SessionID, req.Index)
	h.writeSnapshot(w, snapshot, err, "select preview record")
}

// handleRender renders the selected preview record against a template
func (h *ImportHandler) handleRender(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req renderImportPreviewRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	html, err := h.service.RenderPreview(r.Context(), ownerID(r), req.SessionID, req.TemplateID)
	if err != nil {
		writeServiceError(w, h.logger, err, "render preview")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"html": html,
	})
}

func (h *ImportHandler) handleCommit(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req commitImportRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	result, err := h.service.Commit(r.Context(), ownerID(r), req.SessionID, req.CampaignID)
	if err != nil {
		writeServiceError(w, h.logger, err, "commit import")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
	})
}

func (h *ImportHandler) decodeSession(w http.ResponseWriter, r *http.Request) (importSessionRequest, bool) {
	var req importSessionRequest
	if !requireMethod(w, r, http.MethodPost) {
		return req, false
	}
	if !decodeJSON(w, r, h.logger, &req) {
		return req, false
	}
	return req, true
}

func (h *ImportHandler) writeSnapshot(w http.ResponseWriter, snapshot *domain.ImportSnapshot, err error, action string) {
	if err != nil {
		writeServiceError(w, h.logger, err, action)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"import": snapshot,
	})
}
