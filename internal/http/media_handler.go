package http

import (
	"errors"
	"net/http"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/http/middleware"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// MediaHandler accepts files for image, logo and document sections
type MediaHandler struct {
	service       domain.MediaService
	maxMediaBytes int64
	logger        logger.Logger
}

func NewMediaHandler(service domain.MediaService, maxMediaBytes int64, logger logger.Logger) *MediaHandler {
	if maxMediaBytes <= 0 {
		maxMediaBytes = 10 << 20
	}
	return &MediaHandler{
		service:       service,
		maxMediaBytes: maxMediaBytes,
		logger:        logger,
	}
}

func (h *MediaHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/media.upload", middleware.RequireOwner(http.HandlerFunc(h.handleUpload)))
}

// handleUpload expects template_id, section_id, field and file form fields
func (h *MediaHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxMediaBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeServiceError(w, h.logger, &domain.TooLargeError{Size: tooLarge.Limit + 1, Limit: h.maxMediaBytes}, "upload media")
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to read uploaded file")
		WriteJSONError(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	template, url, err := h.service.UploadSectionMedia(r.Context(), ownerID(r), &domain.UploadMediaRequest{
		TemplateID: r.FormValue("template_id"),
		SectionID:  r.FormValue("section_id"),
		Field:      domain.MediaField(r.FormValue("field")),
		Filename:   header.Filename,
		Size:       header.Size,
		Body:       file,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "upload media")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":      url,
		"template": template,
	})
}
