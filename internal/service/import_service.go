package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/luxor-creek/Personalized-App/internal/domain"
	"github.com/luxor-creek/Personalized-App/internal/service/importer"
	"github.com/luxor-creek/Personalized-App/pkg/cache"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
	"github.com/luxor-creek/Personalized-App/pkg/tracing"
)

const defaultImportSessionTTL = 30 * time.Minute

// ImportServiceConfig configures import sessions
type ImportServiceConfig struct {
	Pipeline   *importer.Config
	SessionTTL time.Duration
}

type importSession struct {
	ownerID  string
	pipeline *importer.Pipeline
}

// ImportService keeps one import pipeline per session. Sessions live in
// memory and expire after SessionTTL without activity.
type ImportService struct {
	sessions  cache.Store[*importSession]
	templates domain.TemplateRepository
	campaigns domain.CampaignService
	composer  *pageComposer
	fetcher   importer.SheetFetcher
	cfg       ImportServiceConfig
	logger    logger.Logger
}

func NewImportService(
	templates domain.TemplateRepository,
	campaigns domain.CampaignService,
	variables domain.VariableService,
	renderer domain.PageRenderer,
	fetcher importer.SheetFetcher,
	cfg ImportServiceConfig,
	logger logger.Logger,
) *ImportService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultImportSessionTTL
	}
	return &ImportService{
		sessions:  cache.NewInMemoryStore[*importSession](time.Minute, cache.WithSlidingExpiry()),
		templates: templates,
		campaigns: campaigns,
		composer:  newPageComposer(variables, renderer, logger),
		fetcher:   fetcher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Close stops the session sweeper
func (s *ImportService) Close() {
	s.sessions.Stop()
}

func (s *ImportService) StartImport(ctx context.Context, ownerID string) (*domain.ImportSnapshot, error) {
	opts := []importer.Option{importer.WithConfig(s.cfg.Pipeline)}
	if s.fetcher != nil {
		opts = append(opts, importer.WithSheetFetcher(s.fetcher))
	}
	sess := &importSession{ownerID: ownerID, pipeline: importer.NewPipeline(opts...)}
	id := uuid.New().String()
	s.sessions.Set(id, sess, s.cfg.SessionTTL)

	s.logger.WithFields(map[string]interface{}{
		"owner_id":   ownerID,
		"session_id": id,
	}).Debug("Started import session")
	return s.snapshot(id, sess), nil
}

func (s *ImportService) GetImport(ctx context.Context, ownerID, sessionID string) (*domain.ImportSnapshot, error) {
	sess, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(sessionID, sess), nil
}

func (s *ImportService) CancelImport(ctx context.Context, ownerID, sessionID string) error {
	sess, err := s.session(ownerID, sessionID)
	if err != nil {
		return err
	}
	sess.pipeline.Reset()
	s.sessions.Delete(sessionID)
	return nil
}

func (s *ImportService) ChooseSource(ctx context.Context, ownerID, sessionID string, source domain.ImportSource) (*domain.ImportSnapshot, error) {
	return s.apply(ownerID, sessionID, func(p *importer.Pipeline) error {
		return p.ChooseSource(source)
	})
}

func (s *ImportService) UploadFile(ctx context.Context, ownerID, sessionID, filename string, size int64, body io.Reader) (*domain.ImportSnapshot, error) {
	snap, err := s.apply(ownerID, sessionID, func(p *importer.Pipeline) error {
		return p.IngestFile(ctx, size, body)
	})
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"session_id": sessionID,
			"filename":   filename,
		}).Warn(fmt.Sprintf("Import upload rejected: %v", err))
	}
	return snap, err
}

func (s *ImportService) FetchSheet(ctx context.Context, ownerID, sessionID, sheetURL string) (snap *domain.ImportSnapshot, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ImportService", "FetchSheet")
	defer func() { tracing.EndSpan(span, err) }()

	snap, err = s.apply(ownerID, sessionID, func(p *importer.Pipeline) error {
		return p.FetchSheet(ctx, sheetURL)
	})
	if err != nil {
		s.logger.WithField("session_id", sessionID).Warn(fmt.Sprintf("Sheet import failed: %v", err))
	}
	return snap, err
}

func (s *ImportService) MapColumn(ctx context.Context, ownerID, sessionID string, field domain.ContactField, column string) (*domain.ImportSnapshot, error) {
	return s.apply(ownerID, sessionID, func(p *importer.Pipeline) error {
		return p.MapColumn(field, column)
	})
}

func (s *ImportService) Back(ctx context.Context, ownerID, sessionID string) (*domain.ImportSnapshot, error) {
	return s.apply(ownerID, sessionID, func(p *importer.Pipeline) error {
		return p.Back()
	})
}

func (s *ImportService) GoToPreview(ctx context.Context, ownerID, sessionID string) (*domain.ImportSnapshot, error) {
	return s.apply(ownerID, sessionID, func(p *importer.Pipeline) error {
		return p.ToPreview()
	})
}

func (s *ImportService) SelectPreview(ctx context.Context, ownerID, sessionID string, index int) (*domain.ImportSnapshot, error) {
	return s.apply(ownerID, sessionID, func(p *importer.Pipeline) error {
		return p.SelectPreview(index)
	})
}

// RenderPreview renders templateID for the record selected in the preview step
func (s *ImportService) RenderPreview(ctx context.Context, ownerID, sessionID, templateID string) (html string, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ImportService", "RenderPreview")
	defer func() { tracing.EndSpan(span, err) }()

	sess, err := s.session(ownerID, sessionID)
	if err != nil {
		return "", err
	}
	record, err := sess.pipeline.Selected()
	if err != nil {
		return "", err
	}
	if templateID == "" {
		return "", domain.NewValidationError("template_id is required")
	}
	template, err := s.templates.GetTemplate(ctx, ownerID, templateID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", err
		}
		s.logger.WithField("template_id", templateID).Error(fmt.Sprintf("Failed to get template: %v", err))
		return "", fmt.Errorf("failed to get template: %w", err)
	}
	return s.composer.compose(ctx, template, domain.PersonalizationFromContact(&record))
}

// Commit hands the session's records to a campaign. The session ends on
// success; a batch in which every record failed keeps it for a retry.
func (s *ImportService) Commit(ctx context.Context, ownerID, sessionID, campaignID string) (result *domain.GeneratePagesResult, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ImportService", "Commit")
	defer func() { tracing.EndSpan(span, err) }()

	if campaignID == "" {
		return nil, domain.NewValidationError("campaign_id is required")
	}
	sess, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	err = sess.pipeline.Commit(ctx, importer.CommitFunc(func(ctx context.Context, records []domain.ContactRecord) error {
		var genErr error
		result, genErr = s.campaigns.GeneratePages(ctx, ownerID, campaignID, records)
		if genErr == nil && result.Succeeded == 0 && result.Failed > 0 {
			genErr = &domain.HandOffError{Failed: result.Failed}
		}
		return genErr
	}))
	if err != nil {
		return nil, err
	}
	s.sessions.Delete(sessionID)
	tracing.RecordImportCommit(ctx, result.Succeeded+result.Failed)

	s.logger.WithFields(map[string]interface{}{
		"session_id":  sessionID,
		"campaign_id": campaignID,
		"succeeded":   result.Succeeded,
		"failed":      result.Failed,
	}).Info("Import committed")
	return result, nil
}

func (s *ImportService) apply(ownerID, sessionID string, step func(p *importer.Pipeline) error) (*domain.ImportSnapshot, error) {
	sess, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := step(sess.pipeline); err != nil {
		return nil, err
	}
	return s.snapshot(sessionID, sess), nil
}

// session looks up a live session. Sessions of other owners are reported as missing.
func (s *ImportService) session(ownerID, sessionID string) (*importSession, error) {
	if sessionID == "" {
		return nil, domain.NewValidationError("session_id is required")
	}
	sess, ok := s.sessions.Get(sessionID)
	if !ok || sess.ownerID != ownerID {
		return nil, domain.NewNotFoundError("import session", sessionID)
	}
	return sess, nil
}

func (s *ImportService) snapshot(id string, sess *importSession) *domain.ImportSnapshot {
	snap := sess.pipeline.Snapshot()
	snap.SessionID = id
	return &snap
}
