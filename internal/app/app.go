package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/luxor-creek/Personalized-App/config"
	"github.com/luxor-creek/Personalized-App/internal/database"
	"github.com/luxor-creek/Personalized-App/internal/domain"
	httpHandler "github.com/luxor-creek/Personalized-App/internal/http"
	"github.com/luxor-creek/Personalized-App/internal/http/middleware"
	"github.com/luxor-creek/Personalized-App/internal/render"
	"github.com/luxor-creek/Personalized-App/internal/repository"
	"github.com/luxor-creek/Personalized-App/internal/service"
	"github.com/luxor-creek/Personalized-App/internal/service/importer"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
	"github.com/luxor-creek/Personalized-App/pkg/ratelimiter"
	"github.com/luxor-creek/Personalized-App/pkg/tracing"

	"contrib.go.opencensus.io/integrations/ocsql"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB

	GetTemplateRepository() domain.TemplateRepository
	GetVariableRepository() domain.VariableRepository
	GetCampaignRepository() domain.CampaignRepository

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitTracing() error
	InitDB() error
	InitStorage() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config       *config.Config
	logger       logger.Logger
	db           *sql.DB
	stopDBStats  func()
	mediaStorage domain.MediaStorage

	// Repositories
	templateRepo domain.TemplateRepository
	variableRepo domain.VariableRepository
	campaignRepo domain.CampaignRepository

	// Services
	catalog         *domain.SectionCatalog
	renderer        *render.Renderer
	variableService *service.VariableService
	templateService *service.TemplateService
	campaignService *service.CampaignService
	importService   *service.ImportService
	mediaService    *service.MediaService

	// HTTP handlers
	mux         *http.ServeMux
	server      *http.Server
	rateLimiter *ratelimiter.Limiter
	tracing     *tracing.Provider

	// Server lifecycle, see lifecycle.go
	serverMu        sync.RWMutex
	serverStarted   chan struct{}
	startOnce       sync.Once
	requests        inflight
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	shutdownTimeout time.Duration
}

// Rate limit namespaces
const (
	rateLimitImports = "imports"
	rateLimitPublic  = "public"
)

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMediaStorage replaces the bucket configured in Storage
func WithMediaStorage(storage domain.MediaStorage) AppOption {
	return func(a *App) {
		a.mediaStorage = storage
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing registers the configured OpenCensus exporters and views
func (a *App) InitTracing() error {
	provider, err := tracing.InitTracing(&a.config.Tracing, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.tracing = provider
	return nil
}

// InitDB connects to the database and applies the schema. An injected
// database only gets the schema.
func (a *App) InitDB() error {
	ctx, cancel := context.WithTimeout(a.shutdownCtx, 30*time.Second)
	defer cancel()

	if a.db != nil {
		return database.Migrate(ctx, a.db)
	}

	dbCfg := &a.config.Database
	a.logger.WithFields(map[string]interface{}{
		"host":    dbCfg.Host,
		"port":    dbCfg.Port,
		"user":    dbCfg.User,
		"dbname":  dbCfg.DBName,
		"sslmode": dbCfg.SSLMode,
	}).Info("Connecting to database")

	if err := database.EnsureDatabase(ctx, dbCfg); err != nil {
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := database.Open(ctx, dbCfg, driverName)
	if err != nil {
		return err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	if a.config.Tracing.Enabled {
		a.stopDBStats = ocsql.RecordStats(db, 5*time.Second)
	}

	a.db = db
	return nil
}

// InitStorage sets up the media bucket. Without one, media uploads are not served.
func (a *App) InitStorage() error {
	if a.mediaStorage != nil {
		return nil
	}
	if !a.config.HasStorage() {
		a.logger.Warn("No storage bucket configured, media uploads are disabled")
		return nil
	}

	storage, err := repository.NewS3MediaStorage(repository.S3Config{
		Bucket:        a.config.Storage.Bucket,
		Region:        a.config.Storage.Region,
		Endpoint:      a.config.Storage.Endpoint,
		AccessKey:     a.config.Storage.AccessKey,
		SecretKey:     a.config.Storage.SecretKey,
		PublicBaseURL: a.config.Storage.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize media storage: %w", err)
	}
	a.mediaStorage = storage
	a.logger.WithField("bucket", a.config.Storage.Bucket).Info("Media storage initialized")
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.templateRepo = repository.NewTemplateRepository(a.db)
	a.variableRepo = repository.NewVariableRepository(a.db)
	a.campaignRepo = repository.NewCampaignRepository(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	catalog, err := domain.NewSectionCatalog()
	if err != nil {
		return fmt.Errorf("failed to load section catalog: %w", err)
	}
	a.catalog = catalog

	renderer, err := render.NewRenderer(catalog)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	a.renderer = renderer

	signer, err := service.NewPageTokenSigner([]byte(a.config.Campaign.PageTokenSecret), a.config.Campaign.PageTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize page token signer: %w", err)
	}

	a.variableService = service.NewVariableService(a.variableRepo, a.logger)
	a.templateService = service.NewTemplateService(a.templateRepo, a.variableService, catalog, renderer, a.logger)
	a.campaignService = service.NewCampaignService(
		a.campaignRepo,
		a.templateRepo,
		a.variableService,
		renderer,
		signer,
		service.CampaignServiceConfig{
			PublicURL:   a.config.Campaign.PublicURL,
			Concurrency: a.config.Campaign.Concurrency,
		},
		a.logger,
	)

	importCfg := a.config.Import
	fetcher := importer.NewHTTPSheetFetcher(&http.Client{Timeout: importCfg.SheetFetchTimeout}, importCfg.MaxUploadBytes)
	a.importService = service.NewImportService(
		a.templateRepo,
		a.campaignService,
		a.variableService,
		renderer,
		fetcher,
		service.ImportServiceConfig{
			Pipeline: &importer.Config{
				MaxUploadBytes:    importCfg.MaxUploadBytes,
				PreviewLimit:      importCfg.PreviewLimit,
				SampleRows:        importCfg.SampleRows,
				SheetFetchTimeout: importCfg.SheetFetchTimeout,
			},
			SessionTTL: importCfg.SessionTTL,
		},
		a.logger,
	)

	if a.mediaStorage != nil {
		a.mediaService = service.NewMediaService(a.templateRepo, a.mediaStorage, catalog, a.config.Storage.MaxMediaBytes, a.logger)
	}

	return nil
}

// InitHandlers registers every route on a fresh mux
func (a *App) InitHandlers() error {
	a.mux = http.NewServeMux()

	httpHandler.NewTemplateHandler(a.templateService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewVariableHandler(a.variableService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewCampaignHandler(a.campaignService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewImportHandler(a.importService, a.config.Import.MaxUploadBytes, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewPublicHandler(a.templateService, a.campaignService, a.config.Version, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewConnectionStatsHandler(a.logger, a.db.Stats).RegisterRoutes(a.mux)
	if a.mediaService != nil {
		httpHandler.NewMediaHandler(a.mediaService, a.config.Storage.MaxMediaBytes, a.logger).RegisterRoutes(a.mux)
	}

	if a.rateLimiter == nil {
		a.rateLimiter = ratelimiter.New()
	}
	if n := a.config.RateLimit.ImportsPerMinute; n > 0 {
		a.rateLimiter.SetPolicy(rateLimitImports, n, time.Minute)
	}
	if n := a.config.RateLimit.PublicViewsPerMinute; n > 0 {
		a.rateLimiter.SetPolicy(rateLimitPublic, n, time.Minute)
	}

	return nil
}

// classifyRequest limits uploads and sheet fetches per owner and public
// page renders per client address
func (a *App) classifyRequest(r *http.Request) (string, string, bool) {
	path := r.URL.Path
	switch {
	case path == "/api/imports.upload" || path == "/api/imports.fetchSheet":
		if !a.rateLimiter.HasPolicy(rateLimitImports) {
			return "", "", false
		}
		return rateLimitImports, strings.TrimSpace(r.Header.Get(middleware.OwnerHeader)), true
	case strings.HasPrefix(path, "/view/") || strings.HasPrefix(path, "/builder-preview/"):
		if !a.rateLimiter.HasPolicy(rateLimitPublic) {
			return "", "", false
		}
		return rateLimitPublic, middleware.ClientIP(r), true
	}
	return "", "", false
}

// Handler returns the mux wrapped in the middleware chain
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	if a.rateLimiter != nil {
		handler = middleware.RateLimitMiddleware(a.rateLimiter, a.classifyRequest)(handler)
	}
	handler = a.requests.guard(a.shutdownCtx.Done(), handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	return middleware.CORSMiddleware(a.config.Server.AllowedOrigins)(handler)
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting page builder")

	steps := []func() error{
		a.InitTracing,
		a.InitDB,
		a.InitStorage,
		a.InitRepositories,
		a.InitServices,
		a.InitHandlers,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetTemplateRepository() domain.TemplateRepository {
	return a.templateRepo
}

func (a *App) GetVariableRepository() domain.VariableRepository {
	return a.variableRepo
}

func (a *App) GetCampaignRepository() domain.CampaignRepository {
	return a.campaignRepo
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
