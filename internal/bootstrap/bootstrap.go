package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akozyrev/resume-insight/internal/config"
	"github.com/akozyrev/resume-insight/internal/core/ports"
	"github.com/akozyrev/resume-insight/internal/core/usecase"
	"github.com/akozyrev/resume-insight/internal/infrastructure/extractor/office"
	"github.com/akozyrev/resume-insight/internal/infrastructure/llm/openai"
	"github.com/akozyrev/resume-insight/internal/infrastructure/queue/nats"
	"github.com/akozyrev/resume-insight/internal/infrastructure/repository/postgres"
	"github.com/akozyrev/resume-insight/internal/infrastructure/resilience"
	"github.com/akozyrev/resume-insight/internal/infrastructure/skills"
	"github.com/akozyrev/resume-insight/internal/infrastructure/storage/localfs"
	"github.com/akozyrev/resume-insight/internal/observability/logging"
)

type App struct {
	Config config.Config

	UploadUC  ports.ResumeUploader
	AnalyzeUC ports.ResumeAnalysisService
	LibraryUC ports.ResumeLibrary

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewResumeRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	guard := resilience.NewGuard(resilience.Config{
		BreakerEnabled:          true,
		BreakerMinRequests:      uint32(cfg.BreakerMinRequests),
		BreakerFailureRatio:     cfg.BreakerFailureRatio,
		BreakerOpenTimeout:      time.Duration(cfg.BreakerOpenTimeoutSecs) * time.Second,
		BreakerHalfOpenMaxCalls: uint32(cfg.BreakerHalfOpenMaxCalls),
	})

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{Guard: guard})
	if err != nil {
		return nil, fmt.Errorf("init event queue: %w", err)
	}

	// Missing credentials surface here, not on the first analysis request.
	providerClient, err := openai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, guard)
	if err != nil {
		return nil, fmt.Errorf("init analysis provider: %w", err)
	}
	analyzer := openai.NewAnalyzer(providerClient)

	extractor := office.NewExtractor()
	recognizer := skills.NewRecognizer()

	uploadUC := usecase.NewUploadResumeUseCase(repo, storage, extractor, queue, logging.ForComponent(logger, "upload"))
	analyzeUC := usecase.NewAnalyzeResumeUseCase(repo, analyzer, recognizer, queue, logging.ForComponent(logger, "analyze"))
	libraryUC := usecase.NewResumeLibraryUseCase(repo, storage, queue, logging.ForComponent(logger, "library"))

	return &App{
		Config: cfg,

		UploadUC:  uploadUC,
		AnalyzeUC: analyzeUC,
		LibraryUC: libraryUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
