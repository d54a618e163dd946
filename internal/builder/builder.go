package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/myling/study-backend/internal/api"
	exportapi "github.com/myling/study-backend/internal/api/export"
	"github.com/myling/study-backend/internal/config"
	"github.com/myling/study-backend/internal/integration/assets"
	"github.com/myling/study-backend/internal/integration/backend"
	"github.com/myling/study-backend/internal/layout"
	"github.com/myling/study-backend/internal/pkg/formatter"
	"github.com/myling/study-backend/internal/pkg/validator"
	"github.com/myling/study-backend/internal/repository"
	"github.com/myling/study-backend/internal/usecase/export"
	"github.com/myling/study-backend/internal/usecase/study"
	"go.uber.org/zap"
)

// Services are the use cases shared by the HTTP server and the CLI.
type Services struct {
	Study  *study.StudyUsecase
	Export *export.ExportUsecase

	db *pgxpool.Pool
}

// Close releases the archive connection pool, if any.
func (s *Services) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Build creates the HTTP export service.
func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	services, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Setup API handlers
	exportHandler := exportapi.NewHandler(services.Export)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(exportHandler, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		services:        services,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

// BuildCLI creates the use cases for the command line wizard. Configuration
// is read for the given environment without parsing command line flags.
func BuildCLI(environment string) (*Services, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.Load(environment)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	services, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	return services, logger, nil
}

func buildServices(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	db, err := setupArchive(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	var archive export.Archive
	if db != nil {
		archive = repository.NewExportPostgres(db)
		logger.Info("Export archive initialized")
	}

	// Initialize connectors (with mock support)
	var backendConnector study.BackendConnector
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the study backend")
		backendConnector = backend.NewMockConnector(logger)
	} else {
		logger.Info("Using real connector for the study backend")
		backendConnector = backend.NewConnector(cfg.BackendCfg, logger)
	}
	assetLoader := assets.NewLoader(cfg.AssetsCfg, logger)

	// Initialize validators
	inputValidator := validator.NewValidator(cfg.BackendCfg, cfg.ExportCfg)
	logger.Info("Validators initialized")

	geometry, err := layout.GeometryFor(cfg.ExportCfg.PageFormat)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("page geometry: %w", err)
	}
	formatters := formatter.NewFactory(assetLoader, geometry, cfg.ExportCfg.NumberParagraphs)

	// Initialize use cases
	studyUC := study.NewUsecase(backendConnector, inputValidator, logger)
	exportUC := export.NewUsecase(
		formatters,
		studyUC,
		archive,
		inputValidator,
		cfg.ExportCfg.DefaultFilename,
		logger,
	)
	logger.Info("Use cases initialized",
		zap.Bool("archive", archive != nil),
		zap.String("page_format", geometry.PageFormat),
	)

	return &Services{
		Study:  studyUC,
		Export: exportUC,
		db:     db,
	}, nil
}
