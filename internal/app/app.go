package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"winelink/internal/assets"
	"winelink/internal/config"
	"winelink/internal/database"
	"winelink/internal/handlers"
	"winelink/internal/imageprocessor"
	"winelink/internal/logger"
	"winelink/internal/metrics"
	"winelink/internal/middleware"
	"winelink/internal/qrcode"
	"winelink/internal/repositories"
	"winelink/internal/routes"
	"winelink/internal/services"
	"winelink/internal/storage"
	"winelink/internal/validator"
	"winelink/internal/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Run serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	logger.Info("Connecting to database...", "driver", cfg.Database.Driver, "read_only", cfg.Database.ReadOnly)
	gormDB, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(gormDB)

	if err := database.Ping(gormDB); err != nil {
		// Reports degrade to ok=false, so a missing store is not fatal.
		logger.Warn("Database unavailable", "error", err)
	} else {
		logger.Info("Database connected")
	}

	m, err := metrics.New()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	ginRouter, err := SetupRouter(cfg, gormDB, m)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server startup error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewLocator builds the asset locator over the configured assets root.
func NewLocator(cfg *config.Config) (*assets.Locator, error) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: cfg.Assets.Root,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Debug("Storage initialized", "root", cfg.AssetPath("."))

	return assets.NewLocator(storageInstance, assets.Dirs{
		Pdf:        cfg.Assets.PdfDir,
		Webp:       cfg.Assets.WebpDir,
		LegacyWebp: cfg.Assets.LegacyWebpDir,
		Bottles:    cfg.Assets.BottleDir,
	}), nil
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, m *metrics.Metrics) (*gin.Engine, error) {
	locator, err := NewLocator(cfg)
	if err != nil {
		return nil, err
	}
	serviceContainer := InitializeServices(cfg, locator)

	appHandlers := initializeHandlers(cfg, serviceContainer, m)

	ginRouter, err := initializeGinRouter(cfg, gormDB, m)
	if err != nil {
		return nil, err
	}

	routes.RegisterRoutes(ginRouter, appHandlers, m)
	return ginRouter, nil
}

// InitializeServices wires the services; the CLI reuses it outside the HTTP server.
func InitializeServices(cfg *config.Config, locator *assets.Locator) *services.ServiceContainer {
	wineRepo := repositories.NewWineRepository()

	images := imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.BottleMaxDimension)

	return &services.ServiceContainer{
		CatalogService: services.NewCatalogService(wineRepo, locator),
		ReconcileService: services.NewReconcileService(wineRepo, locator, services.ReconcileOptions{
			Environment: cfg.Server.Env,
			ReadOnly:    cfg.Database.ReadOnly,
		}),
		ManageService: services.NewManageService(wineRepo, locator, validator.New(), images, services.ManageConfig{
			ReadOnly:    cfg.Database.ReadOnly,
			MaxFileSize: cfg.Upload.MaxSize,
		}),
		ArrivalService: services.NewArrivalService(locator),
		QRGenerator:    qrcode.NewGenerator(cfg.QR.BaseURL),
		Locator:        locator,
	}
}

func initializeHandlers(cfg *config.Config, svc *services.ServiceContainer, m *metrics.Metrics) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(m)

	return &handlers.AppHandlers{
		PageHandler:    handlers.NewPageHandler(baseHandler),
		CatalogHandler: handlers.NewCatalogHandler(baseHandler, svc.CatalogService),
		ManageHandler:  handlers.NewManageHandler(baseHandler, svc.ManageService, cfg.Upload.MaxSize),
		AssetHandler:   handlers.NewAssetHandler(baseHandler, svc.Locator),
		QRHandler:      handlers.NewQRHandler(baseHandler, svc.QRGenerator),
		StatusHandler:  handlers.NewStatusHandler(baseHandler, svc.ReconcileService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, m *metrics.Metrics) (*gin.Engine, error) {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = 8 << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.ReadOnlyMiddleware(cfg.Database.ReadOnly))
	return router, nil
}
