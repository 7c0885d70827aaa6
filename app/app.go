package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"product-catalog/app/controller"
	"product-catalog/app/router"
	"product-catalog/catalog"
	"product-catalog/config"
	"product-catalog/db"
	"product-catalog/repository"
	"product-catalog/service"
)

// App is the wired catalog service
type App struct {
	Handler http.Handler
	Catalog *service.CatalogService
	closers []func() error
}

// Initialize initializes the application: it selects the product source,
// loads the feed once and wires the HTTP handler.
// A failed feed load is not an error; the catalog then renders the fetch error.
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	source, err := a.productSource(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Feed.Timeout)
	feed := catalog.LoadFeed(loadCtx, source)
	cancel()
	if feed.Err != nil {
		log.Ctx(ctx).Error().Err(feed.Err).Str("source", source.Describe()).Msg("Initialize: product feed unavailable")
	} else {
		log.Ctx(ctx).Info().Str("source", source.Describe()).Int("products", len(feed.Products)).Msg("Initialize: product feed loaded")
	}

	return a.wire(cfg, feed), nil
}

// New wires the HTTP handler around an already loaded feed
func New(cfg *config.Config, feed catalog.Feed) *App {
	return (&App{}).wire(cfg, feed)
}

func (a *App) wire(cfg *config.Config, feed catalog.Feed) *App {
	opts := service.CatalogOptions{
		PageSize:   cfg.Catalog.PageSize,
		LeadSlots:  cfg.Catalog.LeadSlots,
		Thumbnails: cfg.Images.Thumbnails,
		SessionTTL: cfg.Catalog.SessionTTL,
	}
	catalogService := service.NewCatalogService(feed, opts)
	a.Catalog = catalogService

	catalogController := controller.NewCatalogController(catalogService, cfg.IsProduction())
	controllers := &router.Controllers{
		Catalog: catalogController,
		Card:    controller.NewCardController(catalogController),
		Export: controller.NewExportController(
			catalogService,
			service.NewExportService(cfg.BaseURL, cfg.Export.ChromePath, cfg.Export.Timeout),
		),
	}
	if cfg.Images.Thumbnails {
		thumbnails := service.NewThumbnailService(cfg.Images.CacheDir, catalogService.ImageSource, nil)
		controllers.Image = controller.NewImageController(thumbnails)
	}

	a.Handler = router.NewRouter(controllers)
	return a
}

// productSource builds the feed source selected by CATALOG_SOURCE
func (a *App) productSource(ctx context.Context, cfg *config.Config) (catalog.ProductSource, error) {
	switch cfg.Feed.Source {
	case config.SourceFile:
		return repository.NewFileProductSource(cfg.Feed.Path), nil

	case config.SourceHTTP:
		return repository.NewHTTPProductSource(cfg.Feed.URL, nil, cfg.Feed.Timeout), nil

	case config.SourceDrive:
		driveService, err := service.NewDriveService(ctx, cfg.Feed.CredentialsPath)
		if err != nil {
			return nil, err
		}
		return repository.NewDriveProductSource(driveService, cfg.Feed.DriveFileID), nil

	case config.SourcePostgres:
		connStr, err := cfg.Database.ConnString()
		if err != nil {
			return nil, err
		}
		conn, err := db.Open(ctx, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, conn.Close)
		return repository.NewPostgresProductSource(conn), nil
	}
	return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.Feed.Source)
}

// RunSessionSweeper expires idle sessions until ctx is done
func (a *App) RunSessionSweeper(ctx context.Context) {
	sessions := a.Catalog.Sessions()
	interval := time.Minute
	if ttl := sessions.TTL(); ttl > 0 && ttl/2 < interval {
		interval = ttl / 2
	}
	sessions.Run(ctx, interval)
}

// Close releases the resources held by the product source
func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Msg("Close: failed to release resource")
		}
	}
	a.closers = nil
}
