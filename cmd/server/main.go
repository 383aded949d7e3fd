package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/flexprice/assignments/internal/api"
	v1 "github.com/flexprice/assignments/internal/api/v1"
	"github.com/flexprice/assignments/internal/cache"
	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/postgres"
	"github.com/flexprice/assignments/internal/pyroscope"
	"github.com/flexprice/assignments/internal/repository"
	"github.com/flexprice/assignments/internal/sentry"
	"github.com/flexprice/assignments/internal/service"
	"github.com/flexprice/assignments/internal/types"
	"github.com/flexprice/assignments/internal/validator"
	"github.com/flexprice/assignments/internal/webhook"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/fx"
)

// @title Assignments API
// @version 1.0
// @description Customer assignment of assets and devices
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,
		),
		sentry.Module(),
		pyroscope.Module(),
		postgres.Module(),
		cache.Module(),
		repository.Module(),
	)

	// Webhook module (must be initialised before services)
	opts = append(opts, webhook.Module)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewCustomerService,
			service.NewAssignmentService,
			service.NewAuditLogService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

// provideHandlers builds one entity handler per entity type, each over its
// own entity service
func provideHandlers(
	params service.ServiceParams,
	customerService service.CustomerService,
	assignmentService service.AssignmentService,
	auditLogService service.AuditLogService,
	logger *logger.Logger,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(logger),
		Customer: v1.NewCustomerHandler(customerService, logger),
		AuditLog: v1.NewAuditLogHandler(auditLogService, logger),
		Entities: lo.Map(types.EntityTypes(), func(t types.EntityType, _ int) *v1.EntityHandler {
			return v1.NewEntityHandler(service.NewEntityService(params, t), assignmentService, logger)
		}),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		applyMigrations(lc, db, log)
		startAPIServer(lc, r, cfg, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

// applyMigrations brings a local database up to date before serving
func applyMigrations(lc fx.Lifecycle, db *postgres.DB, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			applied, err := db.Migrate(ctx, false)
			if err != nil {
				return err
			}
			log.Infow("database migrations applied", "versions", applied)
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
