package service

import (
	"github.com/flexprice/assignments/internal/cache"
	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/domain/auditlog"
	"github.com/flexprice/assignments/internal/domain/customer"
	"github.com/flexprice/assignments/internal/domain/entity"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/postgres"
	"github.com/flexprice/assignments/internal/sentry"
	webhookPublisher "github.com/flexprice/assignments/internal/webhook/publisher"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Sentry *sentry.Service
	Cache  cache.Cache

	// Repositories
	CustomerRepo customer.Repository
	EntityRepo   entity.Repository
	AuditLogRepo auditlog.Repository

	// Publishers
	WebhookPublisher webhookPublisher.WebhookPublisher
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	sentry *sentry.Service,
	cache cache.Cache,
	customerRepo customer.Repository,
	entityRepo entity.Repository,
	auditLogRepo auditlog.Repository,
	webhookPublisher webhookPublisher.WebhookPublisher,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		DB:               db,
		Sentry:           sentry,
		Cache:            cache,
		CustomerRepo:     customerRepo,
		EntityRepo:       entityRepo,
		AuditLogRepo:     auditLogRepo,
		WebhookPublisher: webhookPublisher,
	}
}
