package repository

import (
	"github.com/flexprice/assignments/internal/domain/auditlog"
	"github.com/flexprice/assignments/internal/domain/customer"
	"github.com/flexprice/assignments/internal/domain/entity"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/postgres"
	postgresRepo "github.com/flexprice/assignments/internal/repository/postgres"
	"go.uber.org/fx"
)

// Module provides every repository backed by postgres
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewCustomerRepository,
			NewEntityRepository,
			NewAuditLogRepository,
		),
	)
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger)
}

func NewEntityRepository(db *postgres.DB, logger *logger.Logger) entity.Repository {
	return postgresRepo.NewEntityRepository(db, logger)
}

func NewAuditLogRepository(db *postgres.DB, logger *logger.Logger) auditlog.Repository {
	return postgresRepo.NewAuditLogRepository(db, logger)
}
