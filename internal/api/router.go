package api

import (
	v1 "github.com/flexprice/assignments/internal/api/v1"
	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Customer *v1.CustomerHandler
	AuditLog *v1.AuditLogHandler
	// Entities holds one handler per entity collection
	Entities []*v1.EntityHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.PyroscopeMiddleware(cfg),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	private := router.Group("/v1", middleware.AuthenticateMiddleware(cfg, logger))
	registerV1Routes(private, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.GetCustomers)
		customers.GET("/public", handlers.Customer.GetPublicCustomer)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	for _, h := range handlers.Entities {
		entities := router.Group("/" + h.EntityType().Plural())
		{
			entities.POST("", h.CreateEntity)
			entities.GET("", h.GetEntities)
			entities.POST("/import", h.UpsertEntity)
			entities.POST("/bulk/customers", h.BulkAssign)
			entities.GET("/modes/:mode", h.DescribeMode)
			entities.GET("/:id", h.GetEntity)
			entities.PUT("/:id", h.UpdateEntity)
			entities.DELETE("/:id", h.DeleteEntity)
			entities.POST("/:id/customers", h.AddCustomers)
			entities.PUT("/:id/customers", h.UpdateCustomers)
			entities.POST("/:id/customers/remove", h.RemoveCustomers)
			entities.POST("/:id/customers/:customer_id", h.AssignToCustomer)
			entities.DELETE("/:id/customers/:customer_id", h.UnassignFromCustomer)
			entities.POST("/:id/public", h.AssignToPublicCustomer)
			entities.DELETE("/:id/public", h.UnassignFromPublicCustomer)
		}
	}

	auditLogs := router.Group("/audit-logs")
	{
		auditLogs.GET("", handlers.AuditLog.ListAuditLogs)
	}
}
