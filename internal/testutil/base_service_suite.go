package testutil

import (
	"context"
	"time"

	"github.com/flexprice/assignments/internal/cache"
	"github.com/flexprice/assignments/internal/config"
	"github.com/flexprice/assignments/internal/domain/auditlog"
	"github.com/flexprice/assignments/internal/domain/customer"
	"github.com/flexprice/assignments/internal/domain/entity"
	"github.com/flexprice/assignments/internal/logger"
	"github.com/flexprice/assignments/internal/sentry"
	"github.com/flexprice/assignments/internal/types"
	"github.com/flexprice/assignments/internal/validator"
	webhookPublisher "github.com/flexprice/assignments/internal/webhook/publisher"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	CustomerRepo customer.Repository
	EntityRepo   entity.Repository
	AuditLogRepo auditlog.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx              context.Context
	stores           Stores
	pubSub           *InMemoryPubSub
	webhookPublisher webhookPublisher.WebhookPublisher
	db               *MockPostgresClient
	cache            cache.Cache
	sentry           *sentry.Service
	logger           *logger.Logger
	config           *config.Configuration
	now              time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Webhook.Enabled = true
	cfg.Assignment.TaskTimeout = 5 * time.Second

	s.config = cfg
	s.logger = logger.NewNoopLogger()
	s.sentry = sentry.NewSentryService(cfg, s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	customers := NewInMemoryCustomerStore()
	s.stores = Stores{
		CustomerRepo: customers,
		EntityRepo:   NewInMemoryEntityStore(customers),
		AuditLogRepo: NewInMemoryAuditLogStore(),
	}

	s.db = NewMockPostgresClient()
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.pubSub = NewInMemoryPubSub()

	publisher, err := webhookPublisher.NewPublisher(s.pubSub, s.config, s.logger)
	if err != nil {
		s.T().Fatalf("failed to create webhook publisher: %v", err)
	}
	s.webhookPublisher = publisher
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.EntityRepo.(*InMemoryEntityStore).Clear()
	s.stores.AuditLogRepo.(*InMemoryAuditLogStore).Clear()
	s.pubSub.ClearMessages()
	s.cache.Flush(context.Background())
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetEntityStore returns the in-memory entity store
func (s *BaseServiceTestSuite) GetEntityStore() *InMemoryEntityStore {
	return s.stores.EntityRepo.(*InMemoryEntityStore)
}

// GetAuditLogStore returns the in-memory audit log store
func (s *BaseServiceTestSuite) GetAuditLogStore() *InMemoryAuditLogStore {
	return s.stores.AuditLogRepo.(*InMemoryAuditLogStore)
}

// GetPubSub returns the pubsub the webhook publisher writes to
func (s *BaseServiceTestSuite) GetPubSub() *InMemoryPubSub {
	return s.pubSub
}

// GetWebhookMessages returns the messages published to the webhook topic
func (s *BaseServiceTestSuite) GetWebhookMessages() []string {
	return s.pubSub.EventNames(s.config.Webhook.Topic)
}

// GetWebhookPublisher returns the test webhook publisher
func (s *BaseServiceTestSuite) GetWebhookPublisher() webhookPublisher.WebhookPublisher {
	return s.webhookPublisher
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetSentry returns a disabled sentry service
func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
