package service

import (
	"github.com/flexprice/assignments/internal/testutil"
)

// newTestServiceParams wires the in-memory stores of a base suite
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetSentry(),
		s.GetCache(),
		stores.CustomerRepo,
		stores.EntityRepo,
		stores.AuditLogRepo,
		s.GetWebhookPublisher(),
	)
}
