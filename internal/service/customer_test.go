package service

import (
	"testing"

	"github.com/flexprice/assignments/internal/api/dto"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/testutil"
	"github.com/flexprice/assignments/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CustomerService
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCustomerService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *CustomerServiceSuite) createCustomer(title string) *dto.CustomerResponse {
	resp, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{Title: title})
	s.Require().NoError(err)
	return resp
}

func (s *CustomerServiceSuite) TestCreateCustomer() {
	s.createCustomer("Existing Customer")

	testCases := []struct {
		name    string
		request dto.CreateCustomerRequest
		check   func(error) bool
	}{
		{
			name: "successful_creation",
			request: dto.CreateCustomerRequest{
				Title:    "Acme Corp",
				Email:    "ops@acme.example",
				Metadata: map[string]string{"region": "eu"},
			},
		},
		{
			name:    "missing_title",
			request: dto.CreateCustomerRequest{Email: "ops@acme.example"},
			check:   ierr.IsValidation,
		},
		{
			name:    "invalid_email",
			request: dto.CreateCustomerRequest{Title: "Bad Email", Email: "not-an-email"},
			check:   ierr.IsValidation,
		},
		{
			name:    "reserved_title",
			request: dto.CreateCustomerRequest{Title: types.PublicCustomerTitle},
			check:   ierr.IsValidation,
		},
		{
			name:    "duplicate_title",
			request: dto.CreateCustomerRequest{Title: "Existing Customer"},
			check:   ierr.IsAlreadyExists,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreateCustomer(s.GetContext(), tc.request)
			if tc.check != nil {
				s.Error(err)
				s.Nil(resp)
				s.True(tc.check(err), "unexpected error: %v", err)
				return
			}

			s.NoError(err)
			s.Require().NotNil(resp)
			s.Equal(tc.request.Title, resp.Title)
			s.Equal(tc.request.Email, resp.Email)
			s.False(resp.IsPublic)
			s.Equal(types.DefaultTenantID, resp.TenantID)
			s.Equal(types.StatusPublished, resp.Status)
		})
	}

	s.Contains(s.GetWebhookMessages(), types.WebhookEventCustomerCreated)
}

func (s *CustomerServiceSuite) TestGetCustomer() {
	created := s.createCustomer("Acme Corp")

	resp, err := s.service.GetCustomer(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.ID, resp.ID)

	_, err = s.service.GetCustomer(s.GetContext(), "cust_missing")
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GetCustomer(s.GetContext(), "")
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestGetCustomers() {
	first := s.createCustomer("First")
	second := s.createCustomer("Second")
	s.createCustomer("Third")

	resp, err := s.service.GetCustomers(s.GetContext(), nil)
	s.NoError(err)
	s.Len(resp.Items, 3)
	s.Equal(3, resp.Pagination.Total)

	filter := types.NewCustomerFilter()
	filter.CustomerIDs = []string{first.ID, second.ID}
	resp, err = s.service.GetCustomers(s.GetContext(), filter)
	s.NoError(err)
	s.ElementsMatch([]string{first.ID, second.ID}, lo.Map(resp.Items, func(c *dto.CustomerResponse, _ int) string {
		return c.ID
	}))
}

func (s *CustomerServiceSuite) TestUpdateCustomer() {
	created := s.createCustomer("Acme Corp")

	resp, err := s.service.UpdateCustomer(s.GetContext(), created.ID, dto.UpdateCustomerRequest{
		Title: lo.ToPtr("Acme Corporation"),
		Email: lo.ToPtr("billing@acme.example"),
	})
	s.NoError(err)
	s.Equal("Acme Corporation", resp.Title)
	s.Equal("billing@acme.example", resp.Email)

	_, err = s.service.UpdateCustomer(s.GetContext(), created.ID, dto.UpdateCustomerRequest{
		Title: lo.ToPtr(types.PublicCustomerTitle),
	})
	s.True(ierr.IsValidation(err))

	s.Contains(s.GetWebhookMessages(), types.WebhookEventCustomerUpdated)
}

func (s *CustomerServiceSuite) TestPublicCustomerIsReadOnly() {
	public, err := s.service.FindOrCreatePublicCustomer(s.GetContext())
	s.Require().NoError(err)

	_, err = s.service.UpdateCustomer(s.GetContext(), public.ID, dto.UpdateCustomerRequest{
		Title: lo.ToPtr("Renamed"),
	})
	s.True(ierr.IsInvalidOperation(err))

	err = s.service.DeleteCustomer(s.GetContext(), public.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *CustomerServiceSuite) TestDeleteCustomer() {
	created := s.createCustomer("Acme Corp")

	s.NoError(s.service.DeleteCustomer(s.GetContext(), created.ID))

	_, err := s.service.GetCustomer(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))

	err = s.service.DeleteCustomer(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))

	s.Contains(s.GetWebhookMessages(), types.WebhookEventCustomerDeleted)
}

func (s *CustomerServiceSuite) TestFindOrCreatePublicCustomer() {
	first, err := s.service.FindOrCreatePublicCustomer(s.GetContext())
	s.Require().NoError(err)
	s.True(first.IsPublic)
	s.Equal(types.PublicCustomerTitle, first.Title)

	second, err := s.service.FindOrCreatePublicCustomer(s.GetContext())
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)

	// a cold cache falls back to the stored public customer
	s.GetCache().Flush(s.GetContext())
	third, err := s.service.FindOrCreatePublicCustomer(s.GetContext())
	s.Require().NoError(err)
	s.Equal(first.ID, third.ID)

	public, err := s.service.GetCustomers(s.GetContext(), &types.CustomerFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		IsPublic:    lo.ToPtr(true),
	})
	s.NoError(err)
	s.Len(public.Items, 1)
}
