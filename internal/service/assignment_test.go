package service

import (
	"testing"

	"github.com/flexprice/assignments/internal/api/dto"
	"github.com/flexprice/assignments/internal/domain/assignment"
	ierr "github.com/flexprice/assignments/internal/errors"
	"github.com/flexprice/assignments/internal/testutil"
	"github.com/flexprice/assignments/internal/types"
	"github.com/stretchr/testify/suite"
)

type AssignmentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  AssignmentService
	assets   EntityService
	testData struct {
		customers []string
		assets    []string
	}
}

func TestAssignmentService(t *testing.T) {
	suite.Run(t, new(AssignmentServiceSuite))
}

func (s *AssignmentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewAssignmentService(params)
	s.assets = NewEntityService(params, types.EntityTypeAsset)
	s.setupTestData(params)
}

func (s *AssignmentServiceSuite) setupTestData(params ServiceParams) {
	customers := NewCustomerService(params)
	s.testData.customers = nil
	s.testData.assets = nil

	for _, title := range []string{"Acme", "Globex", "Initech"} {
		resp, err := customers.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{Title: title})
		s.Require().NoError(err)
		s.testData.customers = append(s.testData.customers, resp.ID)
	}

	for _, name := range []string{"Building 1", "Building 2", "Building 3"} {
		resp, err := s.assets.CreateEntity(s.GetContext(), dto.CreateEntityRequest{Name: name})
		s.Require().NoError(err)
		s.testData.assets = append(s.testData.assets, resp.ID)
	}
}

func (s *AssignmentServiceSuite) assigned(entityID string) []string {
	resp, err := s.assets.GetEntity(s.GetContext(), entityID)
	s.Require().NoError(err)
	return resp.AssignedCustomerIDs()
}

func (s *AssignmentServiceSuite) TestAssign() {
	acme, globex := s.testData.customers[0], s.testData.customers[1]

	resp, err := s.service.Execute(s.GetContext(), types.EntityTypeAsset, dto.BulkAssignmentRequest{
		ActionMode:  types.ActionModeAssign,
		EntityIDs:   s.testData.assets,
		CustomerIDs: []string{acme, globex, acme},
	})
	s.Require().NoError(err)
	s.True(resp.Success)
	s.Equal(types.ActionModeAssign, resp.Descriptor.Mode)
	s.Equal("asset.assign-to-customers", resp.Descriptor.TitleKey)
	s.Equal(s.testData.assets, resp.EntityIDs)
	s.Equal([]string{acme, globex}, resp.CustomerIDs)

	for _, id := range s.testData.assets {
		s.Equal([]string{acme, globex}, s.assigned(id))
	}
}

func (s *AssignmentServiceSuite) TestManageReplacesAssignment() {
	acme, globex, initech := s.testData.customers[0], s.testData.customers[1], s.testData.customers[2]
	first, second := s.testData.assets[0], s.testData.assets[1]

	_, err := s.assets.AddCustomers(s.GetContext(), first, []string{acme, globex})
	s.Require().NoError(err)
	_, err = s.assets.AddCustomers(s.GetContext(), second, []string{initech})
	s.Require().NoError(err)

	resp, err := s.service.Execute(s.GetContext(), types.EntityTypeAsset, dto.BulkAssignmentRequest{
		ActionMode:  types.ActionModeManage,
		EntityIDs:   []string{first, second},
		CustomerIDs: []string{globex, initech},
	})
	s.Require().NoError(err)
	s.True(resp.Success)
	s.Equal("action.update", resp.Descriptor.ActionKey)

	s.Equal([]string{globex, initech}, s.assigned(first))
	s.ElementsMatch([]string{globex, initech}, s.assigned(second))
}

func (s *AssignmentServiceSuite) TestManageWithEmptySelectionClears() {
	first := s.testData.assets[0]
	_, err := s.assets.AddCustomers(s.GetContext(), first, s.testData.customers)
	s.Require().NoError(err)

	_, err = s.service.Execute(s.GetContext(), types.EntityTypeAsset, dto.BulkAssignmentRequest{
		ActionMode: types.ActionModeManage,
		EntityIDs:  []string{first},
	})
	s.Require().NoError(err)
	s.Empty(s.assigned(first))
}

func (s *AssignmentServiceSuite) TestUnassign() {
	acme, globex := s.testData.customers[0], s.testData.customers[1]
	for _, id := range s.testData.assets {
		_, err := s.assets.AddCustomers(s.GetContext(), id, []string{acme, globex})
		s.Require().NoError(err)
	}

	resp, err := s.service.Execute(s.GetContext(), types.EntityTypeAsset, dto.BulkAssignmentRequest{
		ActionMode:  types.ActionModeUnassign,
		EntityIDs:   s.testData.assets,
		CustomerIDs: []string{acme},
	})
	s.Require().NoError(err)
	s.True(resp.Success)

	for _, id := range s.testData.assets {
		s.Equal([]string{globex}, s.assigned(id))
	}
}

func (s *AssignmentServiceSuite) TestPartialFailureKeepsSucceededChanges() {
	acme := s.testData.customers[0]
	targets := []string{s.testData.assets[0], "asset_missing", s.testData.assets[2]}

	resp, err := s.service.Execute(s.GetContext(), types.EntityTypeAsset, dto.BulkAssignmentRequest{
		ActionMode:  types.ActionModeAssign,
		EntityIDs:   targets,
		CustomerIDs: []string{acme},
	})
	s.Nil(resp)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))

	var joint *assignment.JointError
	s.Require().True(ierr.As(err, &joint))
	s.Equal([]string{"asset_missing"}, joint.FailedEntityIDs())
	s.Equal(3, joint.Total)

	details := ierr.ReportableDetails(err)
	s.Equal([]any{"asset_missing"}, details["failed_entity_ids"])
	s.Equal(float64(2), details["succeeded"])
	s.Equal(float64(3), details["total"])

	// no rollback of the entities that succeeded
	s.Equal([]string{acme}, s.assigned(s.testData.assets[0]))
	s.Equal([]string{acme}, s.assigned(s.testData.assets[2]))
	s.Empty(s.assigned(s.testData.assets[1]))
}

func (s *AssignmentServiceSuite) TestStoreFailureIsReported() {
	failing := s.testData.assets[1]
	s.GetEntityStore().FailAssignmentsFor(failing, ierr.NewError("connection reset").Mark(ierr.ErrDatabase))

	_, err := s.service.Execute(s.GetContext(), types.EntityTypeAsset, dto.BulkAssignmentRequest{
		ActionMode:  types.ActionModeAssign,
		EntityIDs:   s.testData.assets,
		CustomerIDs: s.testData.customers[:1],
	})
	s.Require().Error(err)
	s.True(ierr.Is(err, ierr.ErrDatabase))
	s.Equal([]any{failing}, ierr.ReportableDetails(err)["failed_entity_ids"])
}

func (s *AssignmentServiceSuite) TestInvalidRequests() {
	testCases := []struct {
		name       string
		entityType types.EntityType
		request    dto.BulkAssignmentRequest
	}{
		{
			name:       "unknown_action_mode",
			entityType: types.EntityTypeAsset,
			request: dto.BulkAssignmentRequest{
				ActionMode: types.ActionMode("transfer"),
				EntityIDs:  []string{"asset_1"},
			},
		},
		{
			name:       "missing_action_mode",
			entityType: types.EntityTypeAsset,
			request: dto.BulkAssignmentRequest{
				EntityIDs: []string{"asset_1"},
			},
		},
		{
			name:       "no_entities",
			entityType: types.EntityTypeAsset,
			request: dto.BulkAssignmentRequest{
				ActionMode: types.ActionModeAssign,
			},
		},
		{
			name:       "empty_customer_id",
			entityType: types.EntityTypeAsset,
			request: dto.BulkAssignmentRequest{
				ActionMode:  types.ActionModeAssign,
				EntityIDs:   []string{"asset_1"},
				CustomerIDs: []string{""},
			},
		},
		{
			name:       "unknown_entity_type",
			entityType: types.EntityType("vehicle"),
			request: dto.BulkAssignmentRequest{
				ActionMode: types.ActionModeAssign,
				EntityIDs:  []string{"asset_1"},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.Execute(s.GetContext(), tc.entityType, tc.request)
			s.Nil(resp)
			s.True(ierr.IsValidation(err), "unexpected error: %v", err)
		})
	}
}

func (s *AssignmentServiceSuite) TestDescribeMode() {
	resp, err := s.service.DescribeMode(types.EntityTypeDevice, types.ActionModeUnassign)
	s.Require().NoError(err)
	s.Equal("device.unassign-from-customers", resp.TitleKey)
	s.Equal("device.unassign-from-customers-text", resp.LabelKey)
	s.Equal("action.unassign", resp.ActionKey)

	_, err = s.service.DescribeMode(types.EntityTypeDevice, types.ActionMode("transfer"))
	s.True(ierr.IsConfiguration(err))
}
