package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	"github.com/npadigital/correspondence_app/internal/core/services"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockSnapshotRefresher is a mock type for the CorrespondenceSnapshotSvc interface
type MockSnapshotRefresher struct {
	mock.Mock
}

func (m *MockSnapshotRefresher) RefreshSnapshot(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Test Suite Setup ---

type RoutingServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockCorrespondenceRepository
	mockUserRepo *MockUserReader
	mockOrgSvc   *MockOrganizationService
	mockSnapshot *MockSnapshotRefresher
	service      portssvc.RoutingSvcFacade
}

func (suite *RoutingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCorrespondenceRepository)
	suite.mockUserRepo = new(MockUserReader)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.mockSnapshot = new(MockSnapshotRefresher)
	suite.service = services.NewRoutingService(
		suite.mockRepo,
		services.WithRoutingUserReader(suite.mockUserRepo),
		services.WithRoutingOrganizationService(suite.mockOrgSvc),
		services.WithSnapshotRefresher(suite.mockSnapshot),
	)
}

func routedItem() *domain.Correspondence {
	return &domain.Correspondence{
		CorrespondenceID:  "corr-1",
		Subject:           "Routed item",
		Status:            domain.StatusInProgress,
		OwningOfficeID:    "office-a",
		CurrentApproverID: "user-approver",
	}
}

func strPtr(s string) *string {
	return &s
}

const validReason = "Officer transferred to another division"

// --- Test Cases ---

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_Success() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-b"),
		Reason:          validReason,
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()
	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-b").Return(activeOffice("office-b"), nil).Once()

	preview, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().NoError(err)
	suite.Equal("corr-1", preview.CorrespondenceID)
	suite.Equal("office-a", preview.Previous.CurrentOfficeID)
	suite.Equal("office-b", preview.Proposed.CurrentOfficeID)
	suite.Equal("office-a", preview.Proposed.OwningOfficeID)
	suite.Equal("user-approver", preview.Proposed.CurrentApproverID)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateRoutingWithAudit", mock.Anything, mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_ReasonTooShort() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-b"),
		Reason:          "   short   ",
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()

	preview, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidReason)
	suite.Nil(preview)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_ReasonTooLong() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-b"),
		Reason:          strings.Repeat("x", 501),
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()

	_, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidReason)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_NoChange() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-a"), // already the effective current office
		Reason:          validReason,
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()

	_, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoChangeRequested)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_NoChangeWinsOverReasonBounds() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-a"), // no change
		Reason:          "short",
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()

	_, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoChangeRequested)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_ReasonBoundsCountCharacters() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-b"),
		Reason:          strings.Repeat("ع", 300), // 300 characters, 600 bytes
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()
	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-b").Return(activeOffice("office-b"), nil).Once()

	preview, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().NoError(err)
	suite.Equal("office-b", preview.Proposed.CurrentOfficeID)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_MultibyteReasonTooShort() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-b"),
		Reason:          strings.Repeat("ع", 9), // 9 characters, 18 bytes
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()

	_, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidReason)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_OfficeCannotBeCleared() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		OwningOfficeID: strPtr(""),
		Reason:         validReason,
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()

	_, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_UnknownTargetOffice() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-missing"),
		Reason:          validReason,
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()
	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_ApproverCanBeCleared() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentApproverID: strPtr(""),
		Reason:            validReason,
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()

	preview, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().NoError(err)
	suite.Equal("user-approver", preview.Previous.CurrentApproverID)
	suite.Empty(preview.Proposed.CurrentApproverID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_InactiveApprover() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentApproverID: strPtr("user-inactive"),
		Reason:            validReason,
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-inactive").
		Return(&domain.User{UserID: "user-inactive", IsActive: false}, nil).Once()

	_, err := suite.service.PreviewReassignment(ctx, "corr-1", change)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RoutingServiceTestSuite) TestPreviewReassignment_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PreviewReassignment(ctx, "corr-missing", domain.ReassignmentChange{Reason: validReason})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RoutingServiceTestSuite) TestReassign_Success() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	change := domain.ReassignmentChange{
		CurrentOfficeID:   strPtr("office-b"),
		CurrentApproverID: strPtr("user-new"),
		Reason:            "  " + validReason + "  ",
	}

	var committedItem domain.Correspondence
	var committedAudit domain.ReassignmentAudit

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()
	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-b").Return(activeOffice("office-b"), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-new").
		Return(&domain.User{UserID: "user-new", IsActive: true}, nil).Once()
	suite.mockRepo.On("UpdateRoutingWithAudit", ctx,
		mock.AnythingOfType("domain.Correspondence"),
		mock.AnythingOfType("domain.ReassignmentAudit"),
	).Run(func(args mock.Arguments) {
		committedItem = args.Get(1).(domain.Correspondence)
		committedAudit = args.Get(2).(domain.ReassignmentAudit)
	}).Return(nil).Once()
	suite.mockSnapshot.On("RefreshSnapshot", ctx).Return(nil).Once()

	updated, err := suite.service.Reassign(ctx, "corr-1", change, actorUserID)

	suite.Require().NoError(err)
	suite.Equal("office-b", updated.CurrentOfficeID)
	suite.Equal("user-new", updated.CurrentApproverID)
	suite.Equal(actorUserID, updated.LastUpdatedBy)

	suite.Equal("office-b", committedItem.CurrentOfficeID)
	suite.NotEmpty(committedAudit.AuditID)
	suite.Equal("corr-1", committedAudit.CorrespondenceID)
	suite.Equal(actorUserID, committedAudit.ActorID)
	suite.Equal(validReason, committedAudit.Reason)
	suite.Equal("office-a", committedAudit.PreviousValues.CurrentOfficeID)
	suite.Equal("user-approver", committedAudit.PreviousValues.CurrentApproverID)
	suite.Equal("office-b", committedAudit.NewValues.CurrentOfficeID)
	suite.Equal("user-new", committedAudit.NewValues.CurrentApproverID)
	suite.WithinDuration(time.Now(), committedAudit.Timestamp, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSnapshot.AssertExpectations(suite.T())
}

func (suite *RoutingServiceTestSuite) TestReassign_CommitError() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-b"),
		Reason:          validReason,
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()
	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-b").Return(activeOffice("office-b"), nil).Once()
	suite.mockRepo.On("UpdateRoutingWithAudit", ctx,
		mock.AnythingOfType("domain.Correspondence"),
		mock.AnythingOfType("domain.ReassignmentAudit"),
	).Return(assert.AnError).Once()

	updated, err := suite.service.Reassign(ctx, "corr-1", change, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(updated)
	suite.mockSnapshot.AssertNotCalled(suite.T(), "RefreshSnapshot", mock.Anything)
}

func (suite *RoutingServiceTestSuite) TestReassign_SnapshotRefreshFailureDoesNotFailCommit() {
	ctx := context.Background()
	change := domain.ReassignmentChange{
		CurrentOfficeID: strPtr("office-b"),
		Reason:          validReason,
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()
	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-b").Return(activeOffice("office-b"), nil).Once()
	suite.mockRepo.On("UpdateRoutingWithAudit", ctx,
		mock.AnythingOfType("domain.Correspondence"),
		mock.AnythingOfType("domain.ReassignmentAudit"),
	).Return(nil).Once()
	suite.mockSnapshot.On("RefreshSnapshot", ctx).Return(assert.AnError).Once()

	updated, err := suite.service.Reassign(ctx, "corr-1", change, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("office-b", updated.CurrentOfficeID)
	suite.mockSnapshot.AssertExpectations(suite.T())
}

func (suite *RoutingServiceTestSuite) TestListReassignmentAudits_Success() {
	ctx := context.Background()
	audits := []domain.ReassignmentAudit{
		{AuditID: "audit-1", CorrespondenceID: "corr-1"},
		{AuditID: "audit-2", CorrespondenceID: "corr-1"},
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(routedItem(), nil).Once()
	suite.mockRepo.On("ListReassignmentAudits", ctx, "corr-1").Return(audits, nil).Once()

	listed, err := suite.service.ListReassignmentAudits(ctx, "corr-1")

	suite.Require().NoError(err)
	suite.Len(listed, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RoutingServiceTestSuite) TestListReassignmentAudits_ItemNotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-missing").Return(nil, apperrors.ErrNotFound).Once()

	listed, err := suite.service.ListReassignmentAudits(ctx, "corr-missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(listed)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListReassignmentAudits", mock.Anything, mock.Anything)
}

func TestRoutingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RoutingServiceTestSuite))
}
