package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	"github.com/npadigital/correspondence_app/internal/core/services"
	"github.com/npadigital/correspondence_app/internal/dto"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DelegationServiceTestSuite struct {
	suite.Suite
	mockDelegationRepo *MockDelegationRepository
	mockCorrRepo       *MockCorrespondenceRepository
	mockUserRepo       *MockUserReader
	service            portssvc.DelegationSvcFacade
}

func (suite *DelegationServiceTestSuite) SetupTest() {
	suite.mockDelegationRepo = new(MockDelegationRepository)
	suite.mockCorrRepo = new(MockCorrespondenceRepository)
	suite.mockUserRepo = new(MockUserReader)
	suite.service = services.NewDelegationService(
		suite.mockDelegationRepo,
		suite.mockCorrRepo,
		suite.mockUserRepo,
	)
}

// --- Test Cases ---

func (suite *DelegationServiceTestSuite) TestCreateDelegation_Success() {
	ctx := context.Background()
	executiveID := uuid.NewString()
	assistantID := uuid.NewString()
	req := dto.CreateDelegationRequest{
		CorrespondenceID: "corr-1",
		ExecutiveID:      executiveID,
		AssistantID:      assistantID,
		AssistantType:    "PA",
		Notes:            "Handle while I am on leave",
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").
		Return(&domain.Correspondence{CorrespondenceID: "corr-1"}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, assistantID).
		Return(&domain.User{UserID: assistantID, IsActive: true}, nil).Once()
	suite.mockDelegationRepo.On("FindActiveDelegationForExecutive", ctx, "corr-1", executiveID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockDelegationRepo.On("SaveDelegation", ctx, mock.AnythingOfType("domain.Delegation")).Return(nil).Once()

	created, err := suite.service.CreateDelegation(ctx, req, executiveID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.DelegationID)
	suite.Equal(executiveID, created.ExecutiveID)
	suite.Equal(assistantID, created.AssistantID)
	suite.Equal(domain.AssistantPersonal, created.AssistantType)
	suite.Equal(domain.DelegationActive, created.Status)
	suite.WithinDuration(time.Now(), created.DelegatedAt, time.Second)
	suite.Nil(created.CompletedAt)
	suite.mockDelegationRepo.AssertExpectations(suite.T())
}

func (suite *DelegationServiceTestSuite) TestCreateDelegation_SelfDelegation() {
	ctx := context.Background()
	executiveID := uuid.NewString()
	req := dto.CreateDelegationRequest{
		CorrespondenceID: "corr-1",
		ExecutiveID:      executiveID,
		AssistantID:      executiveID,
		AssistantType:    "PA",
	}

	created, err := suite.service.CreateDelegation(ctx, req, executiveID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockCorrRepo.AssertNotCalled(suite.T(), "FindCorrespondenceByID", mock.Anything, mock.Anything)
}

func (suite *DelegationServiceTestSuite) TestCreateDelegation_CorrespondenceNotFound() {
	ctx := context.Background()
	req := dto.CreateDelegationRequest{
		CorrespondenceID: "corr-missing",
		AssistantID:      uuid.NewString(),
		AssistantType:    "TA",
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateDelegation(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DelegationServiceTestSuite) TestCreateDelegation_UnknownAssistant() {
	ctx := context.Background()
	assistantID := uuid.NewString()
	req := dto.CreateDelegationRequest{
		CorrespondenceID: "corr-1",
		AssistantID:      assistantID,
		AssistantType:    "PA",
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").
		Return(&domain.Correspondence{CorrespondenceID: "corr-1"}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, assistantID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateDelegation(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DelegationServiceTestSuite) TestCreateDelegation_InactiveAssistant() {
	ctx := context.Background()
	assistantID := uuid.NewString()
	req := dto.CreateDelegationRequest{
		CorrespondenceID: "corr-1",
		AssistantID:      assistantID,
		AssistantType:    "PA",
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").
		Return(&domain.Correspondence{CorrespondenceID: "corr-1"}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, assistantID).
		Return(&domain.User{UserID: assistantID, IsActive: false}, nil).Once()

	_, err := suite.service.CreateDelegation(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDelegationRepo.AssertNotCalled(suite.T(), "SaveDelegation", mock.Anything, mock.Anything)
}

func (suite *DelegationServiceTestSuite) TestCreateDelegation_DuplicateActive() {
	ctx := context.Background()
	executiveID := uuid.NewString()
	assistantID := uuid.NewString()
	req := dto.CreateDelegationRequest{
		CorrespondenceID: "corr-1",
		ExecutiveID:      executiveID,
		AssistantID:      assistantID,
		AssistantType:    "PA",
	}
	existing := &domain.Delegation{
		DelegationID:     "del-existing",
		CorrespondenceID: "corr-1",
		ExecutiveID:      executiveID,
		Status:           domain.DelegationActive,
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").
		Return(&domain.Correspondence{CorrespondenceID: "corr-1"}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, assistantID).
		Return(&domain.User{UserID: assistantID, IsActive: true}, nil).Once()
	suite.mockDelegationRepo.On("FindActiveDelegationForExecutive", ctx, "corr-1", executiveID).
		Return(existing, nil).Once()

	created, err := suite.service.CreateDelegation(ctx, req, executiveID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateActiveDelegation)
	suite.Nil(created)
	suite.mockDelegationRepo.AssertNotCalled(suite.T(), "SaveDelegation", mock.Anything, mock.Anything)
}

func (suite *DelegationServiceTestSuite) TestCreateDelegation_ConcurrentDuplicate() {
	ctx := context.Background()
	executiveID := uuid.NewString()
	assistantID := uuid.NewString()
	req := dto.CreateDelegationRequest{
		CorrespondenceID: "corr-1",
		ExecutiveID:      executiveID,
		AssistantID:      assistantID,
		AssistantType:    "TA",
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").
		Return(&domain.Correspondence{CorrespondenceID: "corr-1"}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, assistantID).
		Return(&domain.User{UserID: assistantID, IsActive: true}, nil).Once()
	suite.mockDelegationRepo.On("FindActiveDelegationForExecutive", ctx, "corr-1", executiveID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockDelegationRepo.On("SaveDelegation", ctx, mock.AnythingOfType("domain.Delegation")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateDelegation(ctx, req, executiveID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateActiveDelegation)
}

func (suite *DelegationServiceTestSuite) TestGetDelegationByID_NotFound() {
	ctx := context.Background()

	suite.mockDelegationRepo.On("FindDelegationByID", ctx, "del-missing").Return(nil, apperrors.ErrNotFound).Once()

	delegation, err := suite.service.GetDelegationByID(ctx, "del-missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(delegation)
}

func (suite *DelegationServiceTestSuite) TestRevokeDelegation_Success() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	active := &domain.Delegation{
		DelegationID: "del-1",
		Status:       domain.DelegationActive,
	}

	suite.mockDelegationRepo.On("FindDelegationByID", ctx, "del-1").Return(active, nil).Once()
	suite.mockDelegationRepo.On("UpdateDelegationStatus", ctx, "del-1", domain.DelegationRevoked, (*time.Time)(nil)).
		Return(nil).Once()

	revoked, err := suite.service.RevokeDelegation(ctx, "del-1", actorUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.DelegationRevoked, revoked.Status)
	suite.Nil(revoked.CompletedAt)
	suite.mockDelegationRepo.AssertExpectations(suite.T())
}

func (suite *DelegationServiceTestSuite) TestCompleteDelegation_Success() {
	ctx := context.Background()
	active := &domain.Delegation{
		DelegationID: "del-1",
		Status:       domain.DelegationActive,
	}

	suite.mockDelegationRepo.On("FindDelegationByID", ctx, "del-1").Return(active, nil).Once()
	suite.mockDelegationRepo.On("UpdateDelegationStatus", ctx, "del-1", domain.DelegationCompleted, mock.AnythingOfType("*time.Time")).
		Return(nil).Once()

	completed, err := suite.service.CompleteDelegation(ctx, "del-1", uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.DelegationCompleted, completed.Status)
	suite.Require().NotNil(completed.CompletedAt)
	suite.WithinDuration(time.Now(), *completed.CompletedAt, time.Second)
}

func (suite *DelegationServiceTestSuite) TestRevokeDelegation_AlreadyTerminal() {
	ctx := context.Background()
	revoked := &domain.Delegation{
		DelegationID: "del-1",
		Status:       domain.DelegationRevoked,
	}

	suite.mockDelegationRepo.On("FindDelegationByID", ctx, "del-1").Return(revoked, nil).Once()

	_, err := suite.service.RevokeDelegation(ctx, "del-1", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDelegationRepo.AssertNotCalled(suite.T(), "UpdateDelegationStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DelegationServiceTestSuite) TestCompleteDelegation_UpdateError() {
	ctx := context.Background()
	active := &domain.Delegation{
		DelegationID: "del-1",
		Status:       domain.DelegationActive,
	}

	suite.mockDelegationRepo.On("FindDelegationByID", ctx, "del-1").Return(active, nil).Once()
	suite.mockDelegationRepo.On("UpdateDelegationStatus", ctx, "del-1", domain.DelegationCompleted, mock.AnythingOfType("*time.Time")).
		Return(assert.AnError).Once()

	completed, err := suite.service.CompleteDelegation(ctx, "del-1", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(completed)
}

func (suite *DelegationServiceTestSuite) TestListDelegations_Success() {
	ctx := context.Background()
	filter := domain.DelegationFilter{CorrespondenceID: "corr-1"}
	delegations := []domain.Delegation{
		{DelegationID: "del-1"},
		{DelegationID: "del-2"},
	}

	suite.mockDelegationRepo.On("ListDelegations", ctx, filter).Return(delegations, nil).Once()

	listed, err := suite.service.ListDelegations(ctx, filter)

	suite.Require().NoError(err)
	suite.Len(listed, 2)
	suite.mockDelegationRepo.AssertExpectations(suite.T())
}

func TestDelegationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DelegationServiceTestSuite))
}
