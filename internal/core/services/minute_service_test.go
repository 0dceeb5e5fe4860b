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

// MockMinuteRepository is a mock type for the MinuteRepositoryFacade interface
type MockMinuteRepository struct {
	mock.Mock
}

func (m *MockMinuteRepository) ListMinutes(ctx context.Context, filter domain.MinuteFilter) ([]domain.Minute, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Minute), args.Error(1)
}

func (m *MockMinuteRepository) MaxStepNumber(ctx context.Context, correspondenceID string) (int, error) {
	args := m.Called(ctx, correspondenceID)
	return args.Int(0), args.Error(1)
}

func (m *MockMinuteRepository) SaveMinute(ctx context.Context, minute domain.Minute) error {
	args := m.Called(ctx, minute)
	return args.Error(0)
}

// MockDelegationRepository is a mock type for the DelegationRepositoryFacade interface
type MockDelegationRepository struct {
	mock.Mock
}

func (m *MockDelegationRepository) FindDelegationByID(ctx context.Context, delegationID string) (*domain.Delegation, error) {
	args := m.Called(ctx, delegationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delegation), args.Error(1)
}

func (m *MockDelegationRepository) FindActiveDelegationForExecutive(ctx context.Context, correspondenceID, executiveID string) (*domain.Delegation, error) {
	args := m.Called(ctx, correspondenceID, executiveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delegation), args.Error(1)
}

func (m *MockDelegationRepository) FindActiveDelegationForAssistant(ctx context.Context, correspondenceID, assistantID string) (*domain.Delegation, error) {
	args := m.Called(ctx, correspondenceID, assistantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delegation), args.Error(1)
}

func (m *MockDelegationRepository) ListDelegations(ctx context.Context, filter domain.DelegationFilter) ([]domain.Delegation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Delegation), args.Error(1)
}

func (m *MockDelegationRepository) SaveDelegation(ctx context.Context, delegation domain.Delegation) error {
	args := m.Called(ctx, delegation)
	return args.Error(0)
}

func (m *MockDelegationRepository) UpdateDelegationStatus(ctx context.Context, delegationID string, status domain.DelegationStatus, completedAt *time.Time) error {
	args := m.Called(ctx, delegationID, status, completedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---

type MinuteServiceTestSuite struct {
	suite.Suite
	mockMinuteRepo     *MockMinuteRepository
	mockCorrRepo       *MockCorrespondenceRepository
	mockDelegationRepo *MockDelegationRepository
	mockUserRepo       *MockUserReader
	service            portssvc.MinuteSvcFacade
}

func (suite *MinuteServiceTestSuite) SetupTest() {
	suite.mockMinuteRepo = new(MockMinuteRepository)
	suite.mockCorrRepo = new(MockCorrespondenceRepository)
	suite.mockDelegationRepo = new(MockDelegationRepository)
	suite.mockUserRepo = new(MockUserReader)
	suite.service = services.NewMinuteService(
		suite.mockMinuteRepo,
		suite.mockCorrRepo,
		suite.mockDelegationRepo,
		suite.mockUserRepo,
	)
}

func minuteActor(userID string) *domain.User {
	return &domain.User{
		UserID:     userID,
		Username:   "aokafor",
		Name:       "Adaeze Okafor",
		GradeLevel: "Director",
		IsActive:   true,
	}
}

// --- Test Cases ---

func (suite *MinuteServiceTestSuite) TestAppendMinute_Success() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusInProgress}
	req := dto.CreateMinuteRequest{
		CorrespondenceID: "corr-1",
		ActionType:       "minute",
		MinuteText:       "Reviewed and noted.",
	}

	var saved domain.Minute
	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, actorUserID).Return(minuteActor(actorUserID), nil).Once()
	suite.mockMinuteRepo.On("MaxStepNumber", ctx, "corr-1").Return(2, nil).Once()
	suite.mockMinuteRepo.On("SaveMinute", ctx, mock.AnythingOfType("domain.Minute")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Minute)
		}).Return(nil).Once()

	minute, err := suite.service.AppendMinute(ctx, req, actorUserID)

	suite.Require().NoError(err)
	suite.NotEmpty(minute.MinuteID)
	suite.Equal(3, minute.StepNumber)
	suite.Equal(actorUserID, minute.UserID)
	suite.Equal("Adaeze Okafor", minute.UserName)
	suite.Equal("Director", minute.GradeLevel)
	suite.Equal(domain.ActionMinute, minute.ActionType)
	suite.NotNil(minute.Mentions)
	suite.WithinDuration(time.Now(), minute.Timestamp, time.Second)
	suite.Equal(minute.StepNumber, saved.StepNumber)

	// Already in progress, so no status promotion.
	suite.mockCorrRepo.AssertNotCalled(suite.T(), "UpdateCorrespondence", mock.Anything, mock.Anything)
	suite.mockMinuteRepo.AssertExpectations(suite.T())
}

func (suite *MinuteServiceTestSuite) TestAppendMinute_FirstActionPromotesPendingItem() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusPending}
	req := dto.CreateMinuteRequest{
		CorrespondenceID: "corr-1",
		ActionType:       "forward",
		MinuteText:       "Forwarded to registry for action.",
	}

	var promoted domain.Correspondence
	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, actorUserID).Return(minuteActor(actorUserID), nil).Once()
	suite.mockMinuteRepo.On("MaxStepNumber", ctx, "corr-1").Return(0, nil).Once()
	suite.mockMinuteRepo.On("SaveMinute", ctx, mock.AnythingOfType("domain.Minute")).Return(nil).Once()
	suite.mockCorrRepo.On("UpdateCorrespondence", ctx, mock.AnythingOfType("domain.Correspondence")).
		Run(func(args mock.Arguments) {
			promoted = args.Get(1).(domain.Correspondence)
		}).Return(nil).Once()

	minute, err := suite.service.AppendMinute(ctx, req, actorUserID)

	suite.Require().NoError(err)
	suite.Equal(1, minute.StepNumber)
	suite.Equal(domain.StatusInProgress, promoted.Status)
	suite.Equal(actorUserID, promoted.LastUpdatedBy)
	suite.mockCorrRepo.AssertExpectations(suite.T())
}

func (suite *MinuteServiceTestSuite) TestAppendMinute_FailedPromotionRetriesOnNextAppend() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusPending}
	req := dto.CreateMinuteRequest{
		CorrespondenceID: "corr-1",
		ActionType:       "minute",
		MinuteText:       "First pass through the registry.",
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Twice()
	suite.mockUserRepo.On("FindUserByID", ctx, actorUserID).Return(minuteActor(actorUserID), nil).Twice()
	suite.mockMinuteRepo.On("MaxStepNumber", ctx, "corr-1").Return(0, nil).Once()
	suite.mockMinuteRepo.On("MaxStepNumber", ctx, "corr-1").Return(1, nil).Once()
	suite.mockMinuteRepo.On("SaveMinute", ctx, mock.AnythingOfType("domain.Minute")).Return(nil).Twice()
	suite.mockCorrRepo.On("UpdateCorrespondence", ctx, mock.AnythingOfType("domain.Correspondence")).
		Return(assert.AnError).Once()
	suite.mockCorrRepo.On("UpdateCorrespondence", ctx, mock.AnythingOfType("domain.Correspondence")).
		Return(nil).Once()

	// The minute commits even though the promotion write fails.
	minute, err := suite.service.AppendMinute(ctx, req, actorUserID)
	suite.Require().NoError(err)
	suite.Equal(1, minute.StepNumber)

	// The item is still pending, so the next append attempts the promotion again.
	minute, err = suite.service.AppendMinute(ctx, req, actorUserID)
	suite.Require().NoError(err)
	suite.Equal(2, minute.StepNumber)
	suite.mockCorrRepo.AssertExpectations(suite.T())
}

func (suite *MinuteServiceTestSuite) TestAppendMinute_DelegatedWithoutActiveGrant() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusInProgress}
	req := dto.CreateMinuteRequest{
		CorrespondenceID: "corr-1",
		ActionType:       "minute",
		MinuteText:       "Acting for the director.",
		ActedByAssistant: true,
		AssistantType:    "PA",
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, actorUserID).Return(minuteActor(actorUserID), nil).Once()
	suite.mockDelegationRepo.On("FindActiveDelegationForAssistant", ctx, "corr-1", actorUserID).
		Return(nil, apperrors.ErrNotFound).Once()

	minute, err := suite.service.AppendMinute(ctx, req, actorUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoActiveDelegation)
	suite.Nil(minute)
	suite.mockMinuteRepo.AssertNotCalled(suite.T(), "SaveMinute", mock.Anything, mock.Anything)
}

func (suite *MinuteServiceTestSuite) TestAppendMinute_AssistantTypeMismatch() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusInProgress}
	req := dto.CreateMinuteRequest{
		CorrespondenceID: "corr-1",
		ActionType:       "minute",
		MinuteText:       "Technical review attached.",
		ActedByAssistant: true,
		AssistantType:    "TA",
	}
	grant := &domain.Delegation{
		DelegationID:     "del-1",
		CorrespondenceID: "corr-1",
		AssistantID:      actorUserID,
		AssistantType:    domain.AssistantPersonal,
		Status:           domain.DelegationActive,
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, actorUserID).Return(minuteActor(actorUserID), nil).Once()
	suite.mockDelegationRepo.On("FindActiveDelegationForAssistant", ctx, "corr-1", actorUserID).
		Return(grant, nil).Once()

	_, err := suite.service.AppendMinute(ctx, req, actorUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMinuteRepo.AssertNotCalled(suite.T(), "SaveMinute", mock.Anything, mock.Anything)
}

func (suite *MinuteServiceTestSuite) TestAppendMinute_SecretaryWithActiveGrant() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusInProgress}
	req := dto.CreateMinuteRequest{
		CorrespondenceID: "corr-1",
		ActionType:       "approve",
		MinuteText:       "Approved on behalf of the executive.",
		ActedBySecretary: true,
	}
	grant := &domain.Delegation{
		DelegationID:     "del-1",
		CorrespondenceID: "corr-1",
		AssistantID:      actorUserID,
		AssistantType:    domain.AssistantPersonal,
		Status:           domain.DelegationActive,
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, actorUserID).Return(minuteActor(actorUserID), nil).Once()
	suite.mockDelegationRepo.On("FindActiveDelegationForAssistant", ctx, "corr-1", actorUserID).
		Return(grant, nil).Once()
	suite.mockMinuteRepo.On("MaxStepNumber", ctx, "corr-1").Return(4, nil).Once()
	suite.mockMinuteRepo.On("SaveMinute", ctx, mock.AnythingOfType("domain.Minute")).Return(nil).Once()

	minute, err := suite.service.AppendMinute(ctx, req, actorUserID)

	suite.Require().NoError(err)
	suite.Equal(5, minute.StepNumber)
	suite.True(minute.ActedBySecretary)
	suite.mockDelegationRepo.AssertExpectations(suite.T())
}

func (suite *MinuteServiceTestSuite) TestAppendMinute_CorrespondenceNotFound() {
	ctx := context.Background()
	req := dto.CreateMinuteRequest{
		CorrespondenceID: "corr-missing",
		ActionType:       "minute",
		MinuteText:       "Orphan minute.",
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-missing").Return(nil, apperrors.ErrNotFound).Once()

	minute, err := suite.service.AppendMinute(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(minute)
}

func (suite *MinuteServiceTestSuite) TestAppendMinute_SaveError() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusInProgress}
	req := dto.CreateMinuteRequest{
		CorrespondenceID: "corr-1",
		ActionType:       "minute",
		MinuteText:       "Colliding append.",
	}

	suite.mockCorrRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, actorUserID).Return(minuteActor(actorUserID), nil).Once()
	suite.mockMinuteRepo.On("MaxStepNumber", ctx, "corr-1").Return(7, nil).Once()
	suite.mockMinuteRepo.On("SaveMinute", ctx, mock.AnythingOfType("domain.Minute")).
		Return(apperrors.ErrDuplicate).Once()

	minute, err := suite.service.AppendMinute(ctx, req, actorUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(minute)
}

func (suite *MinuteServiceTestSuite) TestListMinutes_Success() {
	ctx := context.Background()
	filter := domain.MinuteFilter{CorrespondenceID: "corr-1"}
	minutes := []domain.Minute{
		{MinuteID: "min-1", StepNumber: 1},
		{MinuteID: "min-2", StepNumber: 2},
	}

	suite.mockMinuteRepo.On("ListMinutes", ctx, filter).Return(minutes, nil).Once()

	listed, err := suite.service.ListMinutes(ctx, filter)

	suite.Require().NoError(err)
	suite.Len(listed, 2)
	suite.mockMinuteRepo.AssertExpectations(suite.T())
}

func (suite *MinuteServiceTestSuite) TestListMinutes_RepoError() {
	ctx := context.Background()

	suite.mockMinuteRepo.On("ListMinutes", ctx, domain.MinuteFilter{}).Return(nil, assert.AnError).Once()

	listed, err := suite.service.ListMinutes(ctx, domain.MinuteFilter{})

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(listed)
}

func TestMinuteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MinuteServiceTestSuite))
}
