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

// MockCorrespondenceRepository is a mock type for the CorrespondenceRepositoryFacade interface
type MockCorrespondenceRepository struct {
	mock.Mock
}

func (m *MockCorrespondenceRepository) FindCorrespondenceByID(ctx context.Context, correspondenceID string) (*domain.Correspondence, error) {
	args := m.Called(ctx, correspondenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceRepository) ListCorrespondence(ctx context.Context, filter domain.CorrespondenceFilter) ([]domain.Correspondence, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Correspondence), args.Error(1)
}

func (m *MockCorrespondenceRepository) CountCorrespondence(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCorrespondenceRepository) SaveCorrespondence(ctx context.Context, c domain.Correspondence) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCorrespondenceRepository) UpdateCorrespondence(ctx context.Context, c domain.Correspondence) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCorrespondenceRepository) UpdateRoutingWithAudit(ctx context.Context, c domain.Correspondence, audit domain.ReassignmentAudit) error {
	args := m.Called(ctx, c, audit)
	return args.Error(0)
}

func (m *MockCorrespondenceRepository) SaveDistribution(ctx context.Context, d domain.Distribution) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockCorrespondenceRepository) ListReassignmentAudits(ctx context.Context, correspondenceID string) ([]domain.ReassignmentAudit, error) {
	args := m.Called(ctx, correspondenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReassignmentAudit), args.Error(1)
}

// MockUserReader is a mock type for the UserReader interface
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockOrganizationService is a mock type for the OrganizationSvcFacade interface
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) RefreshHierarchy(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrganizationService) Directorates(ctx context.Context) ([]domain.Directorate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Directorate), args.Error(1)
}

func (m *MockOrganizationService) Divisions(ctx context.Context) ([]domain.Division, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Division), args.Error(1)
}

func (m *MockOrganizationService) Departments(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockOrganizationService) Offices(ctx context.Context) ([]domain.Office, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Office), args.Error(1)
}

func (m *MockOrganizationService) GetOfficeByID(ctx context.Context, officeID string) (*domain.Office, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Office), args.Error(1)
}

func (m *MockOrganizationService) GetDivisionByID(ctx context.Context, divisionID string) (*domain.Division, error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Division), args.Error(1)
}

func (m *MockOrganizationService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockOrganizationService) DivisionOf(ctx context.Context, departmentID string) (*domain.Division, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Division), args.Error(1)
}

func (m *MockOrganizationService) DirectorateOf(ctx context.Context, divisionID string) (*domain.Directorate, error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Directorate), args.Error(1)
}

func (m *MockOrganizationService) OfficeMembers(ctx context.Context, officeID string) ([]domain.OfficeMembership, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OfficeMembership), args.Error(1)
}

// --- Test Suite Setup ---

type CorrespondenceServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockCorrespondenceRepository
	mockUserRepo *MockUserReader
	mockOrgSvc   *MockOrganizationService
	service      portssvc.CorrespondenceSvcFacade
}

func (suite *CorrespondenceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCorrespondenceRepository)
	suite.mockUserRepo = new(MockUserReader)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewCorrespondenceService(
		suite.mockRepo,
		services.WithUserReader(suite.mockUserRepo),
		services.WithOrganizationService(suite.mockOrgSvc),
	)
}

func activeOffice(officeID string) *domain.Office {
	return &domain.Office{
		OfficeID:   officeID,
		Name:       "Office " + officeID,
		OfficeType: domain.OfficeDepartment,
		IsActive:   true,
	}
}

// --- Test Cases ---

func (suite *CorrespondenceServiceTestSuite) TestCreateCorrespondence_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCorrespondenceRequest{
		Subject:        "Budget approval request",
		OwningOfficeID: "office-1",
	}

	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-1").Return(activeOffice("office-1"), nil).Twice()
	suite.mockUserRepo.On("FindUserByID", ctx, creatorUserID).
		Return(&domain.User{UserID: creatorUserID, Username: "jdoe"}, nil).Once()
	suite.mockRepo.On("CountCorrespondence", ctx).Return(0, nil).Once()
	suite.mockRepo.On("SaveCorrespondence", ctx, mock.AnythingOfType("domain.Correspondence")).Return(nil).Once()
	suite.mockRepo.On("ListCorrespondence", ctx, domain.CorrespondenceFilter{}).
		Return([]domain.Correspondence{}, nil).Once()

	created, err := suite.service.CreateCorrespondence(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.CorrespondenceID)
	suite.Equal("NPA/REG/jdoe/0001", created.ReferenceNumber)
	suite.Equal(domain.StatusPending, created.Status)
	suite.Equal(domain.SourceExternal, created.Source)
	suite.Equal(domain.PriorityNormal, created.Priority)
	suite.Equal(domain.DocumentTypeOther, created.DocumentType)
	suite.Equal("office-1", created.CurrentOfficeID)
	suite.NotNil(created.LinkedDocumentIDs)
	suite.Equal(creatorUserID, created.CreatedBy)
	suite.Equal(creatorUserID, created.LastUpdatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockOrgSvc.AssertExpectations(suite.T())
}

func (suite *CorrespondenceServiceTestSuite) TestCreateCorrespondence_KeepsProvidedReference() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCorrespondenceRequest{
		ReferenceNumber: "EXT/2026/0042",
		Subject:         "External reference",
		OwningOfficeID:  "office-1",
	}

	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-1").Return(activeOffice("office-1"), nil).Twice()
	suite.mockRepo.On("SaveCorrespondence", ctx, mock.AnythingOfType("domain.Correspondence")).Return(nil).Once()
	suite.mockRepo.On("ListCorrespondence", ctx, domain.CorrespondenceFilter{}).
		Return([]domain.Correspondence{}, nil).Once()

	created, err := suite.service.CreateCorrespondence(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal("EXT/2026/0042", created.ReferenceNumber)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountCorrespondence", mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CorrespondenceServiceTestSuite) TestCreateCorrespondence_UnknownOffice() {
	ctx := context.Background()
	req := dto.CreateCorrespondenceRequest{
		Subject:        "Unknown office",
		OwningOfficeID: "office-missing",
	}

	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-missing").Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateCorrespondence(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCorrespondence", mock.Anything, mock.Anything)
}

func (suite *CorrespondenceServiceTestSuite) TestCreateCorrespondence_InactiveOffice() {
	ctx := context.Background()
	inactive := activeOffice("office-2")
	inactive.IsActive = false
	req := dto.CreateCorrespondenceRequest{
		Subject:        "Inactive office",
		OwningOfficeID: "office-2",
	}

	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-2").Return(inactive, nil).Once()

	_, err := suite.service.CreateCorrespondence(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CorrespondenceServiceTestSuite) TestCreateCorrespondence_SaveError() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateCorrespondenceRequest{
		ReferenceNumber: "EXT/2026/0001",
		Subject:         "Save failure",
		OwningOfficeID:  "office-1",
	}

	suite.mockOrgSvc.On("GetOfficeByID", ctx, "office-1").Return(activeOffice("office-1"), nil).Twice()
	suite.mockRepo.On("SaveCorrespondence", ctx, mock.AnythingOfType("domain.Correspondence")).
		Return(assert.AnError).Once()

	created, err := suite.service.CreateCorrespondence(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CorrespondenceServiceTestSuite) TestGetCorrespondenceByID_FallsThroughToStore() {
	ctx := context.Background()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Subject: "Stored item"}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()

	found, err := suite.service.GetCorrespondenceByID(ctx, "corr-1")

	suite.Require().NoError(err)
	suite.Equal("Stored item", found.Subject)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CorrespondenceServiceTestSuite) TestGetCorrespondenceByID_ServedFromSnapshot() {
	ctx := context.Background()
	item := domain.Correspondence{CorrespondenceID: "corr-1", Subject: "Cached item"}

	suite.mockRepo.On("ListCorrespondence", ctx, domain.CorrespondenceFilter{}).
		Return([]domain.Correspondence{item}, nil).Once()
	suite.Require().NoError(suite.service.RefreshSnapshot(ctx))

	found, err := suite.service.GetCorrespondenceByID(ctx, "corr-1")

	suite.Require().NoError(err)
	suite.Equal("Cached item", found.Subject)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindCorrespondenceByID", mock.Anything, mock.Anything)
}

func (suite *CorrespondenceServiceTestSuite) TestGetCorrespondenceByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-missing").Return(nil, apperrors.ErrNotFound).Once()

	found, err := suite.service.GetCorrespondenceByID(ctx, "corr-missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(found)
}

func (suite *CorrespondenceServiceTestSuite) TestListCorrespondence_FiltersAndSortsNewestFirst() {
	ctx := context.Background()
	now := time.Now()
	older := domain.Correspondence{
		CorrespondenceID: "corr-old",
		Status:           domain.StatusPending,
		AuditFields:      domain.AuditFields{CreatedAt: now.Add(-2 * time.Hour)},
	}
	newer := domain.Correspondence{
		CorrespondenceID: "corr-new",
		Status:           domain.StatusPending,
		AuditFields:      domain.AuditFields{CreatedAt: now.Add(-time.Hour)},
	}
	completed := domain.Correspondence{
		CorrespondenceID: "corr-done",
		Status:           domain.StatusCompleted,
		AuditFields:      domain.AuditFields{CreatedAt: now},
	}

	suite.mockRepo.On("ListCorrespondence", ctx, domain.CorrespondenceFilter{}).
		Return([]domain.Correspondence{older, newer, completed}, nil).Once()

	items, err := suite.service.ListCorrespondence(ctx, domain.CorrespondenceFilter{Status: domain.StatusPending})

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal("corr-new", items[0].CorrespondenceID)
	suite.Equal("corr-old", items[1].CorrespondenceID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CorrespondenceServiceTestSuite) TestPatchCorrespondence_EmptyPatch() {
	ctx := context.Background()

	patched, err := suite.service.PatchCorrespondence(ctx, "corr-1", dto.CorrespondencePatch{}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoChangeRequested)
	suite.Nil(patched)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindCorrespondenceByID", mock.Anything, mock.Anything)
}

func (suite *CorrespondenceServiceTestSuite) TestPatchCorrespondence_TerminalStatusStampsCompletedAt() {
	ctx := context.Background()
	updaterUserID := uuid.NewString()
	item := &domain.Correspondence{
		CorrespondenceID: "corr-1",
		Subject:          "In flight",
		Status:           domain.StatusInProgress,
	}
	status := string(domain.StatusCompleted)

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()
	suite.mockRepo.On("UpdateCorrespondence", ctx, mock.AnythingOfType("domain.Correspondence")).Return(nil).Once()
	suite.mockRepo.On("ListCorrespondence", ctx, domain.CorrespondenceFilter{}).
		Return([]domain.Correspondence{}, nil).Once()

	patched, err := suite.service.PatchCorrespondence(ctx, "corr-1", dto.CorrespondencePatch{Status: &status}, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, patched.Status)
	suite.Require().NotNil(patched.CompletedAt)
	suite.WithinDuration(time.Now(), *patched.CompletedAt, time.Second)
	suite.Equal(updaterUserID, patched.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CorrespondenceServiceTestSuite) TestPatchCorrespondence_RejectsBackwardStatus() {
	ctx := context.Background()
	item := &domain.Correspondence{
		CorrespondenceID: "corr-1",
		Status:           domain.StatusCompleted,
	}
	status := string(domain.StatusPending)

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()

	patched, err := suite.service.PatchCorrespondence(ctx, "corr-1", dto.CorrespondencePatch{Status: &status}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(patched)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCorrespondence", mock.Anything, mock.Anything)
}

func (suite *CorrespondenceServiceTestSuite) TestPatchCorrespondence_RejectsUnknownPriority() {
	ctx := context.Background()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusPending}
	priority := "critical"

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()

	_, err := suite.service.PatchCorrespondence(ctx, "corr-1", dto.CorrespondencePatch{Priority: &priority}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CorrespondenceServiceTestSuite) TestPatchCorrespondence_RejectsEmptySubject() {
	ctx := context.Background()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusPending, Subject: "Keep me"}
	subject := ""

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()

	_, err := suite.service.PatchCorrespondence(ctx, "corr-1", dto.CorrespondencePatch{Subject: &subject}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CorrespondenceServiceTestSuite) TestAddDistribution_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	item := &domain.Correspondence{CorrespondenceID: "corr-1", Status: domain.StatusInProgress}
	req := dto.AddDistributionRequest{
		RecipientType: "division",
		DivisionID:    "div-1",
	}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()
	suite.mockRepo.On("SaveDistribution", ctx, mock.AnythingOfType("domain.Distribution")).Return(nil).Once()
	suite.mockRepo.On("ListCorrespondence", ctx, domain.CorrespondenceFilter{}).
		Return([]domain.Correspondence{}, nil).Once()

	updated, err := suite.service.AddDistribution(ctx, "corr-1", req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Distribution, 1)
	entry := updated.Distribution[0]
	suite.Equal(domain.RecipientDivision, entry.RecipientType)
	suite.Equal("div-1", entry.DivisionID)
	suite.Equal(domain.PurposeInformation, entry.Purpose)
	suite.Equal(creatorUserID, entry.AddedByID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CorrespondenceServiceTestSuite) TestAddDistribution_MissingRecipientID() {
	ctx := context.Background()
	item := &domain.Correspondence{CorrespondenceID: "corr-1"}
	req := dto.AddDistributionRequest{RecipientType: "department"}

	suite.mockRepo.On("FindCorrespondenceByID", ctx, "corr-1").Return(item, nil).Once()

	_, err := suite.service.AddDistribution(ctx, "corr-1", req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveDistribution", mock.Anything, mock.Anything)
}

func (suite *CorrespondenceServiceTestSuite) TestRefreshSnapshot_StoreError() {
	ctx := context.Background()

	suite.mockRepo.On("ListCorrespondence", ctx, domain.CorrespondenceFilter{}).
		Return(nil, assert.AnError).Once()

	err := suite.service.RefreshSnapshot(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func TestCorrespondenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CorrespondenceServiceTestSuite))
}
