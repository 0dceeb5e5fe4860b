package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/npadigital/correspondence_app/internal/core/domain"
	portsrepo "github.com/npadigital/correspondence_app/internal/core/ports/repositories"
	portssvc "github.com/npadigital/correspondence_app/internal/core/ports/services"
	"github.com/npadigital/correspondence_app/internal/dto"
	"github.com/npadigital/correspondence_app/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	levels := make([]domain.ArchiveLevel, len(req.AllowedArchiveLevels))
	for i, l := range req.AllowedArchiveLevels {
		levels[i] = domain.ArchiveLevel(l)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:               newUserID,
		Username:             req.Username,
		PasswordHash:         passwordHash,
		Name:                 req.Name,
		GradeLevel:           req.GradeLevel,
		IsActive:             true,
		AllowedArchiveLevels: levels,
		PrimaryOfficeID:      req.PrimaryOfficeID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("username %q is already taken: %w", req.Username, apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user",
			slog.String("username", req.Username))
		return nil, err
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("username", user.Username))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by username",
				slog.String("username", username))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.GradeLevel != nil {
		user.GradeLevel = *req.GradeLevel
	}
	if req.PrimaryOfficeID != nil {
		user.PrimaryOfficeID = *req.PrimaryOfficeID
	}
	if req.AllowedArchiveLevels != nil {
		levels := make([]domain.ArchiveLevel, len(req.AllowedArchiveLevels))
		for i, l := range req.AllowedArchiveLevels {
			levels[i] = domain.ArchiveLevel(l)
		}
		user.AllowedArchiveLevels = levels
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user",
			slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to mark user deleted",
			slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deleted",
		slog.String("user_id", userID),
		slog.String("requested_by", requestingUserID))
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}
