package services

import (
	"errors"

	"github.com/formbuilder-api/apperrors"
	"github.com/formbuilder-api/dto"
	"github.com/formbuilder-api/models"
	"github.com/formbuilder-api/repositories"
	"gorm.io/gorm"
)

// AdminService handles admin-only user management
type AdminService struct {
	userRepo *repositories.UserRepository
}

// NewAdminService creates a new admin service instance
func NewAdminService() *AdminService {
	return &AdminService{
		userRepo: repositories.NewUserRepository(),
	}
}

// ListUsers returns a paginated, searchable user listing
func (s *AdminService) ListUsers(actor *models.User, query dto.ListQuery) (dto.Paginated[models.User], error) {
	if err := requireAdmin(actor); err != nil {
		return dto.Paginated[models.User]{}, err
	}
	query.Normalize()
	users, total, err := s.userRepo.FindWithPagination(query.Page, query.Limit, query.Search)
	if err != nil {
		return dto.Paginated[models.User]{}, err
	}
	return dto.NewPaginated(users, total, query.Page, query.Limit), nil
}

// SetRole changes a user's role within the closed role set
func (s *AdminService) SetRole(actor *models.User, targetID string, role models.Role) error {
	if !models.ValidRole(role) {
		return apperrors.NewValidation("invalid role %q", role)
	}
	if err := CanChangeRole(actor, targetID, role); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return s.userRepo.UpdateFields(targetID, map[string]interface{}{"role": role})
}

// SetBlocked toggles a user's blocked flag
func (s *AdminService) SetBlocked(actor *models.User, targetID string, blocked bool) error {
	if err := CanBlockUser(actor, targetID, blocked); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return s.userRepo.UpdateFields(targetID, map[string]interface{}{"is_blocked": blocked})
}

// DeleteUser removes a user with the full ownership cascade
func (s *AdminService) DeleteUser(actor *models.User, targetID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return s.userRepo.DeleteCascade(targetID)
}
