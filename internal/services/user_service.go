package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
)

// UserService handles business logic for user accounts.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetAllExcept lists every user other than the caller.
func (s *UserService) GetAllExcept(email string) ([]models.User, error) {
	return s.repo.GetAllExcept(email)
}

// GetByEmail retrieves a single user.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(email)
}

// GetRole retrieves the stored role for an email.
func (s *UserService) GetRole(email string) (models.Role, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// UpsertOnSignIn records a sign-in: an existing user's last-login timestamp
// is refreshed, a new user is inserted with the customer role.
func (s *UserService) UpsertOnSignIn(user *models.User) (created bool, err error) {
	_, err = s.repo.GetByEmail(user.Email)
	if err == nil {
		if err := s.repo.UpdateLastLoggedIn(user.Email, time.Now()); err != nil {
			return false, fmt.Errorf("failed to refresh sign-in: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	user.Role = models.RoleCustomer
	user.LastLoggedIn = time.Now()
	if err := s.repo.Create(user); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateProfile updates a user's name and image.
func (s *UserService) UpdateProfile(id, name, image string) error {
	return s.repo.UpdateProfile(id, name, image)
}

// UpdateRole sets a user's role by email.
func (s *UserService) UpdateRole(email string, role models.Role) error {
	switch role {
	case models.RoleAdmin, models.RoleLibrarian, models.RoleCustomer:
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	return s.repo.UpdateRoleByEmail(email, role)
}
