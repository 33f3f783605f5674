package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// GetAllExcept retrieves every user except the one with the given email.
func (r *GORMUserRepository) GetAllExcept(email string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("email <> ?", email).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateProfile updates only the mutable profile fields of a user.
func (r *GORMUserRepository) UpdateProfile(id, name, image string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "image": image})
	if res.Error != nil {
		return fmt.Errorf("failed to update user profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateRoleByEmail sets a user's role.
func (r *GORMUserRepository) UpdateRoleByEmail(email string, role models.Role) error {
	res := r.db.Model(&models.User{}).Where("email = ?", email).
		Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("failed to update role for %s: %w", email, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with email %s: %w", email, ErrNotFound)
	}
	return nil
}

// UpdateLastLoggedIn bumps the last login timestamp.
func (r *GORMUserRepository) UpdateLastLoggedIn(email string, at time.Time) error {
	res := r.db.Model(&models.User{}).Where("email = ?", email).
		Update("last_logged_in", at)
	if res.Error != nil {
		return fmt.Errorf("failed to update last login for %s: %w", email, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with email %s: %w", email, ErrNotFound)
	}
	return nil
}
