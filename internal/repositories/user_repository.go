package repositories

import (
	"time"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAllExcept(email string) ([]models.User, error)
	UpdateProfile(id, name, image string) error
	UpdateRoleByEmail(email string, role models.Role) error
	UpdateLastLoggedIn(email string, at time.Time) error
}
