package repositories

import (
	"pasar/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	List(page, perPage int) ([]models.User, int64, error)
	// CountByRole counts users holding role; an empty role counts all users.
	CountByRole(role string) (int64, error)
}
