package repositories

import (
	"pasar/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	ListByProduct(productID string, page, perPage int) ([]models.Review, int64, error)
	GetByID(id string) (*models.Review, error)
	GetByProductAndUser(productID, userID string) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id string) error
	AverageRating(productID string) (float64, error)
}
