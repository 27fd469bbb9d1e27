package repositories

import (
	"errors"
	"fmt"

	"pasar/internal/apperrors"
	"pasar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// ListByProduct retrieves a page of reviews for a product, newest first.
func (r *GORMReviewRepository) ListByProduct(productID string, page, perPage int) ([]models.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	query := r.db.Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	var reviews []models.Review
	err := query.Preload("User").Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return reviews, total, nil
}

// GetByID retrieves a single review by its ID.
func (r *GORMReviewRepository) GetByID(id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.NotFound, "review with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get review by ID %s: %w", id, err)
	}
	return &review, nil
}

// GetByProductAndUser retrieves the review a user left on a product, if any.
func (r *GORMReviewRepository) GetByProductAndUser(productID, userID string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "product_id = ? AND user_id = ?", productID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.NotFound, "review not found")
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// Create creates a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update updates an existing review.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	res := r.db.Save(review)
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.E(apperrors.NotFound, "review with ID %s not found for update", review.ID)
	}
	return nil
}

// Delete deletes a review by its ID.
func (r *GORMReviewRepository) Delete(id string) error {
	res := r.db.Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.E(apperrors.NotFound, "review with ID %s not found for deletion", id)
	}
	return nil
}

// AverageRating returns the mean rating for a product, 0 when unreviewed.
func (r *GORMReviewRepository) AverageRating(productID string) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average rating for product %s: %w", productID, err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
