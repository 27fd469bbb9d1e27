package repositories

import (
	"sort"
	"sync"
	"time"

	"pasar/internal/apperrors"
	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string]models.Review),
	}
}

// ListByProduct returns a page of a product's reviews, newest first.
func (r *MockReviewRepository) ListByProduct(productID string, page, perPage int) ([]models.Review, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	matched := make([]models.Review, 0)
	for _, review := range r.reviews {
		if review.ProductID == productID {
			matched = append(matched, review)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * perPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// GetByID returns a review by its ID.
func (r *MockReviewRepository) GetByID(id string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[id]
	if !ok {
		return nil, apperrors.E(apperrors.NotFound, "review with ID %s not found", id)
	}
	return &review, nil
}

// GetByProductAndUser returns the review a user left on a product, if any.
func (r *MockReviewRepository) GetByProductAndUser(productID, userID string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, review := range r.reviews {
		if review.ProductID == productID && review.UserID == userID {
			match := review
			return &match, nil
		}
	}
	return nil, apperrors.E(apperrors.NotFound, "review not found")
}

// Create adds a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = *review
	return nil
}

// Update replaces an existing review.
func (r *MockReviewRepository) Update(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[review.ID]; !ok {
		return apperrors.E(apperrors.NotFound, "review with ID %s not found for update", review.ID)
	}
	review.UpdatedAt = time.Now()
	r.reviews[review.ID] = *review
	return nil
}

// Delete removes a review.
func (r *MockReviewRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return apperrors.E(apperrors.NotFound, "review with ID %s not found for deletion", id)
	}
	delete(r.reviews, id)
	return nil
}

// AverageRating returns the mean rating for a product, 0 when unreviewed.
func (r *MockReviewRepository) AverageRating(productID string) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum, count int
	for _, review := range r.reviews {
		if review.ProductID == productID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}
