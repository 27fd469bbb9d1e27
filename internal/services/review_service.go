package services

import (
	"pasar/internal/apperrors"
	"pasar/internal/authz"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ReviewService handles business logic related to product reviews.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// ReviewRequest is the payload for creating or updating a review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

// ListReviews retrieves a page of reviews for a product.
func (s *ReviewService) ListReviews(productID string, page, perPage int) ([]models.Review, int64, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByProduct(productID, page, perPage)
}

// CreateReview adds the actor's review of a product. A user may review each
// product once.
func (s *ReviewService) CreateReview(productID string, req ReviewRequest, actor *models.User) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.E(apperrors.InvalidInput, "rating must be between 1 and 5")
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	if existing, err := s.reviewRepo.GetByProductAndUser(productID, actor.ID); err == nil && existing != nil {
		return nil, apperrors.E(apperrors.Conflict, "you have already reviewed this product")
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    actor.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(review.ID)
}

// UpdateReview updates a review authored by the actor (admins may edit any).
func (s *ReviewService) UpdateReview(id string, req ReviewRequest, actor *models.User) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyReview(review, actor) {
		return nil, apperrors.E(apperrors.Forbidden, "unauthorized to modify this review")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.E(apperrors.InvalidInput, "rating must be between 1 and 5")
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(id)
}

// DeleteReview deletes a review authored by the actor (admins may delete any).
func (s *ReviewService) DeleteReview(id string, actor *models.User) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !authz.CanModifyReview(review, actor) {
		return apperrors.E(apperrors.Forbidden, "unauthorized to delete this review")
	}
	return s.reviewRepo.Delete(id)
}

// AverageRating returns the mean rating for a product.
func (s *ReviewService) AverageRating(productID string) (float64, error) {
	return s.reviewRepo.AverageRating(productID)
}
