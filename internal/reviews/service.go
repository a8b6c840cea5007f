package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// CreateReviewInput holds the validated payload to create a review.
type CreateReviewInput struct {
	ProductID uuid.UUID
	Rating    int
	Title     string
	Comment   string
}

// ListOptions narrows a review listing.
type ListOptions struct {
	Rating       *int
	VerifiedOnly bool
	Pagination   pagination.Params
}

// Service exposes review management operations.
type Service interface {
	CreateReview(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error)
	ListReviews(ctx context.Context, productID uuid.UUID, opts ListOptions) (*ReviewPageDTO, error)
	Vote(ctx context.Context, reviewID uuid.UUID, helpful bool) error
	RespondToReview(ctx context.Context, sellerID, reviewID uuid.UUID, response string) (*ReviewDTO, error)
	DeleteReview(ctx context.Context, actorID uuid.UUID, isAdmin bool, reviewID uuid.UUID) error
	Analytics(ctx context.Context, actorID uuid.UUID, isAdmin bool, productID uuid.UUID) (*AnalyticsDTO, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	products productLoader
}

// NewService constructs a review service instance.
func NewService(repo *Repository, dbClient *db.Client, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, dbClient: dbClient, products: products}, nil
}

// CreateReview records a review and refreshes the product's cached rating
// aggregates. The verified-purchase flag is decided here, once: the user
// must have a delivered or completed order containing the product. Later
// deliveries never flip the flag on an existing review.
func (s *service) CreateReview(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (*ReviewDTO, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	already, err := s.repo.HasReviewed(ctx, userID, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing review")
	}
	if already {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already reviewed")
	}

	orderID, err := s.repo.FindFulfilledOrderID(ctx, userID, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check purchase history")
	}

	review := &models.Review{
		ProductID:          input.ProductID,
		UserID:             userID,
		OrderID:            orderID,
		Rating:             input.Rating,
		Title:              strings.TrimSpace(input.Title),
		Comment:            strings.TrimSpace(input.Comment),
		IsVerifiedPurchase: orderID != nil,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Create(ctx, review); err != nil {
			if db.IsUniqueViolation(err, "reviews_user_product_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "product already reviewed")
			}
			return err
		}
		return txRepo.RefreshProductAggregates(ctx, input.ProductID)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	dto := NewReviewDTO(review)
	return &dto, nil
}

// ListReviews pages a product's reviews, newest first.
func (s *service) ListReviews(ctx context.Context, productID uuid.UUID, opts ListOptions) (*ReviewPageDTO, error) {
	if opts.Rating != nil && (*opts.Rating < 1 || *opts.Rating > 5) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating filter must be between 1 and 5")
	}
	rows, page, err := s.repo.ListByProduct(ctx, productID, opts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	dtos := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, NewReviewDTO(&rows[i]))
	}
	return &ReviewPageDTO{Reviews: dtos, Pagination: page}, nil
}

// Vote bumps the helpful or unhelpful counter.
func (s *service) Vote(ctx context.Context, reviewID uuid.UUID, helpful bool) error {
	if err := s.repo.AddVote(ctx, reviewID, helpful); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record vote")
	}
	return nil
}

// RespondToReview attaches the seller's reply. Only the seller who owns the
// reviewed product may respond.
func (s *service) RespondToReview(ctx context.Context, sellerID, reviewID uuid.UUID, response string) (*ReviewDTO, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "response is required")
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}

	prod, err := s.products.FindByID(ctx, review.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if prod.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "review does not belong to seller's product")
	}

	now := time.Now().UTC()
	review.SellerResponse = &response
	review.SellerResponseAt = &now
	if _, err := s.repo.Update(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save response")
	}

	dto := NewReviewDTO(review)
	return &dto, nil
}

// DeleteReview removes a review (author or admin) and refreshes the
// product's cached aggregates.
func (s *service) DeleteReview(ctx context.Context, actorID uuid.UUID, isAdmin bool, reviewID uuid.UUID) error {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}
	if !isAdmin && review.UserID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot delete another user's review")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Delete(ctx, reviewID); err != nil {
			return err
		}
		return txRepo.RefreshProductAggregates(ctx, review.ProductID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	return nil
}
