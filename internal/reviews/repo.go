package reviews

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// Repository encapsulates review persistence and the product aggregate
// refresh.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// FindByID loads one review.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{}).Error
}

// Update saves the full review row.
func (r *Repository) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// ListByProduct pages reviews for a product, newest first, narrowed by the
// optional rating and verified-purchase filters.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID, opts ListOptions) ([]models.Review, pagination.Page, error) {
	params := opts.Pagination.Normalize()

	qb := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("product_id = ?", productID)
	if opts.Rating != nil {
		qb = qb.Where("rating = ?", *opts.Rating)
	}
	if opts.VerifiedOnly {
		qb = qb.Where("is_verified_purchase = ?", true)
	}

	var total int64
	if err := qb.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, pagination.Page{}, err
	}

	var rows []models.Review
	err := qb.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return rows, pagination.PageFor(params, total), nil
}

// HasReviewed reports whether the user already reviewed the product.
func (r *Repository) HasReviewed(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).
		Error
	return count > 0, err
}

// FindFulfilledOrderID returns the most recent delivered or completed order
// by the user containing the product, or nil when none exists.
func (r *Repository) FindFulfilledOrderID(ctx context.Context, userID, productID uuid.UUID) (*uuid.UUID, error) {
	needle, err := json.Marshal([]map[string]string{{"product_id": productID.String()}})
	if err != nil {
		return nil, err
	}

	var orderID uuid.UUID
	err = r.db.WithContext(ctx).
		Raw(`
SELECT id FROM orders
WHERE user_id = ? AND status IN ('delivered', 'completed') AND items @> ?::jsonb
ORDER BY created_at DESC
LIMIT 1`, userID, string(needle)).
		Scan(&orderID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if orderID == uuid.Nil {
		return nil, nil
	}
	return &orderID, nil
}

// AddVote bumps the helpful or unhelpful counter.
func (r *Repository) AddVote(ctx context.Context, reviewID uuid.UUID, helpful bool) error {
	column := "unhelpful_count"
	if helpful {
		column = "helpful_count"
	}
	result := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", reviewID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RefreshProductAggregates recomputes the cached rating average, count, and
// breakdown on the product row in one statement. The average is rounded to
// two decimal places.
func (r *Repository) RefreshProductAggregates(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE products p SET
  average_rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE product_id = p.id), 0),
  total_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = p.id),
  rating_breakdown = COALESCE((
    SELECT jsonb_object_agg(rating::text, cnt)
    FROM (SELECT rating, COUNT(*) AS cnt FROM reviews WHERE product_id = p.id GROUP BY rating) b
  ), '{}'::jsonb)
WHERE p.id = ?`, productID).Error
}
