package reviews

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
)

// AnalyticsDTO summarizes a product's review activity for its seller.
type AnalyticsDTO struct {
	ProductID          uuid.UUID        `json:"product_id"`
	AverageRating      decimal.Decimal  `json:"average_rating"`
	TotalReviews       int              `json:"total_reviews"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
	MonthlyCounts      []MonthlyCount   `json:"monthly_counts"`
}

// MonthlyCount is the review volume for one calendar month.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type ratingBucket struct {
	Rating int
	Count  int64
}

// RatingDistribution counts reviews per star rating.
func (r *Repository) RatingDistribution(ctx context.Context, productID uuid.UUID) ([]ratingBucket, error) {
	var buckets []ratingBucket
	err := r.db.WithContext(ctx).
		Raw(`SELECT rating, COUNT(*) AS count FROM reviews WHERE product_id = ? GROUP BY rating`, productID).
		Scan(&buckets).
		Error
	return buckets, err
}

// MonthlyCounts returns review volume per month over the last twelve months.
func (r *Repository) MonthlyCounts(ctx context.Context, productID uuid.UUID) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	err := r.db.WithContext(ctx).
		Raw(`
SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*) AS count
FROM reviews
WHERE product_id = ? AND created_at >= date_trunc('month', now()) - interval '11 months'
GROUP BY 1
ORDER BY 1`, productID).
		Scan(&rows).
		Error
	return rows, err
}

// Analytics reports the rating distribution and monthly review counts for a
// listing. Only the owning seller or an admin may see it.
func (s *service) Analytics(ctx context.Context, actorID uuid.UUID, isAdmin bool, productID uuid.UUID) (*AnalyticsDTO, error) {
	prod, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !isAdmin && prod.SellerID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "analytics restricted to the product's seller")
	}

	buckets, err := s.repo.RatingDistribution(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rating distribution")
	}
	distribution := map[string]int64{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
	for _, b := range buckets {
		distribution[strconv.Itoa(b.Rating)] = b.Count
	}

	monthly, err := s.repo.MonthlyCounts(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "monthly counts")
	}

	return &AnalyticsDTO{
		ProductID:          productID,
		AverageRating:      prod.AverageRating,
		TotalReviews:       prod.TotalReviews,
		RatingDistribution: distribution,
		MonthlyCounts:      monthly,
	}, nil
}
