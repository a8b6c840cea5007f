package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// ReviewDTO is the review payload returned to clients.
type ReviewDTO struct {
	ID                 uuid.UUID  `json:"id"`
	ProductID          uuid.UUID  `json:"product_id"`
	UserID             uuid.UUID  `json:"user_id"`
	Rating             int        `json:"rating"`
	Title              string     `json:"title,omitempty"`
	Comment            string     `json:"comment,omitempty"`
	IsVerifiedPurchase bool       `json:"is_verified_purchase"`
	HelpfulCount       int        `json:"helpful_count"`
	UnhelpfulCount     int        `json:"unhelpful_count"`
	SellerResponse     *string    `json:"seller_response,omitempty"`
	SellerResponseAt   *time.Time `json:"seller_response_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ReviewPageDTO pairs a review page with pagination metadata.
type ReviewPageDTO struct {
	Reviews    []ReviewDTO     `json:"reviews"`
	Pagination pagination.Page `json:"pagination"`
}

// NewReviewDTO projects a model row onto the client payload.
func NewReviewDTO(review *models.Review) ReviewDTO {
	return ReviewDTO{
		ID:                 review.ID,
		ProductID:          review.ProductID,
		UserID:             review.UserID,
		Rating:             review.Rating,
		Title:              review.Title,
		Comment:            review.Comment,
		IsVerifiedPurchase: review.IsVerifiedPurchase,
		HelpfulCount:       review.HelpfulCount,
		UnhelpfulCount:     review.UnhelpfulCount,
		SellerResponse:     review.SellerResponse,
		SellerResponseAt:   review.SellerResponseAt,
		CreatedAt:          review.CreatedAt,
	}
}
