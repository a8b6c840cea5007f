package product

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// ListFilters narrows the public catalog query. All set filters combine
// conjunctively.
type ListFilters struct {
	CategoryID   *uuid.UUID       `json:"category_id,omitempty"`
	Subcategory  *string          `json:"subcategory,omitempty"`
	SellerID     *uuid.UUID       `json:"seller_id,omitempty"`
	Brand        *string          `json:"brand,omitempty"`
	PriceMin     *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax     *decimal.Decimal `json:"price_max,omitempty"`
	MinRating    *decimal.Decimal `json:"min_rating,omitempty"`
	MinReviews   *int             `json:"min_reviews,omitempty"`
	InStock      *bool            `json:"in_stock,omitempty"`
	HasVariants  *bool            `json:"has_variants,omitempty"`
	IsFeatured   *bool            `json:"is_featured,omitempty"`
	IsTrending   *bool            `json:"is_trending,omitempty"`
	CustomSizing *bool            `json:"custom_sizing,omitempty"`
	GSTAvailable *bool            `json:"gst_available,omitempty"`
	MOQMax       *int             `json:"moq_max,omitempty"`
	Search       string           `json:"q,omitempty"`
}

// ListInput is the validated catalog query.
type ListInput struct {
	Filters    ListFilters
	Sort       enums.SortKey
	Pagination pagination.Params
}

// sortExpression maps a sort key onto a deterministic ORDER BY clause.
// Every order ends on created_at so pages stay stable across requests.
func sortExpression(key enums.SortKey) string {
	switch key {
	case enums.SortKeyPriceLow:
		return "base_price ASC, created_at DESC"
	case enums.SortKeyPriceHigh:
		return "base_price DESC, created_at DESC"
	case enums.SortKeyRating:
		return "average_rating DESC, total_reviews DESC, created_at DESC"
	case enums.SortKeyPopularity:
		return "total_sold DESC, created_at DESC"
	case enums.SortKeyRelevance:
		return "view_count DESC, total_sold DESC, created_at DESC"
	case enums.SortKeyTrending:
		return "is_trending DESC, view_count DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

func searchPattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
