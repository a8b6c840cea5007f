package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// ProductSummary is the compact card returned by catalog listings.
type ProductSummary struct {
	ID            uuid.UUID        `json:"id"`
	SellerID      uuid.UUID        `json:"seller_id"`
	Title         string           `json:"title"`
	Brand         string           `json:"brand,omitempty"`
	Category      string           `json:"category,omitempty"`
	Subcategory   string           `json:"subcategory,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	BasePrice     decimal.Decimal  `json:"base_price"`
	LowestPrice   *decimal.Decimal `json:"lowest_price,omitempty"`
	GSTAvailable  bool             `json:"gst_available"`
	MOQ           int              `json:"moq"`
	StockQuantity int              `json:"stock_quantity"`
	HasVariants   bool             `json:"has_variants"`
	CustomSizing  bool             `json:"custom_sizing"`
	IsFeatured    bool             `json:"is_featured"`
	IsTrending    bool             `json:"is_trending"`
	AverageRating decimal.Decimal  `json:"average_rating"`
	TotalReviews  int              `json:"total_reviews"`
	TotalSold     int              `json:"total_sold"`
	Media         []string         `json:"media,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ProductDTO is the full listing payload returned on detail reads.
type ProductDTO struct {
	ID                uuid.UUID                `json:"id"`
	SellerID          uuid.UUID                `json:"seller_id"`
	CategoryID        *uuid.UUID               `json:"category_id,omitempty"`
	Category          string                   `json:"category,omitempty"`
	Subcategory       string                   `json:"subcategory,omitempty"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description,omitempty"`
	Brand             string                   `json:"brand,omitempty"`
	Tags              []string                 `json:"tags,omitempty"`
	BasePrice         decimal.Decimal          `json:"base_price"`
	PricingTiers      types.PriceTiers         `json:"pricing_tiers,omitempty"`
	SizeConfiguration *types.SizeConfiguration `json:"size_configuration,omitempty"`
	GSTPercentage     decimal.Decimal          `json:"gst_percentage"`
	GSTAvailable      bool                     `json:"gst_available"`
	MOQ               int                      `json:"moq"`
	StockQuantity     int                      `json:"stock_quantity"`
	HasVariants       bool                     `json:"has_variants"`
	CustomSizing      bool                     `json:"custom_sizing"`
	IsFeatured        bool                     `json:"is_featured"`
	IsTrending        bool                     `json:"is_trending"`
	IsActive          bool                     `json:"is_active"`
	IsMultiSeller     bool                     `json:"is_multi_seller"`
	LowestPrice       *decimal.Decimal         `json:"lowest_price,omitempty"`
	ApprovalStatus    string                   `json:"approval_status"`
	AverageRating     decimal.Decimal          `json:"average_rating"`
	TotalReviews      int                      `json:"total_reviews"`
	RatingBreakdown   types.RatingBreakdown    `json:"rating_breakdown,omitempty"`
	TotalSold         int                      `json:"total_sold"`
	ViewCount         int                      `json:"view_count"`
	Media             []string                 `json:"media,omitempty"`
	Specifications    types.Document           `json:"specifications,omitempty"`
	BulkPricingTiers  []BulkTierDTO            `json:"bulk_pricing_tiers,omitempty"`
	Variants          []VariantDTO             `json:"variants,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// BulkTierDTO mirrors one quantity discount tier in seller list order.
type BulkTierDTO struct {
	ID                  uuid.UUID       `json:"id"`
	MinQuantity         int             `json:"min_quantity"`
	MaxQuantity         *int            `json:"max_quantity,omitempty"`
	DiscountPercentage  decimal.Decimal `json:"discount_percentage"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	ApplicableUserTypes []string        `json:"applicable_user_types,omitempty"`
}

// VariantDTO is one purchasable variation of a listing.
type VariantDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	SKU           *string          `json:"sku,omitempty"`
	Attributes    types.Document   `json:"attributes,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	StockQuantity int              `json:"stock_quantity"`
	IsActive      bool             `json:"is_active"`
}

// ListResult pairs a catalog page with its pagination metadata.
type ListResult struct {
	Products   []ProductSummary `json:"products"`
	Pagination pagination.Page  `json:"pagination"`
}

// QuoteDTO is the resolved price for a given buyer, quantity, and optional
// custom dimensions.
type QuoteDTO struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewProductSummary projects a model row onto the listing card.
func NewProductSummary(p *models.Product) ProductSummary {
	return ProductSummary{
		ID:            p.ID,
		SellerID:      p.SellerID,
		Title:         p.Title,
		Brand:         p.Brand,
		Category:      p.CategoryLabel,
		Subcategory:   p.Subcategory,
		Tags:          p.Tags,
		BasePrice:     p.BasePrice,
		LowestPrice:   p.LowestPrice,
		GSTAvailable:  p.GSTAvailable,
		MOQ:           p.MOQ,
		StockQuantity: p.StockQuantity,
		HasVariants:   p.HasVariants,
		CustomSizing:  p.CustomSizing,
		IsFeatured:    p.IsFeatured,
		IsTrending:    p.IsTrending,
		AverageRating: p.AverageRating,
		TotalReviews:  p.TotalReviews,
		TotalSold:     p.TotalSold,
		Media:         p.Media,
		CreatedAt:     p.CreatedAt,
	}
}

// NewProductDTO projects a fully loaded model onto the detail payload.
func NewProductDTO(p *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:                p.ID,
		SellerID:          p.SellerID,
		CategoryID:        p.CategoryID,
		Category:          p.CategoryLabel,
		Subcategory:       p.Subcategory,
		Title:             p.Title,
		Description:       p.Description,
		Brand:             p.Brand,
		Tags:              p.Tags,
		BasePrice:         p.BasePrice,
		PricingTiers:      p.PricingTiers,
		SizeConfiguration: p.SizeConfiguration,
		GSTPercentage:     p.GSTPercentage,
		GSTAvailable:      p.GSTAvailable,
		MOQ:               p.MOQ,
		StockQuantity:     p.StockQuantity,
		HasVariants:       p.HasVariants,
		CustomSizing:      p.CustomSizing,
		IsFeatured:        p.IsFeatured,
		IsTrending:        p.IsTrending,
		IsActive:          p.IsActive,
		IsMultiSeller:     p.IsMultiSeller,
		LowestPrice:       p.LowestPrice,
		ApprovalStatus:    p.ApprovalStatus.String(),
		AverageRating:     p.AverageRating,
		TotalReviews:      p.TotalReviews,
		RatingBreakdown:   p.RatingBreakdown,
		TotalSold:         p.TotalSold,
		ViewCount:         p.ViewCount,
		Media:             p.Media,
		Specifications:    p.Specifications,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}

	for _, tier := range p.BulkPricingTiers {
		dto.BulkPricingTiers = append(dto.BulkPricingTiers, BulkTierDTO{
			ID:                  tier.ID,
			MinQuantity:         tier.MinQuantity,
			MaxQuantity:         tier.MaxQuantity,
			DiscountPercentage:  tier.DiscountPercentage,
			DiscountAmount:      tier.DiscountAmount,
			ApplicableUserTypes: tier.ApplicableUserTypes,
		})
	}
	for _, variant := range p.Variants {
		dto.Variants = append(dto.Variants, VariantDTO{
			ID:            variant.ID,
			Name:          variant.Name,
			SKU:           variant.SKU,
			Attributes:    variant.Attributes,
			Price:         variant.Price,
			StockQuantity: variant.StockQuantity,
			IsActive:      variant.IsActive,
		})
	}
	return dto
}
