package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// Product is a catalog listing owned by one seller. Pricing tiers, size
// configuration and engagement counters live on the row; bulk tiers and
// variants are child tables.
type Product struct {
	ID                uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID          uuid.UUID                `gorm:"column:seller_id;type:uuid;not null;index:products_seller_idx"`
	CategoryID        *uuid.UUID               `gorm:"column:category_id;type:uuid;index:products_category_idx"`
	CategoryLabel     string                   `gorm:"column:category_label;not null;default:''"`
	Subcategory       string                   `gorm:"column:subcategory;not null;default:''"`
	Title             string                   `gorm:"column:title;not null"`
	Description       string                   `gorm:"column:description;not null;default:''"`
	Brand             string                   `gorm:"column:brand;not null;default:''"`
	Tags              pq.StringArray           `gorm:"column:tags;type:text[];not null;default:'{}'"`
	BasePrice         decimal.Decimal          `gorm:"column:base_price;type:numeric(12,2);not null"`
	PricingTiers      types.PriceTiers         `gorm:"column:pricing_tiers;type:jsonb;not null;default:'{}'"`
	SizeConfiguration *types.SizeConfiguration `gorm:"column:size_configuration;type:jsonb"`
	GSTPercentage     decimal.Decimal          `gorm:"column:gst_percentage;type:numeric(5,2);not null;default:0"`
	GSTAvailable      bool                     `gorm:"column:gst_available;not null;default:false"`
	MOQ               int                      `gorm:"column:moq;not null;default:1"`
	StockQuantity     int                      `gorm:"column:stock_quantity;not null;default:0"`
	HasVariants       bool                     `gorm:"column:has_variants;not null;default:false"`
	CustomSizing      bool                     `gorm:"column:custom_sizing;not null;default:false"`
	IsFeatured        bool                     `gorm:"column:is_featured;not null;default:false"`
	IsTrending        bool                     `gorm:"column:is_trending;not null;default:false"`
	IsActive          bool                     `gorm:"column:is_active;not null;default:true"`
	IsMultiSeller     bool                     `gorm:"column:is_multi_seller;not null;default:false"`
	LowestPrice       *decimal.Decimal         `gorm:"column:lowest_price;type:numeric(12,2)"`
	ApprovalStatus    enums.ApprovalStatus     `gorm:"column:approval_status;type:text;not null;default:'pending'"`
	AverageRating     decimal.Decimal          `gorm:"column:average_rating;type:numeric(3,2);not null;default:0"`
	TotalReviews      int                      `gorm:"column:total_reviews;not null;default:0"`
	RatingBreakdown   types.RatingBreakdown    `gorm:"column:rating_breakdown;type:jsonb;not null;default:'{}'"`
	TotalSold         int                      `gorm:"column:total_sold;not null;default:0"`
	ViewCount         int                      `gorm:"column:view_count;not null;default:0"`
	Media             types.StringList         `gorm:"column:media;type:jsonb;not null;default:'[]'"`
	Specifications    types.Document           `gorm:"column:specifications;type:jsonb;not null;default:'{}'"`
	CreatedAt         time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	BulkPricingTiers []BulkPricingTier `gorm:"foreignKey:ProductID"`
	Variants         []ProductVariant  `gorm:"foreignKey:ProductID"`
}
