package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// Repository wires together catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDetail loads the product with bulk tiers in seller order and its
// variants.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("BulkPricingTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the full product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by ID; child rows cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// SetApprovalStatus moves the listing through moderation.
func (r *Repository) SetApprovalStatus(ctx context.Context, id uuid.UUID, status enums.ApprovalStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("approval_status", status).
		Error
}

// IncrementViewCount bumps the engagement counter without racing concurrent
// readers.
func (r *Repository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).
		Error
}

// AddTotalSold adds the purchased quantity onto the sales counter.
func (r *Repository) AddTotalSold(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("total_sold", gorm.Expr("total_sold + ?", quantity)).
		Error
}

// ReserveStock decrements stock only when enough remains and reports
// whether the decrement happened.
func (r *Repository) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RestockQuantity returns stock after a cancellation.
func (r *Repository) RestockQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).
		Error
}

// ReplaceBulkTiers swaps all quantity tiers for the product, preserving the
// provided slice order as tier positions.
func (r *Repository) ReplaceBulkTiers(ctx context.Context, productID uuid.UUID, tiers []models.BulkPricingTier) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.BulkPricingTier{}).Error; err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	for i := range tiers {
		tiers[i].ProductID = productID
		tiers[i].Position = i
	}
	return tx.Create(&tiers).Error
}

// ReplaceVariants swaps the variant set for the product.
func (r *Repository) ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return err
	}
	if len(variants) == 0 {
		return nil
	}
	for i := range variants {
		variants[i].ProductID = productID
	}
	return tx.Create(&variants).Error
}

// ListSellerOffers returns every seller offer on a shared listing, cheapest
// first.
func (r *Repository) ListSellerOffers(ctx context.Context, productID uuid.UUID) ([]models.MultiSellerListing, error) {
	var rows []models.MultiSellerListing
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("price ASC").
		Find(&rows).
		Error
	return rows, err
}

// UpsertSellerOffer creates or refreshes one seller's offer on a shared
// listing, then refreshes the cached lowest price.
func (r *Repository) UpsertSellerOffer(ctx context.Context, offer *models.MultiSellerListing) error {
	tx := r.db.WithContext(ctx)
	err := tx.Exec(`
INSERT INTO multi_seller_listings (product_id, seller_id, price, stock_quantity, is_active)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (product_id, seller_id)
DO UPDATE SET price = EXCLUDED.price, stock_quantity = EXCLUDED.stock_quantity, is_active = EXCLUDED.is_active`,
		offer.ProductID, offer.SellerID, offer.Price, offer.StockQuantity, offer.IsActive).Error
	if err != nil {
		return err
	}
	return r.refreshLowestPrice(ctx, offer.ProductID)
}

func (r *Repository) refreshLowestPrice(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(`
UPDATE products
SET lowest_price = (
  SELECT MIN(price) FROM multi_seller_listings
  WHERE product_id = ? AND is_active = true AND stock_quantity > 0
)
WHERE id = ?`, productID, productID).Error
}

// ListBySeller lists one seller's own products regardless of approval state.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("BulkPricingTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListCatalog runs the public catalog query: active approved listings
// narrowed by the conjunctive filters, searched, sorted, and paginated by
// skip/limit.
func (r *Repository) ListCatalog(ctx context.Context, input ListInput) (*ListResult, error) {
	params := input.Pagination.Normalize()

	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Where("approval_status = ?", enums.ApprovalStatusApproved)

	qb = applyFilters(qb, input.Filters)

	var total int64
	if err := qb.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Product
	err := qb.
		Order(sortExpression(input.Sort)).
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	summaries := make([]ProductSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, NewProductSummary(&rows[i]))
	}

	return &ListResult{
		Products:   summaries,
		Pagination: pagination.PageFor(params, total),
	}, nil
}

func applyFilters(qb *gorm.DB, filter ListFilters) *gorm.DB {
	if filter.CategoryID != nil {
		qb = qb.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Subcategory != nil {
		qb = qb.Where("subcategory = ?", *filter.Subcategory)
	}
	if filter.SellerID != nil {
		qb = qb.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.Brand != nil {
		qb = qb.Where("LOWER(brand) = LOWER(?)", *filter.Brand)
	}
	if filter.PriceMin != nil {
		qb = qb.Where("base_price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		qb = qb.Where("base_price <= ?", *filter.PriceMax)
	}
	if filter.MinRating != nil {
		qb = qb.Where("average_rating >= ?", *filter.MinRating)
	}
	if filter.MinReviews != nil {
		qb = qb.Where("total_reviews >= ?", *filter.MinReviews)
	}
	if filter.InStock != nil {
		if *filter.InStock {
			qb = qb.Where("stock_quantity > 0")
		} else {
			qb = qb.Where("stock_quantity = 0")
		}
	}
	if filter.HasVariants != nil {
		qb = qb.Where("has_variants = ?", *filter.HasVariants)
	}
	if filter.IsFeatured != nil {
		qb = qb.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.IsTrending != nil {
		qb = qb.Where("is_trending = ?", *filter.IsTrending)
	}
	if filter.CustomSizing != nil {
		qb = qb.Where("custom_sizing = ?", *filter.CustomSizing)
	}
	if filter.GSTAvailable != nil {
		qb = qb.Where("gst_available = ?", *filter.GSTAvailable)
	}
	if filter.MOQMax != nil {
		qb = qb.Where("moq <= ?", *filter.MOQMax)
	}
	if search := searchPattern(filter.Search); search != "%%" {
		qb = qb.Where(
			"(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(category_label) LIKE ? OR LOWER(ARRAY_TO_STRING(tags, ' ')) LIKE ?)",
			search, search, search, search, search,
		)
	}
	return qb
}
