package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	product "github.com/rkhandelwal/tradebazaar-backend/internal/products"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a wishlist entry and ignores duplicates, so re-adding the
// same product is a no-op rather than an error.
func (r *Repository) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_items (user_id, product_id) VALUES (?, ?) ON CONFLICT (user_id, product_id) DO NOTHING`, userID, productID).
		Error
}

// RemoveItem deletes the saved product if present.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

// Contains reports whether the user has saved the product.
func (r *Repository) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).
		Error
	return count > 0, err
}

// ListItems pages the user's saved products, most recently saved first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]WishlistItemDTO, pagination.Page, error) {
	params = params.Normalize()

	base := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, pagination.Page{}, err
	}

	var entries []models.WishlistItem
	err := base.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&entries).
		Error
	if err != nil {
		return nil, pagination.Page{}, err
	}

	productIDs := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		productIDs = append(productIDs, entry.ProductID)
	}

	byID := make(map[uuid.UUID]*models.Product, len(productIDs))
	if len(productIDs) > 0 {
		var prods []models.Product
		if err := r.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&prods).Error; err != nil {
			return nil, pagination.Page{}, err
		}
		for i := range prods {
			byID[prods[i].ID] = &prods[i]
		}
	}

	items := make([]WishlistItemDTO, 0, len(entries))
	for _, entry := range entries {
		prod, ok := byID[entry.ProductID]
		if !ok {
			continue
		}
		items = append(items, WishlistItemDTO{
			Product:   product.NewProductSummary(prod),
			CreatedAt: entry.CreatedAt,
		})
	}

	return items, pagination.PageFor(params, total), nil
}

// ListItemIDs returns every saved product ID for the user.
func (r *Repository) ListItemIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("product_id", &ids).
		Error
	return ids, err
}
