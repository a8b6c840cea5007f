package wishlist

import (
	"time"

	"github.com/google/uuid"

	product "github.com/rkhandelwal/tradebazaar-backend/internal/products"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

// WishlistItemDTO wraps the product summary included in a wishlist row.
type WishlistItemDTO struct {
	Product   product.ProductSummary `json:"product"`
	CreatedAt time.Time              `json:"created_at"`
}

// WishlistPageDTO is a paginated wishlist view.
type WishlistPageDTO struct {
	Items      []WishlistItemDTO `json:"items"`
	Pagination pagination.Page   `json:"pagination"`
}

// WishlistIDsDTO is a lightweight projection containing only product IDs.
type WishlistIDsDTO struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}
