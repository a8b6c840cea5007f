package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

func TestRepositoryCatalogFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	seller := mustCreateTestSeller(t, tx)
	visible := mustCreateTestProduct(t, tx, seller.ID, func(p *models.Product) {
		p.Title = "Copper Pipe Fitting"
		p.BasePrice = decimal.RequireFromString("50")
	})
	mustCreateTestProduct(t, tx, seller.ID, func(p *models.Product) {
		p.Title = "Hidden Pending Product"
		p.ApprovalStatus = enums.ApprovalStatusPending
	})
	mustCreateTestProduct(t, tx, seller.ID, func(p *models.Product) {
		p.Title = "Hidden Inactive Product"
		p.IsActive = false
	})

	sellerID := seller.ID
	result, err := repo.ListCatalog(ctx, ListInput{
		Filters:    ListFilters{SellerID: &sellerID},
		Sort:       enums.SortKeyNewest,
		Pagination: pagination.Params{Limit: 20},
	})
	if err != nil {
		t.Fatalf("list catalog: %v", err)
	}
	if len(result.Products) != 1 {
		t.Fatalf("expected only the approved active product, got %d", len(result.Products))
	}
	if result.Products[0].ID != visible.ID {
		t.Fatalf("unexpected product %s in catalog", result.Products[0].ID)
	}
	if result.Pagination.Total != 1 {
		t.Fatalf("total = %d, want 1", result.Pagination.Total)
	}

	search := ListInput{
		Filters:    ListFilters{SellerID: &sellerID, Search: "copper"},
		Pagination: pagination.Params{Limit: 20},
	}
	found, err := repo.ListCatalog(ctx, search)
	if err != nil {
		t.Fatalf("search catalog: %v", err)
	}
	if len(found.Products) != 1 {
		t.Fatalf("expected substring search to match, got %d rows", len(found.Products))
	}

	if err := repo.IncrementViewCount(ctx, visible.ID); err != nil {
		t.Fatalf("increment view count: %v", err)
	}
	reloaded, err := repo.FindByID(ctx, visible.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.ViewCount != visible.ViewCount+1 {
		t.Fatalf("view count = %d, want %d", reloaded.ViewCount, visible.ViewCount+1)
	}

	ok, err := repo.ReserveStock(ctx, visible.ID, 4)
	if err != nil || !ok {
		t.Fatalf("reserve stock: ok=%v err=%v", ok, err)
	}
	ok, err = repo.ReserveStock(ctx, visible.ID, 1000)
	if err != nil {
		t.Fatalf("reserve beyond stock: %v", err)
	}
	if ok {
		t.Fatal("expected oversized reservation to be rejected")
	}
}

func TestRepositoryBulkTierOrder(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	seller := mustCreateTestSeller(t, tx)
	prod := mustCreateTestProduct(t, tx, seller.ID, nil)

	tiers := []models.BulkPricingTier{
		{MinQuantity: 50, DiscountPercentage: decimal.RequireFromString("20")},
		{MinQuantity: 10, DiscountPercentage: decimal.RequireFromString("5")},
	}
	if err := repo.ReplaceBulkTiers(ctx, prod.ID, tiers); err != nil {
		t.Fatalf("replace bulk tiers: %v", err)
	}

	detail, err := repo.FindDetail(ctx, prod.ID)
	if err != nil {
		t.Fatalf("find detail: %v", err)
	}
	if len(detail.BulkPricingTiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(detail.BulkPricingTiers))
	}
	// Seller list order survives the round trip.
	if detail.BulkPricingTiers[0].MinQuantity != 50 || detail.BulkPricingTiers[1].MinQuantity != 10 {
		t.Fatalf("tiers out of order: %+v", detail.BulkPricingTiers)
	}

	if detail.ID == uuid.Nil {
		t.Fatal("expected product id")
	}
}
