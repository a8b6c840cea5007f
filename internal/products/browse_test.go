package product

import (
	"context"
	"testing"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
)

func TestRepositoryBrandsAndSuggestions(t *testing.T) {
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
	mustCreateTestProduct(t, tx, seller.ID, func(p *models.Product) {
		p.Title = "Brushed Steel Hinge"
		p.Brand = "Zenith Fixtures"
	})
	mustCreateTestProduct(t, tx, seller.ID, func(p *models.Product) {
		p.Title = "Brushed Brass Knob"
		p.Brand = "Zenith Fixtures"
	})
	mustCreateTestProduct(t, tx, seller.ID, func(p *models.Product) {
		p.Title = "Hidden Brushed Panel"
		p.Brand = "Ghost Brand"
		p.ApprovalStatus = enums.ApprovalStatusPending
	})

	brands, err := repo.ListBrands(ctx)
	if err != nil {
		t.Fatalf("list brands: %v", err)
	}
	seen := map[string]bool{}
	for _, b := range brands {
		seen[b] = true
	}
	if !seen["Zenith Fixtures"] {
		t.Fatal("expected Zenith Fixtures in brands")
	}
	if seen["Ghost Brand"] {
		t.Fatal("pending listings must not surface their brand")
	}

	suggestions, err := repo.SearchSuggestions(ctx, "brushed", 10)
	if err != nil {
		t.Fatalf("search suggestions: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("suggestions = %v, want the two live brushed titles", suggestions)
	}
	for _, s := range suggestions {
		if s == "Hidden Brushed Panel" {
			t.Fatal("pending listing leaked into suggestions")
		}
	}
}

func TestSearchSuggestionsShortTermReturnsNothing(t *testing.T) {
	svc := &service{}
	got, err := svc.SearchSuggestions(context.Background(), " a ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty suggestions, got %v", got)
	}
}
