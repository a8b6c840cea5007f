package reviews

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TRADEBAZAAR_DB_DSN")
	if dsn == "" {
		t.Skip("TRADEBAZAAR_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func mustCreateUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("tb_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		FullName:     "Review Tester",
		UserType:     enums.UserTypeEndCustomer,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateProduct(t *testing.T, tx *gorm.DB, sellerID uuid.UUID) *models.Product {
	t.Helper()
	prod := &models.Product{
		SellerID:       sellerID,
		Title:          fmt.Sprintf("Reviewed Product %s", uuid.NewString()[:8]),
		BasePrice:      decimal.RequireFromString("10"),
		MOQ:            1,
		IsActive:       true,
		ApprovalStatus: enums.ApprovalStatusApproved,
	}
	if err := tx.Create(prod).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return prod
}

func mustCreateReview(t *testing.T, repo *Repository, productID uuid.UUID, rating int) {
	t.Helper()
	tx := repo.db
	user := mustCreateUser(t, tx)
	if _, err := repo.Create(context.Background(), &models.Review{
		ProductID: productID,
		UserID:    user.ID,
		Rating:    rating,
	}); err != nil {
		t.Fatalf("create review: %v", err)
	}
}

func TestRefreshProductAggregates(t *testing.T) {
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

	seller := mustCreateUser(t, tx)
	prod := mustCreateProduct(t, tx, seller.ID)

	for _, rating := range []int{5, 3, 4} {
		mustCreateReview(t, repo, prod.ID, rating)
	}
	if err := repo.RefreshProductAggregates(ctx, prod.ID); err != nil {
		t.Fatalf("refresh aggregates: %v", err)
	}

	var reloaded models.Product
	if err := tx.First(&reloaded, "id = ?", prod.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if !reloaded.AverageRating.Equal(decimal.RequireFromString("4.00")) {
		t.Fatalf("average = %s, want 4.00", reloaded.AverageRating)
	}
	if reloaded.TotalReviews != 3 {
		t.Fatalf("total reviews = %d, want 3", reloaded.TotalReviews)
	}

	// One more 1-star rating pulls the average down to 3.25.
	mustCreateReview(t, repo, prod.ID, 1)
	if err := repo.RefreshProductAggregates(ctx, prod.ID); err != nil {
		t.Fatalf("refresh aggregates: %v", err)
	}
	if err := tx.First(&reloaded, "id = ?", prod.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if !reloaded.AverageRating.Equal(decimal.RequireFromString("3.25")) {
		t.Fatalf("average = %s, want 3.25", reloaded.AverageRating)
	}
	if reloaded.TotalReviews != 4 {
		t.Fatalf("total reviews = %d, want 4", reloaded.TotalReviews)
	}
	if reloaded.RatingBreakdown["5"] != 1 || reloaded.RatingBreakdown["1"] != 1 {
		t.Fatalf("unexpected breakdown: %v", reloaded.RatingBreakdown)
	}
}

func TestFindFulfilledOrderID(t *testing.T) {
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

	buyer := mustCreateUser(t, tx)
	seller := mustCreateUser(t, tx)
	prod := mustCreateProduct(t, tx, seller.ID)

	// Pending order does not count as a purchase.
	pendingOrder := &models.Order{
		UserID:      buyer.ID,
		OrderNumber: fmt.Sprintf("TB-%s", uuid.NewString()[:12]),
		Items:       types.OrderItems{{ProductID: prod.ID, Quantity: 1, UnitPrice: prod.BasePrice}},
		Status:      enums.OrderStatusPending,
	}
	if err := tx.Create(pendingOrder).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}

	got, err := repo.FindFulfilledOrderID(ctx, buyer.ID, prod.ID)
	if err != nil {
		t.Fatalf("find fulfilled order: %v", err)
	}
	if got != nil {
		t.Fatal("expected no fulfilled order for pending status")
	}

	delivered := &models.Order{
		UserID:      buyer.ID,
		OrderNumber: fmt.Sprintf("TB-%s", uuid.NewString()[:12]),
		Items:       types.OrderItems{{ProductID: prod.ID, Quantity: 1, UnitPrice: prod.BasePrice}},
		Status:      enums.OrderStatusDelivered,
	}
	if err := tx.Create(delivered).Error; err != nil {
		t.Fatalf("create delivered order: %v", err)
	}

	got, err = repo.FindFulfilledOrderID(ctx, buyer.ID, prod.ID)
	if err != nil {
		t.Fatalf("find fulfilled order: %v", err)
	}
	if got == nil || *got != delivered.ID {
		t.Fatalf("expected delivered order %s, got %v", delivered.ID, got)
	}
}
