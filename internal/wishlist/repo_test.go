package wishlist

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
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
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

func TestAddItemIsIdempotent(t *testing.T) {
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

	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("tb_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		FullName:     "Wish Lister",
		UserType:     enums.UserTypeEndCustomer,
		IsActive:     true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	prod := &models.Product{
		SellerID:       user.ID,
		Title:          "Saved Product",
		BasePrice:      decimal.RequireFromString("10"),
		MOQ:            1,
		IsActive:       true,
		ApprovalStatus: enums.ApprovalStatusApproved,
	}
	if err := tx.Create(prod).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.AddItem(ctx, user.ID, prod.ID); err != nil {
			t.Fatalf("add item attempt %d: %v", i, err)
		}
	}

	items, page, err := repo.ListItems(ctx, user.ID, pagination.Params{Limit: 20})
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 || page.Total != 1 {
		t.Fatalf("expected exactly one wishlist row, got %d (total %d)", len(items), page.Total)
	}

	if err := repo.RemoveItem(ctx, user.ID, prod.ID); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	ok, err := repo.Contains(ctx, user.ID, prod.ID)
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if ok {
		t.Fatal("expected item removed")
	}
}
