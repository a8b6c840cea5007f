package questions

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

func mustCreateUser(t *testing.T, tx *gorm.DB, userType enums.UserType) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("tb_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		FullName:     "Question Tester",
		UserType:     userType,
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
		Title:          fmt.Sprintf("Questioned Product %s", uuid.NewString()[:8]),
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

func TestAnswerAndListFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	ctx := context.Background()
	seller := mustCreateUser(t, tx, enums.UserTypeManufacturer)
	buyer := mustCreateUser(t, tx, enums.UserTypeEndCustomer)
	prod := mustCreateProduct(t, tx, seller.ID)

	repo := NewRepository(tx)
	svc, err := NewService(repo, stubProductLoader{product: prod})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	asked, err := svc.AskQuestion(ctx, buyer.ID, prod.ID, "Does it ship assembled?")
	if err != nil {
		t.Fatalf("ask question: %v", err)
	}
	if _, err := svc.AskQuestion(ctx, buyer.ID, prod.ID, "Second, unanswered"); err != nil {
		t.Fatalf("ask second question: %v", err)
	}

	answered, err := svc.AnswerQuestion(ctx, seller.ID, false, asked.ID, "Yes, fully assembled.")
	if err != nil {
		t.Fatalf("answer question: %v", err)
	}
	if !answered.IsSellerAnswer {
		t.Fatal("seller answer must be marked is_seller_answer")
	}

	if err := svc.Vote(ctx, asked.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}

	page, err := svc.ListQuestions(ctx, prod.ID, true, pagination.Params{Limit: 20})
	if err != nil {
		t.Fatalf("list answered: %v", err)
	}
	if len(page.Questions) != 1 {
		t.Fatalf("answered-only list = %d questions, want 1", len(page.Questions))
	}
	if page.Questions[0].HelpfulCount != 1 {
		t.Fatalf("helpful_count = %d, want 1", page.Questions[0].HelpfulCount)
	}

	all, err := svc.ListQuestions(ctx, prod.ID, false, pagination.Params{Limit: 20})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all.Questions) != 2 {
		t.Fatalf("full list = %d questions, want 2", len(all.Questions))
	}
}

func TestAnswerRejectsForeignSeller(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	ctx := context.Background()
	seller := mustCreateUser(t, tx, enums.UserTypeManufacturer)
	intruder := mustCreateUser(t, tx, enums.UserTypeRetailer)
	buyer := mustCreateUser(t, tx, enums.UserTypeEndCustomer)
	prod := mustCreateProduct(t, tx, seller.ID)

	repo := NewRepository(tx)
	svc, err := NewService(repo, stubProductLoader{product: prod})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	asked, err := svc.AskQuestion(ctx, buyer.ID, prod.ID, "Any bulk discount?")
	if err != nil {
		t.Fatalf("ask question: %v", err)
	}

	if _, err := svc.AnswerQuestion(ctx, intruder.ID, false, asked.ID, "no"); err == nil {
		t.Fatal("expected forbidden error for a seller who does not own the product")
	}

	answered, err := svc.AnswerQuestion(ctx, intruder.ID, true, asked.ID, "Yes, see tiers.")
	if err != nil {
		t.Fatalf("admin answer: %v", err)
	}
	if answered.IsSellerAnswer {
		t.Fatal("admin answer must not be marked is_seller_answer")
	}
}

type stubProductLoader struct {
	product *models.Product
}

func (s stubProductLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.product != nil && s.product.ID == id {
		return s.product, nil
	}
	return nil, gorm.ErrRecordNotFound
}
