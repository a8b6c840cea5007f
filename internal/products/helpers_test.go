package product

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
)

func mustCreateTestSeller(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:                 uuid.New(),
		Email:              fmt.Sprintf("tb_test_%s@example.com", uuid.NewString()),
		PasswordHash:       "hash",
		FullName:           "Repo Tester",
		UserType:           enums.UserTypeManufacturer,
		RegistrationType:   enums.RegistrationTypePartner,
		VerificationStatus: enums.VerificationStatusVerified,
		EmailVerified:      true,
		IsActive:           true,
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, sellerID uuid.UUID, mutate func(*models.Product)) *models.Product {
	t.Helper()
	prod := &models.Product{
		SellerID:       sellerID,
		Title:          fmt.Sprintf("Test Product %s", uuid.NewString()[:8]),
		Brand:          "Acme",
		CategoryLabel:  "hardware",
		BasePrice:      decimal.RequireFromString("100"),
		MOQ:            1,
		StockQuantity:  10,
		IsActive:       true,
		ApprovalStatus: enums.ApprovalStatusApproved,
	}
	if mutate != nil {
		mutate(prod)
	}
	if err := tx.Create(prod).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return prod
}
