package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rkhandelwal/tradebazaar-backend/internal/pricing"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db/models"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// Service exposes catalog management and pricing operations.
type Service interface {
	CreateProduct(ctx context.Context, sellerID uuid.UUID, input CreateInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input UpdateInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID, countView bool) (*ProductDTO, error)
	ListCatalog(ctx context.Context, input ListInput) (*ListResult, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListBrands(ctx context.Context) ([]string, error)
	SearchSuggestions(ctx context.Context, term string) ([]string, error)
	ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]ProductSummary, error)
	SetApproval(ctx context.Context, productID uuid.UUID, status enums.ApprovalStatus) error
	UpsertSellerOffer(ctx context.Context, sellerID, productID uuid.UUID, price decimal.Decimal, stock int) error
	QuotePrice(ctx context.Context, input QuoteInput) (*QuoteDTO, error)
}

// CreateInput holds the validated payload to create a listing.
type CreateInput struct {
	Title             string
	Description       string
	Brand             string
	CategoryID        *uuid.UUID
	CategoryLabel     string
	Subcategory       string
	Tags              []string
	BasePrice         decimal.Decimal
	PricingTiers      types.PriceTiers
	SizeConfiguration *types.SizeConfiguration
	GSTPercentage     decimal.Decimal
	GSTAvailable      bool
	MOQ               int
	StockQuantity     int
	CustomSizing      bool
	IsMultiSeller     bool
	Media             []string
	Specifications    types.Document
	BulkPricingTiers  []BulkTierInput
	Variants          []VariantInput
}

// UpdateInput holds optional mutation values for a listing.
type UpdateInput struct {
	Title             *string
	Description       *string
	Brand             *string
	CategoryID        *uuid.UUID
	CategoryLabel     *string
	Subcategory       *string
	Tags              *[]string
	BasePrice         *decimal.Decimal
	PricingTiers      *types.PriceTiers
	SizeConfiguration *types.SizeConfiguration
	GSTPercentage     *decimal.Decimal
	GSTAvailable      *bool
	MOQ               *int
	StockQuantity     *int
	CustomSizing      *bool
	IsActive          *bool
	IsFeatured        *bool
	IsTrending        *bool
	Media             *[]string
	Specifications    *types.Document
	BulkPricingTiers  *[]BulkTierInput
	Variants          *[]VariantInput
}

// BulkTierInput defines one quantity discount tier in seller list order.
type BulkTierInput struct {
	MinQuantity         int
	MaxQuantity         *int
	DiscountPercentage  decimal.Decimal
	DiscountAmount      decimal.Decimal
	ApplicableUserTypes []string
}

// VariantInput defines one purchasable variation.
type VariantInput struct {
	Name          string
	SKU           *string
	Attributes    types.Document
	Price         *decimal.Decimal
	StockQuantity int
	IsActive      bool
}

// QuoteInput resolves a price for a buyer, quantity, and optional custom
// dimensions.
type QuoteInput struct {
	ProductID        uuid.UUID
	UserType         enums.UserType
	Quantity         int
	CustomDimensions *types.Dimensions
}

type sellerLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	users    sellerLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, users sellerLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, dbClient: dbClient, users: users}, nil
}

// CreateProduct creates the listing with its bulk tiers and variants. New
// listings start in pending moderation and stay out of the public catalog
// until approved.
func (s *service) CreateProduct(ctx context.Context, sellerID uuid.UUID, input CreateInput) (*ProductDTO, error) {
	if err := s.ensureVerifiedPartner(ctx, sellerID); err != nil {
		return nil, err
	}
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		prod := &models.Product{
			SellerID:          sellerID,
			CategoryID:        input.CategoryID,
			CategoryLabel:     strings.TrimSpace(input.CategoryLabel),
			Subcategory:       strings.TrimSpace(input.Subcategory),
			Title:             strings.TrimSpace(input.Title),
			Description:       input.Description,
			Brand:             strings.TrimSpace(input.Brand),
			Tags:              input.Tags,
			BasePrice:         input.BasePrice,
			PricingTiers:      input.PricingTiers,
			SizeConfiguration: input.SizeConfiguration,
			GSTPercentage:     input.GSTPercentage,
			GSTAvailable:      input.GSTAvailable,
			MOQ:               input.MOQ,
			StockQuantity:     input.StockQuantity,
			HasVariants:       len(input.Variants) > 0,
			CustomSizing:      input.CustomSizing,
			IsActive:          true,
			IsMultiSeller:     input.IsMultiSeller,
			ApprovalStatus:    enums.ApprovalStatusPending,
			Media:             input.Media,
			Specifications:    input.Specifications,
		}
		if prod.PricingTiers == nil {
			prod.PricingTiers = types.PriceTiers{}
		}

		created, err := txRepo.Create(ctx, prod)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		if len(input.BulkPricingTiers) > 0 {
			if err := txRepo.ReplaceBulkTiers(ctx, created.ID, buildBulkTierRows(input.BulkPricingTiers)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert bulk tiers")
			}
		}
		if len(input.Variants) > 0 {
			if err := txRepo.ReplaceVariants(ctx, created.ID, buildVariantRows(input.Variants)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variants")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	created, err := s.repo.FindDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(created), nil
}

// UpdateProduct mutates an existing listing owned by the seller.
func (s *service) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input UpdateInput) (*ProductDTO, error) {
	prod, err := s.loadOwnedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		applyUpdate(prod, input)
		if _, err := txRepo.Update(ctx, prod); err != nil {
			return err
		}
		if input.BulkPricingTiers != nil {
			if err := txRepo.ReplaceBulkTiers(ctx, prod.ID, buildBulkTierRows(*input.BulkPricingTiers)); err != nil {
				return err
			}
		}
		if input.Variants != nil {
			rows := buildVariantRows(*input.Variants)
			if err := txRepo.ReplaceVariants(ctx, prod.ID, rows); err != nil {
				return err
			}
			if prod.HasVariants != (len(rows) > 0) {
				prod.HasVariants = len(rows) > 0
				if _, err := txRepo.Update(ctx, prod); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	updated, err := s.repo.FindDetail(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes a listing owned by the seller.
func (s *service) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	if _, err := s.loadOwnedProduct(ctx, sellerID, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// GetProduct loads the full listing. Public reads bump the view counter;
// the counter update is best effort and never fails the read.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID, countView bool) (*ProductDTO, error) {
	prod, err := s.repo.FindDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if countView {
		_ = s.repo.IncrementViewCount(ctx, productID)
	}
	return NewProductDTO(prod), nil
}

// ListCatalog serves the public browse query.
func (s *service) ListCatalog(ctx context.Context, input ListInput) (*ListResult, error) {
	result, err := s.repo.ListCatalog(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog")
	}
	return result, nil
}

// ListSellerProducts returns the seller's own listings, pending ones
// included.
func (s *service) ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]ProductSummary, error) {
	rows, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list seller products")
	}
	summaries := make([]ProductSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, NewProductSummary(&rows[i]))
	}
	return summaries, nil
}

// SetApproval moves a listing through moderation.
func (s *service) SetApproval(ctx context.Context, productID uuid.UUID, status enums.ApprovalStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid approval status")
	}
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.SetApprovalStatus(ctx, productID, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set approval status")
	}
	return nil
}

// UpsertSellerOffer records a seller's offer on a shared multi-seller
// listing and refreshes the cached lowest price.
func (s *service) UpsertSellerOffer(ctx context.Context, sellerID, productID uuid.UUID, price decimal.Decimal, stock int) error {
	if err := s.ensureVerifiedPartner(ctx, sellerID); err != nil {
		return err
	}
	if !price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock_quantity must be non-negative")
	}

	prod, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !prod.IsMultiSeller {
		return pkgerrors.New(pkgerrors.CodeConflict, "product does not accept seller offers")
	}

	offer := &models.MultiSellerListing{
		ProductID:     productID,
		SellerID:      sellerID,
		Price:         price,
		StockQuantity: stock,
		IsActive:      stock > 0,
	}
	if err := s.repo.UpsertSellerOffer(ctx, offer); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert seller offer")
	}
	return nil
}

// QuotePrice resolves the effective unit price and line total for a buyer.
func (s *service) QuotePrice(ctx context.Context, input QuoteInput) (*QuoteDTO, error) {
	prod, err := s.repo.FindDetail(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return quoteForProduct(prod, input)
}

// quoteForProduct prices one line. Custom dimensions replace the tiered
// unit price when the product allows custom sizing; bulk tiers then apply
// on top of whichever unit price was chosen.
func quoteForProduct(prod *models.Product, input QuoteInput) (*QuoteDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.Quantity < prod.MOQ {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity below minimum order quantity of %d", prod.MOQ))
	}

	var unit decimal.Decimal
	if input.CustomDimensions != nil {
		if prod.SizeConfiguration == nil || !prod.SizeConfiguration.SizeType.AllowsCustom() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product does not support custom sizing")
		}
		price, err := pricing.CustomSizePrice(*prod.SizeConfiguration, *input.CustomDimensions)
		if err != nil {
			return nil, mapPricingError(err)
		}
		unit = price
	} else {
		unit = pricing.UnitPrice(prod.BasePrice, prod.PricingTiers, input.UserType)
	}

	unit, err := pricing.ApplyBulkPricing(unit, input.Quantity, prod.BulkPricingTiers, input.UserType)
	if err != nil {
		return nil, mapPricingError(err)
	}

	return &QuoteDTO{
		ProductID: prod.ID,
		Quantity:  input.Quantity,
		UnitPrice: unit,
		LineTotal: unit.Mul(decimal.NewFromInt(int64(input.Quantity))).Round(2),
	}, nil
}

func mapPricingError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrInvalidQuantity):
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	case errors.Is(err, pricing.ErrUnknownPricingMethod):
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown pricing method")
	case errors.Is(err, pricing.ErrDimensionOutOfRange):
		return pkgerrors.New(pkgerrors.CodeValidation, "dimensions outside allowed range")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "price product")
	}
}

func (s *service) ensureVerifiedPartner(ctx context.Context, sellerID uuid.UUID) error {
	seller, err := s.users.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "seller not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller")
	}
	if !seller.UserType.IsPartner() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only partner accounts can sell")
	}
	if seller.VerificationStatus != enums.VerificationStatusVerified {
		return pkgerrors.New(pkgerrors.CodeForbidden, "seller account is not verified")
	}
	return nil
}

func (s *service) loadOwnedProduct(ctx context.Context, sellerID, productID uuid.UUID) (*models.Product, error) {
	prod, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if prod.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to seller")
	}
	return prod, nil
}

func validateCreateInput(input CreateInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !input.BasePrice.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "base_price must be positive")
	}
	if input.MOQ < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "moq must be at least 1")
	}
	if input.StockQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock_quantity must be non-negative")
	}
	if err := validateGSTPercentage(input.GSTPercentage); err != nil {
		return err
	}
	if err := validatePricingTiers(input.PricingTiers); err != nil {
		return err
	}
	if input.CustomSizing {
		if input.SizeConfiguration == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "size_configuration is required for custom sizing")
		}
		if err := validateSizeConfiguration(*input.SizeConfiguration); err != nil {
			return err
		}
	}
	return validateBulkTiers(input.BulkPricingTiers)
}

func validateUpdateInput(input UpdateInput) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}
	if input.BasePrice != nil && !input.BasePrice.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "base_price must be positive")
	}
	if input.MOQ != nil && *input.MOQ < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "moq must be at least 1")
	}
	if input.StockQuantity != nil && *input.StockQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock_quantity must be non-negative")
	}
	if input.GSTPercentage != nil {
		if err := validateGSTPercentage(*input.GSTPercentage); err != nil {
			return err
		}
	}
	if input.PricingTiers != nil {
		if err := validatePricingTiers(*input.PricingTiers); err != nil {
			return err
		}
	}
	if input.SizeConfiguration != nil {
		if err := validateSizeConfiguration(*input.SizeConfiguration); err != nil {
			return err
		}
	}
	if input.BulkPricingTiers != nil {
		return validateBulkTiers(*input.BulkPricingTiers)
	}
	return nil
}

func validateGSTPercentage(value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "gst_percentage must be between 0 and 100")
	}
	return nil
}

func validatePricingTiers(tiers types.PriceTiers) error {
	for userType, price := range tiers {
		if !enums.UserType(userType).IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown user type %q in pricing_tiers", userType))
		}
		if !price.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "pricing tier prices must be positive")
		}
	}
	return nil
}

func validateSizeConfiguration(cfg types.SizeConfiguration) error {
	if !cfg.SizeType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid size_type")
	}
	if cfg.SizeType.AllowsCustom() {
		if !cfg.PricingMethod.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing_method")
		}
		if !cfg.CustomPricePerUnit.IsPositive() {
			return pkgerrors.New(pkgerrors.CodeValidation, "custom_price_per_unit must be positive")
		}
	}
	return nil
}

func validateBulkTiers(tiers []BulkTierInput) error {
	for _, tier := range tiers {
		if tier.MinQuantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "bulk tier min_quantity must be at least 1")
		}
		if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
			return pkgerrors.New(pkgerrors.CodeValidation, "bulk tier max_quantity must not be below min_quantity")
		}
		if tier.DiscountPercentage.IsNegative() || tier.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "bulk tier discount_percentage must be between 0 and 100")
		}
		if tier.DiscountAmount.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "bulk tier discount_amount must be non-negative")
		}
		for _, userType := range tier.ApplicableUserTypes {
			if !enums.UserType(userType).IsValid() {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown user type %q in bulk tier", userType))
			}
		}
	}
	return nil
}

func buildBulkTierRows(inputs []BulkTierInput) []models.BulkPricingTier {
	rows := make([]models.BulkPricingTier, len(inputs))
	for i, tier := range inputs {
		rows[i] = models.BulkPricingTier{
			MinQuantity:         tier.MinQuantity,
			MaxQuantity:         tier.MaxQuantity,
			DiscountPercentage:  tier.DiscountPercentage,
			DiscountAmount:      tier.DiscountAmount,
			ApplicableUserTypes: tier.ApplicableUserTypes,
		}
	}
	return rows
}

func buildVariantRows(inputs []VariantInput) []models.ProductVariant {
	rows := make([]models.ProductVariant, len(inputs))
	for i, variant := range inputs {
		rows[i] = models.ProductVariant{
			Name:          strings.TrimSpace(variant.Name),
			SKU:           variant.SKU,
			Attributes:    variant.Attributes,
			Price:         variant.Price,
			StockQuantity: variant.StockQuantity,
			IsActive:      variant.IsActive,
		}
	}
	return rows
}

func applyUpdate(prod *models.Product, input UpdateInput) {
	if input.Title != nil {
		prod.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		prod.Description = *input.Description
	}
	if input.Brand != nil {
		prod.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.CategoryID != nil {
		prod.CategoryID = input.CategoryID
	}
	if input.CategoryLabel != nil {
		prod.CategoryLabel = strings.TrimSpace(*input.CategoryLabel)
	}
	if input.Subcategory != nil {
		prod.Subcategory = strings.TrimSpace(*input.Subcategory)
	}
	if input.Tags != nil {
		prod.Tags = append([]string(nil), *input.Tags...)
	}
	if input.BasePrice != nil {
		prod.BasePrice = *input.BasePrice
	}
	if input.PricingTiers != nil {
		prod.PricingTiers = *input.PricingTiers
	}
	if input.SizeConfiguration != nil {
		prod.SizeConfiguration = input.SizeConfiguration
	}
	if input.GSTPercentage != nil {
		prod.GSTPercentage = *input.GSTPercentage
	}
	if input.GSTAvailable != nil {
		prod.GSTAvailable = *input.GSTAvailable
	}
	if input.MOQ != nil {
		prod.MOQ = *input.MOQ
	}
	if input.StockQuantity != nil {
		prod.StockQuantity = *input.StockQuantity
	}
	if input.CustomSizing != nil {
		prod.CustomSizing = *input.CustomSizing
	}
	if input.IsActive != nil {
		prod.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		prod.IsFeatured = *input.IsFeatured
	}
	if input.IsTrending != nil {
		prod.IsTrending = *input.IsTrending
	}
	if input.Media != nil {
		prod.Media = append([]string(nil), *input.Media...)
	}
	if input.Specifications != nil {
		prod.Specifications = *input.Specifications
	}
}
