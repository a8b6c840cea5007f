package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/api/responses"
	"github.com/rkhandelwal/tradebazaar-backend/api/validators"
	productsvc "github.com/rkhandelwal/tradebazaar-backend/internal/products"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// PartnerCreateProduct handles listing creation for verified partners.
func PartnerCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateProduct(r.Context(), sellerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// PartnerUpdateProduct applies a partial update to an owned listing.
func PartnerUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateProduct(r.Context(), sellerID, productID, payload.toUpdateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// PartnerDeleteProduct removes an owned listing.
func PartnerDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), sellerID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PartnerListProducts returns every listing owned by the partner.
func PartnerListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListSellerProducts(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": items})
	}
}

// PartnerUpsertOffer stores the partner's price and stock on a multi-seller
// listing.
func PartnerUpsertOffer(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Price string `json:"price" validate:"required"`
			Stock int    `json:"stock" validate:"min=0"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid price"))
			return
		}

		if err := svc.UpsertSellerOffer(r.Context(), sellerID, productID, price, payload.Stock); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}

// CatalogList serves the public catalog with filters, sort, and paging.
func CatalogList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := catalogListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListCatalog(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CatalogCategories lists the catalog taxonomy.
func CatalogCategories(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

// CatalogBrands lists the distinct brands with live listings.
func CatalogBrands(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"brands": brands})
	}
}

// SearchSuggestions autocompletes the catalog search box.
func SearchSuggestions(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suggestions, err := svc.SearchSuggestions(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"suggestions": suggestions})
	}
}

// CatalogDetail returns a single listing and counts the view.
func CatalogDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetProduct(r.Context(), productID, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// QuotePrice resolves the effective unit price for a buyer and quantity.
func QuotePrice(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			ProductID        string            `json:"product_id" validate:"required"`
			Quantity         int               `json:"quantity" validate:"required,min=1"`
			CustomDimensions *types.Dimensions `json:"custom_dimensions,omitempty"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(payload.ProductID, "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userType := actorType(r)
		if userType == "" {
			userType = enums.UserTypeEndCustomer
		}

		quote, err := svc.QuotePrice(r.Context(), productsvc.QuoteInput{
			ProductID:        productID,
			UserType:         userType,
			Quantity:         payload.Quantity,
			CustomDimensions: payload.CustomDimensions,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

type createProductRequest struct {
	Title             string                    `json:"title" validate:"required"`
	Description       string                    `json:"description,omitempty"`
	Brand             string                    `json:"brand,omitempty"`
	CategoryID        *uuid.UUID                `json:"category_id,omitempty"`
	Category          string                    `json:"category,omitempty"`
	Subcategory       string                    `json:"subcategory,omitempty"`
	Tags              []string                  `json:"tags,omitempty"`
	BasePrice         string                    `json:"base_price" validate:"required"`
	PricingTiers      types.PriceTiers          `json:"pricing_tiers,omitempty"`
	SizeConfiguration *types.SizeConfiguration  `json:"size_configuration,omitempty"`
	GSTPercentage     string                    `json:"gst_percentage,omitempty"`
	GSTAvailable      bool                      `json:"gst_available,omitempty"`
	MOQ               int                       `json:"moq,omitempty" validate:"omitempty,min=1"`
	StockQuantity     int                       `json:"stock_quantity" validate:"min=0"`
	CustomSizing      bool                      `json:"custom_sizing,omitempty"`
	IsMultiSeller     bool                      `json:"is_multi_seller,omitempty"`
	Media             []string                  `json:"media,omitempty"`
	Specifications    types.Document            `json:"specifications,omitempty"`
	BulkPricingTiers  []bulkTierRequest         `json:"bulk_pricing_tiers,omitempty"`
	Variants          []productVariantRequest   `json:"variants,omitempty"`
}

type bulkTierRequest struct {
	MinQuantity         int      `json:"min_quantity" validate:"required,min=1"`
	MaxQuantity         *int     `json:"max_quantity,omitempty"`
	DiscountPercentage  string   `json:"discount_percentage,omitempty"`
	DiscountAmount      string   `json:"discount_amount,omitempty"`
	ApplicableUserTypes []string `json:"applicable_user_types,omitempty"`
}

type productVariantRequest struct {
	Name          string         `json:"name" validate:"required"`
	SKU           *string        `json:"sku,omitempty"`
	Attributes    types.Document `json:"attributes,omitempty"`
	Price         *string        `json:"price,omitempty"`
	StockQuantity int            `json:"stock_quantity" validate:"min=0"`
	IsActive      *bool          `json:"is_active,omitempty"`
}

func (p createProductRequest) toCreateInput() (productsvc.CreateInput, error) {
	basePrice, err := parseDecimal(p.BasePrice, "base_price")
	if err != nil {
		return productsvc.CreateInput{}, err
	}
	gst, err := parseOptionalDecimal(p.GSTPercentage, "gst_percentage")
	if err != nil {
		return productsvc.CreateInput{}, err
	}

	tiers, err := toBulkTiers(p.BulkPricingTiers)
	if err != nil {
		return productsvc.CreateInput{}, err
	}
	variants, err := toVariants(p.Variants)
	if err != nil {
		return productsvc.CreateInput{}, err
	}

	return productsvc.CreateInput{
		Title:             p.Title,
		Description:       p.Description,
		Brand:             p.Brand,
		CategoryID:        p.CategoryID,
		CategoryLabel:     p.Category,
		Subcategory:       p.Subcategory,
		Tags:              p.Tags,
		BasePrice:         basePrice,
		PricingTiers:      p.PricingTiers,
		SizeConfiguration: p.SizeConfiguration,
		GSTPercentage:     gst,
		GSTAvailable:      p.GSTAvailable,
		MOQ:               p.MOQ,
		StockQuantity:     p.StockQuantity,
		CustomSizing:      p.CustomSizing,
		IsMultiSeller:     p.IsMultiSeller,
		Media:             p.Media,
		Specifications:    p.Specifications,
		BulkPricingTiers:  tiers,
		Variants:          variants,
	}, nil
}

type updateProductRequest struct {
	Title             *string                   `json:"title,omitempty"`
	Description       *string                   `json:"description,omitempty"`
	Brand             *string                   `json:"brand,omitempty"`
	CategoryID        *uuid.UUID                `json:"category_id,omitempty"`
	Category          *string                   `json:"category,omitempty"`
	Subcategory       *string                   `json:"subcategory,omitempty"`
	Tags              *[]string                 `json:"tags,omitempty"`
	BasePrice         *string                   `json:"base_price,omitempty"`
	PricingTiers      *types.PriceTiers         `json:"pricing_tiers,omitempty"`
	SizeConfiguration *types.SizeConfiguration  `json:"size_configuration,omitempty"`
	GSTPercentage     *string                   `json:"gst_percentage,omitempty"`
	GSTAvailable      *bool                     `json:"gst_available,omitempty"`
	MOQ               *int                      `json:"moq,omitempty"`
	StockQuantity     *int                      `json:"stock_quantity,omitempty"`
	CustomSizing      *bool                     `json:"custom_sizing,omitempty"`
	IsActive          *bool                     `json:"is_active,omitempty"`
	IsFeatured        *bool                     `json:"is_featured,omitempty"`
	IsTrending        *bool                     `json:"is_trending,omitempty"`
	Media             *[]string                 `json:"media,omitempty"`
	Specifications    *types.Document           `json:"specifications,omitempty"`
	BulkPricingTiers  *[]bulkTierRequest        `json:"bulk_pricing_tiers,omitempty"`
	Variants          *[]productVariantRequest  `json:"variants,omitempty"`
}

func (p updateProductRequest) toUpdateInput() productsvc.UpdateInput {
	input := productsvc.UpdateInput{
		Title:             p.Title,
		Description:       p.Description,
		Brand:             p.Brand,
		CategoryID:        p.CategoryID,
		CategoryLabel:     p.Category,
		Subcategory:       p.Subcategory,
		Tags:              p.Tags,
		PricingTiers:      p.PricingTiers,
		SizeConfiguration: p.SizeConfiguration,
		GSTAvailable:      p.GSTAvailable,
		MOQ:               p.MOQ,
		StockQuantity:     p.StockQuantity,
		CustomSizing:      p.CustomSizing,
		IsActive:          p.IsActive,
		IsFeatured:        p.IsFeatured,
		IsTrending:        p.IsTrending,
		Media:             p.Media,
		Specifications:    p.Specifications,
	}
	if p.BasePrice != nil {
		if value, err := decimal.NewFromString(*p.BasePrice); err == nil {
			input.BasePrice = &value
		}
	}
	if p.GSTPercentage != nil {
		if value, err := decimal.NewFromString(*p.GSTPercentage); err == nil {
			input.GSTPercentage = &value
		}
	}
	if p.BulkPricingTiers != nil {
		if tiers, err := toBulkTiers(*p.BulkPricingTiers); err == nil {
			input.BulkPricingTiers = &tiers
		}
	}
	if p.Variants != nil {
		if variants, err := toVariants(*p.Variants); err == nil {
			input.Variants = &variants
		}
	}
	return input
}

func toBulkTiers(reqs []bulkTierRequest) ([]productsvc.BulkTierInput, error) {
	tiers := make([]productsvc.BulkTierInput, 0, len(reqs))
	for _, req := range reqs {
		pct, err := parseOptionalDecimal(req.DiscountPercentage, "discount_percentage")
		if err != nil {
			return nil, err
		}
		amt, err := parseOptionalDecimal(req.DiscountAmount, "discount_amount")
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, productsvc.BulkTierInput{
			MinQuantity:         req.MinQuantity,
			MaxQuantity:         req.MaxQuantity,
			DiscountPercentage:  pct,
			DiscountAmount:      amt,
			ApplicableUserTypes: req.ApplicableUserTypes,
		})
	}
	return tiers, nil
}

func toVariants(reqs []productVariantRequest) ([]productsvc.VariantInput, error) {
	variants := make([]productsvc.VariantInput, 0, len(reqs))
	for _, req := range reqs {
		variant := productsvc.VariantInput{
			Name:          req.Name,
			SKU:           req.SKU,
			Attributes:    req.Attributes,
			StockQuantity: req.StockQuantity,
			IsActive:      true,
		}
		if req.IsActive != nil {
			variant.IsActive = *req.IsActive
		}
		if req.Price != nil {
			price, err := parseDecimal(*req.Price, "variant price")
			if err != nil {
				return nil, err
			}
			variant.Price = &price
		}
		variants = append(variants, variant)
	}
	return variants, nil
}

func parseDecimal(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field)
	}
	return value, nil
}

func parseOptionalDecimal(raw, field string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return parseDecimal(raw, field)
}

func catalogListInput(r *http.Request) (productsvc.ListInput, error) {
	params, err := pageParams(r)
	if err != nil {
		return productsvc.ListInput{}, err
	}

	input := productsvc.ListInput{Pagination: params, Sort: enums.SortKeyNewest}
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("sort")); raw != "" {
		input.Sort = enums.ParseSortKey(raw)
	}
	if raw := strings.TrimSpace(query.Get("category_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return productsvc.ListInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id")
		}
		input.Filters.CategoryID = &id
	}
	if raw := strings.TrimSpace(query.Get("seller_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return productsvc.ListInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid seller id")
		}
		input.Filters.SellerID = &id
	}
	if raw := strings.TrimSpace(query.Get("subcategory")); raw != "" {
		input.Filters.Subcategory = &raw
	}
	if raw := strings.TrimSpace(query.Get("brand")); raw != "" {
		input.Filters.Brand = &raw
	}
	if raw := strings.TrimSpace(query.Get("q")); raw != "" {
		input.Filters.Search = raw
	}

	var parseErr error
	setDecimal := func(name string, dest **decimal.Decimal) {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" || parseErr != nil {
			return
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			parseErr = pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
			return
		}
		*dest = &value
	}
	setBool := func(name string, dest **bool) {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" || parseErr != nil {
			return
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			parseErr = pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
			return
		}
		*dest = &value
	}
	setInt := func(name string, dest **int) {
		raw := strings.TrimSpace(query.Get(name))
		if raw == "" || parseErr != nil {
			return
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			parseErr = pkgerrors.New(pkgerrors.CodeValidation, "invalid "+name)
			return
		}
		*dest = &value
	}

	setDecimal("price_min", &input.Filters.PriceMin)
	setDecimal("price_max", &input.Filters.PriceMax)
	setDecimal("min_rating", &input.Filters.MinRating)
	setInt("min_reviews", &input.Filters.MinReviews)
	setInt("moq_max", &input.Filters.MOQMax)
	setBool("in_stock", &input.Filters.InStock)
	setBool("has_variants", &input.Filters.HasVariants)
	setBool("is_featured", &input.Filters.IsFeatured)
	setBool("is_trending", &input.Filters.IsTrending)
	setBool("custom_sizing", &input.Filters.CustomSizing)
	setBool("gst_available", &input.Filters.GSTAvailable)
	if parseErr != nil {
		return productsvc.ListInput{}, parseErr
	}

	return input, nil
}
