package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	productsvc "github.com/rkhandelwal/tradebazaar-backend/internal/products"
	pkgAuth "github.com/rkhandelwal/tradebazaar-backend/pkg/auth"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/config"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubProducts struct{}

func (stubProducts) CreateProduct(context.Context, uuid.UUID, productsvc.CreateInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProducts) UpdateProduct(context.Context, uuid.UUID, uuid.UUID, productsvc.UpdateInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProducts) DeleteProduct(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (stubProducts) GetProduct(context.Context, uuid.UUID, bool) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (stubProducts) ListCatalog(context.Context, productsvc.ListInput) (*productsvc.ListResult, error) {
	return &productsvc.ListResult{Pagination: pagination.Page{}}, nil
}

func (stubProducts) ListCategories(context.Context) ([]productsvc.CategoryDTO, error) {
	return nil, nil
}

func (stubProducts) ListBrands(context.Context) ([]string, error) { return nil, nil }

func (stubProducts) SearchSuggestions(context.Context, string) ([]string, error) { return nil, nil }

func (stubProducts) ListSellerProducts(context.Context, uuid.UUID) ([]productsvc.ProductSummary, error) {
	return nil, nil
}

func (stubProducts) SetApproval(context.Context, uuid.UUID, enums.ApprovalStatus) error { return nil }

func (stubProducts) UpsertSellerOffer(context.Context, uuid.UUID, uuid.UUID, decimal.Decimal, int) error {
	return nil
}

func (stubProducts) QuotePrice(context.Context, productsvc.QuoteInput) (*productsvc.QuoteDTO, error) {
	return &productsvc.QuoteDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:               "test-secret",
			Issuer:               "tradebazaar-test",
			LoginTTLHours:        24,
			RegistrationTTLHours: 168,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	return NewRouter(testConfig(), logg, stubPinger{}, nil, nil, Services{
		Products: stubProducts{},
	})
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestCatalogIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestCartRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestPartnerRouteRejectsBuyer(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, enums.UserTypeEndCustomer)

	req := httptest.NewRequest(http.MethodPatch, "/api/products/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestAdminRouteRejectsPartner(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, enums.UserTypeManufacturer)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/partners/pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func mintToken(t *testing.T, userType enums.UserType) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		Email:    "user@example.com",
		UserType: userType,
		Kind:     pkgAuth.TokenKindLogin,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
