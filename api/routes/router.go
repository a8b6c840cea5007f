package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkhandelwal/tradebazaar-backend/api/controllers"
	"github.com/rkhandelwal/tradebazaar-backend/api/middleware"
	aisvc "github.com/rkhandelwal/tradebazaar-backend/internal/ai"
	authsvc "github.com/rkhandelwal/tradebazaar-backend/internal/auth"
	cartsvc "github.com/rkhandelwal/tradebazaar-backend/internal/cart"
	"github.com/rkhandelwal/tradebazaar-backend/internal/coupons"
	"github.com/rkhandelwal/tradebazaar-backend/internal/integrations"
	"github.com/rkhandelwal/tradebazaar-backend/internal/notifications"
	ordersvc "github.com/rkhandelwal/tradebazaar-backend/internal/orders"
	productsvc "github.com/rkhandelwal/tradebazaar-backend/internal/products"
	"github.com/rkhandelwal/tradebazaar-backend/internal/questions"
	"github.com/rkhandelwal/tradebazaar-backend/internal/reviews"
	"github.com/rkhandelwal/tradebazaar-backend/internal/settings"
	"github.com/rkhandelwal/tradebazaar-backend/internal/users"
	"github.com/rkhandelwal/tradebazaar-backend/internal/wishlist"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/config"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/metrics"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/redis"
)

// Services bundles everything the router wires into controllers.
type Services struct {
	Auth          authsvc.Service
	Users         users.Service
	Products      productsvc.Service
	Reviews       reviews.Service
	Questions     questions.Service
	Wishlist      wishlist.Service
	Cart          cartsvc.Service
	Orders        ordersvc.Service
	Coupons       coupons.Service
	Notifications notifications.Service
	Settings      *settings.Store
	GST           *integrations.GSTService
	ERP           *integrations.ERPService
	AI            *aisvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})
	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register/buyer", controllers.RegisterBuyer(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).
			Post("/register/partner", controllers.RegisterPartner(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.Login(svcs.Auth, logg))
		r.Post("/verify-email", controllers.VerifyEmail(svcs.Auth, logg))
		r.Post("/resend-verification", controllers.ResendVerification(svcs.Auth, logg))
	})

	// Public catalog browsing. No credentials required; prices fall back to
	// the end-customer schedule.
	r.Group(func(r chi.Router) {
		r.Get("/api/products", controllers.CatalogList(svcs.Products, logg))
		r.Get("/api/products/search/suggestions", controllers.SearchSuggestions(svcs.Products, logg))
		r.Get("/api/products/categories/list", controllers.CatalogCategories(svcs.Products, logg))
		r.Get("/api/products/brands/list", controllers.CatalogBrands(svcs.Products, logg))
		r.Get("/api/products/{productId}", controllers.CatalogDetail(svcs.Products, logg))
		r.Get("/api/products/{productId}/reviews", controllers.ListReviews(svcs.Reviews, logg))
		r.Get("/api/products/{productId}/questions", controllers.ListQuestions(svcs.Questions, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/profile", controllers.GetProfile(svcs.Users, logg))
		r.Put("/profile", controllers.UpdateProfile(svcs.Users, logg))

		r.Post("/products/quote", controllers.QuotePrice(svcs.Products, logg))

		r.Post("/reviews", controllers.CreateReview(svcs.Reviews, logg))
		r.Post("/reviews/{reviewId}/vote", controllers.VoteReview(svcs.Reviews, logg))
		r.Delete("/reviews/{reviewId}", controllers.DeleteReview(svcs.Reviews, logg))
		r.Get("/reviews/analytics/{productId}", controllers.ReviewAnalytics(svcs.Reviews, logg))

		r.Post("/questions", controllers.AskQuestion(svcs.Questions, logg))
		r.Post("/questions/{questionId}/answer", controllers.AnswerQuestion(svcs.Questions, logg))
		r.Post("/questions/{questionId}/helpful", controllers.VoteQuestion(svcs.Questions, logg))

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.GetWishlist(svcs.Wishlist, logg))
			r.Get("/ids", controllers.GetWishlistIDs(svcs.Wishlist, logg))
			r.Post("/", controllers.AddWishlistItem(svcs.Wishlist, logg))
			r.Delete("/{productId}", controllers.RemoveWishlistItem(svcs.Wishlist, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(svcs.Cart, logg))
			r.Put("/items", controllers.UpsertCartItem(svcs.Cart, logg))
			r.Delete("/items/{itemId}", controllers.RemoveCartItem(svcs.Cart, logg))
			r.Delete("/", controllers.ClearCart(svcs.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/checkout", controllers.Checkout(svcs.Orders, logg))
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(svcs.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(svcs.Orders, logg))
		})

		r.Post("/coupons/validate", controllers.ValidateCoupon(svcs.Coupons, logg))

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		})

		// Partner surfaces: listing management, statutory and back-office
		// integrations, AI tooling.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePartner(logg))

			r.Post("/products", controllers.PartnerCreateProduct(svcs.Products, logg))
			r.Patch("/products/{productId}", controllers.PartnerUpdateProduct(svcs.Products, logg))
			r.Delete("/products/{productId}", controllers.PartnerDeleteProduct(svcs.Products, logg))
			r.Get("/partner/products", controllers.PartnerListProducts(svcs.Products, logg))
			r.Put("/products/{productId}/offer", controllers.PartnerUpsertOffer(svcs.Products, logg))

			r.Post("/reviews/{reviewId}/respond", controllers.RespondToReview(svcs.Reviews, logg))

			r.Post("/gst/verify", controllers.VerifyGST(svcs.GST, logg))

			r.Route("/erp", func(r chi.Router) {
				r.Get("/supported-systems", controllers.ERPSupportedSystems(svcs.ERP, logg))
				r.Post("/connect", controllers.ERPConnect(svcs.ERP, logg))
				r.Post("/{provider}/sync", controllers.ERPSync(svcs.ERP, logg))
				r.Delete("/{provider}", controllers.ERPDisconnect(svcs.ERP, logg))
			})

			r.Post("/ai/generate-content", controllers.GenerateContent(svcs.AI, logg))
			r.Post("/ai/generate-image", controllers.GenerateImage(svcs.AI, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireAdmin(logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/partners/pending", controllers.AdminListPartners(svcs.Users, logg))
		r.Post("/partners/{partnerId}/verify", controllers.AdminVerifyPartner(svcs.Users, logg))

		r.Post("/products/{productId}/approve", controllers.AdminApproveProduct(svcs.Products, logg))

		r.Put("/orders/{orderId}/status", controllers.AdminUpdateOrderStatus(svcs.Orders, logg))

		r.Get("/settings/{kind}", controllers.AdminGetSettings(svcs.Settings, logg))
		r.Put("/settings/{kind}", controllers.AdminUpdateSettings(svcs.Settings, logg))

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.AdminListCoupons(svcs.Coupons, logg))
			r.Post("/", controllers.AdminCreateCoupon(svcs.Coupons, logg))
			r.Put("/{couponId}", controllers.AdminUpdateCoupon(svcs.Coupons, logg))
			r.Delete("/{couponId}", controllers.AdminDeleteCoupon(svcs.Coupons, logg))
		})
	})

	return r
}
