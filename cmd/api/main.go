package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rkhandelwal/tradebazaar-backend/api/routes"
	aisvc "github.com/rkhandelwal/tradebazaar-backend/internal/ai"
	"github.com/rkhandelwal/tradebazaar-backend/internal/auth"
	"github.com/rkhandelwal/tradebazaar-backend/internal/cart"
	"github.com/rkhandelwal/tradebazaar-backend/internal/coupons"
	"github.com/rkhandelwal/tradebazaar-backend/internal/integrations"
	"github.com/rkhandelwal/tradebazaar-backend/internal/notifications"
	"github.com/rkhandelwal/tradebazaar-backend/internal/orders"
	product "github.com/rkhandelwal/tradebazaar-backend/internal/products"
	"github.com/rkhandelwal/tradebazaar-backend/internal/questions"
	"github.com/rkhandelwal/tradebazaar-backend/internal/reviews"
	"github.com/rkhandelwal/tradebazaar-backend/internal/settings"
	"github.com/rkhandelwal/tradebazaar-backend/internal/users"
	"github.com/rkhandelwal/tradebazaar-backend/internal/wishlist"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/auth/verify"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/config"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/db"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/metrics"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/migrate"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/pubsub"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	fatalOn(ctx, logg, "load config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	fatalOn(ctx, logg, "bootstrap database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	fatalOn(ctx, logg, "run dev migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	fatalOn(ctx, logg, "bootstrap redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	// Pub/Sub is optional. Without a project ID lifecycle events are dropped
	// and the notification worker simply has nothing to consume.
	notifier := notifications.NewPublisher(nil, logg)
	if cfg.PubSub.ProjectID != "" {
		psClient, err := pubsub.NewClient(ctx, cfg.PubSub, logg)
		fatalOn(ctx, logg, "bootstrap pubsub", err)
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(ctx, "error closing pubsub", err)
			}
		}()
		notifier = notifications.NewPublisher(psClient.NotificationPublisher(), logg)
	} else {
		logg.Warn(ctx, "pubsub project id not set, lifecycle events disabled")
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	productsRepo := product.NewRepository(gormDB)
	reviewsRepo := reviews.NewRepository(gormDB)
	questionsRepo := questions.NewRepository(gormDB)
	wishlistRepo := wishlist.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	couponsRepo := coupons.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)

	settingsStore, err := settings.NewStore(settings.NewRepository(gormDB))
	fatalOn(ctx, logg, "create settings store", err)
	fatalOn(ctx, logg, "load settings", settingsStore.Load(ctx))

	verifyTokens, err := verify.NewStore(redisClient, cfg.JWT)
	fatalOn(ctx, logg, "create verification token store", err)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		Tokens:         verifyTokens,
		Notifier:       notifier,
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	fatalOn(ctx, logg, "create auth service", err)

	usersService, err := users.NewService(usersRepo)
	fatalOn(ctx, logg, "create users service", err)

	productsService, err := product.NewService(productsRepo, dbClient, usersRepo)
	fatalOn(ctx, logg, "create products service", err)

	reviewsService, err := reviews.NewService(reviewsRepo, dbClient, productsRepo)
	fatalOn(ctx, logg, "create reviews service", err)

	questionsService, err := questions.NewService(questionsRepo, productsRepo)
	fatalOn(ctx, logg, "create questions service", err)

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		ProductRepo:  productsRepo,
	})
	fatalOn(ctx, logg, "create wishlist service", err)

	cartService, err := cart.NewService(cartRepo, productsRepo)
	fatalOn(ctx, logg, "create cart service", err)

	couponsService, err := coupons.NewService(couponsRepo)
	fatalOn(ctx, logg, "create coupons service", err)

	checkoutPolicy, err := orders.PolicyFromConfig(cfg.Checkout)
	fatalOn(ctx, logg, "parse checkout policy", err)

	ordersService, err := orders.NewService(orders.ServiceParams{
		OrderRepo: ordersRepo,
		Products:  productsRepo,
		Carts:     cartRepo,
		Coupons:   couponsRepo,
		Users:     usersRepo,
		DBClient:  dbClient,
		Notifier:  notifier,
		Policy:    checkoutPolicy,
	})
	fatalOn(ctx, logg, "create orders service", err)

	notificationsService, err := notifications.NewService(notificationsRepo)
	fatalOn(ctx, logg, "create notifications service", err)

	gstService, err := integrations.NewGSTService(usersRepo, cfg.Integrations.GSTVerifyEnabled)
	fatalOn(ctx, logg, "create gst service", err)

	erpService, err := integrations.NewERPService(usersRepo)
	fatalOn(ctx, logg, "create erp service", err)

	aiService, err := aisvc.NewService(settingsStore)
	fatalOn(ctx, logg, "create ai service", err)

	httpMetrics := metrics.NewHTTPMetrics("api")

	router := routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, routes.Services{
		Auth:          authService,
		Users:         usersService,
		Products:      productsService,
		Reviews:       reviewsService,
		Questions:     questionsService,
		Wishlist:      wishlistService,
		Cart:          cartService,
		Orders:        ordersService,
		Coupons:       couponsService,
		Notifications: notificationsService,
		Settings:      settingsStore,
		GST:           gstService,
		ERP:           erpService,
		AI:            aiService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(shutdownCtx, "api server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}
}

func fatalOn(ctx context.Context, logg *logger.Logger, step string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "failed to "+step, err)
	os.Exit(1)
}
