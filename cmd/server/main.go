package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountapp "github.com/mercado/backend/internal/application/account"
	alliedapp "github.com/mercado/backend/internal/application/allied"
	cartapp "github.com/mercado/backend/internal/application/cart"
	catalogapp "github.com/mercado/backend/internal/application/catalog"
	checkoutapp "github.com/mercado/backend/internal/application/checkout"
	comprobanteapp "github.com/mercado/backend/internal/application/comprobante"
	currencyapp "github.com/mercado/backend/internal/application/currency"
	orderapp "github.com/mercado/backend/internal/application/order"
	reviewapp "github.com/mercado/backend/internal/application/review"
	"github.com/mercado/backend/internal/infrastructure/allied"
	"github.com/mercado/backend/internal/infrastructure/auth"
	"github.com/mercado/backend/internal/infrastructure/cache"
	"github.com/mercado/backend/internal/infrastructure/comprobante"
	"github.com/mercado/backend/internal/infrastructure/config"
	"github.com/mercado/backend/internal/infrastructure/exchange"
	"github.com/mercado/backend/internal/infrastructure/logger"
	"github.com/mercado/backend/internal/infrastructure/persistence"
	"github.com/mercado/backend/internal/interfaces/http/handler"
	"github.com/mercado/backend/internal/interfaces/http/middleware"
	"github.com/mercado/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting mercado backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Cache: Redis when reachable, in-process fallback otherwise. Both sides
	// of the fallback serve the same interface, so services don't care.
	var appCache interface {
		Get(ctx context.Context, key string, dest any) (bool, error)
		Set(ctx context.Context, key string, value any, ttl time.Duration) error
		Delete(ctx context.Context, key string) error
	}
	redisCache, err := cache.NewRedisCache(cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
		appCache = cache.NewMemoryCache()
	} else {
		appCache = redisCache
		defer func() {
			_ = redisCache.Close()
		}()
		log.Info("Redis connected")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)

	// PDF rendering
	renderer, err := comprobante.NewChromedpRenderer(&comprobante.ChromedpConfig{
		DefaultTimeout: cfg.Comprobante.RenderTimeout,
		NoSandbox:      os.Getuid() == 0,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		_ = renderer.Close()
	}()

	facturaGen, err := comprobante.NewFacturaGenerator(renderer, cfg.Comprobante.RenderTimeout)
	if err != nil {
		log.Fatal("Failed to load factura template", zap.Error(err))
	}
	chequeGen, err := comprobante.NewChequeGenerator(renderer, cfg.Comprobante.RenderTimeout)
	if err != nil {
		log.Fatal("Failed to load cheque template", zap.Error(err))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := accountapp.NewAuthService(userRepo, customerRepo, sellerRepo, jwtService)
	productService := catalogapp.NewProductService(productRepo, reviewRepo)
	cartService := cartapp.NewCartService(cartRepo, productRepo)
	checkoutService := checkoutapp.NewCheckoutService(persistence.NewGormTransactionScope(db.DB))
	comprobanteService := comprobanteapp.NewService(facturaGen, chequeGen)
	orderService := orderapp.NewOrderService(orderRepo, customerRepo, userRepo, comprobanteService)
	reviewService := reviewapp.NewReviewService(reviewRepo, orderRepo)
	currencyService := currencyapp.NewService(exchange.NewClient(cfg.Exchange), appCache, log)
	alliedService := alliedapp.NewService(allied.NewClient(cfg.Allied), appCache, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService, cfg.App.BaseURL)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	alliedHandler := handler.NewAlliedHandler(alliedService)
	systemHandler := handler.NewSystemHandler(db.DB)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Public auth surface plus the authenticated profile
	authRoutes := router.NewGroup("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/profile", authHandler.Profile)

	// Public catalog
	productRoutes := router.NewGroup("/productos")
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.GetByID)
	productRoutes.GET("/:id/relacionados", productHandler.ListRelated)
	productRoutes.GET("/:id/resenas", reviewHandler.ListByProduct)

	// Seller listing management
	sellerRoutes := router.NewGroup("/vendedor")
	sellerRoutes.GET("/productos", productHandler.ListMine)
	sellerRoutes.POST("/productos", productHandler.Create)
	sellerRoutes.PUT("/productos/:id", productHandler.Update)
	sellerRoutes.DELETE("/productos/:id", productHandler.Delete)

	// Cart and checkout
	cartRoutes := router.NewGroup("/carrito")
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.DELETE("", cartHandler.Clear)
	cartRoutes.GET("/badge", cartHandler.Badge)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:productId", cartHandler.UpdateItem)
	cartRoutes.DELETE("/items/:productId", cartHandler.RemoveItem)

	checkoutRoutes := router.NewGroup("/checkout")
	checkoutRoutes.POST("", checkoutHandler.PlaceOrder)

	// Order history and comprobantes
	orderRoutes := router.NewGroup("/pedidos")
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/completar", orderHandler.Complete)
	orderRoutes.POST("/:id/cancelar", orderHandler.Cancel)
	orderRoutes.GET("/:id/comprobante/:tipo", orderHandler.Comprobante)

	// Reviews
	reviewRoutes := router.NewGroup("/resenas")
	reviewRoutes.POST("", reviewHandler.Submit)
	reviewRoutes.GET("/:productId/elegibilidad", reviewHandler.Eligibility)
	reviewRoutes.PUT("/:productId", reviewHandler.Update)
	reviewRoutes.DELETE("/:productId", reviewHandler.Delete)

	// Currency display
	currencyRoutes := router.NewGroup("/divisas")
	currencyRoutes.GET("/tasas", currencyHandler.Rates)
	currencyRoutes.GET("/display", currencyHandler.Display)

	// Allied store feed
	alliedRoutes := router.NewGroup("/aliados")
	alliedRoutes.GET("/productos", alliedHandler.Products)
	alliedRoutes.GET("/categorias", alliedHandler.Categories)
	alliedRoutes.DELETE("/cache", alliedHandler.ClearCache)

	// Read-only stock feed for external consumers
	feedRoutes := router.NewGroup("")
	feedRoutes.GET("/disponibles", productHandler.ListAvailable)
	feedRoutes.GET("/health", systemHandler.Health)

	r.Register(authRoutes).
		Register(productRoutes).
		Register(sellerRoutes).
		Register(cartRoutes).
		Register(checkoutRoutes).
		Register(orderRoutes).
		Register(reviewRoutes).
		Register(currencyRoutes).
		Register(alliedRoutes).
		Register(feedRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
