package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/pharmaledger/backend/internal/application/catalog"
	inventoryapp "github.com/pharmaledger/backend/internal/application/inventory"
	"github.com/pharmaledger/backend/internal/application/ledger"
	notifyapp "github.com/pharmaledger/backend/internal/application/notify"
	partnerapp "github.com/pharmaledger/backend/internal/application/partner"
	reportapp "github.com/pharmaledger/backend/internal/application/report"
	"github.com/pharmaledger/backend/internal/infrastructure/cache"
	"github.com/pharmaledger/backend/internal/infrastructure/config"
	"github.com/pharmaledger/backend/internal/infrastructure/logger"
	"github.com/pharmaledger/backend/internal/infrastructure/notify"
	"github.com/pharmaledger/backend/internal/infrastructure/pdf"
	"github.com/pharmaledger/backend/internal/infrastructure/persistence"
	"github.com/pharmaledger/backend/internal/infrastructure/scheduler"
	"github.com/pharmaledger/backend/internal/infrastructure/storage"
	"github.com/pharmaledger/backend/internal/interfaces/http/handler"
	"github.com/pharmaledger/backend/internal/interfaces/http/middleware"
	"github.com/pharmaledger/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting pharmacy backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	medicineRepo := persistence.NewGormMedicineRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	billRepo := persistence.NewGormBillRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	scope := persistence.NewGormScope(db.DB)

	// Report cache: Redis when enabled, in-memory otherwise
	var reportCache reportapp.Cache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cfg.Redis, logger.Named(log, "cache"))
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		reportCache = redisCache
		log.Info("Report cache backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		reportCache = cache.NewMemoryCache()
	}

	// Invoice document storage
	var docStore pdf.DocumentStore
	if cfg.Storage.Provider == "s3" {
		s3Store, err := storage.NewS3DocumentStore(&cfg.Storage, cfg.Storage.AccessKey, cfg.Storage.SecretKey, logger.Named(log, "storage"))
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		docStore = s3Store
		log.Info("Invoice storage backed by S3", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		localStore, err := storage.NewLocalDocumentStore(cfg.Storage.LocalDir)
		if err != nil {
			log.Fatal("Failed to initialize local storage", zap.Error(err))
		}
		docStore = localStore
	}

	// Pharmacy identity for invoice headers comes from the settings row
	pharmacySettings, err := settingsRepo.Load(context.Background())
	if err != nil {
		log.Fatal("Failed to load settings", zap.Error(err))
	}
	pharmacyName := pharmacySettings.PharmacyName
	if pharmacyName == "" {
		pharmacyName = cfg.App.Name
	}
	renderer := pdf.NewInvoiceRenderer(docStore, pharmacyName, pharmacySettings.ContactPhone, logger.Named(log, "pdf"))

	// Outbound notification provider
	var provider notifyapp.Provider
	if cfg.Notification.Provider == "meta" {
		provider = notify.NewMetaProvider(&cfg.Notification, logger.Named(log, "notify"))
	} else {
		provider = notify.NewMockProvider(logger.Named(log, "notify"))
	}

	// Application services
	catalogService := catalogapp.NewService(medicineRepo, logger.Named(log, "catalog"))
	inventoryService := inventoryapp.NewService(batchRepo, medicineRepo, settingsRepo, logger.Named(log, "inventory"))
	partnerService := partnerapp.NewService(customerRepo, vendorRepo, saleRepo, billRepo, logger.Named(log, "partner"))
	reportService := reportapp.NewService(saleRepo, billRepo, reportCache, logger.Named(log, "report"))
	notifyService := notifyapp.NewService(notificationRepo, settingsRepo, provider, cfg.Notification.DispatchBatch, logger.Named(log, "notify"))
	saleService := ledger.NewSaleService(scope, invoiceRepo, renderer, logger.Named(log, "sales"))
	billService := ledger.NewBillService(scope, logger.Named(log, "billing"))
	purchaseService := ledger.NewPurchaseService(scope, logger.Named(log, "purchasing"))

	// Background sweeps
	if cfg.Scheduler.Enabled {
		alertSweeper := scheduler.NewAlertSweeper(inventoryService, medicineRepo, notifyService, logger.Named(log, "sweeps"))
		invoiceSweeper := scheduler.NewInvoiceRetrySweeper(invoiceRepo, saleService, 0, logger.Named(log, "sweeps"))

		sched := scheduler.New(logger.Named(log, "scheduler"))
		sched.Add("expiry-sweep", cfg.Scheduler.ExpiryInterval, alertSweeper.SweepExpiry)
		sched.Add("low-stock-sweep", cfg.Scheduler.LowStockInterval, alertSweeper.SweepLowStock)
		sched.Add("notification-dispatch", cfg.Scheduler.DispatchInterval, func(ctx context.Context) error {
			_, err := notifyService.DispatchPending(ctx)
			return err
		})
		sched.Add("invoice-retry", cfg.Scheduler.DispatchInterval, invoiceSweeper.Sweep)
		sched.Start(context.Background())
		defer sched.Stop()
	}

	// HTTP handlers
	medicineHandler := handler.NewMedicineHandler(catalogService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, saleService)
	saleHandler := handler.NewSaleHandler(saleService, saleRepo)
	billHandler := handler.NewBillHandler(billService, billRepo)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService, purchaseRepo)
	partnerHandler := handler.NewPartnerHandler(partnerService, customerRepo, vendorRepo)
	reportHandler := handler.NewReportHandler(reportService)
	notificationHandler := handler.NewNotificationHandler(notifyService, notificationRepo)
	settingsHandler := handler.NewSettingsHandler(settingsRepo)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Logging(log))

	engine.GET("/health", handler.Health(db, log))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	catalogRoutes := router.NewDomainGroup("catalog", "")
	catalogRoutes.POST("/medicines", medicineHandler.Create)
	catalogRoutes.GET("/medicines", medicineHandler.List)
	catalogRoutes.GET("/medicines/:id", medicineHandler.Get)
	catalogRoutes.PUT("/medicines/:id", medicineHandler.Update)
	catalogRoutes.POST("/medicines/:id/discontinue", medicineHandler.Discontinue)
	r.Register(catalogRoutes)

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/batches", inventoryHandler.AddBatch)
	inventoryRoutes.POST("/adjustments", inventoryHandler.AdjustStock)
	inventoryRoutes.GET("/medicines/:id/batches", inventoryHandler.ListBatches)
	inventoryRoutes.GET("/medicines/:id/allocation", inventoryHandler.PreviewAllocation)
	inventoryRoutes.GET("/low-stock", inventoryHandler.LowStock)
	inventoryRoutes.GET("/expiring", inventoryHandler.Expiring)
	inventoryRoutes.GET("/summary", inventoryHandler.StockSummary)
	r.Register(inventoryRoutes)

	tradeRoutes := router.NewDomainGroup("trade", "")
	tradeRoutes.POST("/sales", saleHandler.Record)
	tradeRoutes.GET("/sales", saleHandler.List)
	tradeRoutes.GET("/sales/:id", saleHandler.Get)
	tradeRoutes.POST("/sales/:id/invoice/retry", saleHandler.RetryInvoice)
	tradeRoutes.POST("/bills", billHandler.Record)
	tradeRoutes.GET("/bills", billHandler.List)
	tradeRoutes.GET("/bills/:id", billHandler.Get)
	tradeRoutes.DELETE("/bills/:id", billHandler.Delete)
	tradeRoutes.POST("/purchases", purchaseHandler.Record)
	tradeRoutes.GET("/purchases", purchaseHandler.List)
	tradeRoutes.GET("/purchases/due", purchaseHandler.ListDue)
	tradeRoutes.GET("/purchases/:id", purchaseHandler.Get)
	tradeRoutes.POST("/purchases/:id/payments", purchaseHandler.RecordPayment)
	r.Register(tradeRoutes)

	partnerRoutes := router.NewDomainGroup("partner", "")
	partnerRoutes.POST("/customers", partnerHandler.RegisterCustomer)
	partnerRoutes.GET("/customers", partnerHandler.ListCustomers)
	partnerRoutes.GET("/customers/:id", partnerHandler.GetCustomer)
	partnerRoutes.POST("/customers/:id/reconcile", partnerHandler.ReconcileCustomer)
	partnerRoutes.POST("/vendors", partnerHandler.RegisterVendor)
	partnerRoutes.GET("/vendors", partnerHandler.ListVendors)
	partnerRoutes.GET("/vendors/outstanding", partnerHandler.ListVendorsWithOutstanding)
	partnerRoutes.GET("/vendors/:id", partnerHandler.GetVendor)
	r.Register(partnerRoutes)

	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/summary", reportHandler.Summary)
	reportRoutes.GET("/daily", reportHandler.Daily)
	reportRoutes.GET("/top-products", reportHandler.TopProducts)
	reportRoutes.GET("/top-customers", reportHandler.TopCustomers)
	r.Register(reportRoutes)

	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.POST("/dispatch", notificationHandler.Dispatch)
	notificationRoutes.POST("/:id/requeue", notificationHandler.Requeue)
	r.Register(notificationRoutes)

	settingsRoutes := router.NewDomainGroup("settings", "/settings")
	settingsRoutes.GET("", settingsHandler.Get)
	settingsRoutes.PUT("", settingsHandler.Update)
	r.Register(settingsRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
