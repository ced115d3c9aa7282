package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayline/config"
	"stayline/cron"
	"stayline/database"
	contextRepo "stayline/database/repository/context"
	"stayline/handlers"
	"stayline/middleware"
	"stayline/routes"
	"stayline/services/availability"
	"stayline/services/catalog"
	"stayline/services/crm"
	"stayline/services/discovery"
	"stayline/services/geo"
	"stayline/services/pms"
	"stayline/services/session"
	"stayline/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	ctxRepo := contextRepo.NewMongoContextRepo()

	// external collaborators.
	pmsClient := pms.NewClient(config.AppConfig.PMSBaseURL, config.AppConfig.PMSAPIKey, logger)
	geocoder := geo.NewGoogleGeocoder(
		config.AppConfig.GoogleAPIKey,
		config.AppConfig.GeoRegionBias,
		utils.GetCacheClient(),
		logger,
	)
	crmClient := crm.NewClient(
		config.AppConfig.CRMBaseURL,
		config.AppConfig.CRMAccessKey,
		config.AppConfig.CRMSecretKey,
		logger,
	)

	// services.
	sessionCache := session.NewStore(ctxRepo)
	catalogStore := catalog.NewStore(
		catalog.NewWorkbookSource(config.AppConfig.PricingSheetURL),
		pmsClient,
	)

	lifecycle := &session.LifecycleService{
		Cache: sessionCache,
		Repo:  ctxRepo,
	}
	if crmClient.Configured() {
		lifecycle.Queue = cron.NewQueueClient()
		cron.InitLeadSyncWorker(crmClient)
	} else {
		logger.Warn("CRM credentials missing, lead sync disabled")
	}

	discoveryService := &discovery.Service{
		Cache:       sessionCache,
		Repo:        ctxRepo,
		Catalog:     catalogStore,
		Geocoder:    geocoder,
		PMS:         pmsClient,
		QuerySuffix: config.AppConfig.GeoQuerySuffix,
	}
	availabilityService := &availability.Service{
		Catalog: catalogStore,
		PMS:     pmsClient,
	}

	// handlers.
	handlers.SessionCache = sessionCache
	handlers.Lifecycle = lifecycle
	handlers.DiscoveryService = discoveryService
	handlers.AvailabilityService = availabilityService
	handlers.CatalogStore = catalogStore

	routes.RegisterRoutes(router)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
