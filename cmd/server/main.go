package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitcoach/coach-platform/internal/api"
	"fitcoach/coach-platform/internal/config"
	"fitcoach/coach-platform/internal/facebook"
	"fitcoach/coach-platform/internal/repository"
	"fitcoach/coach-platform/internal/repository/mongo"
	"fitcoach/coach-platform/internal/service"
	"fitcoach/coach-platform/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Coach Platform Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI, cfg.Database.ConnectTimeout)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB)
		mongo.EnsureClientIndexes(ctx, appDB)
		mongo.EnsureTenantIndexes(ctx, appDB)
		mongo.EnsureCatalogIndexes(ctx, appDB)
		mongo.EnsureActivityIndexes(ctx, appDB)
		mongo.EnsureContentIndexes(ctx, appDB)
		mongo.EnsurePhotoIndexes(ctx, appDB)
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	clientRepo := mongo.NewMongoClientRepository(appDB)
	catalogRepo := mongo.NewMongoCatalogRepository(appDB)
	tenantRepo := mongo.NewMongoTenantRepository(appDB)
	activityRepo := mongo.NewMongoActivityRepository(appDB)
	contentRepo := mongo.NewMongoContentRepository(appDB)
	photoRepo := mongo.NewMongoPhotoRepository(appDB)
	syncRepo := mongo.NewMongoSyncStateRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	tenantService := service.NewTenantService(tenantRepo)
	authService := service.NewAuthService(userRepo, tenantService, cfg.JWT.Secret, cfg.JWT.Expiration)
	leadService := service.NewLeadService(userRepo, clientRepo)
	clientService := service.NewClientService(clientRepo)
	planService := service.NewPlanService(clientRepo, catalogRepo)
	dashboardService := service.NewDashboardService(activityRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	contentService := service.NewContentService(contentRepo)
	graphClient := facebook.NewGraphClient(cfg.Facebook.GraphURL, cfg.Facebook.AccessToken)
	webhookService := service.NewWebhookService(graphClient, leadService)
	photoService := service.NewPhotoService(photoRepo, clientRepo, fileStorage)

	// --- Background Sync Job ---
	syncCtx, stopSync := context.WithCancel(context.Background())
	defer stopSync()
	go runSyncJob(syncCtx, syncRepo, cfg.Sync.Interval)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, cfg.Facebook.VerifyToken, api.Services{
		Auth:      authService,
		Lead:      leadService,
		Client:    clientService,
		Plan:      planService,
		Dashboard: dashboardService,
		Catalog:   catalogService,
		Content:   contentService,
		Tenant:    tenantService,
		Webhook:   webhookService,
		Photo:     photoService,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	stopSync()

	// The context is used to inform the server it has 5 seconds to finish
	// the requests it is currently handling
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// runSyncJob maintains the mobile sync checkpoint on a fixed interval until
// ctx is cancelled.
func runSyncJob(ctx context.Context, syncRepo repository.SyncStateRepository, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("INFO: Mobile sync job running every %s", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("INFO: Mobile sync job stopped.")
			return
		case now := <-ticker.C:
			tickCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if err := syncRepo.Touch(tickCtx, now); err != nil {
				log.Printf("WARN: Mobile sync tick failed: %v", err)
			}
			cancel()
		}
	}
}
