package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servicefinder/config"
	"servicefinder/cron"
	"servicefinder/database"
	bookmarkRepoPkg "servicefinder/database/repository/bookmark"
	flagRepoPkg "servicefinder/database/repository/flag"
	forumRepoPkg "servicefinder/database/repository/forum"
	notifRepoPkg "servicefinder/database/repository/notification"
	reviewRepoPkg "servicefinder/database/repository/review"
	serviceRepoPkg "servicefinder/database/repository/service"
	userRepoPkg "servicefinder/database/repository/user"
	"servicefinder/handlers"
	"servicefinder/routes"
	"servicefinder/services/bookmark"
	"servicefinder/services/catalog"
	"servicefinder/services/moderation"
	"servicefinder/services/notification"
	"servicefinder/services/review"
	"servicefinder/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
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

	// repositories.
	db := database.DB()
	svcRepo := serviceRepoPkg.NewMongoServiceRepo(db)
	revRepo := reviewRepoPkg.NewMongoReviewRepo(db)
	bmRepo := bookmarkRepoPkg.NewMongoBookmarkRepo(db)
	flRepo := flagRepoPkg.NewMongoFlagRepo(db)
	frmRepo := forumRepoPkg.NewMongoForumRepo(db)
	usrRepo := userRepoPkg.NewMongoUserRepo(db)
	ntfRepo := notifRepoPkg.NewMongoNotificationRepo(db)

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:  ntfRepo,
		Queue: queueClient,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:        svcRepo,
		ReviewRepo:  revRepo,
		CacheClient: utils.GetCacheClient(),
	}
	reviewService := &review.DefaultReviewService{
		Repo:        revRepo,
		ServiceRepo: svcRepo,
		Notifier:    notificationService,
	}
	bookmarkService := &bookmark.DefaultBookmarkService{
		Repo:        bmRepo,
		ServiceRepo: svcRepo,
	}
	moderationService := &moderation.DefaultModerationService{
		FlagRepo:  flRepo,
		ForumRepo: frmRepo,
		UserRepo:  usrRepo,
		Reviews:   reviewService,
		Notifier:  notificationService,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Catalog:      handlers.NewCatalogHandler(catalogService, logger),
		Review:       handlers.NewReviewHandler(reviewService, logger),
		Bookmark:     handlers.NewBookmarkHandler(bookmarkService, logger),
		Moderation:   handlers.NewModerationHandler(moderationService, logger),
		Notification: handlers.NewNotificationHandler(notificationService, logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background delivery worker for queued notifications.
	stopWorker := cron.InitNotificationWorker(ntfRepo)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
