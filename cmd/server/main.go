package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/code-100-precent/LingChat/cmd/bootstrap"
	"github.com/code-100-precent/LingChat/internal/handlers"
	"github.com/code-100-precent/LingChat/internal/store"
	"github.com/code-100-precent/LingChat/pkg/auth"
	"github.com/code-100-precent/LingChat/pkg/config"
	"github.com/code-100-precent/LingChat/pkg/gateway"
	"github.com/code-100-precent/LingChat/pkg/logger"
	"github.com/code-100-precent/LingChat/pkg/middleware"
	"github.com/code-100-precent/LingChat/pkg/notification"
	stores "github.com/code-100-precent/LingChat/pkg/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. Parse Command Line Parameters
	mode := flag.String("mode", "", "running environment (development, test, production)")
	initSQL := flag.String("init-sql", "", "path to database init .sql script (optional)")
	flag.Parse()

	if *mode != "" {
		os.Setenv("APP_ENV", *mode)
	}

	// 2. Load Global Configuration
	if err := config.Load(); err != nil {
		panic("config load failed: " + err.Error())
	}

	// 3. Load Log Configuration
	if err := logger.Init(&config.GlobalConfig.Log, config.GlobalConfig.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 4. Load Data Source
	db, err := bootstrap.SetupDatabase(os.Stdout, &bootstrap.Options{
		InitSQLPath: *initSQL,
		AutoMigrate: true,
	})
	if err != nil {
		logger.Error("database setup failed", zap.Error(err))
		return
	}

	// 5. Shared Services
	jwtManager := auth.NewJWTManager(auth.DefaultJWTConfig(config.GlobalConfig.JWTSecret))
	messages := store.NewMessages(db)
	profiles := store.NewProfiles(db)
	media := stores.Default()

	var mailer notification.Mailer
	if config.GlobalConfig.MailHost != "" {
		mailer = notification.NewMailNotification(notification.MailConfigFromEnv())
	} else {
		logger.Warn("mail transport not configured, account email disabled")
	}

	// 6. Realtime Gateway
	gwConfig := gateway.LoadConfigFromEnv()
	if err := gateway.ValidateConfig(gwConfig); err != nil {
		logger.Error("invalid gateway config", zap.Error(err))
		return
	}
	verifier := gateway.VerifierFunc(func(token string) (*gateway.Identity, error) {
		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &gateway.Identity{
			UserID:    claims.UserID,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
		}, nil
	})
	hub := gateway.NewHub(gwConfig, verifier, messages, profiles)

	// 7. Initialize Gin Routing
	if config.GlobalConfig.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CorsMiddleware())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.MaxMultipartMemory = 32 << 20 // 32 MB

	// Static service for uploaded files (local storage only)
	if config.GlobalConfig.StorageKind == stores.KindLocal {
		r.Static(config.GlobalConfig.APIPrefix+"/uploads", config.GlobalConfig.UploadDir)
	}

	// 8. Register Routes
	h := handlers.NewHandlers(db, jwtManager, messages, profiles, media, mailer)
	h.Register(r)
	gateway.RegisterRoutes(r, gateway.NewHandler(hub))

	// 9. Start HTTP Server
	httpServer := &http.Server{
		Addr:           config.GlobalConfig.Addr,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", config.GlobalConfig.Addr),
			zap.String("ws_path", gwConfig.Path),
			zap.String("mode", config.GlobalConfig.Mode))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	// Close realtime connections first so clients see the going-away code
	// instead of a dropped TCP stream.
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
