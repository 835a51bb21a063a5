package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/staffdesk/staffdesk-backend/handlers"
	"github.com/staffdesk/staffdesk-backend/internal/config"
	"github.com/staffdesk/staffdesk-backend/internal/database"
	leaverepo "github.com/staffdesk/staffdesk-backend/internal/leave/repository"
	leavesvc "github.com/staffdesk/staffdesk-backend/internal/leave/service"
	"github.com/staffdesk/staffdesk-backend/internal/notify"
	"github.com/staffdesk/staffdesk-backend/internal/oidc"
	photorepo "github.com/staffdesk/staffdesk-backend/internal/photo/repository"
	photosvc "github.com/staffdesk/staffdesk-backend/internal/photo/service"
	"github.com/staffdesk/staffdesk-backend/internal/storage"
	"github.com/staffdesk/staffdesk-backend/internal/users"
	"github.com/staffdesk/staffdesk-backend/pkg/logger"
	"github.com/staffdesk/staffdesk-backend/pkg/metrics"
	"github.com/staffdesk/staffdesk-backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel, cfg.Server.Environment)
	defer logger.Sync()
	logger.Infof("config loaded: mongo=%v redis=%v oidc=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.OIDC.IssuerURL != "")

	// ---- record store ----
	var (
		userRepo  users.Repository
		leaveRepo leaverepo.Repository
		photoRepo photorepo.Repository
		mongoUp   bool
	)
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongo(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			logger.Fatalf("mongo connect failed: %v", err)
		}
		defer client.Disconnect(context.Background())
		db := client.Database(cfg.MongoDB.Database)
		userRepo = users.NewMongoRepository(db.Collection("users"))
		leaveRepo = leaverepo.NewMongoRepo(db.Collection("leave_requests"))
		photoRepo = photorepo.NewMongoRepo(db.Collection("photos"))
		mongoUp = true
		logger.Infof("using MongoDB record store (db=%s)", cfg.MongoDB.Database)
	} else {
		// dev fallback: everything in memory
		userRepo = users.NewMemoryRepository()
		leaveRepo = leaverepo.NewMemoryRepo()
		photoRepo = photorepo.NewMemoryRepo()
		logger.Warnf("MONGODB_URI not set, using in-memory record store")
	}

	// ---- blob store ----
	var blobs storage.BlobStore
	minioCfg := storage.LoadMinIOConfig()
	if minioCfg.Endpoint != "" {
		s, err := storage.NewMinIOStorage(minioCfg)
		if err != nil {
			logger.Fatalf("minio init failed: %v", err)
		}
		blobs = s
		logger.Infof("using MinIO blob store (bucket=%s)", minioCfg.Bucket)
	} else {
		blobs = storage.NewMemoryStore()
		logger.Warnf("MINIO_ENDPOINT not set, using in-memory blob store")
	}

	// ---- notification dispatcher ----
	var sender notify.Sender = notify.LogSender{}
	if cfg.Notify.WebhookURL != "" {
		sender = notify.NewWebhookSender(cfg.Notify.WebhookURL, cfg.Notify.Timeout)
	}
	dispatcher := notify.NewDispatcher(sender, userRepo, cfg.Notify)
	dispatcher.Start()
	defer dispatcher.Close()

	// ---- services ----
	userSvc := users.NewService(userRepo)
	leaveSvc := leavesvc.New(leaveRepo, dispatcher)
	photoSvc := photosvc.New(photoRepo, blobs, userSvc, cfg.Upload)

	// ---- identity verifier ----
	var verifier middleware.Verifier
	switch {
	case cfg.OIDC.IssuerURL != "":
		v, err := oidc.NewVerifier(context.Background(), cfg.OIDC.IssuerURL, cfg.OIDC.ClientID)
		if err != nil {
			logger.Fatalf("oidc verifier init failed: %v", err)
		}
		verifier = v
	case cfg.OIDC.AllowInsecure:
		logger.Warnf("ALLOW_INSECURE_TOKEN set: token signatures are NOT verified")
		verifier = oidc.NewInsecureVerifier()
	default:
		logger.Fatalf("no identity verifier configured: set OIDC_ISSUER_URL or ALLOW_INSECURE_TOKEN")
	}

	// ---- router ----
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("redis ping failed (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", func(c *gin.Context) {
		deps := gin.H{
			"recordStore": mongoUp || cfg.MongoDB.URI == "",
			"blobStore":   true,
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(verifier))
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			api.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			api.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.NewLeaveHandler(leaveSvc).Register(api)
	handlers.NewPhotoHandler(photoSvc).Register(api)
	handlers.NewProfileHandler(userSvc).Register(api)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
