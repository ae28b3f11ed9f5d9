package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-delivery-app/cache"
	"food-delivery-app/config"
	"food-delivery-app/logger"
	"food-delivery-app/middleware"
	"food-delivery-app/realtime"
	"food-delivery-app/routes"
	"food-delivery-app/services"
	"food-delivery-app/session"
	"food-delivery-app/store"
	"food-delivery-app/store/mongostore"

	"github.com/gin-gonic/gin"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	seed := flag.Bool("seed", false, "insert demo users, a restaurant and its menu")
	flag.Parse()

	cfg := config.Get()
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := config.Database()
	if err != nil {
		logger.Error.Fatalf("Failed to initialize database: %v", err)
	}
	logger.Info.Infof("Database connected and migrated (%s)", cfg.DBDriver)
	if *migrateOnly {
		return
	}
	if *seed {
		if err := seedDemo(db); err != nil {
			logger.Error.Fatalf("Failed to seed database: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sessions and cache live in Redis when it is configured.
	var sessionStore session.Store = session.NewSQLStore(db)
	var appCache cache.Cache = cache.Noop{}
	rdb, err := config.Redis(ctx)
	if err != nil {
		logger.Error.Fatalf("Redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		sessionStore = session.NewRedisStore(rdb)
		appCache = cache.NewRedis(rdb)
		logger.Info.Info("Using Redis for sessions and cache")
	}
	sessions := session.NewManager(sessionStore, cfg.SessionTTL)

	var locations services.LocationRepository = store.NewLocationStore(db)
	if cfg.LocationBackend == "mongo" {
		client, mdb, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			logger.Error.Fatalf("MongoDB: %v", err)
		}
		defer client.Disconnect(context.Background())
		ms := mongostore.NewLocationStore(mdb)
		if err := ms.EnsureIndexes(ctx); err != nil {
			logger.Error.Fatalf("MongoDB indexes: %v", err)
		}
		locations = ms
		logger.Info.Info("Driver locations stored in MongoDB")
	}

	pusher := realtime.NewPusher(cfg.Pusher)
	hub := realtime.NewHub()
	publishers := realtime.Fanout{hub}
	if pusher.Enabled() {
		publishers = append(publishers, pusher)
	} else {
		logger.Info.Warn("PUSHER_* not set, /api/pusher/auth is disabled")
	}
	if cfg.AMQPURL != "" {
		amqpPub, err := realtime.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Error.Fatalf("RabbitMQ: %v", err)
		}
		defer amqpPub.Close()
		publishers = append(publishers, amqpPub)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Food Delivery API",
		})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Food Delivery API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "restaurant", "driver", "admin"},
		})
	})

	routes.SetupRoutes(r, routes.Deps{
		DB:                db,
		Auth:              middleware.NewAuth(cfg.JWTSecret, cfg.SessionTTL, sessions, cfg.SessionCookie),
		Sessions:          sessions,
		Locations:         locations,
		Publisher:         publishers,
		Pusher:            pusher,
		Hub:               hub,
		Cache:             appCache,
		CacheTTL:          cfg.CacheTTL,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info.Infof("Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error.Errorf("Graceful shutdown failed: %v", err)
	}
}
