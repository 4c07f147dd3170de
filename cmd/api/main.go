package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotelpms/internal/config"
	"hotelpms/internal/database"
	"hotelpms/internal/domain/auth"
	"hotelpms/internal/domain/booking"
	"hotelpms/internal/domain/client"
	"hotelpms/internal/domain/dashboard"
	"hotelpms/internal/domain/hotel"
	"hotelpms/internal/domain/live"
	"hotelpms/internal/domain/notification"
	"hotelpms/internal/domain/portal"
	"hotelpms/internal/domain/report"
	"hotelpms/internal/domain/room"
	"hotelpms/internal/middleware"
	jwtsvc "hotelpms/internal/pkg/jwt"
	"hotelpms/internal/pkg/logger"
	"hotelpms/internal/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("db migrate failed")
	}

	rdb := config.NewRedisClient(cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	var publisher notification.Publisher = notification.NoBroker()
	if cfg.RabbitMQURL != "" {
		amqpPublisher := notification.NewAMQPPublisher(cfg.RabbitMQURL, cfg.NotifyQueue)
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	} else {
		log.Info("RABBITMQ_URL not set, booking events stay on the live board")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(cfg, log, db, rdb, publisher),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func newRouter(cfg *config.Config, log *logrus.Logger, db *gorm.DB, rdb *redis.Client, publisher notification.Publisher) *gin.Engine {
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := live.NewHub(log)
	dispatcher := notification.NewDispatcher(publisher, hub, log)

	authService := auth.NewService(auth.NewUserRepository(db), j, log)
	hotelService := hotel.NewService(hotel.NewRepository(db), log)
	roomService := room.NewService(room.NewRepository(db), log)
	clientService := client.NewService(client.NewRepository(db), log)
	bookingService := booking.NewService(booking.NewRepository(db), dispatcher, log)
	portalService := portal.NewService(db, clientService, bookingService, log)
	dashboardService := dashboard.NewService(dashboard.NewRepository(db), dashboard.NewRedisCache(rdb), cfg.DashboardCacheTTL, log)
	reportService := report.NewService(db, log)

	authHandler := auth.NewHandler(authService)
	roomHandler := room.NewHandler(roomService)

	origins := map[string]bool{}
	for _, o := range cfg.CORSAllowedOrigins {
		origins[o] = true
	}
	allowOrigin := func(origin string) bool { return !cfg.IsProd() || origins[origin] }

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(log),
		middleware.AccessLog(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "live_clients": hub.Count()})
	})

	v1 := r.Group("/api/v1")
	{
		auth.RegisterPublicRoutes(v1, authHandler)
		// authenticates with ?token=, not the Authorization header
		live.RegisterRoutes(v1, live.NewHandler(hub, j, allowOrigin))

		portalGroup := v1.Group("/portal", middleware.RateLimit(middleware.RateLimitConfig{
			Enabled:  cfg.RateLimitEnabled,
			Capacity: cfg.RateLimitCapacity,
			Interval: cfg.RateLimitInterval,
			Prefix:   "hotelpms:portal",
		}, rdb, log))
		portal.RegisterRoutes(portalGroup, portal.NewHandler(portalService), roomHandler)

		protected := v1.Group("", middleware.JWTAuth(j), middleware.StaffOnly())
		{
			auth.RegisterProtectedRoutes(protected, authHandler)
			hotel.RegisterRoutes(protected, hotel.NewHandler(hotelService))
			room.RegisterRoutes(protected, roomHandler)
			client.RegisterRoutes(protected, client.NewHandler(clientService))
			booking.RegisterRoutes(protected, booking.NewHandler(bookingService))
			notification.RegisterRoutes(protected, notification.NewHandler(notification.NewRepository(db)))
			dashboard.RegisterRoutes(protected, dashboard.NewHandler(dashboardService))
			report.RegisterRoutes(protected, report.NewHandler(reportService))
		}
	}
	return r
}
