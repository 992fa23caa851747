package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/skillplus-backend/config"
	"github.com/vnkhanh/skillplus-backend/controllers"
	"github.com/vnkhanh/skillplus-backend/logger"
	"github.com/vnkhanh/skillplus-backend/middleware"
	"github.com/vnkhanh/skillplus-backend/repository"
	"github.com/vnkhanh/skillplus-backend/routes"
	"github.com/vnkhanh/skillplus-backend/services"
	"github.com/vnkhanh/skillplus-backend/storage"
	"github.com/vnkhanh/skillplus-backend/utils"
	"github.com/vnkhanh/skillplus-backend/ws"
)

func main() {
	cfg, foundEnv, err := config.Load()
	if err != nil {
		l := logger.New("", "info")
		l.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	if !foundEnv {
		log.Info().Msg("no .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	log.Info().Msg("database connected")

	rdb, err := config.OpenRedis(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching and rate limiting disabled")
		rdb = nil
	}

	provider, err := storage.NewProvider(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("object storage init failed")
	}
	gateway := storage.NewGateway(provider, cfg.StorageCacheControl)

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.AdminTokenTTL, cfg.UserTokenTTL)
	hub := ws.NewHub(log)
	cache := repository.NewListCache(rdb, cfg.CacheTTL, log)
	orphans := repository.NewOrphanRepository(db)

	courseSvc := services.NewCourseService(repository.NewCourseRepository(db, cache), gateway, orphans, hub, log)
	mentorSvc := services.NewMentorService(repository.NewMentorRepository(db, cache), gateway, orphans, hub, log)
	authSvc := services.NewAuthService(repository.NewUserRepository(db), tokens)

	sweeper := services.NewOrphanSweeper(orphans, gateway, cfg.OrphanSweepBatch, log)
	sweeps, err := sweeper.Start(cfg.OrphanSweepSpec)
	if err != nil {
		log.Fatal().Err(err).Msg("orphan sweeper init failed")
	}

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	r.MaxMultipartMemory = cfg.MaxUploadBytes() + 1<<20

	//Bật CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Auth-Token"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	routes.SetupRouter(r, routes.Deps{
		Tokens:          tokens,
		Hub:             hub,
		Upgrader:        ws.NewUpgrader(cfg.CORSOrigins),
		RateLimiter:     middleware.NewRateLimiter(rdb),
		LoginRateLimit:  cfg.LoginRateLimit,
		LoginRateWindow: cfg.LoginRateWindow,
		Auth:            controllers.NewAuthController(authSvc),
		Courses:         controllers.NewCourseController(courseSvc, cfg.MaxUploadBytes()),
		Mentors:         controllers.NewMentorController(mentorSvc, cfg.MaxUploadBytes()),
		Health:          controllers.NewHealthController(db, rdb, hub),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	<-sweeps.Stop().Done()
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
