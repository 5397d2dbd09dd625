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

	"pointmall/internal/config"
	"pointmall/internal/db"
	"pointmall/internal/logger"
	"pointmall/internal/middleware"
	"pointmall/internal/router"
	"pointmall/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	cfg, envLoaded := config.Load()

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()
	if !envLoaded {
		zl.Info("No .env file found, reading config from environment")
	}

	// Initialize Database
	gdb, err := db.Init(cfg.DatabaseURL, cfg.SeedCatalog, zl)
	if err != nil {
		zl.Fatal("init database", zap.Error(err))
	}
	defer db.Close(gdb)
	store := db.NewStore(gdb)

	// Services
	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	accountService := services.NewAccountService(store, authService, zl)
	pointsService := services.NewPointsService(store, zl)
	catalogService := services.NewCatalogService(store, zl)
	rechargeService := services.NewRechargeService(store, cfg.PayNotifySecret, zl)
	vipService := services.NewVipService(store, zl)

	// 会员到期同步
	scheduler := cron.New()
	if _, err := vipService.Schedule(scheduler, cfg.VipSweepInterval); err != nil {
		zl.Fatal("schedule vip sweep", zap.Error(err))
	}
	scheduler.Start()
	zl.Info("[CRON] vip sweep scheduled", zap.Duration("interval", cfg.VipSweepInterval))

	// Initialize Gin
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.Metrics())
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("pointmall_session", sessionStore))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.RegisterRoutes(r, router.Deps{
		Points:   pointsService,
		Accounts: accountService,
		Recharge: rechargeService,
		Catalog:  catalogService,
		Tokens:   authService,
		Logger:   zl,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zl.Info("PointMall server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server")

	// 等待正在执行的定时任务结束
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	zl.Info("Server exited")
}
