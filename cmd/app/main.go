package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"redirectflow-go/internal/handler"
	"redirectflow-go/internal/i18n"
	"redirectflow-go/internal/middleware"
	"redirectflow-go/internal/repository"
	"redirectflow-go/internal/service"
	"redirectflow-go/pkg/logging"
)

// initConfig reads config.yaml when present and lets REDIRECTFLOW_*
// environment variables override it (REDIRECTFLOW_BATCH_SECRET →
// batch.secret). Hosted deployments typically run with env only, so a
// missing file is not fatal.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("REDIRECTFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("No config file loaded, relying on environment: %v", err)
	}
}

func startServer(r *gin.Engine) {
	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// flush queued access-log writes before the process goes away
	service.WaitForAccessLogs()

	if repository.RedisPool != nil {
		if err := repository.RedisPool.Close(); err != nil {
			logging.Logger.Warn("Redis pool close failed", zap.Error(err))
		}
	}

	logging.Logger.Info("Server exiting")
}

func main() {

	initConfig()
	logging.InitLoggerFromConfig()
	logging.Logger.Info("Application started")

	repository.InitDB(logging.Logger, logging.AtomicLevel)
	repository.InitRedis()
	service.InitMailer()
	middleware.InitSessionStore()
	service.EnsureAdminUser()

	bundle, err := i18n.InitI18n([]string{
		"./i18n/en.toml",
		"./i18n/ja.toml",
	}, "ja")
	if err != nil {
		panic(err)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.GlobalErrorMiddleware())
	r.Use(middleware.ZapGinLogger(logging.Logger))
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.I18nMiddleware(bundle))
	r.Use(middleware.SessionGate())

	r.GET("/r/:slug", handler.ResolveHandler)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// minimal shells; the admin UI is a separate frontend, but the paths
	// must exist for the session gate's redirects
	r.GET("/", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, "<!DOCTYPE html><title>RedirectFlow</title><h1>RedirectFlow</h1>")
	})
	r.GET("/login", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, "<!DOCTYPE html><title>Login - RedirectFlow</title><h1>Login</h1>")
	})

	api := r.Group("/api")
	{
		api.POST("/auth/login", handler.LoginHandler)
		api.POST("/auth/logout", handler.LogoutHandler)
		api.GET("/auth/me", handler.MeHandler)

		api.GET("/batch/daily-summary", handler.DailySummaryHandler)

		api.POST("/redirect", handler.CreateRedirectHandler)
		api.GET("/redirect", handler.ListRedirectsHandler)
		api.GET("/redirect/:id", handler.GetRedirectHandler)
		api.PUT("/redirect/:id", handler.UpdateRedirectHandler)
		api.DELETE("/redirect/:id", handler.DeleteRedirectHandler)
		api.GET("/redirect/:id/logs", handler.ListAccessLogsHandler)
		api.GET("/redirect/:id/logs/export", handler.ExportAccessLogsHandler)
		api.GET("/redirect/:id/stats", handler.GetRedirectStatsHandler)

		api.POST("/member", handler.CreateMemberHandler)
		api.GET("/member", handler.ListMembersHandler)
		api.PUT("/member/:id", handler.UpdateMemberHandler)
		api.DELETE("/member/:id", handler.DeleteMemberHandler)

		api.POST("/task", handler.CreateTaskHandler)
		api.GET("/task", handler.ListTasksHandler)
		api.PUT("/task/:id", handler.UpdateTaskHandler)
		api.PUT("/task/:id/status", handler.UpdateTaskStatusHandler)
		api.DELETE("/task/:id", handler.DeleteTaskHandler)

		api.GET("/goal/:month", handler.GetGoalHandler)
		api.PUT("/goal/:month", handler.UpsertGoalHandler)

		api.GET("/dashboard", handler.GetDashboardHandler)
		api.GET("/dashboard/ranking", handler.GetRankingHandler)
	}

	c := cron.New(cron.WithLocation(service.BatchLocation()))

	// every morning at 06:00 in the batch timezone
	_, addErr := c.AddFunc("0 6 * * *", func() {
		if err := service.DailySummary(time.Now(), false); err != nil {
			logging.Logger.Error("Scheduled daily summary failed", zap.Error(err))
		}
	})
	if addErr != nil {
		logging.Logger.Fatal("Failed to schedule cron job", zap.Error(addErr))
	}

	c.Start()

	startServer(r)
}
