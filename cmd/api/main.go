package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/M1estere/To-Do-API/pkg/translator"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "github.com/M1estere/To-Do-API/internal/adapter/db"
	httpadapter "github.com/M1estere/To-Do-API/internal/adapter/http"
	"github.com/M1estere/To-Do-API/internal/adapter/http/handlers"
	httpmiddleware "github.com/M1estere/To-Do-API/internal/adapter/http/middleware"
	"github.com/M1estere/To-Do-API/internal/adapter/ws"
	appservice "github.com/M1estere/To-Do-API/internal/app/service"
	"github.com/M1estere/To-Do-API/internal/config"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)

	cfg := config.LoadConfig()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.DbDriver), zap.Error(err))
	}

	if cfg.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := dbadapter.ApplyMigrations(migrateCtx, db)
		cancel()
		if err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.RequestIDMiddleware(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}

	hub := ws.NewHub()
	taskEventsHandler := handlers.NewTaskEventsHandler(hub)
	taskRepository := dbadapter.NewTaskRepository(db)
	taskService := appservice.NewTaskService(taskRepository, taskEventsHandler)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(db, cfg.AppName, cfg.AppVersion)

	var apiMiddlewares []gin.HandlerFunc
	if cfg.RateLimitRPS > 0 {
		apiMiddlewares = append(apiMiddlewares,
			httpmiddleware.RateLimitMiddleware(httpmiddleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	}
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler, taskEventsHandler, apiMiddlewares...)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("addr", server.Addr),
			zap.String("driver", cfg.DbDriver),
			zap.String("version", cfg.AppVersion),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"todo-api": func(ctx context.Context) error {
				logger.Info("shutting down server")
				err := server.Shutdown(ctx)
				hub.Close()
				if closeErr := db.Close(); closeErr != nil {
					logger.Warn("failed to close database connection", zap.Error(closeErr))
				}
				return err
			},
		},
	)

	exitCode := <-wait
	logger.Info("server stopped", zap.Int("exit_code", exitCode))
	if err := logger.Sync(); err != nil {
		zap.L().Debug("failed to sync logger", zap.Error(err))
	}
	os.Exit(exitCode)
}
