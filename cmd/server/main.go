package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/netlens/backend/internal/analytics"
	"github.com/netlens/backend/internal/api"
	"github.com/netlens/backend/internal/artifact"
	"github.com/netlens/backend/internal/config"
	"github.com/netlens/backend/internal/store"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	return cfg.Build()
}

func main() {
	// Resolve the config file next to the executable
	exePath, err := os.Executable()
	if err != nil {
		os.Stderr.WriteString("failed to get executable path: " + err.Error() + "\n")
		os.Exit(1)
	}
	configPath := filepath.Join(filepath.Dir(exePath), config.DefaultFileName)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Advanced.LogLevel)
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Fatal("failed to create directories", zap.Error(err))
	}

	logStore, err := store.Open(cfg.Storage.DatabaseFile, logger)
	if err != nil {
		logger.Fatal("failed to open log store", zap.Error(err))
	}
	defer logStore.Close()

	loader := artifact.LoaderFromDir(cfg.Models.Directory)
	engine := analytics.NewEngine(logStore, loader, logger)
	h := api.NewHandler(engine, logStore, logger)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			return c.Request().URL.Path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.Gzip())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, h)

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	logger.Info("netlens server starting",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("addr", cfg.GetServerAddr()),
		zap.String("config", configPath),
		zap.String("database", cfg.Storage.DatabaseFile),
		zap.String("models", cfg.Models.Directory))

	if err := e.StartServer(s); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
