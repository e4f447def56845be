package main

import (
	"flag"
	"log/slog"
	"net/http"

	"collegeatlas-backend/lib/cache"
	"collegeatlas-backend/lib/configutil"
	"collegeatlas-backend/lib/serviceutil"
	"collegeatlas-backend/services/colleges"

	"github.com/gin-gonic/gin"
)

type Config struct {
	Port     int               `json:"port"`
	Redis    cache.RedisConfig `json:"redis"`
	Colleges colleges.Config   `json:"colleges"`
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	store := openStore(cfg.Redis)
	defer store.Close()

	svc := colleges.NewService(store, cfg.Colleges)

	if !*verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "College Atlas API v1")
	})
	colleges.NewHandler(svc).Register(router)

	go serviceutil.StartHttpServer(cfg.Port, router)
	<-ctx.Done()
}

// openStore prefers redis and falls back to the in-process store so the
// server still comes up in dev environments without one.
func openStore(cfg cache.RedisConfig) cache.Store {
	if cfg.Address == "" {
		slog.Info("no redis address configured, using in-memory cache")
		return cache.NewMemoryStore(0)
	}
	store, err := cache.NewRedisStore(cfg)
	if err != nil {
		slog.Warn("could not reach redis, using in-memory cache", "err", err)
		return cache.NewMemoryStore(0)
	}
	return store
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		slog.InfoContext(
			c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
