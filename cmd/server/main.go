package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"solar_battery_sim/internal/api"
	"solar_battery_sim/internal/config"
	"solar_battery_sim/internal/simulator"
	"solar_battery_sim/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	frontendDir := flag.String("frontend-dir", "", "directory containing frontend build (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("loading config", "path", *configPath, "err", err)
			os.Exit(1)
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *frontendDir != "" {
		cfg.FrontendDir = *frontendDir
	}

	setupLogging(cfg.LogLevel)

	// Wire up the WebSocket hub and the playback engine.
	hub := ws.NewHub()
	bridge := ws.NewBridge(hub)
	engine := simulator.New(bridge)
	if err := engine.SetParams(cfg.Params); err != nil {
		slog.Error("invalid default params", "err", err)
		os.Exit(1)
	}
	wsHandler := ws.NewHandler(hub, engine)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), api.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/ws", gin.WrapH(wsHandler))

	api.NewHandler(cfg.Params).Register(router)

	// Serve frontend static files when a build is present.
	if _, err := os.Stat(cfg.FrontendDir); err == nil {
		slog.Info("serving frontend", "dir", cfg.FrontendDir)
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.FrontendDir))))
	}

	handler := cors.Default().Handler(router)

	slog.Info("starting server", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	})))
}
