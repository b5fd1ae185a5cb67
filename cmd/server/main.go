package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/Sameer280406/Projects/internal/api"
	"github.com/Sameer280406/Projects/internal/backend"
	"github.com/Sameer280406/Projects/internal/config"
	"github.com/Sameer280406/Projects/internal/dashboard"
	"github.com/Sameer280406/Projects/internal/session"
	"github.com/Sameer280406/Projects/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "EquipmentDashboard.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(parseLogLevel(cfg.Advanced.LogLevel))

	// Chart labels and colors, optional
	style, err := dashboard.LoadChartStyle(cfg.Dashboard.ChartStyleFile)
	if err != nil {
		fmt.Printf("Warning: failed to load chart style, using defaults: %v\n", err)
		style = dashboard.DefaultChartStyle()
	}

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.GetBackendTimeout())
	if cfg.Backend.EnableDebugLog {
		client.DebugLog = e.Logger.Debugf
	}

	// Each page render gets its own dashboard
	sessionMgr := session.NewManager(func() *dashboard.Dashboard {
		return dashboard.New(client,
			dashboard.WithLogger(e.Logger),
			dashboard.WithChartStyle(style),
		)
	}, cfg.Sessions.MaxSessions)
	sessionMgr.SetLogger(e.Logger)

	// Start background session cleanup
	go func() {
		ticker := time.NewTicker(cfg.GetCleanupInterval())
		defer ticker.Stop()
		for range ticker.C {
			sessionMgr.CleanupOldSessions(cfg.GetSessionTimeout())
		}
	}()

	api.ShowErrorDetails = strings.EqualFold(cfg.Advanced.LogLevel, "debug")
	api.SetupMiddleware(e, cfg)
	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Sessions:   sessionMgr,
		History:    client,
		BackendURL: client.BaseURL(),
		Version:    Version,
		Config:     cfg,
		Logger:     e.Logger,
	}))

	if err := web.RegisterStaticRoutes(e); err != nil {
		fmt.Printf("Warning: failed to register static routes: %v\n", err)
	}

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Equipment Dashboard Server                      ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Backend:   %-46s║\n", client.BaseURL())
	fmt.Printf("║  Sessions:  %-46s║\n", fmt.Sprintf("max %d, idle timeout %s", cfg.Sessions.MaxSessions, cfg.GetSessionTimeout()))
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")
	fmt.Printf("Open http://localhost:%d in your browser\n\n", cfg.Server.Port)

	e.Logger.Fatal(e.StartServer(s))
}

func parseLogLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
