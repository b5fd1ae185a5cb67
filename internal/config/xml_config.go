// Package config provides XML-based configuration for the dashboard server.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"EquipmentDashboard"`

	// Server configuration
	Server ServerConfig `xml:"Server"`

	// Backend the uploads are forwarded to
	Backend BackendConfig `xml:"Backend"`

	// Dashboard presentation
	Dashboard DashboardConfig `xml:"Dashboard"`

	// Per-page dashboard sessions
	Sessions SessionConfig `xml:"Sessions"`

	// Advanced options
	Advanced AdvancedConfig `xml:"Advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port              int    `xml:"Port"`
	BindAddress       string `xml:"BindAddress"`
	EnableCORS        bool   `xml:"EnableCORS"`
	AllowOrigins      string `xml:"AllowOrigins"`
	ReadTimeout       int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout      int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout       int    `xml:"IdleTimeoutSeconds"`
	BodyLimit         string `xml:"BodyLimit"`
	EnableCompression bool   `xml:"EnableCompression"`
	CompressionLevel  int    `xml:"CompressionLevel"`
}

// BackendConfig points at the CSV processing service.
type BackendConfig struct {
	BaseURL string `xml:"BaseURL"`
	// 0 waits for the backend indefinitely.
	RequestTimeoutSeconds int  `xml:"RequestTimeoutSeconds"`
	EnableDebugLog        bool `xml:"EnableDebugLog"`
}

// DashboardConfig contains presentation settings
type DashboardConfig struct {
	ChartStyleFile string `xml:"ChartStyleFile"`
}

// SessionConfig bounds how many page sessions are kept and for how long
type SessionConfig struct {
	MaxSessions            int `xml:"MaxSessions"`
	SessionTimeoutMinutes  int `xml:"SessionTimeoutMinutes"`
	CleanupIntervalMinutes int `xml:"CleanupIntervalMinutes"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel                string `xml:"LogLevel"`
	EnableRequestLogging    bool   `xml:"EnableRequestLogging"`
	WebSocketMaxMessageSize int    `xml:"WebSocketMaxMessageSizeKB"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:              8090,
			BindAddress:       "127.0.0.1",
			EnableCORS:        false,
			AllowOrigins:      "*",
			ReadTimeout:       30,
			WriteTimeout:      30,
			IdleTimeout:       120,
			BodyLimit:         "64M",
			EnableCompression: true,
			CompressionLevel:  5,
		},
		Backend: BackendConfig{
			BaseURL:               "http://127.0.0.1:8000/api",
			RequestTimeoutSeconds: 0,
			EnableDebugLog:        false,
		},
		Dashboard: DashboardConfig{
			ChartStyleFile: "charts.yaml",
		},
		Sessions: SessionConfig{
			MaxSessions:            100,
			SessionTimeoutMinutes:  30,
			CleanupIntervalMinutes: 5,
		},
		Advanced: AdvancedConfig{
			LogLevel:                "info",
			EnableRequestLogging:    true,
			WebSocketMaxMessageSize: 64,
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		config.applyEnvironmentOverrides()
		config.resolvePaths(filepath.Dir(configPath))
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Resolve relative paths
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- Equipment Dashboard Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects settings the server cannot start with
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("invalid backend URL: %q", c.Backend.BaseURL)
	}
	if c.Backend.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("invalid backend timeout: %d", c.Backend.RequestTimeoutSeconds)
	}
	if c.Sessions.MaxSessions <= 0 {
		return fmt.Errorf("invalid session limit: %d", c.Sessions.MaxSessions)
	}
	if c.Sessions.SessionTimeoutMinutes <= 0 || c.Sessions.CleanupIntervalMinutes <= 0 {
		return fmt.Errorf("invalid session timing: timeout %dm, cleanup every %dm",
			c.Sessions.SessionTimeoutMinutes, c.Sessions.CleanupIntervalMinutes)
	}
	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	// PORT override
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if url := os.Getenv("BACKEND_URL"); url != "" {
		c.Backend.BaseURL = url
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Advanced.LogLevel = level
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if c.Dashboard.ChartStyleFile != "" && !filepath.IsAbs(c.Dashboard.ChartStyleFile) {
		c.Dashboard.ChartStyleFile = filepath.Join(configDir, c.Dashboard.ChartStyleFile)
	}
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// GetBackendTimeout returns the backend request timeout; zero means none
func (c *AppConfig) GetBackendTimeout() time.Duration {
	return time.Duration(c.Backend.RequestTimeoutSeconds) * time.Second
}

// GetSessionTimeout returns how long an idle session is kept
func (c *AppConfig) GetSessionTimeout() time.Duration {
	return time.Duration(c.Sessions.SessionTimeoutMinutes) * time.Minute
}

// GetCleanupInterval returns how often aged sessions are dropped
func (c *AppConfig) GetCleanupInterval() time.Duration {
	return time.Duration(c.Sessions.CleanupIntervalMinutes) * time.Minute
}

// GetAllowOrigins splits the comma-separated origin list
func (c *AppConfig) GetAllowOrigins() []string {
	origins := strings.Split(c.Server.AllowOrigins, ",")
	out := origins[:0]
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
