// Package app wires configuration, clients and services into the shared
// core used by cmd/meridian-server and cmd/meridian.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mwhite-io/meridian/internal/clients/cloud"
	"github.com/mwhite-io/meridian/internal/clients/gemini"
	"github.com/mwhite-io/meridian/internal/common"
	"github.com/mwhite-io/meridian/internal/interfaces"
	"github.com/mwhite-io/meridian/internal/services/dashboard"
	"github.com/mwhite-io/meridian/internal/services/importer"
	"github.com/mwhite-io/meridian/internal/services/insight"
	"github.com/mwhite-io/meridian/internal/session"
)

// App holds all initialized clients and services.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Sessions    interfaces.SessionStore
	Cloud       interfaces.CloudClient
	Gemini      interfaces.GeminiClient
	Dashboard   interfaces.DashboardService
	Insights    interfaces.InsightService
	Importer    interfaces.ImportService
	StartupTime time.Time

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, the session store, the cloud client and
// all services. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Resolve configuration: provided path, MERIDIAN_CONFIG, binary dir,
	// then the development fallback.
	if configPath == "" {
		configPath = os.Getenv("MERIDIAN_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "meridian.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/meridian.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative paths to the binary directory
	if config.Session.Path != "" && !filepath.IsAbs(config.Session.Path) {
		config.Session.Path = filepath.Join(binDir, config.Session.Path)
	}
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	sessions := session.NewStore(config.Session.Path, config.Session.EncryptionKey)

	cloudClient := cloud.NewClient(sessions,
		cloud.WithBaseURL(config.API.BaseURL),
		cloud.WithLogger(logger),
		cloud.WithRateLimit(config.API.RateLimit),
		cloud.WithTimeout(config.API.GetTimeout()),
	)

	var geminiClient *gemini.Client
	if config.Clients.Gemini.APIKey != "" {
		geminiClient, err = gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - briefings will use the plain digest")
			geminiClient = nil
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - briefings will use the plain digest")
	}

	dashboardService := dashboard.NewService(cloudClient, logger, config.Dashboard.DefaultRange, config.Dashboard.GetRefreshInterval())
	importService := importer.NewService(cloudClient, logger)

	var insightService *insight.Service
	if geminiClient != nil {
		insightService = insight.NewService(cloudClient, geminiClient, logger)
	} else {
		insightService = insight.NewService(cloudClient, nil, logger)
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Sessions:    sessions,
		Cloud:       cloudClient,
		Dashboard:   dashboardService,
		Insights:    insightService,
		Importer:    importService,
		StartupTime: startupStart,
	}
	if geminiClient != nil {
		a.Gemini = geminiClient
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
		a.schedulerCancel = nil
	}
	if a.Gemini != nil {
		a.Gemini.Close()
		a.Gemini = nil
	}
}

// StartSnapshotScheduler launches the background dashboard refresh goroutine.
func (a *App) StartSnapshotScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel
	go startSnapshotScheduler(ctx, a.Dashboard, a.Logger, a.Config.Dashboard.GetRefreshInterval())
}
