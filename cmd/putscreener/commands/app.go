package commands

import (
	"fmt"

	"github.com/wonny/putscreener/internal/external/wecom"
	"github.com/wonny/putscreener/internal/marketdata"
	"github.com/wonny/putscreener/internal/notify"
	"github.com/wonny/putscreener/internal/pipeline"
	"github.com/wonny/putscreener/internal/report"
	"github.com/wonny/putscreener/internal/selection"
	"github.com/wonny/putscreener/internal/watchlist"
	"github.com/wonny/putscreener/pkg/config"
	"github.com/wonny/putscreener/pkg/logger"
)

// app bundles the wired components of one process
type app struct {
	config       *config.Config
	logger       *logger.Logger
	watchlist    *watchlist.Watchlist
	orchestrator *pipeline.Orchestrator
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(envFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func loadWatchlist(cfg *config.Config) (*watchlist.Watchlist, error) {
	if cfg.Screening.WatchlistPath == "" {
		return watchlist.Default(), nil
	}
	return watchlist.Load(cfg.Screening.WatchlistPath)
}

// newApp wires every component from cfg
func newApp(cfg *config.Config) (*app, error) {
	log := logger.New(cfg)

	wl, err := loadWatchlist(cfg)
	if err != nil {
		return nil, err
	}

	source, err := marketdata.NewSampleSource()
	if err != nil {
		return nil, fmt.Errorf("init market data: %w", err)
	}

	screenerCfg := selection.DefaultScreenerConfig()
	screenerCfg.MinMonthlyYield = cfg.Screening.MinMonthlyYield

	orch := pipeline.NewOrchestrator(
		cfg,
		source,
		wl,
		selection.NewScreener(screenerCfg, wl, log),
		report.NewExcelRenderer(cfg.OutputDir, log),
		report.NewCSVExporter(cfg.OutputDir, log),
		notify.NewNotifier(wecom.NewClient(cfg.WeCom, log), log),
		log,
	)

	return &app{
		config:       cfg,
		logger:       log,
		watchlist:    wl,
		orchestrator: orch,
	}, nil
}
