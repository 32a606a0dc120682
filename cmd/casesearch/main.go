package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/altinukshini/casesearch/internal/api"
	"github.com/altinukshini/casesearch/internal/config"
	"github.com/altinukshini/casesearch/internal/logger"
	"github.com/altinukshini/casesearch/internal/metrics"
	"github.com/altinukshini/casesearch/internal/nav"
	"github.com/altinukshini/casesearch/internal/query"
	"github.com/altinukshini/casesearch/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

// CLI flags override the matching config file keys when set.
type CLI struct {
	Config      string           `help:"Config file (default: user config dir/casesearch/config.yaml)." type:"path" placeholder:"FILE"`
	BaseURL     string           `help:"Search service base URL." name:"base-url" env:"CASESEARCH_BASE_URL" placeholder:"URL"`
	Token       string           `help:"Bearer token for the search service." env:"CASESEARCH_TOKEN"`
	Open        string           `help:"Location to open, e.g. /search/<id>?page=2 or /detail/<id>." default:"/" placeholder:"LOCATION"`
	LogFile     string           `help:"Write logs to this file (logging is off without it)." name:"log-file" type:"path" placeholder:"FILE"`
	LogLevel    string           `help:"Log level: debug, info, warn, error." name:"log-level" placeholder:"LEVEL"`
	MetricsAddr string           `help:"Serve Prometheus metrics on this address, e.g. :9090." name:"metrics-addr" placeholder:"ADDR"`
	Version     kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("casesearch"),
		kong.Description("Terminal client for the legal document search service."),
		kong.Vars{"version": "casesearch " + version},
		kong.UsageOnError(),
	)

	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file with command line overrides.
func loadConfig(cli CLI) (config.Config, error) {
	path, optional := cli.Config, false
	if path == "" {
		path, optional = config.DefaultPath(), true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return config.Config{}, err
	}

	if cli.BaseURL != "" {
		cfg.BaseURL = cli.BaseURL
	}
	if cli.Token != "" {
		cfg.Token = cli.Token
	}
	if cli.LogFile != "" {
		cfg.Log.File = cli.LogFile
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.MetricsAddr != "" {
		cfg.Metrics.Addr = cli.MetricsAddr
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(cli CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	start, err := nav.Parse(cli.Open)
	if err != nil {
		return fmt.Errorf("--open: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr, func(err error) {
			log.Error("metrics server stopped", zap.Error(err))
		})
		defer srv.Close()
		log.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))
	}

	client, err := api.NewClient(api.Options{
		BaseURL:        cfg.BaseURL,
		Token:          cfg.Token,
		UserAgent:      "casesearch/" + version,
		Timeout:        cfg.RequestTimeout,
		LabelsCacheTTL: cfg.LabelsCacheTTL,
		TraceHTTP:      cfg.Log.TraceHTTP,
		Logger:         log.Named("api"),
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	log.Info("starting",
		zap.String("version", version),
		zap.String("base_url", cfg.BaseURL),
		zap.String("location", start.String()))

	queries := query.New(client, log.Named("query"))
	app := tui.NewApp(cfg, client, queries, log.Named("ui"), start)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
