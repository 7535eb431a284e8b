// Command sevenmind is the main entry point for the sevenmind conversation
// server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/mindweave/sevenmind/internal/app"
	"github.com/mindweave/sevenmind/internal/config"
	"github.com/mindweave/sevenmind/internal/health"
	"github.com/mindweave/sevenmind/internal/observe"
	"github.com/mindweave/sevenmind/internal/resilience"
	"github.com/mindweave/sevenmind/internal/server"
	"github.com/mindweave/sevenmind/pkg/memory/postgres"
	"github.com/mindweave/sevenmind/pkg/provider/embeddings"
	oaembed "github.com/mindweave/sevenmind/pkg/provider/embeddings/openai"
	"github.com/mindweave/sevenmind/pkg/provider/llm"
	"github.com/mindweave/sevenmind/pkg/provider/llm/anyllm"
	oaillm "github.com/mindweave/sevenmind/pkg/provider/llm/openai"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// Local development convenience; missing .env files are fine.
	_ = godotenv.Load()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "sevenmind: config file %q not found, copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "sevenmind: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("sevenmind starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "sevenmind",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Providers ─────────────────────────────────────────────────────────────
	providers, err := buildProviders(cfg)
	if err != nil {
		slog.Error("failed to build providers", "err", err)
		return 1
	}

	// ── Application ───────────────────────────────────────────────────────────
	application, err := app.New(ctx, cfg, providers)
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		return 1
	}

	srv := server.New(application, healthCheckers(application)...)

	slog.Info("server ready")

	if err := srv.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// ── Provider wiring ───────────────────────────────────────────────────────────

// buildProviders instantiates the completion and embedding backends named in
// cfg. The completion provider is wrapped in a circuit-breaking fallback
// group when fallbacks are configured.
func buildProviders(cfg *config.Config) (*app.Providers, error) {
	ps := &app.Providers{}

	primary, err := buildLLM(cfg.Providers.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm provider %q: %w", cfg.Providers.LLM.Name, err)
	}
	ps.LLM = primary
	slog.Info("provider created", "kind", "llm", "name", cfg.Providers.LLM.Name)

	if fallbacks := cfg.Providers.LLM.Fallbacks; len(fallbacks) > 0 {
		group := resilience.NewLLMFallback(primary, cfg.Providers.LLM.Name, resilience.FallbackConfig{})
		for _, entry := range fallbacks {
			p, err := buildLLM(entry)
			if err != nil {
				return nil, fmt.Errorf("create fallback llm provider %q: %w", entry.Name, err)
			}
			group.AddFallback(entry.Name, p)
			slog.Info("provider created", "kind", "llm-fallback", "name", entry.Name)
		}
		ps.LLM = group
	}

	if name := cfg.Providers.Embeddings.Name; name != "" {
		p, err := buildEmbeddings(cfg.Providers.Embeddings)
		if err != nil {
			return nil, fmt.Errorf("create embeddings provider %q: %w", name, err)
		}
		ps.Embeddings = p
		slog.Info("provider created", "kind", "embeddings", "name", name)
	}

	return ps, nil
}

// buildLLM creates one completion backend. "openai" uses the native SDK;
// everything else goes through any-llm.
func buildLLM(entry config.ProviderEntry) (llm.Provider, error) {
	apiKey := apiKeyFor(entry)

	switch entry.Name {
	case "":
		return nil, errors.New("providers.llm.name is required")

	case "openai":
		var opts []oaillm.Option
		if entry.BaseURL != "" {
			opts = append(opts, oaillm.WithBaseURL(entry.BaseURL))
		}
		return oaillm.New(apiKey, entry.Model, opts...)

	default:
		var opts []anyllmlib.Option
		if apiKey != "" {
			opts = append(opts, anyllmlib.WithAPIKey(apiKey))
		}
		if entry.BaseURL != "" {
			opts = append(opts, anyllmlib.WithBaseURL(entry.BaseURL))
		}
		return anyllm.New(entry.Name, entry.Model, opts...)
	}
}

func buildEmbeddings(entry config.ProviderEntry) (embeddings.Provider, error) {
	switch entry.Name {
	case "openai":
		var opts []oaembed.Option
		if entry.BaseURL != "" {
			opts = append(opts, oaembed.WithBaseURL(entry.BaseURL))
		}
		return oaembed.New(apiKeyFor(entry), entry.Model, opts...)
	default:
		return nil, fmt.Errorf("unknown embeddings provider %q", entry.Name)
	}
}

// apiKeyFor resolves the provider's API key: the config value wins, then the
// conventional environment variable (e.g. OPENAI_API_KEY), possibly loaded
// from .env.
func apiKeyFor(entry config.ProviderEntry) string {
	if entry.APIKey != "" {
		return entry.APIKey
	}
	return os.Getenv(strings.ToUpper(entry.Name) + "_API_KEY")
}

// healthCheckers builds the readiness checkers for the server. The database
// check is only present when conversations are backed by Postgres.
func healthCheckers(a *app.App) []health.Checker {
	var checkers []health.Checker
	if pg, ok := a.Store().(*postgres.Store); ok {
		checkers = append(checkers, health.Checker{Name: "database", Check: pg.Ping})
	}
	return checkers
}

// newLogger builds the process-wide text logger at the configured level.
func newLogger(level config.LogLevel) *slog.Logger {
	var l slog.Level
	switch level {
	case config.LogDebug:
		l = slog.LevelDebug
	case config.LogWarn:
		l = slog.LevelWarn
	case config.LogError:
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
