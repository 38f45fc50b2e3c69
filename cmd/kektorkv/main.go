package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanonone/kektorkv/internal/server"
	"github.com/sanonone/kektorkv/pkg/config"
	"github.com/sanonone/kektorkv/pkg/core"
)

// cliFlags holds the raw command-line values; only flags the user set are applied.
type cliFlags struct {
	configPath string
	host       string
	port       int
	verbose    bool
	backend    string
}

func parseFlags(fs *flag.FlagSet, args []string) (cliFlags, map[string]bool, error) {
	var f cliFlags
	fs.StringVar(&f.configPath, "config", "", "Path to a YAML configuration file")
	fs.StringVar(&f.host, "host", "127.0.0.1", "Address to bind")
	fs.IntVar(&f.port, "port", 3030, "Sets the port to listen on")
	fs.IntVar(&f.port, "p", 3030, "Shorthand for -port")
	fs.BoolVar(&f.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&f.verbose, "v", false, "Shorthand for -verbose")
	fs.StringVar(&f.backend, "backend", core.BackendSharded, "Store backend: 'sharded' or 'btree'")

	if err := fs.Parse(args); err != nil {
		return f, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set, nil
}

// applyFlags overrides cfg with the flags present on the command line.
func applyFlags(cfg *config.Config, f cliFlags, set map[string]bool) {
	if set["host"] {
		cfg.Server.Host = f.host
	}
	if set["port"] || set["p"] {
		cfg.Server.Port = f.port
	}
	if set["verbose"] || set["v"] {
		cfg.Log.Verbose = f.verbose
	}
	if set["backend"] {
		cfg.Store.Backend = f.backend
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	f, set, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyFlags(&cfg, f, set)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	slog.SetDefault(newLogger(os.Stderr, cfg.Log))

	// Single store instance for the whole process.
	store, err := core.NewStore(cfg.Store.Backend, cfg.Store.Shards)
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}

	srv, err := server.NewServer(store, server.Options{
		Addr:              cfg.Addr(),
		MaxBodyBytes:      cfg.Server.MaxBodyBytes,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		EnableMetrics:     cfg.Metrics.Enabled,
		EnableMCP:         cfg.MCP.Enabled,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	slog.Info("Starting server",
		"addr", cfg.Addr(),
		"backend", cfg.Store.Backend,
		"metrics", cfg.Metrics.Enabled,
		"mcp", cfg.MCP.Enabled,
	)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal(err)
		}
	case <-shutdownChan:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
		<-errCh
	}
}
