package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/teamflow/internal/cli"
	"github.com/alexanderramin/teamflow/internal/config"
	"github.com/alexanderramin/teamflow/internal/db"
	"github.com/alexanderramin/teamflow/internal/intelligence"
	"github.com/alexanderramin/teamflow/internal/llm"
	"github.com/alexanderramin/teamflow/internal/repository"
	"github.com/alexanderramin/teamflow/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// The TUI owns the terminal; keep log lines out of the alternate screen.
	if interactive() && cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(cfg.Store.DBPath), "teamflow.log")
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	kv, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	// Load the collection once; from here on it owns the projects.
	store := repository.NewKVProjectStore(kv)
	projects, err := service.NewCollection(ctx, store, service.NewLogUseCaseObserver(logger))
	if err != nil {
		return err
	}

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	gateway := intelligence.NewGateway(llm.NewGeminiClient(cfg.LLM, observer), logger)

	app := &cli.App{
		Projects:      projects,
		AI:            gateway,
		IsInteractive: interactive,
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// newLogger builds the process logger. Logs go to stderr unless a file is
// configured, which keeps them out of the alternate screen.
func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

// openStore opens the configured key-value backend.
func openStore(ctx context.Context, cfg config.StoreConfig) (repository.KVStore, func(), error) {
	switch cfg.Backend {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return repository.NewRedisKVStore(client, cfg.Redis.Prefix), func() { client.Close() }, nil

	default:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return repository.NewSQLiteKVStore(database), func() { database.Close() }, nil
	}
}
