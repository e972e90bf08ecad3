package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/tripwise/internal/catalog"
	"github.com/alexanderramin/tripwise/internal/cli"
	"github.com/alexanderramin/tripwise/internal/config"
	"github.com/alexanderramin/tripwise/internal/db"
	"github.com/alexanderramin/tripwise/internal/flow"
	"github.com/alexanderramin/tripwise/internal/handoff"
	"github.com/alexanderramin/tripwise/internal/logging"
	"github.com/alexanderramin/tripwise/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.Setup(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// The handoff history always lives in SQLite. The memory driver keeps it
	// for the session only.
	dbPath := cfg.Store.Path
	if cfg.Store.Driver == config.DriverMemory {
		dbPath = db.MemoryPath
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	kv, closeKV, err := openKV(ctx, cfg.Store, database)
	if err != nil {
		return err
	}
	defer closeKV()

	store := repository.NewDraftStore(kv)
	history := repository.NewSQLiteHandoffLogRepo(database)

	var observer catalog.Observer = catalog.NoopObserver{}
	if cfg.Catalog.LogCalls {
		observer = catalog.NewLogObserver(os.Stderr)
	}
	provider, err := catalog.NewProvider(cfg.CatalogSettings(), observer)
	if err != nil {
		return err
	}

	channels := map[string]handoff.Channel{
		"stdout": handoff.NewWriterChannel(os.Stdout),
		"mailto": handoff.NewMailtoChannel(os.Stdout),
	}
	if smtp := cfg.SMTPSettings(); smtp.IsConfigured() {
		channels["smtp"] = handoff.NewSMTPChannel(smtp)
	} else if cfg.Handoff.Channel == "smtp" {
		return fmt.Errorf("handoff channel smtp needs handoff.smtp.host and handoff.smtp.from")
	}

	app := &cli.App{
		Engine:         flow.NewEngine(store, flow.WithObserver(flow.NewLogUseCaseObserver(logger))),
		Catalog:        catalog.NewLoader(provider, logger),
		History:        history,
		Channels:       channels,
		DefaultChannel: cfg.Handoff.Channel,
		Recipient:      cfg.Handoff.Recipient,
		Reset:          resetFunc(cfg.Store.Driver, database, store, history),
		Config:         cfg,
		ConfigPath:     cfgPath,
		Logger:         logger,
		IsInteractive: isatty.IsTerminal(os.Stdout.Fd()) &&
			(isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())),
	}
	defer app.Wait()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openKV selects the draft store backend.
func openKV(ctx context.Context, sc config.StoreConfig, database *sql.DB) (repository.KVRepo, func(), error) {
	switch sc.Driver {
	case config.DriverRedis:
		r, err := repository.NewRedisKVRepo(ctx, sc.RedisAddr, sc.RedisPassword, sc.RedisDB, sc.RedisPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", sc.RedisAddr, err)
		}
		return r, func() { r.Close() }, nil
	case config.DriverMemory:
		return repository.NewMemoryKVRepo(), func() {}, nil
	default:
		return repository.NewSQLiteKVRepo(database), func() {}, nil
	}
}

// resetFunc clears the draft and the history. With SQLite both go in one
// transaction; otherwise the draft store is cleared first.
func resetFunc(driver string, database *sql.DB, store *repository.DraftStore, history *repository.SQLiteHandoffLogRepo) func(context.Context) error {
	if driver == config.DriverSQLite {
		uow := db.NewSQLiteUnitOfWork(database)
		return func(ctx context.Context) error {
			return repository.ClearPlanData(ctx, uow)
		}
	}
	return func(ctx context.Context) error {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		return history.DeleteAll(ctx)
	}
}
