package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/mmynk/fintrack/internal/config"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/storage/sqlite"
	"github.com/mmynk/fintrack/pkg/logging"
)

// openLedger opens the configured database. The returned func closes it.
func openLedger() (*ledger.Ledger, func(), error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, nil, err
	}
	level := slog.LevelWarn
	if *verbose {
		level = cfg.LogLevel()
	}
	logger := logging.Setup(level)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return ledger.New(store, ledger.WithLogger(logger)), func() { store.Close() }, nil
}

// run opens the ledger, calls fn and reports its error on stderr.
func run(fn func(*ledger.Ledger) error) subcommands.ExitStatus {
	l, closeFn, err := openLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	if err := fn(l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// findCurrency resolves a currency by id or code.
func findCurrency(ctx context.Context, l *ledger.Ledger, ref string) (*models.Currency, error) {
	currencies, err := l.Currencies.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range currencies {
		if c.ID == ref || strings.EqualFold(c.Code, ref) {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("currency %q: %w", ref, storage.ErrNotFound)
}

// findAccount resolves an account of either type by id or name.
func findAccount(ctx context.Context, l *ledger.Ledger, ref string) (*models.Account, error) {
	accounts, err := l.Accounts.List(ctx, storage.AccountFilter{IncludeInactive: true})
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.ID == ref || strings.EqualFold(a.Name, ref) {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("account %q: %w", ref, storage.ErrNotFound)
}
