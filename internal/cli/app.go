// Package cli implements the cashkeeper command line on top of the ledger services.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/cashkeeper/internal/platform/bootstrap"
	"github.com/SscSPs/cashkeeper/internal/platform/config"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// App carries what every command needs. A CLI run is short lived, so each command opens the
// ledger, runs one operation and closes it.
type App struct {
	Out      io.Writer
	Err      io.Writer
	Currency string
	Open     func(ctx context.Context) (*bootstrap.Ledger, error)
}

// NewApp opens the ledger described by cfg for every command.
func NewApp(cfg *config.Config, out, errOut io.Writer, currency string, logger *slog.Logger) *App {
	return &App{
		Out:      out,
		Err:      errOut,
		Currency: currency,
		Open: func(ctx context.Context) (*bootstrap.Ledger, error) {
			return bootstrap.Open(ctx, cfg, logger)
		},
	}
}

// Register adds the ledger commands to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&recordCmd{app: app}, "ledger")
	c.Register(&addCashCmd{app: app}, "cash")
	c.Register(&reconcileCmd{app: app}, "cash")
	c.Register(&balanceCmd{app: app}, "cash")
	c.Register(&historyCmd{app: app}, "views")
	c.Register(&snapshotsCmd{app: app}, "views")
	c.Register(&summaryCmd{app: app}, "views")
}

// run opens the ledger, calls fn and reports its error.
func (a *App) run(ctx context.Context, fn func(ctx context.Context, l *bootstrap.Ledger) error) subcommands.ExitStatus {
	ledger, err := a.Open(ctx)
	if err != nil {
		fmt.Fprintf(a.Err, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer ledger.Close()

	if err := fn(ctx, ledger); err != nil {
		fmt.Fprintf(a.Err, "Error: %v\n", err)
		if state := ledger.Services.Sync.State(); state.LastError != "" {
			fmt.Fprintf(a.Err, "Sync: %s (%s)\n", state.Status, state.LastError)
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// decimalFlag is a flag.Value holding an optional amount.
type decimalFlag struct {
	value *decimal.Decimal
}

func (d *decimalFlag) String() string {
	if d == nil || d.value == nil {
		return ""
	}
	return d.value.String()
}

func (d *decimalFlag) Set(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	d.value = &v
	return nil
}
