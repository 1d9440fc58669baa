package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/SscSPs/cashkeeper/internal/core/domain"
	"github.com/SscSPs/cashkeeper/internal/dto"
	"github.com/SscSPs/cashkeeper/internal/platform/bootstrap"
	"github.com/SscSPs/cashkeeper/internal/utils"
	"github.com/google/subcommands"
)

// recordCmd records an income or expense.
type recordCmd struct {
	app      *App
	txType   string
	amount   decimalFlag
	category string
	note     string
	method   string
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record an income or expense" }
func (*recordCmd) Usage() string {
	return `cashkeeper record -type <Income|Expense> -amount <amount> -category <category> [-method <Cash|Non-cash>] [-note <note>]

  Records a transaction. Cash payments also move the cash balance.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.txType, "type", string(domain.Expense), "Transaction type: Income or Expense")
	f.Var(&c.amount, "amount", "Positive amount")
	f.StringVar(&c.category, "category", "", "Category permitted for the type")
	f.StringVar(&c.method, "method", string(domain.Cash), "Payment method: Cash or Non-cash")
	f.StringVar(&c.note, "note", "", "Free text note")
}

func (c *recordCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount.value == nil || c.category == "" {
		fmt.Fprintln(c.app.Err, "Error: -amount and -category are required")
		return subcommands.ExitUsageError
	}
	return c.app.run(ctx, func(ctx context.Context, l *bootstrap.Ledger) error {
		txn, err := l.Services.Ledger.RecordTransaction(ctx, dto.RecordTransactionRequest{
			Type:          domain.TransactionType(c.txType),
			Amount:        c.amount.value,
			Category:      domain.Category(c.category),
			Note:          c.note,
			PaymentMethod: domain.PaymentMethod(c.method),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Recorded %s %s (%s) %s\n",
			txn.Type, utils.FormatMoney(txn.Amount, c.app.Currency), txn.PaymentMethod, txn.Category)
		return nil
	})
}

// addCashCmd moves cash in or out without a transaction.
type addCashCmd struct {
	app    *App
	amount decimalFlag
	source string
	note   string
}

func (*addCashCmd) Name() string     { return "add-cash" }
func (*addCashCmd) Synopsis() string { return "add (or with a negative amount, remove) cash" }
func (*addCashCmd) Usage() string {
	return `cashkeeper add-cash -amount <amount> [-source <Salary|Gift|Withdrawal|Other|Adjustment>] [-note <note>]

  Moves cash in or out of the cash account and logs the movement.
`
}

func (c *addCashCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.amount, "amount", "Amount, negative to remove cash")
	f.StringVar(&c.source, "source", string(domain.SourceOther), "Where the cash came from")
	f.StringVar(&c.note, "note", "", "Free text note")
}

func (c *addCashCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount.value == nil {
		fmt.Fprintln(c.app.Err, "Error: -amount is required")
		return subcommands.ExitUsageError
	}
	return c.app.run(ctx, func(ctx context.Context, l *bootstrap.Ledger) error {
		entry, err := l.Services.Ledger.AddCash(ctx, dto.AddCashRequest{
			Amount: c.amount.value,
			Source: domain.CashSource(c.source),
			Note:   c.note,
		})
		if err != nil {
			return err
		}
		acc, err := l.Services.Ledger.GetCashAccount(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "%s %s, balance %s\n",
			entry.Source, utils.FormatSignedMoney(entry.Amount, c.app.Currency), utils.FormatMoney(acc.Balance, c.app.Currency))
		return nil
	})
}

// reconcileCmd records a physical cash count.
type reconcileCmd struct {
	app    *App
	actual decimalFlag
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "record the counted cash for today" }
func (*reconcileCmd) Usage() string {
	return `cashkeeper reconcile -actual <amount>

  Compares the counted cash with the balance and books the difference as an adjustment.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.actual, "actual", "Physically counted cash")
}

func (c *reconcileCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.actual.value == nil {
		fmt.Fprintln(c.app.Err, "Error: -actual is required")
		return subcommands.ExitUsageError
	}
	return c.app.run(ctx, func(ctx context.Context, l *bootstrap.Ledger) error {
		r, err := l.Services.Ledger.Reconcile(ctx, dto.ReconcileRequest{ActualAmount: c.actual.value})
		if err != nil {
			return err
		}
		cur := c.app.Currency
		fmt.Fprintf(c.app.Out, "%s expected %s, counted %s, difference %s\n",
			r.Date, utils.FormatMoney(r.Expected, cur), utils.FormatMoney(r.Actual, cur), utils.FormatSignedMoney(r.Difference, cur))
		if r.Adjustment == nil {
			fmt.Fprintln(c.app.Out, "Cash is balanced")
		}
		return nil
	})
}

// balanceCmd prints the cash balance and today's snapshot.
type balanceCmd struct {
	app *App
}

func (*balanceCmd) Name() string             { return "balance" }
func (*balanceCmd) Synopsis() string         { return "show the cash balance" }
func (*balanceCmd) Usage() string            { return "cashkeeper balance\n" }
func (c *balanceCmd) SetFlags(*flag.FlagSet) {}

func (c *balanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, l *bootstrap.Ledger) error {
		acc, err := l.Services.Ledger.GetCashAccount(ctx)
		if err != nil {
			return err
		}
		today, err := l.Services.Ledger.GetSnapshot(ctx, l.Services.Ledger.Today())
		if err != nil {
			return err
		}
		fmt.Fprintf(c.app.Out, "Cash balance: %s\n", utils.FormatMoney(acc.Balance, c.app.Currency))
		fmt.Fprintf(c.app.Out, "Today (%s): expected %s", today.Date, utils.FormatMoney(today.ExpectedBalance, c.app.Currency))
		if today.IsReconciled() {
			fmt.Fprintf(c.app.Out, ", counted %s", utils.FormatMoney(*today.ActualBalance, c.app.Currency))
		}
		fmt.Fprintln(c.app.Out)
		return nil
	})
}

// historyCmd lists transactions newest first.
type historyCmd struct {
	app   *App
	month string
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list transactions, newest first" }
func (*historyCmd) Usage() string {
	return `cashkeeper history [-month YYYY-MM] [-n <count>]
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Only list transactions of this month (YYYY-MM)")
	f.IntVar(&c.limit, "n", 20, "Number of transactions to list")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, l *bootstrap.Ledger) error {
		resp, err := l.Services.Ledger.ListTransactions(ctx, dto.ListTransactionsParams{Month: c.month, Limit: c.limit})
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(c.app.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tTYPE\tCATEGORY\tMETHOD\tAMOUNT\tNOTE")
		for _, t := range resp.Transactions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				t.Timestamp.Format("2006-01-02 15:04"), t.Type, t.Category, t.PaymentMethod, utils.FormatMoney(t.Amount, c.app.Currency), t.Note)
		}
		return w.Flush()
	})
}

// snapshotsCmd lists the daily snapshots.
type snapshotsCmd struct {
	app  *App
	days int
}

func (*snapshotsCmd) Name() string     { return "snapshots" }
func (*snapshotsCmd) Synopsis() string { return "list daily cash snapshots" }
func (*snapshotsCmd) Usage() string {
	return `cashkeeper snapshots [-days <n>]
`
}

func (c *snapshotsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 0, "Number of days to list (0 uses the configured window)")
}

func (c *snapshotsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, l *bootstrap.Ledger) error {
		snaps, err := l.Services.Ledger.ListSnapshots(ctx, c.days)
		if err != nil {
			return err
		}
		cur := c.app.Currency
		w := tabwriter.NewWriter(c.app.Out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tEXPECTED\tCOUNTED\tDIFFERENCE")
		for _, s := range snaps {
			counted, diff := "-", "-"
			if s.IsReconciled() {
				counted = utils.FormatMoney(*s.ActualBalance, cur)
			}
			if s.Difference != nil {
				diff = utils.FormatSignedMoney(*s.Difference, cur)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Date, utils.FormatMoney(s.ExpectedBalance, cur), counted, diff)
		}
		return w.Flush()
	})
}

// summaryCmd prints the monthly summary.
type summaryCmd struct {
	app   *App
	month string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "summarize income and expenses of a month" }
func (*summaryCmd) Usage() string {
	return `cashkeeper summary [-month YYYY-MM]
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month to summarize (YYYY-MM), defaults to the current month")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.app.run(ctx, func(ctx context.Context, l *bootstrap.Ledger) error {
		s, err := l.Services.Reporting.MonthlySummary(ctx, c.month)
		if err != nil {
			return err
		}
		cur := c.app.Currency
		fmt.Fprintf(c.app.Out, "Summary for %s (%d transactions)\n", s.Month, s.TransactionCount)
		fmt.Fprintf(c.app.Out, "  Income:   %s\n", utils.FormatMoney(s.TotalIncome, cur))
		fmt.Fprintf(c.app.Out, "  Expenses: %s\n", utils.FormatMoney(s.TotalExpense, cur))
		fmt.Fprintf(c.app.Out, "  Net:      %s (cash %s, non-cash %s)\n",
			utils.FormatSignedMoney(s.NetFlow, cur), utils.FormatSignedMoney(s.CashNet, cur), utils.FormatSignedMoney(s.NonCashNet, cur))
		for _, cat := range s.ExpenseByCat {
			fmt.Fprintf(c.app.Out, "  - %s: %s\n", cat.Category, utils.FormatMoney(cat.Amount, cur))
		}
		return nil
	})
}
