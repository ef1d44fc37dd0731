package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

var accountCommands = []subcommands.Command{
	&accountsCmd{},
	&balanceCmd{},
	&historyCmd{},
	&netWorthCmd{},
}

type accountsCmd struct {
	all bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list regular accounts with their balances" }
func (*accountsCmd) Usage() string {
	return `fintrack accounts [-all]

  Lists regular accounts with their current balance in their own currency
  and in the base currency.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "include inactive accounts")
}

func (c *accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(l *ledger.Ledger) error {
		accounts, err := l.Accounts.List(ctx, storage.AccountFilter{Type: models.AccountRegular, IncludeInactive: c.all})
		if err != nil {
			return err
		}
		tw := newTable(os.Stdout)
		fmt.Fprintln(tw, "NAME\tBALANCE\tIN BASE\tACTIVE\tID")
		for _, a := range accounts {
			b, err := l.Accounts.Balance(ctx, a.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", a.Name, calculator.Format(b.Balance, b.Currency), inBase(b), a.IsActive, a.ID)
		}
		return tw.Flush()
	})
}

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show the balance of one account" }
func (*balanceCmd) Usage() string {
	return `fintrack balance <name|id>

  Replays the account's transactions over its initial balance.
`
}
func (*balanceCmd) SetFlags(*flag.FlagSet) {}

func (c *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(func(l *ledger.Ledger) error {
		account, err := findAccount(ctx, l, f.Arg(0))
		if err != nil {
			return err
		}
		b, err := l.Accounts.Balance(ctx, account.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s (%s in base)\n", account.Name, calculator.Format(b.Balance, b.Currency), inBase(b))
		return nil
	})
}

func inBase(b *ledger.AccountBalance) string {
	if b.Base == nil {
		return "-"
	}
	return calculator.Format(b.BalanceInBase, *b.Base)
}

type historyCmd struct {
	from string
	to   string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "print daily balances in the base currency" }
func (*historyCmd) Usage() string {
	return `fintrack history [-from <date>] [-to <date>] [account ...]

  Prints one row per day with each account's balance and the total, in the
  base currency. Without accounts every active regular account is shown.
  Dates are YYYY-MM-DD; the default range is the last 30 days.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "first day (default 29 days before -to)")
	f.StringVar(&c.to, "to", "", "last day (default today)")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	end := calculator.Day(time.Now())
	if c.to != "" {
		t, err := time.Parse(calculator.DateFormat, c.to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
		end = t
	}
	start := end.AddDate(0, 0, -29)
	if c.from != "" {
		t, err := time.Parse(calculator.DateFormat, c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
		start = t
	}

	return run(func(l *ledger.Ledger) error {
		var ids []string
		for _, ref := range f.Args() {
			account, err := findAccount(ctx, l, ref)
			if err != nil {
				return err
			}
			ids = append(ids, account.ID)
		}

		history, err := l.Accounts.BalanceHistory(ctx, ids, start, end)
		if err != nil {
			return err
		}

		tw := newTable(os.Stdout)
		header := []string{"DATE"}
		for _, s := range history.Series {
			header = append(header, s.Name)
		}
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for i, date := range history.Dates {
			row := []string{date}
			for _, s := range history.Series {
				row = append(row, fmt.Sprintf("%s%.2f", history.Currency, s.Data[i]))
			}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	})
}

type netWorthCmd struct{}

func (*netWorthCmd) Name() string     { return "networth" }
func (*netWorthCmd) Synopsis() string { return "sum accounts and open debts in the base currency" }
func (*netWorthCmd) Usage() string {
	return `fintrack networth

  Prints the total of active regular accounts, the impact of open debts and
  their sum, in the base currency.
`
}
func (*netWorthCmd) SetFlags(*flag.FlagSet) {}

func (*netWorthCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(l *ledger.Ledger) error {
		worth, err := l.Accounts.NetWorth(ctx)
		if err != nil {
			return err
		}
		if worth.Base == nil {
			fmt.Println("No base currency configured")
			return nil
		}
		tw := newTable(os.Stdout)
		fmt.Fprintf(tw, "Accounts\t%s\n", calculator.Format(worth.AccountsTotal, *worth.Base))
		fmt.Fprintf(tw, "Debts\t%s\n", calculator.Format(worth.DebtsImpact, *worth.Base))
		fmt.Fprintf(tw, "Net worth\t%s\n", calculator.Format(worth.Total, *worth.Base))
		return tw.Flush()
	})
}
