package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/ledger"
)

var debtCommands = []subcommands.Command{
	&debtsCmd{},
	&reopenCmd{},
}

type debtsCmd struct{}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "list debts with their payoff progress" }
func (*debtsCmd) Usage() string {
	return `fintrack debts

  Lists every debt, active or not, with the amount paid, what remains and
  whether it is paid off.
`
}
func (*debtsCmd) SetFlags(*flag.FlagSet) {}

func (*debtsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(l *ledger.Ledger) error {
		debts, err := l.Debts.List(ctx)
		if err != nil {
			return err
		}
		tw := newTable(os.Stdout)
		fmt.Fprintln(tw, "NAME\tTYPE\tTARGET\tPAID\tREMAINING\tPROGRESS\tPAID OFF\tID")
		for _, s := range debts {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s%%\t%t\t%s\n",
				s.Account.Name,
				s.Account.Debt.DebtType,
				calculator.Format(s.Account.Debt.TargetAmount, s.Currency),
				calculator.Format(s.Paid, s.Currency),
				calculator.Format(s.Remaining, s.Currency),
				s.Progress.Shift(2).StringFixed(0),
				s.IsPaidOff(),
				s.Account.ID,
			)
		}
		return tw.Flush()
	})
}

type reopenCmd struct{}

func (*reopenCmd) Name() string     { return "reopen" }
func (*reopenCmd) Synopsis() string { return "clear the paid-off flag of a settled debt" }
func (*reopenCmd) Usage() string {
	return `fintrack reopen <name|id>

  Marks a paid-off debt as open again so further payments can be posted.
`
}
func (*reopenCmd) SetFlags(*flag.FlagSet) {}

func (c *reopenCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(func(l *ledger.Ledger) error {
		account, err := findAccount(ctx, l, f.Arg(0))
		if err != nil {
			return err
		}
		debt, err := l.Debts.Reopen(ctx, account.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Reopened %s\n", debt.Name)
		return nil
	})
}
