package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/ledger"
)

var currencyCommands = []subcommands.Command{
	&currenciesCmd{},
	&addCurrencyCmd{},
	&setBaseCmd{},
}

type currenciesCmd struct{}

func (*currenciesCmd) Name() string     { return "currencies" }
func (*currenciesCmd) Synopsis() string { return "list currencies and their rates against the base" }
func (*currenciesCmd) Usage() string {
	return `fintrack currencies

  Lists every currency ordered by code. The base currency is marked with *.
`
}
func (*currenciesCmd) SetFlags(*flag.FlagSet) {}

func (*currenciesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(l *ledger.Ledger) error {
		currencies, err := l.Currencies.List(ctx)
		if err != nil {
			return err
		}
		tw := newTable(os.Stdout)
		fmt.Fprintln(tw, "\tCODE\tSYMBOL\tDECIMALS\tRATE\tID")
		for _, c := range currencies {
			mark := ""
			if c.IsBase {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", mark, c.Code, c.Symbol, c.Decimals, c.Rate, c.ID)
		}
		return tw.Flush()
	})
}

type addCurrencyCmd struct {
	symbol   string
	decimals int
	rate     string
	base     bool
}

func (*addCurrencyCmd) Name() string     { return "add-currency" }
func (*addCurrencyCmd) Synopsis() string { return "register a currency" }
func (*addCurrencyCmd) Usage() string {
	return `fintrack add-currency [-symbol <s>] [-decimals <n>] [-rate <r>] [-base] <code>

  Registers a currency. Symbol and decimals default to the ISO 4217 values
  when the code is known. The rate is the value of one unit in the base
  currency; the first currency becomes the base.
`
}

func (c *addCurrencyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "display symbol")
	f.IntVar(&c.decimals, "decimals", -1, "display precision (default from the ISO code, else 2)")
	f.StringVar(&c.rate, "rate", "0", "value of one unit in the base currency")
	f.BoolVar(&c.base, "base", false, "make this the base currency (only when none exists)")
}

func (c *addCurrencyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing rate: %v\n", err)
		return subcommands.ExitUsageError
	}

	in := ledger.CreateCurrencyInput{Code: f.Arg(0), Symbol: c.symbol, Rate: rate, IsBase: c.base}
	if c.decimals >= 0 {
		d := int32(c.decimals)
		in.Decimals = &d
	}
	return run(func(l *ledger.Ledger) error {
		currency, err := l.Currencies.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s (%s) at rate %s, id %s\n", currency.Code, currency.Symbol, currency.Rate, currency.ID)
		return nil
	})
}

type setBaseCmd struct{}

func (*setBaseCmd) Name() string     { return "set-base" }
func (*setBaseCmd) Synopsis() string { return "make a currency the base and re-base every rate" }
func (*setBaseCmd) Usage() string {
	return `fintrack set-base <code|id>

  Promotes the currency to base. Every rate is divided by its old rate so
  conversions between any two currencies are unchanged.
`
}
func (*setBaseCmd) SetFlags(*flag.FlagSet) {}

func (c *setBaseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(func(l *ledger.Ledger) error {
		currency, err := findCurrency(ctx, l, f.Arg(0))
		if err != nil {
			return err
		}
		base, err := l.Currencies.SetBase(ctx, currency.ID)
		if err != nil {
			return err
		}
		fmt.Printf("Base currency is now %s\n", base.Code)
		return nil
	})
}
