package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/subcommands"
	"github.com/nadhif/uangku"
	"github.com/nadhif/uangku/renderer"
)

// resolvePlatform finds a platform by ID or by case-insensitive name.
func resolvePlatform(l *uangku.Ledger, s string) (*uangku.Platform, error) {
	if s == "" {
		return nil, fmt.Errorf("platform is missing")
	}
	if p := l.Platform(s); p != nil {
		return p, nil
	}
	var found *uangku.Platform
	for p := range l.Platforms() {
		if strings.EqualFold(p.Name, s) {
			if found != nil {
				return nil, fmt.Errorf("platform name %q is ambiguous, use the ID", s)
			}
			found = &p
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no platform %q", s)
	}
	return found, nil
}

type investmentsCmd struct{}

func (*investmentsCmd) Name() string     { return "investments" }
func (*investmentsCmd) Synopsis() string { return "list investments with their gain" }
func (*investmentsCmd) Usage() string {
	return `ukt investments

  Lists every investment with its initial and current value and the gain.
`
}
func (*investmentsCmd) SetFlags(f *flag.FlagSet) {}

func (c *investmentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	platformName := func(id string) string {
		if p := ledger.Platform(id); p != nil {
			return p.Name
		}
		return ""
	}
	printMarkdown(renderer.Investments(slices.Collect(ledger.Investments()), platformName))
	return subcommands.ExitSuccess
}

// addInvestmentCmd holds the flags for the 'add-investment' subcommand.
type addInvestmentCmd struct {
	name     string
	date     string
	account  string
	platform string
	initial  string
	current  string
	currency string
}

func (*addInvestmentCmd) Name() string     { return "add-investment" }
func (*addInvestmentCmd) Synopsis() string { return "record capital placed on a platform" }
func (*addInvestmentCmd) Usage() string {
	return `ukt add-investment -name <name> -a <account> -p <platform> -initial <amount> [-current <amount>] [-d <date>]

  Creates an investment funded from an account. The initial value leaves the
  account as a linked expense (category "Investasi"). The current value
  defaults to the initial value.
`
}

func (c *addInvestmentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Investment name.")
	f.StringVar(&c.date, "d", uangku.Today().String(), "Purchase date (YYYY-MM-DD).")
	f.StringVar(&c.account, "a", "", "Funding account name or ID.")
	f.StringVar(&c.platform, "p", "", "Platform name or ID.")
	f.StringVar(&c.initial, "initial", "", "Initial value, a positive decimal.")
	f.StringVar(&c.current, "current", "", "Current value. Defaults to the initial value.")
	f.StringVar(&c.currency, "cur", "", "Currency code. Defaults to IDR.")
}

func (c *addInvestmentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := uangku.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	initial, err := uangku.ParseMoney(c.initial, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing initial value: %v\n", err)
		return subcommands.ExitUsageError
	}
	current := uangku.Money{}
	if c.current != "" {
		if current, err = uangku.ParseMoney(c.current, c.currency); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing current value: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	account, err := resolveAccount(ledger, c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	platform, err := resolvePlatform(ledger, c.platform)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	investment, err := ledger.AddInvestment(c.name, day, account.ID, platform.ID, initial, current)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("investment created", "name", investment.Name, "id", investment.ID, "initial", investment.InitialValue)
	return subcommands.ExitSuccess
}

// updateInvestmentCmd holds the flags for the 'update-investment' subcommand.
type updateInvestmentCmd struct {
	id       string
	name     string
	date     string
	platform string
}

func (*updateInvestmentCmd) Name() string     { return "update-investment" }
func (*updateInvestmentCmd) Synopsis() string { return "edit an investment's name, date or platform" }
func (*updateInvestmentCmd) Usage() string {
	return `ukt update-investment -id <id> [-name <name>] [-d <date>] [-p <platform>]

  Edits descriptive fields of an investment. Values and the funding account
  are not editable here; use update-value for the current value.
`
}

func (c *updateInvestmentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Investment ID.")
	f.StringVar(&c.name, "name", "", "New name. Keeps the current one when omitted.")
	f.StringVar(&c.date, "d", "", "New purchase date. Keeps the current one when omitted.")
	f.StringVar(&c.platform, "p", "", "New platform name or ID. Keeps the current one when omitted.")
}

func (c *updateInvestmentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	investment := ledger.Investment(c.id)
	if investment == nil {
		fmt.Fprintf(os.Stderr, "Error: investment %q not found\n", c.id)
		return subcommands.ExitFailure
	}

	name := c.name
	if name == "" {
		name = investment.Name
	}
	day := investment.Date
	if c.date != "" {
		if day, err = uangku.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	platformID := investment.PlatformID
	if c.platform != "" {
		platform, err := resolvePlatform(ledger, c.platform)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		platformID = platform.ID
	}

	investment2, err := ledger.UpdateInvestment(c.id, name, day, platformID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("investment updated", "name", investment2.Name)
	return subcommands.ExitSuccess
}

// updateValueCmd holds the flags for the 'update-value' subcommand.
type updateValueCmd struct {
	id       string
	current  string
	currency string
}

func (*updateValueCmd) Name() string     { return "update-value" }
func (*updateValueCmd) Synopsis() string { return "mark an investment to market" }
func (*updateValueCmd) Usage() string {
	return `ukt update-value -id <id> -current <amount>

  Sets an investment's current value. Never touches the cash ledger.
`
}

func (c *updateValueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Investment ID.")
	f.StringVar(&c.current, "current", "", "Current value, a non-negative decimal.")
	f.StringVar(&c.currency, "cur", "", "Currency code. Defaults to IDR.")
}

func (c *updateValueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	current, err := uangku.ParseMoney(c.current, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing current value: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	investment, err := ledger.UpdateInvestmentValue(c.id, current)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("investment valued", "name", investment.Name, "current", investment.CurrentValue, "gain", investment.Gain().SignedString())
	return subcommands.ExitSuccess
}

// deleteInvestmentCmd holds the flags for the 'delete-investment' subcommand.
type deleteInvestmentCmd struct {
	id string
}

func (*deleteInvestmentCmd) Name() string     { return "delete-investment" }
func (*deleteInvestmentCmd) Synopsis() string { return "liquidate an investment back to its account" }
func (*deleteInvestmentCmd) Usage() string {
	return `ukt delete-investment -id <id>

  Removes an investment and records its capital flowing back into the funding
  account (category "Pengembalian Investasi"). The original outflow stays in
  the history, so the round trip nets to zero.
`
}

func (c *deleteInvestmentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Investment ID.")
}

func (c *deleteInvestmentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.DeleteInvestment(c.id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("investment deleted", "id", c.id)
	return subcommands.ExitSuccess
}
