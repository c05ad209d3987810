package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"
	"github.com/nadhif/uangku"
	"github.com/nadhif/uangku/renderer"
)

// accountsCmd lists every account with its balance.
type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and their balances" }
func (*accountsCmd) Usage() string {
	return `ukt accounts

  Lists every account with its derived balance and the total across accounts.
`
}
func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Accounts(slices.Collect(ledger.Accounts())))
	return subcommands.ExitSuccess
}

// addAccountCmd holds the flags for the 'add-account' subcommand.
type addAccountCmd struct {
	name     string
	kind     string
	initial  string
	currency string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create an account" }
func (*addAccountCmd) Usage() string {
	return `ukt add-account -name <name> [-type <cash|bank|e-wallet>] [-initial <amount>]

  Creates an account. A non-zero initial amount records the single
  opening-balance entry (category "Saldo Awal"); it may be negative.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name.")
	f.StringVar(&c.kind, "type", "cash", "Account type: cash, bank or e-wallet.")
	f.StringVar(&c.initial, "initial", "0", "Opening balance. May be negative.")
	f.StringVar(&c.currency, "cur", "", "Currency code. Defaults to IDR.")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := uangku.ParseAccountType(c.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	initial, err := uangku.ParseMoney(c.initial, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing initial amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	account, err := ledger.AddAccount(c.name, kind, initial)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("account created", "name", account.Name, "id", account.ID, "balance", account.Balance)
	return subcommands.ExitSuccess
}

// updateAccountCmd holds the flags for the 'update-account' subcommand.
type updateAccountCmd struct {
	id       string
	name     string
	kind     string
	initial  string
	currency string
}

func (*updateAccountCmd) Name() string     { return "update-account" }
func (*updateAccountCmd) Synopsis() string { return "rename, retype or reset an account" }
func (*updateAccountCmd) Usage() string {
	return `ukt update-account -id <id> [-name <name>] [-type <type>] [-initial <amount>]

  Updates an account. Omitted flags keep the current values. Setting -initial
  rewrites the single opening-balance entry; setting it to 0 removes it.
`
}

func (c *updateAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account ID.")
	f.StringVar(&c.name, "name", "", "New account name. Keeps the current one when omitted.")
	f.StringVar(&c.kind, "type", "", "New account type. Keeps the current one when omitted.")
	f.StringVar(&c.initial, "initial", "", "New opening balance. Keeps the current one when omitted.")
	f.StringVar(&c.currency, "cur", "", "Currency code. Defaults to IDR.")
}

func (c *updateAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	account := ledger.Account(c.id)
	if account == nil {
		fmt.Fprintf(os.Stderr, "Error: account %q not found\n", c.id)
		return subcommands.ExitFailure
	}

	name := c.name
	if name == "" {
		name = account.Name
	}
	kind := account.Type
	if c.kind != "" {
		if kind, err = uangku.ParseAccountType(c.kind); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	initial := openingAmount(ledger, c.id)
	if c.initial != "" {
		if initial, err = uangku.ParseMoney(c.initial, c.currency); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing initial amount: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	account2, err := ledger.UpdateAccount(c.id, name, kind, initial)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("account updated", "name", account2.Name, "balance", account2.Balance)
	return subcommands.ExitSuccess
}

// openingAmount returns the account's current opening-balance amount, zero
// when it has none.
func openingAmount(l *uangku.Ledger, accountID string) uangku.Money {
	for _, tx := range l.Transactions(uangku.ByCategory(uangku.CategoryOpeningBalance)) {
		if tx.AccountID == accountID {
			return tx.Amount
		}
	}
	return uangku.Money{}
}

// deleteAccountCmd holds the flags for the 'delete-account' subcommand.
type deleteAccountCmd struct {
	id string
}

func (*deleteAccountCmd) Name() string     { return "delete-account" }
func (*deleteAccountCmd) Synopsis() string { return "delete an unused account" }
func (*deleteAccountCmd) Usage() string {
	return `ukt delete-account -id <id>

  Deletes an account. Rejected while any transaction other than its opening
  balance touches it, or while an investment is funded from it.
`
}

func (c *deleteAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account ID.")
}

func (c *deleteAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.DeleteAccount(c.id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("account deleted", "id", c.id)
	return subcommands.ExitSuccess
}
