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

type receivablesCmd struct{}

func (*receivablesCmd) Name() string     { return "receivables" }
func (*receivablesCmd) Synopsis() string { return "list money lent out" }
func (*receivablesCmd) Usage() string {
	return `ukt receivables

  Lists every receivable with its amount, due date and status.
`
}
func (*receivablesCmd) SetFlags(f *flag.FlagSet) {}

func (c *receivablesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Receivables(slices.Collect(ledger.Receivables())))
	return subcommands.ExitSuccess
}

// addReceivableCmd holds the flags for the 'add-receivable' subcommand.
type addReceivableCmd struct {
	debtor   string
	amount   string
	currency string
	due      string
	account  string
	outflow  bool
}

func (*addReceivableCmd) Name() string     { return "add-receivable" }
func (*addReceivableCmd) Synopsis() string { return "record money lent to someone" }
func (*addReceivableCmd) Usage() string {
	return `ukt add-receivable -debtor <name> -amount <amount> -due <date> -a <account> [-outflow]

  Records a receivable against the account the money left from. With -outflow
  the lent amount also leaves that account as a linked expense (category
  "Piutang").
`
}

func (c *addReceivableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.debtor, "debtor", "", "Who owes the money.")
	f.StringVar(&c.amount, "amount", "", "Amount lent, a positive decimal.")
	f.StringVar(&c.currency, "cur", "", "Currency code. Defaults to IDR.")
	f.StringVar(&c.due, "due", "", "Due date (YYYY-MM-DD).")
	f.StringVar(&c.account, "a", "", "Account the money left from (name or ID).")
	f.BoolVar(&c.outflow, "outflow", false, "Also record the funds-out expense against the account.")
}

func (c *addReceivableCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := uangku.ParseMoney(c.amount, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	due, err := uangku.ParseDate(c.due)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing due date: %v\n", err)
		return subcommands.ExitUsageError
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

	receivable, err := ledger.AddReceivable(c.debtor, amount, due, account.ID, c.outflow)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("receivable created", "debtor", receivable.DebtorName, "id", receivable.ID, "due", receivable.DueDate)
	return subcommands.ExitSuccess
}

// updateReceivableCmd holds the flags for the 'update-receivable' subcommand.
type updateReceivableCmd struct {
	id     string
	debtor string
	due    string
}

func (*updateReceivableCmd) Name() string     { return "update-receivable" }
func (*updateReceivableCmd) Synopsis() string { return "edit a receivable's debtor or due date" }
func (*updateReceivableCmd) Usage() string {
	return `ukt update-receivable -id <id> [-debtor <name>] [-due <date>]

  Edits descriptive fields of a receivable. The amount and status are not
  editable here; use mark-paid to settle it.
`
}

func (c *updateReceivableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Receivable ID.")
	f.StringVar(&c.debtor, "debtor", "", "New debtor name. Keeps the current one when omitted.")
	f.StringVar(&c.due, "due", "", "New due date. Keeps the current one when omitted.")
}

func (c *updateReceivableCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	receivable := ledger.Receivable(c.id)
	if receivable == nil {
		fmt.Fprintf(os.Stderr, "Error: receivable %q not found\n", c.id)
		return subcommands.ExitFailure
	}

	debtor := c.debtor
	if debtor == "" {
		debtor = receivable.DebtorName
	}
	due := receivable.DueDate
	if c.due != "" {
		if due, err = uangku.ParseDate(c.due); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing due date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	receivable2, err := ledger.UpdateReceivable(c.id, debtor, due)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("receivable updated", "debtor", receivable2.DebtorName, "due", receivable2.DueDate)
	return subcommands.ExitSuccess
}

// markPaidCmd holds the flags for the 'mark-paid' subcommand.
type markPaidCmd struct {
	id      string
	account string
}

func (*markPaidCmd) Name() string     { return "mark-paid" }
func (*markPaidCmd) Synopsis() string { return "settle a receivable" }
func (*markPaidCmd) Usage() string {
	return `ukt mark-paid -id <id> [-a <account>]

  Marks a receivable as paid and records the repayment as income (category
  "Piutang") into the given account, defaulting to the account the money left
  from. Paid is final.
`
}

func (c *markPaidCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Receivable ID.")
	f.StringVar(&c.account, "a", "", "Account receiving the repayment (name or ID).")
}

func (c *markPaidCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var accountID string
	if c.account != "" {
		account, err := resolveAccount(ledger, c.account)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		accountID = account.ID
	}

	receivable, err := ledger.MarkReceivablePaid(c.id, accountID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("receivable paid", "debtor", receivable.DebtorName, "amount", receivable.Amount)
	return subcommands.ExitSuccess
}

// deleteReceivableCmd holds the flags for the 'delete-receivable' subcommand.
type deleteReceivableCmd struct {
	id string
}

func (*deleteReceivableCmd) Name() string     { return "delete-receivable" }
func (*deleteReceivableCmd) Synopsis() string { return "delete a receivable and its linked entries" }
func (*deleteReceivableCmd) Usage() string {
	return `ukt delete-receivable -id <id>

  Removes a receivable together with every transaction linked to it, and
  rebuilds balances from the remaining log.
`
}

func (c *deleteReceivableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Receivable ID.")
}

func (c *deleteReceivableCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.DeleteReceivable(c.id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("receivable deleted", "id", c.id)
	return subcommands.ExitSuccess
}
