package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/nadhif/uangku"
	"github.com/nadhif/uangku/renderer"
)

// resolveAccount finds an account by ID or by case-insensitive name.
func resolveAccount(l *uangku.Ledger, s string) (*uangku.Account, error) {
	if s == "" {
		return nil, fmt.Errorf("account is missing")
	}
	if a := l.Account(s); a != nil {
		return a, nil
	}
	var found *uangku.Account
	for a := range l.Accounts() {
		if strings.EqualFold(a.Name, s) {
			if found != nil {
				return nil, fmt.Errorf("account name %q is ambiguous, use the ID", s)
			}
			found = &a
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no account %q", s)
	}
	return found, nil
}

// txFlags holds the flags shared by the income and expense subcommands.
type txFlags struct {
	date     string
	account  string
	amount   string
	currency string
	category string
	desc     string
}

func (c *txFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", uangku.Today().String(), "Transaction date (YYYY-MM-DD).")
	f.StringVar(&c.account, "a", "", "Account name or ID.")
	f.StringVar(&c.amount, "amount", "", "Amount, a positive decimal.")
	f.StringVar(&c.currency, "cur", "", "Currency code. Defaults to IDR.")
	f.StringVar(&c.category, "cat", "", "Category label.")
	f.StringVar(&c.desc, "desc", "", "Free-form description.")
}

// parse resolves the shared flags against the ledger.
func (c *txFlags) parse(l *uangku.Ledger) (day uangku.Date, accountID string, amount uangku.Money, err error) {
	day, err = uangku.ParseDate(c.date)
	if err != nil {
		return day, "", amount, fmt.Errorf("invalid date: %w", err)
	}
	account, err := resolveAccount(l, c.account)
	if err != nil {
		return day, "", amount, err
	}
	amount, err = uangku.ParseMoney(c.amount, c.currency)
	if err != nil {
		return day, "", amount, fmt.Errorf("invalid amount: %w", err)
	}
	return day, account.ID, amount, nil
}

type incomeCmd struct{ txFlags }

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record money coming into an account" }
func (*incomeCmd) Usage() string {
	return `ukt income -a <account> -amount <amount> [-cat <category>] [-desc <text>] [-d <date>]

  Records an income transaction. The amount credits the account.
`
}
func (c *incomeCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return recordTransaction(func(l *uangku.Ledger) (uangku.Transaction, error) {
		day, accountID, amount, err := c.parse(l)
		if err != nil {
			return uangku.Transaction{}, err
		}
		return l.AddTransaction(uangku.NewIncome(day, accountID, amount, c.category, c.desc))
	})
}

type expenseCmd struct{ txFlags }

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record money leaving an account" }
func (*expenseCmd) Usage() string {
	return `ukt expense -a <account> -amount <amount> [-cat <category>] [-desc <text>] [-d <date>]

  Records an expense transaction. The amount debits the account.
`
}
func (c *expenseCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return recordTransaction(func(l *uangku.Ledger) (uangku.Transaction, error) {
		day, accountID, amount, err := c.parse(l)
		if err != nil {
			return uangku.Transaction{}, err
		}
		return l.AddTransaction(uangku.NewExpense(day, accountID, amount, c.category, c.desc))
	})
}

type transferCmd struct {
	date     string
	from     string
	to       string
	amount   string
	currency string
	desc     string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two accounts" }
func (*transferCmd) Usage() string {
	return `ukt transfer -from <account> -to <account> -amount <amount> [-desc <text>] [-d <date>]

  Records a transfer. One transaction debits the source and credits the
  destination atomically; the total across accounts is unchanged.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", uangku.Today().String(), "Transaction date (YYYY-MM-DD).")
	f.StringVar(&c.from, "from", "", "Source account name or ID.")
	f.StringVar(&c.to, "to", "", "Destination account name or ID.")
	f.StringVar(&c.amount, "amount", "", "Amount, a positive decimal.")
	f.StringVar(&c.currency, "cur", "", "Currency code. Defaults to IDR.")
	f.StringVar(&c.desc, "desc", "", "Free-form description.")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return recordTransaction(func(l *uangku.Ledger) (uangku.Transaction, error) {
		day, err := uangku.ParseDate(c.date)
		if err != nil {
			return uangku.Transaction{}, fmt.Errorf("invalid date: %w", err)
		}
		from, err := resolveAccount(l, c.from)
		if err != nil {
			return uangku.Transaction{}, err
		}
		to, err := resolveAccount(l, c.to)
		if err != nil {
			return uangku.Transaction{}, err
		}
		amount, err := uangku.ParseMoney(c.amount, c.currency)
		if err != nil {
			return uangku.Transaction{}, fmt.Errorf("invalid amount: %w", err)
		}
		return l.AddTransaction(uangku.NewTransfer(day, from.ID, to.ID, amount, c.desc))
	})
}

// recordTransaction runs the load, record, save cycle shared by the
// transaction subcommands.
func recordTransaction(record func(*uangku.Ledger) (uangku.Transaction, error)) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := record(ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(renderer.Transaction(tx))
	return subcommands.ExitSuccess
}

// txLogCmd lists the transaction log.
type txLogCmd struct {
	account  string
	category string
}

func (*txLogCmd) Name() string     { return "log" }
func (*txLogCmd) Synopsis() string { return "display the transaction log, newest first" }
func (*txLogCmd) Usage() string {
	return `ukt log [-a <account>] [-cat <category>]

  Displays the transaction log, newest first. Same-day entries keep their
  insertion order, latest on top.
`
}

func (c *txLogCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Only transactions touching this account (name or ID).")
	f.StringVar(&c.category, "cat", "", "Only transactions with this category.")
}

func (c *txLogCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	filter := uangku.AcceptAll
	if c.account != "" {
		account, err := resolveAccount(ledger, c.account)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		byAccount := uangku.ByAccount(account.ID)
		filter = byAccount
		if c.category != "" {
			byCategory := uangku.ByCategory(c.category)
			filter = func(tx uangku.Transaction) bool { return byAccount(tx) && byCategory(tx) }
		}
	} else if c.category != "" {
		filter = uangku.ByCategory(c.category)
	}

	var txs []uangku.Transaction
	for _, tx := range ledger.Transactions(filter) {
		txs = append(txs, tx)
	}
	accountName := func(id string) string {
		if a := ledger.Account(id); a != nil {
			return a.Name
		}
		return ""
	}
	printMarkdown(renderer.Transactions(txs, accountName))
	return subcommands.ExitSuccess
}
