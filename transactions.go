package uangku

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// TxType is a typed string identifying the direction of a transaction.
type TxType string

// Transaction types.
const (
	Income   TxType = "income"
	Expense  TxType = "expense"
	Transfer TxType = "transfer"
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case Income, Expense, Transfer:
		return TxType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Source identifies what produced a transaction.
type Source string

// Transaction sources. Manual entries come from the user; the other two are
// system-generated and carry a foreign key back to their owning record.
const (
	SourceManual     Source = "manual"
	SourceInvestment Source = "investment"
	SourceReceivable Source = "receivable"
)

// Reserved category labels for system-generated transactions.
const (
	// CategoryOpeningBalance marks the synthetic opening-balance entry.
	// At most one per account, counted as income.
	CategoryOpeningBalance = "Saldo Awal"
	// CategoryInvestment marks the capital outflow created with an investment.
	CategoryInvestment = "Investasi"
	// CategoryInvestmentReturn marks the compensating inflow recorded when an
	// investment is deleted.
	CategoryInvestmentReturn = "Pengembalian Investasi"
	// CategoryReceivable marks both the funds-out entry of a new receivable
	// and the repayment recorded when it is marked paid.
	CategoryReceivable = "Piutang"
)

// Transaction is a single entry of the ledger's log.
//
// A transfer is a single record applied to both of its accounts: a debit on
// AccountID and a credit on ToAccountID.
type Transaction struct {
	ID          string
	Date        Date
	Type        TxType
	AccountID   string
	ToAccountID string // destination account, transfers only
	Amount      Money
	Category    string
	Description string
	Source      Source

	// Foreign keys back to the record that generated this entry.
	LinkedInvestmentID string
	LinkedReceivableID string
}

// NewIncome creates a manual income transaction.
func NewIncome(day Date, accountID string, amount Money, category, description string) Transaction {
	return Transaction{
		Date:        day,
		Type:        Income,
		AccountID:   accountID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Source:      SourceManual,
	}
}

// NewExpense creates a manual expense transaction.
func NewExpense(day Date, accountID string, amount Money, category, description string) Transaction {
	return Transaction{
		Date:        day,
		Type:        Expense,
		AccountID:   accountID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Source:      SourceManual,
	}
}

// NewTransfer creates a manual transfer transaction between two accounts.
func NewTransfer(day Date, accountID, toAccountID string, amount Money, description string) Transaction {
	return Transaction{
		Date:        day,
		Type:        Transfer,
		AccountID:   accountID,
		ToAccountID: toAccountID,
		Amount:      amount,
		Category:    "Transfer",
		Description: description,
		Source:      SourceManual,
	}
}

// IsOpeningBalance reports whether the transaction is a synthetic
// opening-balance entry.
func (t Transaction) IsOpeningBalance() bool {
	return t.Category == CategoryOpeningBalance
}

// Touches reports whether the transaction references the account as source or
// destination.
func (t Transaction) Touches(accountID string) bool {
	return t.AccountID == accountID || t.ToAccountID == accountID
}

func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Date == o.Date &&
		t.Type == o.Type &&
		t.AccountID == o.AccountID &&
		t.ToAccountID == o.ToAccountID &&
		t.Amount.Equal(o.Amount) &&
		t.Category == o.Category &&
		t.Description == o.Description &&
		t.Source == o.Source &&
		t.LinkedInvestmentID == o.LinkedInvestmentID &&
		t.LinkedReceivableID == o.LinkedReceivableID
}

// MarshalJSON implements the json.Marshaler interface with a stable key order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.Append("accountId", t.AccountID)
	w.Optional("toAccountId", t.ToAccountID)
	w.EmbedFrom(t.Amount)
	w.Append("category", t.Category)
	w.Optional("description", t.Description)
	w.Append("source", t.Source)
	w.Optional("linkedInvestmentId", t.LinkedInvestmentID)
	w.Optional("linkedReceivableId", t.LinkedReceivableID)
	return w.MarshalJSON()
}

// txRecord is a specialized struct for decoding json.
type txRecord struct {
	ID                 string          `json:"id"`
	Date               Date            `json:"date"`
	Type               TxType          `json:"type"`
	AccountID          string          `json:"accountId"`
	ToAccountID        string          `json:"toAccountId,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency,omitempty"`
	Category           string          `json:"category"`
	Description        string          `json:"description,omitempty"`
	Source             Source          `json:"source"`
	LinkedInvestmentID string          `json:"linkedInvestmentId,omitempty"`
	LinkedReceivableID string          `json:"linkedReceivableId,omitempty"`
}

// UnmarshalJSON implements the json.Unmarshaler interface. It handles the
// custom structure where amount and currency are separate fields.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp txRecord
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Transaction{
		ID:                 temp.ID,
		Date:               temp.Date,
		Type:               temp.Type,
		AccountID:          temp.AccountID,
		ToAccountID:        temp.ToAccountID,
		Amount:             M(temp.Amount, temp.Currency),
		Category:           temp.Category,
		Description:        temp.Description,
		Source:             temp.Source,
		LinkedInvestmentID: temp.LinkedInvestmentID,
		LinkedReceivableID: temp.LinkedReceivableID,
	}
	if t.Source == "" {
		t.Source = SourceManual
	}
	return nil
}
