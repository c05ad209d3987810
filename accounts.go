package uangku

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType is a typed string for the kind of account.
type AccountType string

// Account types. The set is advisory: the ledger does not branch on it.
const (
	AccountCash    AccountType = "cash"
	AccountBank    AccountType = "bank"
	AccountEWallet AccountType = "e-wallet"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountCash, AccountBank, AccountEWallet:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("unknown account type: %q", s)
	}
}

// Account is a place money sits. Balance is a derived cache: it always equals
// the fold of all transactions touching the account, opening balance included.
type Account struct {
	ID      string
	Name    string
	Type    AccountType
	Balance Money
}

// MarshalJSON implements the json.Marshaler interface with a stable key order.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("name", a.Name)
	w.Append("type", a.Type)
	w.Append("balance", a.Balance.Decimal())
	w.Optional("currency", a.Balance.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Account) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Type     AccountType     `json:"type"`
		Balance  decimal.Decimal `json:"balance"`
		Currency string          `json:"currency,omitempty"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*a = Account{
		ID:      temp.ID,
		Name:    temp.Name,
		Type:    temp.Type,
		Balance: M(temp.Balance, temp.Currency),
	}
	return nil
}

// Platform is a venue where investments are held (a broker, an app, a bank
// product). Referenced by investments; deletable only when unreferenced.
type Platform struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
