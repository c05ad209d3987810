package uangku

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ReceivableStatus is the lifecycle state of a receivable.
type ReceivableStatus string

// Receivable statuses. Paid is terminal: there is no way back to unpaid.
const (
	Unpaid ReceivableStatus = "unpaid"
	Paid   ReceivableStatus = "paid"
)

// ParseReceivableStatus parses a string into a ReceivableStatus.
func ParseReceivableStatus(s string) (ReceivableStatus, error) {
	switch ReceivableStatus(s) {
	case Unpaid, Paid:
		return ReceivableStatus(s), nil
	default:
		return "", fmt.Errorf("unknown receivable status: %q", s)
	}
}

// Receivable is money lent out to a debtor, expected back by a due date.
type Receivable struct {
	ID         string
	DebtorName string
	Amount     Money
	DueDate    Date
	AccountID  string // account the funds left from, and default repayment target
	Status     ReceivableStatus
}

// MarshalJSON implements the json.Marshaler interface with a stable key order.
func (r Receivable) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("debtorName", r.DebtorName)
	w.Append("amount", r.Amount.Decimal())
	w.Optional("currency", r.Amount.Currency())
	w.Append("dueDate", r.DueDate)
	w.Append("accountId", r.AccountID)
	w.Append("status", r.Status)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *Receivable) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID         string           `json:"id"`
		DebtorName string           `json:"debtorName"`
		Amount     decimal.Decimal  `json:"amount"`
		Currency   string           `json:"currency,omitempty"`
		DueDate    Date             `json:"dueDate"`
		AccountID  string           `json:"accountId"`
		Status     ReceivableStatus `json:"status"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*r = Receivable{
		ID:         temp.ID,
		DebtorName: temp.DebtorName,
		Amount:     M(temp.Amount, temp.Currency),
		DueDate:    temp.DueDate,
		AccountID:  temp.AccountID,
		Status:     temp.Status,
	}
	if r.Status == "" {
		r.Status = Unpaid
	}
	return nil
}
