package uangku

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Investment is capital placed on a platform, funded from an account.
//
// InitialValue is cash that left the funding account; it owns exactly one
// linked capital-outflow transaction created with the record. CurrentValue is
// mark-to-market and never touches the cash ledger.
type Investment struct {
	ID           string
	Name         string
	Date         Date
	AccountID    string // funding account
	PlatformID   string
	InitialValue Money
	CurrentValue Money
}

// Gain returns the unrealized difference between current and initial value.
func (i Investment) Gain() Money {
	return i.CurrentValue.Sub(i.InitialValue)
}

// MarshalJSON implements the json.Marshaler interface with a stable key order.
func (i Investment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", i.ID)
	w.Append("name", i.Name)
	w.Append("date", i.Date)
	w.Append("accountId", i.AccountID)
	w.Append("platformId", i.PlatformID)
	w.Append("initialValue", i.InitialValue.Decimal())
	w.Append("currentValue", i.CurrentValue.Decimal())
	w.Optional("currency", i.InitialValue.Currency())
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *Investment) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		Date         Date            `json:"date"`
		AccountID    string          `json:"accountId"`
		PlatformID   string          `json:"platformId"`
		InitialValue decimal.Decimal `json:"initialValue"`
		CurrentValue decimal.Decimal `json:"currentValue"`
		Currency     string          `json:"currency,omitempty"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*i = Investment{
		ID:           temp.ID,
		Name:         temp.Name,
		Date:         temp.Date,
		AccountID:    temp.AccountID,
		PlatformID:   temp.PlatformID,
		InitialValue: M(temp.InitialValue, temp.Currency),
		CurrentValue: M(temp.CurrentValue, temp.Currency),
	}
	return nil
}
