package uangku

// Summary provides an at-a-glance overview of the ledger's state on a given
// date.
type Summary struct {
	Date Date

	// NetCash is the sum of all cached account balances.
	NetCash Money

	// Month-to-date cash flows. The synthetic opening-balance entries are not
	// flows and are left out; transfers are internal and cancel out.
	MonthIncome  Money
	MonthExpense Money

	// Investment figures.
	InvestedCapital Money // sum of initial values
	InvestmentValue Money // sum of mark-to-market current values
	InvestmentGain  Money // value minus capital

	// OutstandingReceivable is the total still expected from debtors.
	OutstandingReceivable Money
}

// NewSummary calculates the summary of the ledger's state on a given date.
func NewSummary(l *Ledger, on Date) *Summary {
	if on.IsZero() {
		on = l.today()
	}
	s := &Summary{Date: on}

	s.NetCash = l.TotalBalance()

	monthStart := on.StartOfMonth()
	for _, tx := range l.transactions {
		if tx.Date.Before(monthStart) || tx.Date.After(on) || tx.IsOpeningBalance() {
			continue
		}
		switch tx.Type {
		case Income:
			s.MonthIncome = s.MonthIncome.Add(tx.Amount)
		case Expense:
			s.MonthExpense = s.MonthExpense.Add(tx.Amount)
		}
	}

	for _, v := range l.investments {
		s.InvestedCapital = s.InvestedCapital.Add(v.InitialValue)
		s.InvestmentValue = s.InvestmentValue.Add(v.CurrentValue)
	}
	s.InvestmentGain = s.InvestmentValue.Sub(s.InvestedCapital)

	for _, r := range l.receivables {
		if r.Status == Unpaid {
			s.OutstandingReceivable = s.OutstandingReceivable.Add(r.Amount)
		}
	}
	return s
}
