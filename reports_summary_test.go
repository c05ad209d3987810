package uangku

import "testing"

func TestNewSummary(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	wallet := mustAccount(l, "Dompet", AccountCash, Rp(150_000))
	bank := mustAccount(l, "BCA", AccountBank, Rp(10_000_000))
	platform := mustPlatform(l, "Bibit")

	// May: outside the reporting month.
	if _, err := l.AddTransaction(NewIncome(MustParse("2025-05-28"), bank.ID, Rp(8_000_000), "Gaji", "")); err != nil {
		t.Fatal(err)
	}
	// June: in scope.
	if _, err := l.AddTransaction(NewIncome(MustParse("2025-06-02"), bank.ID, Rp(500_000), "Bonus", "")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(NewExpense(MustParse("2025-06-03"), wallet.ID, Rp(35_000), "Makan", "")); err != nil {
		t.Fatal(err)
	}
	// Transfers are internal and must not count as income or expense.
	if _, err := l.AddTransaction(NewTransfer(MustParse("2025-06-04"), bank.ID, wallet.ID, Rp(200_000), "")); err != nil {
		t.Fatal(err)
	}
	// After the reporting date.
	if _, err := l.AddTransaction(NewExpense(MustParse("2025-06-20"), wallet.ID, Rp(99_000), "Makan", "")); err != nil {
		t.Fatal(err)
	}

	v, err := l.AddInvestment("RDPU", MustParse("2025-06-05"), bank.ID, platform.ID, Rp(2_000_000), Money{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.UpdateInvestmentValue(v.ID, Rp(2_150_000)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddReceivable("Budi", Rp(300_000), MustParse("2025-07-01"), wallet.ID, false); err != nil {
		t.Fatal(err)
	}
	paid, err := l.AddReceivable("Siti", Rp(100_000), MustParse("2025-07-01"), wallet.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.MarkReceivablePaid(paid.ID, wallet.ID); err != nil {
		t.Fatal(err)
	}

	s := NewSummary(l, MustParse("2025-06-15"))

	if got, want := s.NetCash, l.TotalBalance(); !got.Equal(want) {
		t.Errorf("NetCash = %s, want %s", got, want)
	}
	// 500000 bonus plus the 100000 repayment recorded on the clock's date.
	if got, want := s.MonthIncome, Rp(600_000); !got.Equal(want) {
		t.Errorf("MonthIncome = %s, want %s", got, want)
	}
	// 35000 meal plus the 2000000 investment outflow; the 99000 entry is
	// after the reporting date.
	if got, want := s.MonthExpense, Rp(2_035_000); !got.Equal(want) {
		t.Errorf("MonthExpense = %s, want %s", got, want)
	}
	if got, want := s.InvestedCapital, Rp(2_000_000); !got.Equal(want) {
		t.Errorf("InvestedCapital = %s, want %s", got, want)
	}
	if got, want := s.InvestmentValue, Rp(2_150_000); !got.Equal(want) {
		t.Errorf("InvestmentValue = %s, want %s", got, want)
	}
	if got, want := s.InvestmentGain, Rp(150_000); !got.Equal(want) {
		t.Errorf("InvestmentGain = %s, want %s", got, want)
	}
	// Only Budi's receivable is still outstanding.
	if got, want := s.OutstandingReceivable, Rp(300_000); !got.Equal(want) {
		t.Errorf("OutstandingReceivable = %s, want %s", got, want)
	}
}

func TestNewSummary_DefaultsToToday(t *testing.T) {
	today := MustParse("2025-06-15")
	l := newTestLedger(today)
	s := NewSummary(l, Date{})
	if s.Date != today {
		t.Errorf("Date = %s, want %s", s.Date, today)
	}
}
