package uangku

import (
	"errors"
	"testing"
)

func TestAddAccount_OpeningBalance(t *testing.T) {
	testCases := []struct {
		name        string
		initial     Money
		wantEntries int
	}{
		{name: "zero initial records nothing", initial: Rp(0), wantEntries: 0},
		{name: "positive initial records one entry", initial: Rp(500_000), wantEntries: 1},
		{name: "negative initial is allowed", initial: Rp(-250_000), wantEntries: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(MustParse("2025-06-01"))
			account, err := l.AddAccount("Dompet", AccountCash, tc.initial)
			if err != nil {
				t.Fatalf("AddAccount() error = %v", err)
			}

			entries := 0
			for _, tx := range l.Transactions(ByCategory(CategoryOpeningBalance)) {
				entries++
				if tx.Type != Income {
					t.Errorf("opening entry type = %v, want %v", tx.Type, Income)
				}
				if tx.AccountID != account.ID {
					t.Errorf("opening entry account = %q, want %q", tx.AccountID, account.ID)
				}
				if !tx.Amount.Equal(tc.initial) {
					t.Errorf("opening entry amount = %s, want %s", tx.Amount, tc.initial)
				}
			}
			if entries != tc.wantEntries {
				t.Fatalf("opening entries = %d, want %d", entries, tc.wantEntries)
			}

			got := l.Account(account.ID).Balance
			if tc.wantEntries == 0 {
				if !got.IsZero() {
					t.Errorf("balance = %s, want zero", got)
				}
			} else if !got.Equal(tc.initial) {
				t.Errorf("balance = %s, want %s", got, tc.initial)
			}
		})
	}
}

func TestAddAccount_RejectsBlankName(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	if _, err := l.AddAccount("  ", AccountBank, Rp(0)); err == nil {
		t.Fatal("AddAccount() with blank name, want error")
	}
	if n := len(l.accounts); n != 0 {
		t.Errorf("accounts = %d, want 0 after rejected creation", n)
	}
}

func TestUpdateAccount_OpeningBalance(t *testing.T) {
	testCases := []struct {
		name        string
		initial     Money // at creation
		newInitial  Money // at update
		wantEntries int
	}{
		{name: "patches the existing entry", initial: Rp(100_000), newInitial: Rp(750_000), wantEntries: 1},
		{name: "zero removes the entry", initial: Rp(100_000), newInitial: Rp(0), wantEntries: 0},
		{name: "inserts when there was none", initial: Rp(0), newInitial: Rp(300_000), wantEntries: 1},
		{name: "negative patches too", initial: Rp(100_000), newInitial: Rp(-50_000), wantEntries: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(MustParse("2025-06-01"))
			account := mustAccount(l, "BCA", AccountBank, tc.initial)

			updated, err := l.UpdateAccount(account.ID, "BCA Tahapan", AccountBank, tc.newInitial)
			if err != nil {
				t.Fatalf("UpdateAccount() error = %v", err)
			}
			if updated.Name != "BCA Tahapan" {
				t.Errorf("name = %q, want %q", updated.Name, "BCA Tahapan")
			}

			entries := 0
			for range l.Transactions(ByCategory(CategoryOpeningBalance)) {
				entries++
			}
			if entries != tc.wantEntries {
				t.Fatalf("opening entries = %d, want %d (never more than one)", entries, tc.wantEntries)
			}

			got := l.Account(account.ID).Balance
			if tc.wantEntries == 0 {
				if !got.IsZero() {
					t.Errorf("balance = %s, want zero", got)
				}
			} else if !got.Equal(tc.newInitial) {
				t.Errorf("balance = %s, want %s", got, tc.newInitial)
			}
		})
	}
}

func TestUpdateAccount_NotFound(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	_, err := l.UpdateAccount("nope", "X", AccountCash, Rp(0))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateAccount() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	t.Run("removes the account and its opening entry", func(t *testing.T) {
		l := newTestLedger(MustParse("2025-06-01"))
		account := mustAccount(l, "Dompet", AccountCash, Rp(100_000))

		if err := l.DeleteAccount(account.ID); err != nil {
			t.Fatalf("DeleteAccount() error = %v", err)
		}
		if l.Account(account.ID) != nil {
			t.Error("account still present after delete")
		}
		for _, tx := range l.Transactions(AcceptAll) {
			t.Errorf("unexpected surviving transaction %v", tx)
		}
	})

	t.Run("rejected while transactions touch it", func(t *testing.T) {
		l := newTestLedger(MustParse("2025-06-01"))
		account := mustAccount(l, "Dompet", AccountCash, Rp(100_000))
		if _, err := l.AddTransaction(NewExpense(MustParse("2025-06-02"), account.ID, Rp(10_000), "Makan", "")); err != nil {
			t.Fatal(err)
		}

		err := l.DeleteAccount(account.ID)
		if !IsInUse(err) {
			t.Fatalf("DeleteAccount() error = %v, want InUseError", err)
		}
		if l.Account(account.ID) == nil {
			t.Error("account removed despite rejection")
		}
	})

	t.Run("rejected while an investment is funded from it", func(t *testing.T) {
		l := newTestLedger(MustParse("2025-06-01"))
		account := mustAccount(l, "BCA", AccountBank, Rp(10_000_000))
		platform := mustPlatform(l, "Bibit")
		v, err := l.AddInvestment("RDPU", MustParse("2025-06-02"), account.ID, platform.ID, Rp(1_000_000), Money{})
		if err != nil {
			t.Fatal(err)
		}

		if err := l.DeleteAccount(account.ID); !IsInUse(err) {
			t.Fatalf("DeleteAccount() error = %v, want InUseError", err)
		}

		// Liquidating the investment still leaves its linked transactions.
		if err := l.DeleteInvestment(v.ID); err != nil {
			t.Fatal(err)
		}
		if err := l.DeleteAccount(account.ID); !IsInUse(err) {
			t.Fatalf("DeleteAccount() after liquidation error = %v, want InUseError", err)
		}
	})
}

func TestAddTransaction_Validation(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	a := mustAccount(l, "Dompet", AccountCash, Rp(0))

	testCases := []struct {
		name string
		tx   Transaction
	}{
		{name: "unknown type", tx: Transaction{Type: "loan", AccountID: a.ID, Amount: Rp(10)}},
		{name: "transfer without destination", tx: Transaction{Type: Transfer, AccountID: a.ID, Amount: Rp(10)}},
		{name: "transfer to itself", tx: Transaction{Type: Transfer, AccountID: a.ID, ToAccountID: a.ID, Amount: Rp(10)}},
		{name: "missing account", tx: Transaction{Type: Income, Amount: Rp(10)}},
		{name: "negative amount", tx: Transaction{Type: Expense, AccountID: a.ID, Amount: Rp(-10)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := len(l.transactions)
			if _, err := l.AddTransaction(tc.tx); err == nil {
				t.Fatal("AddTransaction() = nil error, want rejection")
			}
			if len(l.transactions) != before {
				t.Error("rejected transaction was appended anyway")
			}
		})
	}
}

func TestAddTransaction_PatchesBalances(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	a := mustAccount(l, "Dompet", AccountCash, Rp(100_000))
	b := mustAccount(l, "BCA", AccountBank, Rp(1_000_000))

	if _, err := l.AddTransaction(NewIncome(MustParse("2025-06-02"), a.ID, Rp(50_000), "Gaji", "")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(NewExpense(MustParse("2025-06-03"), a.ID, Rp(20_000), "Makan", "nasi goreng")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(NewTransfer(MustParse("2025-06-04"), b.ID, a.ID, Rp(300_000), "top up")); err != nil {
		t.Fatal(err)
	}

	if got, want := l.Account(a.ID).Balance, Rp(430_000); !got.Equal(want) {
		t.Errorf("balance(a) = %s, want %s", got, want)
	}
	if got, want := l.Account(b.ID).Balance, Rp(700_000); !got.Equal(want) {
		t.Errorf("balance(b) = %s, want %s", got, want)
	}
	if got, want := l.TotalBalance(), Rp(1_130_000); !got.Equal(want) {
		t.Errorf("TotalBalance() = %s, want %s", got, want)
	}
}

func TestAddTransaction_FillsMissingFields(t *testing.T) {
	today := MustParse("2025-06-15")
	l := newTestLedger(today)
	a := mustAccount(l, "Dompet", AccountCash, Rp(0))

	tx, err := l.AddTransaction(Transaction{Type: Income, AccountID: a.ID, Amount: Rp(10_000)})
	if err != nil {
		t.Fatal(err)
	}
	if tx.ID == "" {
		t.Error("id was not filled")
	}
	if tx.Date != today {
		t.Errorf("date = %s, want %s", tx.Date, today)
	}
	if tx.Source != SourceManual {
		t.Errorf("source = %q, want %q", tx.Source, SourceManual)
	}
}

func TestTransactions_NewestFirst(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	a := mustAccount(l, "Dompet", AccountCash, Rp(0))

	// Inserted out of order, plus two entries on the same day.
	first, _ := l.AddTransaction(NewIncome(MustParse("2025-06-10"), a.ID, Rp(1), "", "first of the 10th"))
	old, _ := l.AddTransaction(NewIncome(MustParse("2025-06-02"), a.ID, Rp(1), "", "oldest"))
	second, _ := l.AddTransaction(NewIncome(MustParse("2025-06-10"), a.ID, Rp(1), "", "second of the 10th"))

	var got []string
	for _, tx := range l.Transactions(AcceptAll) {
		got = append(got, tx.ID)
	}
	// Same-day ties keep insertion order, latest insert on top.
	want := []string{second.ID, first.ID, old.ID}
	if len(got) != len(want) {
		t.Fatalf("log length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("log[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTransfer_TotalBalanceUnchanged(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	a := mustAccount(l, "Dompet", AccountCash, Rp(200_000))
	b := mustAccount(l, "GoPay", AccountEWallet, Rp(50_000))

	before := l.TotalBalance()
	if _, err := l.AddTransaction(NewTransfer(MustParse("2025-06-02"), a.ID, b.ID, Rp(75_000), "")); err != nil {
		t.Fatal(err)
	}
	after := l.TotalBalance()
	if !after.Equal(before) {
		t.Errorf("TotalBalance() = %s after transfer, want unchanged %s", after, before)
	}
	if got, want := l.Account(a.ID).Balance, Rp(125_000); !got.Equal(want) {
		t.Errorf("balance(a) = %s, want %s", got, want)
	}
	if got, want := l.Account(b.ID).Balance, Rp(125_000); !got.Equal(want) {
		t.Errorf("balance(b) = %s, want %s", got, want)
	}
}

func TestPlatform_Lifecycle(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	platform := mustPlatform(l, "Bibit")

	renamed, err := l.UpdatePlatform(platform.ID, "Bibit.id")
	if err != nil {
		t.Fatalf("UpdatePlatform() error = %v", err)
	}
	if renamed.Name != "Bibit.id" {
		t.Errorf("name = %q, want %q", renamed.Name, "Bibit.id")
	}

	account := mustAccount(l, "BCA", AccountBank, Rp(5_000_000))
	v, err := l.AddInvestment("RDPU", MustParse("2025-06-02"), account.ID, platform.ID, Rp(1_000_000), Money{})
	if err != nil {
		t.Fatal(err)
	}

	if err := l.DeletePlatform(platform.ID); !IsInUse(err) {
		t.Fatalf("DeletePlatform() error = %v, want InUseError", err)
	}

	if err := l.DeleteInvestment(v.ID); err != nil {
		t.Fatal(err)
	}
	if err := l.DeletePlatform(platform.ID); err != nil {
		t.Fatalf("DeletePlatform() after liquidation error = %v", err)
	}
	if l.Platform(platform.ID) != nil {
		t.Error("platform still present after delete")
	}
}

func TestInvestment_Lifecycle(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	account := mustAccount(l, "BCA", AccountBank, Rp(10_000_000))
	platform := mustPlatform(l, "Bibit")

	v, err := l.AddInvestment("RDPU", MustParse("2025-06-02"), account.ID, platform.ID, Rp(2_000_000), Money{})
	if err != nil {
		t.Fatalf("AddInvestment() error = %v", err)
	}
	if !v.CurrentValue.Equal(v.InitialValue) {
		t.Errorf("current = %s, want to default to initial %s", v.CurrentValue, v.InitialValue)
	}
	if got, want := l.Account(account.ID).Balance, Rp(8_000_000); !got.Equal(want) {
		t.Errorf("balance after funding = %s, want %s", got, want)
	}

	outflows := 0
	for _, tx := range l.Transactions(BySource(SourceInvestment)) {
		outflows++
		if tx.LinkedInvestmentID != v.ID {
			t.Errorf("outflow linked to %q, want %q", tx.LinkedInvestmentID, v.ID)
		}
		if tx.Category != CategoryInvestment {
			t.Errorf("outflow category = %q, want %q", tx.Category, CategoryInvestment)
		}
	}
	if outflows != 1 {
		t.Fatalf("investment outflows = %d, want 1", outflows)
	}

	// Mark to market. Cash must not move.
	v2, err := l.UpdateInvestmentValue(v.ID, Rp(2_400_000))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := v2.Gain(), Rp(400_000); !got.Equal(want) {
		t.Errorf("Gain() = %s, want %s", got, want)
	}
	if got, want := l.Account(account.ID).Balance, Rp(8_000_000); !got.Equal(want) {
		t.Errorf("balance after mark-to-market = %s, want unchanged %s", got, want)
	}

	// Liquidation refunds the capital; the round trip nets to zero.
	if err := l.DeleteInvestment(v.ID); err != nil {
		t.Fatalf("DeleteInvestment() error = %v", err)
	}
	if l.Investment(v.ID) != nil {
		t.Error("investment still present after delete")
	}
	if got, want := l.Account(account.ID).Balance, Rp(10_000_000); !got.Equal(want) {
		t.Errorf("balance after liquidation = %s, want %s", got, want)
	}
	linked := 0
	for range l.Transactions(BySource(SourceInvestment)) {
		linked++
	}
	if linked != 2 {
		t.Errorf("linked transactions after liquidation = %d, want outflow and refund", linked)
	}
}

func TestAddInvestment_Validation(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	account := mustAccount(l, "BCA", AccountBank, Rp(1_000_000))
	platform := mustPlatform(l, "Bibit")

	testCases := []struct {
		name       string
		invName    string
		accountID  string
		platformID string
		initial    Money
	}{
		{name: "blank name", invName: " ", accountID: account.ID, platformID: platform.ID, initial: Rp(100)},
		{name: "zero initial", invName: "X", accountID: account.ID, platformID: platform.ID, initial: Rp(0)},
		{name: "negative initial", invName: "X", accountID: account.ID, platformID: platform.ID, initial: Rp(-100)},
		{name: "unknown account", invName: "X", accountID: "nope", platformID: platform.ID, initial: Rp(100)},
		{name: "unknown platform", invName: "X", accountID: account.ID, platformID: "nope", initial: Rp(100)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := l.AddInvestment(tc.invName, Date{}, tc.accountID, tc.platformID, tc.initial, Money{}); err == nil {
				t.Fatal("AddInvestment() = nil error, want rejection")
			}
			if n := len(l.investments); n != 0 {
				t.Errorf("investments = %d, want 0 after rejection", n)
			}
			if got := l.Account(account.ID).Balance; !got.Equal(Rp(1_000_000)) {
				t.Errorf("balance = %s, want untouched", got)
			}
		})
	}
}

func TestReceivable_Lifecycle(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	account := mustAccount(l, "Dompet", AccountCash, Rp(500_000))

	r, err := l.AddReceivable("Budi", Rp(200_000), MustParse("2025-07-01"), account.ID, true)
	if err != nil {
		t.Fatalf("AddReceivable() error = %v", err)
	}
	if r.Status != Unpaid {
		t.Errorf("status = %q, want %q", r.Status, Unpaid)
	}
	if got, want := l.Account(account.ID).Balance, Rp(300_000); !got.Equal(want) {
		t.Errorf("balance after lending = %s, want %s", got, want)
	}

	if _, err := l.UpdateReceivable(r.ID, "Budi Santoso", MustParse("2025-07-15")); err != nil {
		t.Fatalf("UpdateReceivable() error = %v", err)
	}
	if got := l.Receivable(r.ID); got.DebtorName != "Budi Santoso" || got.DueDate != MustParse("2025-07-15") {
		t.Errorf("receivable after update = %+v", got)
	}

	paid, err := l.MarkReceivablePaid(r.ID, "")
	if err != nil {
		t.Fatalf("MarkReceivablePaid() error = %v", err)
	}
	if paid.Status != Paid {
		t.Errorf("status = %q, want %q", paid.Status, Paid)
	}
	if got, want := l.Account(account.ID).Balance, Rp(500_000); !got.Equal(want) {
		t.Errorf("balance after repayment = %s, want %s", got, want)
	}

	// Paid is terminal.
	if _, err := l.MarkReceivablePaid(r.ID, ""); err == nil {
		t.Fatal("MarkReceivablePaid() twice = nil error, want rejection")
	}

	// Deleting removes the linked outflow and repayment, and rebuilds.
	if err := l.DeleteReceivable(r.ID); err != nil {
		t.Fatalf("DeleteReceivable() error = %v", err)
	}
	if l.Receivable(r.ID) != nil {
		t.Error("receivable still present after delete")
	}
	for _, tx := range l.Transactions(BySource(SourceReceivable)) {
		t.Errorf("surviving linked transaction %v", tx)
	}
	if got, want := l.Account(account.ID).Balance, Rp(500_000); !got.Equal(want) {
		t.Errorf("balance after delete = %s, want %s", got, want)
	}
}

func TestAddReceivable_WithoutOutflow(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	account := mustAccount(l, "Dompet", AccountCash, Rp(500_000))

	r, err := l.AddReceivable("Siti", Rp(100_000), MustParse("2025-08-01"), account.ID, false)
	if err != nil {
		t.Fatalf("AddReceivable() error = %v", err)
	}
	if got, want := l.Account(account.ID).Balance, Rp(500_000); !got.Equal(want) {
		t.Errorf("balance = %s, want untouched %s", got, want)
	}

	// Repayment still credits the receivable's account.
	if _, err := l.MarkReceivablePaid(r.ID, ""); err != nil {
		t.Fatal(err)
	}
	if got, want := l.Account(account.ID).Balance, Rp(600_000); !got.Equal(want) {
		t.Errorf("balance after repayment = %s, want %s", got, want)
	}
}

func TestMarkReceivablePaid_OtherAccount(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	wallet := mustAccount(l, "Dompet", AccountCash, Rp(500_000))
	bank := mustAccount(l, "BCA", AccountBank, Rp(0))

	r, err := l.AddReceivable("Budi", Rp(200_000), MustParse("2025-07-01"), wallet.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.MarkReceivablePaid(r.ID, bank.ID); err != nil {
		t.Fatal(err)
	}
	if got, want := l.Account(wallet.ID).Balance, Rp(300_000); !got.Equal(want) {
		t.Errorf("balance(wallet) = %s, want %s", got, want)
	}
	if got, want := l.Account(bank.ID).Balance, Rp(200_000); !got.Equal(want) {
		t.Errorf("balance(bank) = %s, want %s", got, want)
	}
}
