package uangku

import (
	"strings"
	"testing"
)

// buildSampleLedger arranges a ledger exercising every collection.
func buildSampleLedger(t *testing.T) *Ledger {
	t.Helper()
	l := newTestLedger(MustParse("2025-06-01"))
	wallet := mustAccount(l, "Dompet", AccountCash, Rp(150_000))
	bank := mustAccount(l, "BCA", AccountBank, Rp(12_000_000))
	platform := mustPlatform(l, "Bibit")

	if _, err := l.AddTransaction(NewExpense(MustParse("2025-06-03"), wallet.ID, Rp(35_000), "Makan", "nasi padang")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddTransaction(NewTransfer(MustParse("2025-06-04"), bank.ID, wallet.ID, Rp(500_000), "tarik tunai")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddInvestment("RDPU", MustParse("2025-06-05"), bank.ID, platform.ID, Rp(2_000_000), Rp(2_100_000)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddReceivable("Budi", Rp(250_000), MustParse("2025-07-01"), wallet.ID, true); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestEncodeDecodeLedger_RoundTrip(t *testing.T) {
	l := buildSampleLedger(t)
	store := MemStore{}

	if err := EncodeLedger(store, l); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}
	back, err := DecodeLedger(store)
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}

	for a := range l.Accounts() {
		got := back.Account(a.ID)
		if got == nil {
			t.Fatalf("account %q lost in round trip", a.Name)
		}
		if got.Name != a.Name || got.Type != a.Type || !got.Balance.Equal(a.Balance) {
			t.Errorf("account round trip = %+v, want %+v", got, a)
		}
	}
	if len(back.transactions) != len(l.transactions) {
		t.Fatalf("transactions = %d, want %d", len(back.transactions), len(l.transactions))
	}
	for i := range l.transactions {
		if !back.transactions[i].Equal(l.transactions[i]) {
			t.Errorf("transactions[%d] = %+v, want %+v", i, back.transactions[i], l.transactions[i])
		}
	}
	for v := range l.Investments() {
		got := back.Investment(v.ID)
		if got == nil || !got.InitialValue.Equal(v.InitialValue) || !got.CurrentValue.Equal(v.CurrentValue) {
			t.Errorf("investment round trip = %+v, want %+v", got, v)
		}
	}
	for r := range l.Receivables() {
		got := back.Receivable(r.ID)
		if got == nil || got.Status != r.Status || !got.Amount.Equal(r.Amount) {
			t.Errorf("receivable round trip = %+v, want %+v", got, r)
		}
	}
}

func TestDecodeLedger_RecomputesStaleBalances(t *testing.T) {
	l := buildSampleLedger(t)
	store := MemStore{}
	if err := EncodeLedger(store, l); err != nil {
		t.Fatal(err)
	}

	// Simulate a hand-edited data file with a bogus cached balance.
	// Dompet holds 150000 - 35000 + 500000 - 250000 = 365000 at encode time.
	lines := string(store[KeyAccounts])
	if !strings.Contains(lines, `"balance":365000`) {
		t.Fatalf("unexpected accounts file:\n%s", lines)
	}
	store[KeyAccounts] = []byte(strings.Replace(lines, `"balance":365000`, `"balance":999`, 1))

	back, err := DecodeLedger(store)
	if err != nil {
		t.Fatal(err)
	}
	for a := range back.Accounts() {
		if want := back.LogBalance(a.ID); !a.Balance.Equal(want) {
			t.Errorf("balance(%s) = %s after load, log says %s", a.Name, a.Balance, want)
		}
	}
}

func TestDecodeLedger_EmptyStore(t *testing.T) {
	l, err := DecodeLedger(MemStore{})
	if err != nil {
		t.Fatalf("DecodeLedger() on empty store error = %v", err)
	}
	for range l.Accounts() {
		t.Error("unexpected account in empty ledger")
	}
	if !l.TotalBalance().IsZero() {
		t.Errorf("TotalBalance() = %s, want zero", l.TotalBalance())
	}
}

func TestEncodeTransaction_CanonicalForm(t *testing.T) {
	l := newTestLedger(MustParse("2025-06-01"))
	a := mustAccount(l, "Dompet", AccountCash, Rp(0)) // id-1
	b := mustAccount(l, "BCA", AccountBank, Rp(0))    // id-2

	if _, err := l.AddTransaction(NewTransfer(MustParse("2025-06-04"), b.ID, a.ID, Rp(500_000), "tarik tunai")); err != nil {
		t.Fatal(err)
	}

	data, err := encodeJSONL(l.transactions)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"id":"id-3","date":"2025-06-04","type":"transfer","accountId":"id-2","toAccountId":"id-1","currency":"IDR","amount":500000,"category":"Transfer","description":"tarik tunai","source":"manual"}` + "\n"
	if string(data) != want {
		t.Errorf("canonical form mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestDecodeTransaction_DefaultsSource(t *testing.T) {
	line := []byte(`{"id":"x","date":"2025-06-04","type":"income","accountId":"a","amount":1000,"category":"Gaji"}` + "\n")
	txs, err := decodeJSONL[Transaction](line)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 1 {
		t.Fatalf("decoded %d transactions, want 1", len(txs))
	}
	if txs[0].Source != SourceManual {
		t.Errorf("source = %q, want %q", txs[0].Source, SourceManual)
	}
	if !txs[0].Amount.Equal(M(1000, "")) {
		t.Errorf("amount = %s, want 1000", txs[0].Amount)
	}
}
