package uangku

import "fmt"

// newTestLedger returns a ledger with sequential identifiers and a fixed
// clock, so tests are deterministic.
func newTestLedger(today Date) *Ledger {
	n := 0
	return &Ledger{
		newID: func() string { n++; return fmt.Sprintf("id-%d", n) },
		today: func() Date { return today },
	}
}

// mustAccount creates an account or panics. For test arrangement only.
func mustAccount(l *Ledger, name string, kind AccountType, initial Money) Account {
	a, err := l.AddAccount(name, kind, initial)
	if err != nil {
		panic(err)
	}
	return a
}

// mustPlatform creates a platform or panics. For test arrangement only.
func mustPlatform(l *Ledger, name string) Platform {
	p, err := l.AddPlatform(name)
	if err != nil {
		panic(err)
	}
	return p
}
