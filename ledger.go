package uangku

import (
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Ledger is the sole writer of the five persisted collections: accounts,
// platforms, investments, transactions and receivables.
//
// Every mutation goes through its methods, which keep the cached account
// balances equal to the fold of the transaction log (the opening-balance
// entry counted as income). The transaction log is kept newest-first; ties on
// the same day keep insertion order, latest insert first.
//
// Operations either fully apply or fully no-op: nothing is mutated before all
// validation has passed.
type Ledger struct {
	accounts     []Account
	platforms    []Platform
	investments  []Investment
	transactions []Transaction // newest first
	receivables  []Receivable

	newID func() string // identifier collaborator
	today func() Date   // clock collaborator
}

// NewLedger creates an empty ledger with the default collaborators
// (uuid identifiers and the wall clock).
func NewLedger() *Ledger {
	return &Ledger{
		newID: uuid.NewString,
		today: Today,
	}
}

// --- read accessors ---

// Account returns the account with this id, or nil if unknown.
func (l *Ledger) Account(id string) *Account {
	for i := range l.accounts {
		if l.accounts[i].ID == id {
			a := l.accounts[i]
			return &a
		}
	}
	return nil
}

// Platform returns the platform with this id, or nil if unknown.
func (l *Ledger) Platform(id string) *Platform {
	for i := range l.platforms {
		if l.platforms[i].ID == id {
			p := l.platforms[i]
			return &p
		}
	}
	return nil
}

// Investment returns the investment with this id, or nil if unknown.
func (l *Ledger) Investment(id string) *Investment {
	for i := range l.investments {
		if l.investments[i].ID == id {
			v := l.investments[i]
			return &v
		}
	}
	return nil
}

// Receivable returns the receivable with this id, or nil if unknown.
func (l *Ledger) Receivable(id string) *Receivable {
	for i := range l.receivables {
		if l.receivables[i].ID == id {
			r := l.receivables[i]
			return &r
		}
	}
	return nil
}

// Accounts returns an iterator over all accounts in creation order.
func (l *Ledger) Accounts() iter.Seq[Account] {
	return func(yield func(Account) bool) {
		for _, a := range l.accounts {
			if !yield(a) {
				return
			}
		}
	}
}

// Platforms returns an iterator over all platforms in creation order.
func (l *Ledger) Platforms() iter.Seq[Platform] {
	return func(yield func(Platform) bool) {
		for _, p := range l.platforms {
			if !yield(p) {
				return
			}
		}
	}
}

// Investments returns an iterator over all investments in creation order.
func (l *Ledger) Investments() iter.Seq[Investment] {
	return func(yield func(Investment) bool) {
		for _, v := range l.investments {
			if !yield(v) {
				return
			}
		}
	}
}

// Receivables returns an iterator over all receivables in creation order.
func (l *Ledger) Receivables() iter.Seq[Receivable] {
	return func(yield func(Receivable) bool) {
		for _, r := range l.receivables {
			if !yield(r) {
				return
			}
		}
	}
}

// Transactions returns an iterator that yields transactions newest first.
// A transaction is yielded if any of the filters accepts it.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := false
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// AcceptAll is a predicate that accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByAccount returns a predicate that keeps transactions touching the account.
func ByAccount(accountID string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Touches(accountID) }
}

// ByCategory returns a predicate that keeps transactions of a category.
func ByCategory(category string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Category == category }
}

// BySource returns a predicate that keeps transactions of a source.
func BySource(source Source) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Source == source }
}

// IsAccountInUse reports whether the account is referenced by any
// non-opening-balance transaction or by any investment as funding account.
func (l *Ledger) IsAccountInUse(id string) bool {
	for _, tx := range l.transactions {
		if tx.Touches(id) && !tx.IsOpeningBalance() {
			return true
		}
	}
	for _, v := range l.investments {
		if v.AccountID == id {
			return true
		}
	}
	return false
}

// IsPlatformInUse reports whether any investment references the platform.
func (l *Ledger) IsPlatformInUse(id string) bool {
	for _, v := range l.investments {
		if v.PlatformID == id {
			return true
		}
	}
	return false
}

// TotalBalance returns the sum of all cached account balances.
func (l *Ledger) TotalBalance() Money {
	var total Money
	for _, a := range l.accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// LogBalance folds the transaction log for one account, ignoring the cache.
// This is the reference value the cached balance must always equal.
func (l *Ledger) LogBalance(accountID string) Money {
	var balance Money
	for _, tx := range l.transactions {
		switch tx.Type {
		case Income:
			if tx.AccountID == accountID {
				balance = balance.Add(tx.Amount)
			}
		case Expense:
			if tx.AccountID == accountID {
				balance = balance.Sub(tx.Amount)
			}
		case Transfer:
			if tx.AccountID == accountID {
				balance = balance.Sub(tx.Amount)
			}
			if tx.ToAccountID == accountID {
				balance = balance.Add(tx.Amount)
			}
		}
	}
	return balance
}

// --- transactions ---

// AddTransaction appends a transaction to the log and patches the affected
// balances incrementally. Missing fields are filled: id from the identifier
// collaborator, date from the clock. Per the execution model there is no
// check that the referenced accounts exist; a leg on an unknown account
// simply has no balance to patch.
func (l *Ledger) AddTransaction(tx Transaction) (Transaction, error) {
	if _, err := ParseTxType(string(tx.Type)); err != nil {
		return tx, err
	}
	if tx.Type == Transfer && tx.ToAccountID == "" {
		return tx, fmt.Errorf("transfer transaction needs a destination account")
	}
	if tx.Type == Transfer && tx.ToAccountID == tx.AccountID {
		return tx, fmt.Errorf("cannot transfer from an account to itself")
	}
	if tx.AccountID == "" {
		return tx, fmt.Errorf("transaction needs an account")
	}
	if tx.Amount.IsNegative() && !tx.IsOpeningBalance() {
		return tx, fmt.Errorf("transaction amount must not be negative, got %s", tx.Amount)
	}
	if tx.ID == "" {
		tx.ID = l.newID()
	}
	if tx.Date.IsZero() {
		tx.Date = l.today()
	}
	if tx.Source == "" {
		tx.Source = SourceManual
	}

	// Prepend so that same-day entries keep latest-insert-first order, then
	// restore the global newest-first order.
	l.transactions = append([]Transaction{tx}, l.transactions...)
	l.sortNewestFirst()
	l.apply(tx)
	return tx, nil
}

// sortNewestFirst sorts the log by date descending. The sort is stable, so
// transactions on the same day keep their relative order.
func (l *Ledger) sortNewestFirst() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.After(l.transactions[j].Date)
	})
}

// apply patches the cached balances with the effect of one transaction.
func (l *Ledger) apply(tx Transaction) {
	switch tx.Type {
	case Income:
		if i := l.accountIndex(tx.AccountID); i >= 0 {
			l.accounts[i].Balance = l.accounts[i].Balance.Add(tx.Amount)
		}
	case Expense:
		if i := l.accountIndex(tx.AccountID); i >= 0 {
			l.accounts[i].Balance = l.accounts[i].Balance.Sub(tx.Amount)
		}
	case Transfer:
		if i := l.accountIndex(tx.AccountID); i >= 0 {
			l.accounts[i].Balance = l.accounts[i].Balance.Sub(tx.Amount)
		}
		if i := l.accountIndex(tx.ToAccountID); i >= 0 {
			l.accounts[i].Balance = l.accounts[i].Balance.Add(tx.Amount)
		}
	}
}

func (l *Ledger) accountIndex(id string) int {
	for i := range l.accounts {
		if l.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// Recompute rebuilds every cached balance from the transaction log. Loading
// a ledger does this automatically; it is exposed for callers that hand-edit
// the data files.
func (l *Ledger) Recompute() {
	l.sortNewestFirst()
	l.recompute()
}

// recompute rebuilds every cached balance from scratch by replaying the log
// oldest first. Any structural change to the log ends here, so the cache can
// never drift from invariant 1.
func (l *Ledger) recompute() {
	for i := range l.accounts {
		l.accounts[i].Balance = Money{cur: l.accounts[i].Balance.cur}
	}
	for i := len(l.transactions) - 1; i >= 0; i-- {
		l.apply(l.transactions[i])
	}
}

// --- accounts ---

// AddAccount creates an account with a zero balance. A non-zero initial
// balance synthesizes the single opening-balance income transaction
// (reserved category "Saldo Awal"), which may be negative.
func (l *Ledger) AddAccount(name string, kind AccountType, initial Money) (Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Account{}, fmt.Errorf("account name is missing")
	}
	account := Account{
		ID:   l.newID(),
		Name: name,
		Type: kind,
	}
	l.accounts = append(l.accounts, account)

	if !initial.IsZero() {
		opening := Transaction{
			Date:        l.today(),
			Type:        Income,
			AccountID:   account.ID,
			Amount:      initial,
			Category:    CategoryOpeningBalance,
			Description: "Saldo awal " + name,
			Source:      SourceManual,
		}
		if _, err := l.AddTransaction(opening); err != nil {
			// roll the account creation back, nothing else happened yet
			l.accounts = l.accounts[:len(l.accounts)-1]
			return Account{}, err
		}
	}
	return *l.Account(account.ID), nil
}

// openingIndex returns the index of the account's opening-balance
// transaction, or -1.
func (l *Ledger) openingIndex(accountID string) int {
	for i, tx := range l.transactions {
		if tx.AccountID == accountID && tx.IsOpeningBalance() {
			return i
		}
	}
	return -1
}

// UpdateAccount renames or retypes an account and resets its initial
// balance. The opening-balance transaction is removed, patched, or inserted
// so that exactly zero or one exists afterwards, and every balance is then
// recomputed from the log.
func (l *Ledger) UpdateAccount(id, name string, kind AccountType, newInitial Money) (Account, error) {
	idx := l.accountIndex(id)
	if idx < 0 {
		return Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	if name = strings.TrimSpace(name); name == "" {
		return Account{}, fmt.Errorf("account name is missing")
	}
	l.accounts[idx].Name = name
	l.accounts[idx].Type = kind

	op := l.openingIndex(id)
	switch {
	case op >= 0 && newInitial.IsZero():
		// remove the opening entry altogether
		l.transactions = append(l.transactions[:op], l.transactions[op+1:]...)
	case op >= 0:
		l.transactions[op].Amount = newInitial
	case !newInitial.IsZero():
		l.transactions = append([]Transaction{{
			ID:          l.newID(),
			Date:        l.today(),
			Type:        Income,
			AccountID:   id,
			Amount:      newInitial,
			Category:    CategoryOpeningBalance,
			Description: "Saldo awal " + name,
			Source:      SourceManual,
		}}, l.transactions...)
	}
	l.sortNewestFirst()
	l.recompute()
	return l.accounts[idx], nil
}

// DeleteAccount removes an account and its opening-balance transaction. It is
// rejected while any other transaction touches the account or any investment
// is funded from it.
func (l *Ledger) DeleteAccount(id string) error {
	idx := l.accountIndex(id)
	if idx < 0 {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	name := l.accounts[idx].Name
	for _, tx := range l.transactions {
		if tx.Touches(id) && !tx.IsOpeningBalance() {
			return &InUseError{Entity: "account", Name: name, Reason: "it still has transactions"}
		}
	}
	for _, v := range l.investments {
		if v.AccountID == id {
			return &InUseError{Entity: "account", Name: name, Reason: fmt.Sprintf("investment %q is funded from it", v.Name)}
		}
	}

	l.accounts = append(l.accounts[:idx], l.accounts[idx+1:]...)
	kept := l.transactions[:0]
	for _, tx := range l.transactions {
		if !(tx.AccountID == id && tx.IsOpeningBalance()) {
			kept = append(kept, tx)
		}
	}
	l.transactions = kept
	l.recompute()
	return nil
}

// --- platforms ---

// AddPlatform creates a platform.
func (l *Ledger) AddPlatform(name string) (Platform, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Platform{}, fmt.Errorf("platform name is missing")
	}
	p := Platform{ID: l.newID(), Name: name}
	l.platforms = append(l.platforms, p)
	return p, nil
}

// UpdatePlatform renames a platform.
func (l *Ledger) UpdatePlatform(id, name string) (Platform, error) {
	if name = strings.TrimSpace(name); name == "" {
		return Platform{}, fmt.Errorf("platform name is missing")
	}
	for i := range l.platforms {
		if l.platforms[i].ID == id {
			l.platforms[i].Name = name
			return l.platforms[i], nil
		}
	}
	return Platform{}, fmt.Errorf("platform %q: %w", id, ErrNotFound)
}

// DeletePlatform removes a platform. It is rejected while any investment
// references it.
func (l *Ledger) DeletePlatform(id string) error {
	for i := range l.platforms {
		if l.platforms[i].ID != id {
			continue
		}
		if l.IsPlatformInUse(id) {
			return &InUseError{Entity: "platform", Name: l.platforms[i].Name, Reason: "investments are held on it"}
		}
		l.platforms = append(l.platforms[:i], l.platforms[i+1:]...)
		return nil
	}
	return fmt.Errorf("platform %q: %w", id, ErrNotFound)
}

// --- investments ---

// AddInvestment creates an investment and its linked capital-outflow
// transaction draining the initial value from the funding account.
func (l *Ledger) AddInvestment(name string, day Date, accountID, platformID string, initial, current Money) (Investment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Investment{}, fmt.Errorf("investment name is missing")
	}
	if !initial.IsPositive() {
		return Investment{}, fmt.Errorf("investment initial value must be positive, got %s", initial)
	}
	if l.Account(accountID) == nil {
		return Investment{}, fmt.Errorf("funding account %q: %w", accountID, ErrNotFound)
	}
	if l.Platform(platformID) == nil {
		return Investment{}, fmt.Errorf("platform %q: %w", platformID, ErrNotFound)
	}
	if day.IsZero() {
		day = l.today()
	}
	if current.IsZero() {
		current = initial
	}

	v := Investment{
		ID:           l.newID(),
		Name:         name,
		Date:         day,
		AccountID:    accountID,
		PlatformID:   platformID,
		InitialValue: initial,
		CurrentValue: current,
	}
	l.investments = append(l.investments, v)

	outflow := Transaction{
		Date:               day,
		Type:               Expense,
		AccountID:          accountID,
		Amount:             initial,
		Category:           CategoryInvestment,
		Description:        "Investasi " + name,
		Source:             SourceInvestment,
		LinkedInvestmentID: v.ID,
	}
	if _, err := l.AddTransaction(outflow); err != nil {
		l.investments = l.investments[:len(l.investments)-1]
		return Investment{}, err
	}
	return v, nil
}

// UpdateInvestment mutates name, date and platform only. Changing the initial
// value or the funding account is unsupported: it would require re-deriving
// the linked transaction.
func (l *Ledger) UpdateInvestment(id, name string, day Date, platformID string) (Investment, error) {
	if name = strings.TrimSpace(name); name == "" {
		return Investment{}, fmt.Errorf("investment name is missing")
	}
	if l.Platform(platformID) == nil {
		return Investment{}, fmt.Errorf("platform %q: %w", platformID, ErrNotFound)
	}
	for i := range l.investments {
		if l.investments[i].ID == id {
			l.investments[i].Name = name
			if !day.IsZero() {
				l.investments[i].Date = day
			}
			l.investments[i].PlatformID = platformID
			return l.investments[i], nil
		}
	}
	return Investment{}, fmt.Errorf("investment %q: %w", id, ErrNotFound)
}

// UpdateInvestmentValue sets the mark-to-market current value. No transaction
// or balance is touched: current value is not cash.
func (l *Ledger) UpdateInvestmentValue(id string, current Money) (Investment, error) {
	for i := range l.investments {
		if l.investments[i].ID == id {
			l.investments[i].CurrentValue = current
			return l.investments[i], nil
		}
	}
	return Investment{}, fmt.Errorf("investment %q: %w", id, ErrNotFound)
}

// DeleteInvestment removes the investment record and records the capital
// flowing back into the funding account (category "Pengembalian Investasi").
// The historical outflow stays in the log, so the net balance effect of the
// whole round trip is exactly zero.
func (l *Ledger) DeleteInvestment(id string) error {
	idx := -1
	for i := range l.investments {
		if l.investments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("investment %q: %w", id, ErrNotFound)
	}
	v := l.investments[idx]

	refund := Transaction{
		Date:               l.today(),
		Type:               Income,
		AccountID:          v.AccountID,
		Amount:             v.InitialValue,
		Category:           CategoryInvestmentReturn,
		Description:        "Pengembalian " + v.Name,
		Source:             SourceInvestment,
		LinkedInvestmentID: v.ID,
	}
	if _, err := l.AddTransaction(refund); err != nil {
		return err
	}
	l.investments = append(l.investments[:idx], l.investments[idx+1:]...)
	return nil
}

// --- receivables ---

// AddReceivable records money lent out. When recordOutflow is set, a linked
// funds-out expense is appended against the account.
func (l *Ledger) AddReceivable(debtor string, amount Money, due Date, accountID string, recordOutflow bool) (Receivable, error) {
	debtor = strings.TrimSpace(debtor)
	if debtor == "" {
		return Receivable{}, fmt.Errorf("debtor name is missing")
	}
	if !amount.IsPositive() {
		return Receivable{}, fmt.Errorf("receivable amount must be positive, got %s", amount)
	}
	if l.Account(accountID) == nil {
		return Receivable{}, fmt.Errorf("account %q: %w", accountID, ErrNotFound)
	}

	r := Receivable{
		ID:         l.newID(),
		DebtorName: debtor,
		Amount:     amount,
		DueDate:    due,
		AccountID:  accountID,
		Status:     Unpaid,
	}
	l.receivables = append(l.receivables, r)

	if recordOutflow {
		outflow := Transaction{
			Date:               l.today(),
			Type:               Expense,
			AccountID:          accountID,
			Amount:             amount,
			Category:           CategoryReceivable,
			Description:        "Piutang " + debtor,
			Source:             SourceReceivable,
			LinkedReceivableID: r.ID,
		}
		if _, err := l.AddTransaction(outflow); err != nil {
			l.receivables = l.receivables[:len(l.receivables)-1]
			return Receivable{}, err
		}
	}
	return r, nil
}

// UpdateReceivable mutates debtor name and due date only. Amount, status and
// account are preserved from the stored record so they cannot desynchronize
// from the linked transactions.
func (l *Ledger) UpdateReceivable(id, debtor string, due Date) (Receivable, error) {
	if debtor = strings.TrimSpace(debtor); debtor == "" {
		return Receivable{}, fmt.Errorf("debtor name is missing")
	}
	for i := range l.receivables {
		if l.receivables[i].ID == id {
			l.receivables[i].DebtorName = debtor
			if !due.IsZero() {
				l.receivables[i].DueDate = due
			}
			return l.receivables[i], nil
		}
	}
	return Receivable{}, fmt.Errorf("receivable %q: %w", id, ErrNotFound)
}

// MarkReceivablePaid flips an unpaid receivable to paid and credits the
// repayment to the given account (the receivable's own account when empty).
// Paid is terminal.
func (l *Ledger) MarkReceivablePaid(id, accountID string) (Receivable, error) {
	idx := -1
	for i := range l.receivables {
		if l.receivables[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Receivable{}, fmt.Errorf("receivable %q: %w", id, ErrNotFound)
	}
	r := l.receivables[idx]
	if r.Status == Paid {
		return r, fmt.Errorf("receivable from %q is already paid", r.DebtorName)
	}
	if accountID == "" {
		accountID = r.AccountID
	}
	if l.Account(accountID) == nil {
		return Receivable{}, fmt.Errorf("account %q: %w", accountID, ErrNotFound)
	}

	repayment := Transaction{
		Date:               l.today(),
		Type:               Income,
		AccountID:          accountID,
		Amount:             r.Amount,
		Category:           CategoryReceivable,
		Description:        "Pembayaran piutang " + r.DebtorName,
		Source:             SourceReceivable,
		LinkedReceivableID: r.ID,
	}
	if _, err := l.AddTransaction(repayment); err != nil {
		return Receivable{}, err
	}
	l.receivables[idx].Status = Paid
	return l.receivables[idx], nil
}

// DeleteReceivable removes the receivable and every transaction linked to it,
// then rebuilds all balances from the remaining log. Removing an arbitrary
// linked entry is not expressible as a simple delta.
func (l *Ledger) DeleteReceivable(id string) error {
	idx := -1
	for i := range l.receivables {
		if l.receivables[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("receivable %q: %w", id, ErrNotFound)
	}
	l.receivables = append(l.receivables[:idx], l.receivables[idx+1:]...)
	kept := l.transactions[:0]
	for _, tx := range l.transactions {
		if tx.LinkedReceivableID != id {
			kept = append(kept, tx)
		}
	}
	l.transactions = kept
	l.recompute()
	return nil
}
