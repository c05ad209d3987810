// Package renderer turns ledger records and reports into markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/nadhif/uangku"
)

// Accounts renders the accounts table.
func Accounts(accounts []uangku.Account) string {
	var b strings.Builder
	b.WriteString("# Akun\n\n")
	if len(accounts) == 0 {
		b.WriteString("No accounts yet.\n")
		return b.String()
	}
	b.WriteString("| Name | Type | Balance | ID |\n")
	b.WriteString("|---|---|---:|---|\n")
	var total uangku.Money
	for _, a := range accounts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", a.Name, a.Type, a.Balance, a.ID)
		total = total.Add(a.Balance)
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** | |\n", total)
	return b.String()
}

// Platforms renders the platforms table.
func Platforms(platforms []uangku.Platform) string {
	var b strings.Builder
	b.WriteString("# Platform\n\n")
	if len(platforms) == 0 {
		b.WriteString("No platforms yet.\n")
		return b.String()
	}
	b.WriteString("| Name | ID |\n")
	b.WriteString("|---|---|\n")
	for _, p := range platforms {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Name, p.ID)
	}
	return b.String()
}

// Investments renders the investments table. The name of each platform is
// resolved through the lookup when available.
func Investments(investments []uangku.Investment, platformName func(id string) string) string {
	var b strings.Builder
	b.WriteString("# Investasi\n\n")
	if len(investments) == 0 {
		b.WriteString("No investments yet.\n")
		return b.String()
	}
	b.WriteString("| Name | Date | Platform | Initial | Current | Gain | ID |\n")
	b.WriteString("|---|---|---|---:|---:|---:|---|\n")
	for _, v := range investments {
		platform := v.PlatformID
		if platformName != nil {
			if name := platformName(v.PlatformID); name != "" {
				platform = name
			}
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			v.Name, v.Date, platform, v.InitialValue, v.CurrentValue, v.Gain().SignedString(), v.ID)
	}
	return b.String()
}

// Receivables renders the receivables table.
func Receivables(receivables []uangku.Receivable) string {
	var b strings.Builder
	b.WriteString("# Piutang\n\n")
	if len(receivables) == 0 {
		b.WriteString("No receivables yet.\n")
		return b.String()
	}
	b.WriteString("| Debtor | Amount | Due | Status | ID |\n")
	b.WriteString("|---|---:|---|---|---|\n")
	for _, r := range receivables {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			r.DebtorName, r.Amount, r.DueDate, r.Status, r.ID)
	}
	return b.String()
}

// Transactions renders the transaction log table, newest first.
func Transactions(transactions []uangku.Transaction, accountName func(id string) string) string {
	var b strings.Builder
	b.WriteString("# Transaksi\n\n")
	if len(transactions) == 0 {
		b.WriteString("No transactions yet.\n")
		return b.String()
	}
	name := func(id string) string {
		if id == "" {
			return ""
		}
		if accountName != nil {
			if n := accountName(id); n != "" {
				return n
			}
		}
		return id
	}
	b.WriteString("| Date | Type | Account | Amount | Category | Description |\n")
	b.WriteString("|---|---|---|---:|---|---|\n")
	for _, tx := range transactions {
		account := name(tx.AccountID)
		if tx.Type == uangku.Transfer {
			account = account + " → " + name(tx.ToAccountID)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Type, account, tx.Amount, tx.Category, tx.Description)
	}
	return b.String()
}

// Summary renders the summary report.
func Summary(s *uangku.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Ringkasan %s\n\n", s.Date)
	b.WriteString("| | |\n")
	b.WriteString("|---|---:|\n")
	fmt.Fprintf(&b, "| Net cash | %s |\n", s.NetCash)
	fmt.Fprintf(&b, "| Income (month to date) | %s |\n", s.MonthIncome)
	fmt.Fprintf(&b, "| Expense (month to date) | %s |\n", s.MonthExpense)
	fmt.Fprintf(&b, "| Invested capital | %s |\n", s.InvestedCapital)
	fmt.Fprintf(&b, "| Investment value | %s |\n", s.InvestmentValue)
	fmt.Fprintf(&b, "| Investment gain | %s |\n", s.InvestmentGain.SignedString())
	fmt.Fprintf(&b, "| Outstanding receivables | %s |\n", s.OutstandingReceivable)
	return b.String()
}
