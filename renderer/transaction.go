package renderer

import (
	"fmt"

	"github.com/nadhif/uangku"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx uangku.Transaction) string {
	switch tx.Type {
	case uangku.Income:
		return fmt.Sprintf("Received %s (%s)", tx.Amount, tx.Category)
	case uangku.Expense:
		return fmt.Sprintf("Spent %s (%s)", tx.Amount, tx.Category)
	case uangku.Transfer:
		return fmt.Sprintf("Transferred %s to %s", tx.Amount, tx.ToAccountID)
	default:
		return string(tx.Type)
	}
}
