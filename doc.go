// Package uangku provides the core types and operations for tracking
// everyday personal finances: cash accounts, the transaction log, simple
// investments, and money lent out. It is designed to be local-first and
// auditable, keeping all data in human-readable files under the user's
// control.
//
// The core functionalities include:
//   - Ledger Management: Recording income, expenses and transfers in a single
//     chronological log, with every account balance derived from that log.
//   - Investments: Tracking capital placed on platforms, its mark-to-market
//     value, and the cash flows that fund and liquidate it.
//   - Receivables: Tracking money lent to others from creation to repayment.
//   - Data Persistence: Encoding and decoding the ledger state to and from
//     human-readable, version-controllable JSONL files, plus whole-state
//     JSON backups.
//
// This package serves as the foundational logic for the `ukt` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package uangku
