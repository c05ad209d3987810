// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/google/subcommands"
	"github.com/nadhif/uangku"
)

// Commands lists every subcommand. A main package iterates it to register
// them on a commander.
var Commands = []subcommands.Command{
	&accountsCmd{},
	&addAccountCmd{},
	&updateAccountCmd{},
	&deleteAccountCmd{},

	&platformsCmd{},
	&addPlatformCmd{},
	&updatePlatformCmd{},
	&deletePlatformCmd{},

	&incomeCmd{},
	&expenseCmd{},
	&transferCmd{},
	&txLogCmd{},

	&investmentsCmd{},
	&addInvestmentCmd{},
	&updateInvestmentCmd{},
	&updateValueCmd{},
	&deleteInvestmentCmd{},

	&receivablesCmd{},
	&addReceivableCmd{},
	&updateReceivableCmd{},
	&markPaidCmd{},
	&deleteReceivableCmd{},

	&summaryCmd{},
	&topicCmd{},
	&assistCmd{},
	&importCmd{},
	&exportCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", ".uangku", "Path to the ledger data folder")

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

// DecodeLedger loads the ledger from the app data folder. A missing folder is
// an empty ledger.
func DecodeLedger() (*uangku.Ledger, error) {
	ledger, err := uangku.DecodeLedger(&uangku.DirStore{Dir: *dataDir})
	if err != nil {
		return nil, fmt.Errorf("could not load ledger from %q: %w", *dataDir, err)
	}
	return ledger, nil
}

// SaveLedger writes the ledger back into the app data folder.
func SaveLedger(l *uangku.Ledger) error {
	if err := uangku.EncodeLedger(&uangku.DirStore{Dir: *dataDir}, l); err != nil {
		return fmt.Errorf("could not save ledger to %q: %w", *dataDir, err)
	}
	return nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
