package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"
	"github.com/nadhif/uangku/renderer"
)

type platformsCmd struct{}

func (*platformsCmd) Name() string     { return "platforms" }
func (*platformsCmd) Synopsis() string { return "list investment platforms" }
func (*platformsCmd) Usage() string {
	return `ukt platforms

  Lists every investment platform.
`
}
func (*platformsCmd) SetFlags(f *flag.FlagSet) {}

func (c *platformsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Platforms(slices.Collect(ledger.Platforms())))
	return subcommands.ExitSuccess
}

type addPlatformCmd struct {
	name string
}

func (*addPlatformCmd) Name() string     { return "add-platform" }
func (*addPlatformCmd) Synopsis() string { return "create an investment platform" }
func (*addPlatformCmd) Usage() string {
	return `ukt add-platform -name <name>

  Creates an investment platform (a broker, a fund app, a bank product).
`
}

func (c *addPlatformCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Platform name.")
}

func (c *addPlatformCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	platform, err := ledger.AddPlatform(c.name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("platform created", "name", platform.Name, "id", platform.ID)
	return subcommands.ExitSuccess
}

type updatePlatformCmd struct {
	id   string
	name string
}

func (*updatePlatformCmd) Name() string     { return "update-platform" }
func (*updatePlatformCmd) Synopsis() string { return "rename an investment platform" }
func (*updatePlatformCmd) Usage() string {
	return `ukt update-platform -id <id> -name <name>

  Renames an investment platform.
`
}

func (c *updatePlatformCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Platform ID.")
	f.StringVar(&c.name, "name", "", "New platform name.")
}

func (c *updatePlatformCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	platform, err := ledger.UpdatePlatform(c.id, c.name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("platform updated", "name", platform.Name)
	return subcommands.ExitSuccess
}

type deletePlatformCmd struct {
	id string
}

func (*deletePlatformCmd) Name() string     { return "delete-platform" }
func (*deletePlatformCmd) Synopsis() string { return "delete an unused investment platform" }
func (*deletePlatformCmd) Usage() string {
	return `ukt delete-platform -id <id>

  Deletes a platform. Rejected while any investment references it.
`
}

func (c *deletePlatformCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Platform ID.")
}

func (c *deletePlatformCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.DeletePlatform(c.id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger.Info("platform deleted", "id", c.id)
	return subcommands.ExitSuccess
}
