package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type basesCmd struct{}

func (*basesCmd) Name() string     { return "bases" }
func (*basesCmd) Synopsis() string { return "list loaded base currencies and their asset counts" }
func (*basesCmd) Usage() string {
	return `assets bases [<base> ...]

  Loads the assets of each base (the configured default base when none is
  given) and prints every loaded base.
`
}

func (*basesCmd) SetFlags(*flag.FlagSet) {}

func (*basesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := openDesk(ctx, f.Args()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer d.log.Sync()

	fmt.Println(basesTable(d.agg))
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	base   string
	assets bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the per-currency summary of a base" }
func (*summaryCmd) Usage() string {
	return `assets summary [-base <base>] [-assets]

  Prints units, weighted rate and change for every currency held under
  the base. With -assets, the individual records are listed as well.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "", "Base currency. Defaults to market.default_base.")
	f.BoolVar(&c.assets, "assets", false, "Also list the individual asset records.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	d, err := openDesk(ctx, nonEmpty(c.base)...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer d.log.Sync()

	fmt.Println(summaryTable(d.agg.Base(), d.agg.ListSummaries()))
	if c.assets {
		fmt.Println(assetTable(d.agg.Assets(d.agg.Base())))
	}
	return subcommands.ExitSuccess
}

// selectionCmd selects assets of one currency and removes or merges them.
type selectionCmd struct {
	name  string
	merge bool

	base   string
	vcType string
}

func (c *selectionCmd) Name() string { return c.name }
func (c *selectionCmd) Synopsis() string {
	if c.merge {
		return "merge assets of one currency into a single record"
	}
	return "remove assets of one currency"
}
func (c *selectionCmd) Usage() string {
	return fmt.Sprintf(`assets %s [-base <base>] -vc <vcType> <id> ...

  Selects the given asset ids of vcType, runs %s, reloads the base and
  prints its summary. Without ids every asset of vcType is selected.
`, c.name, c.name)
}

func (c *selectionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "", "Base currency. Defaults to market.default_base.")
	f.StringVar(&c.vcType, "vc", "", "Currency whose assets are selected.")
}

func (c *selectionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.vcType == "" {
		fmt.Fprintln(os.Stderr, "-vc is required")
		return subcommands.ExitUsageError
	}

	d, err := openDesk(ctx, nonEmpty(c.base)...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer d.log.Sync()

	ids := f.Args()
	if len(ids) == 0 {
		ids = idsOf(d.agg.Assets(d.agg.Base()), c.vcType)
	}

	d.agg.OnClickSummary(c.vcType)
	for _, id := range ids {
		if !d.agg.Selection().Contains(id) {
			d.agg.OnClickAsset(c.vcType, id)
		}
	}

	if c.merge {
		err = d.agg.OnClickMerge(ctx)
	} else {
		err = d.agg.OnClickRemove(ctx)
	}

	fmt.Println(summaryTable(d.agg.Base(), d.agg.ListSummaries()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
