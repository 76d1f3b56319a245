package main

import (
	"context"
	"fmt"
	"os"

	"github.com/plusplusswift/swift/compiler"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

func main() {
	foldCmd := &cli.Command{
		Name:        "fold",
		Description: "fold constants and report overflows",
		Action:      foldAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("jobs,j", 1, "functions folded in parallel"),
			cli.NewFlag("diag-only", false, "only report diagnostics"),
		},
	}

	printCmd := &cli.Command{
		Name:   "print",
		Action: printAct,
		Args:   cli.Args{},
	}

	app := &cli.Command{
		Name:        "constprop",
		Description: "constprop is a constant propagation pass over textual ssa",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "tlog verbosity topics"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			foldCmd,
			printCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func foldAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	opts := compiler.Options{
		Workers: c.Int("jobs"),
	}

	var errs int

	for _, a := range c.Args {
		res, err := compiler.OptimizeFile(ctx, a, opts)
		if err != nil {
			return errors.Wrap(err, "fold %v", a)
		}

		for _, d := range res.Diags {
			fmt.Fprintf(os.Stderr, "%v\n", d)
		}

		errs += res.Errors()

		tlog.V("stats").Printw("folded", "file", a, "funcs", res.Stats.Funcs, "folded", res.Stats.Folded, "diagnosed", res.Stats.Diagnosed)

		if c.Bool("diag-only") {
			continue
		}

		fmt.Printf("%s", res.Text)
	}

	if errs != 0 {
		return errors.New("%d errors", errs)
	}

	return nil
}

func printAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		b, err := compiler.FormatFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "print %v", a)
		}

		fmt.Printf("%s", b)
	}

	return nil
}
