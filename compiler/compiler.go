package compiler

import (
	"context"
	"os"

	"github.com/plusplusswift/swift/compiler/constprop"
	"github.com/plusplusswift/swift/compiler/diag"
	"github.com/plusplusswift/swift/compiler/format"
	"github.com/plusplusswift/swift/compiler/parse"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	Options struct {
		Workers int
	}

	Result struct {
		Text  []byte
		Diags []diag.Diagnostic
		Stats constprop.Stats
	}
)

func OptimizeFile(ctx context.Context, name string, opts Options) (*Result, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Optimize(ctx, name, text, opts)
}

// Optimize folds constants of the module in text form
// and returns it printed back with the diagnostics sorted by location.
func Optimize(ctx context.Context, name string, text []byte, opts Options) (res *Result, err error) {
	m, err := parse.Parse(ctx, name, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	var l diag.List

	p := constprop.Pass{
		Sink:    &l,
		Workers: opts.Workers,
	}

	res = &Result{}

	res.Stats = p.Run(ctx, m)

	res.Text, err = format.Module(ctx, nil, m)
	if err != nil {
		return nil, errors.Wrap(err, "format")
	}

	l.Sort()
	res.Diags = l.Diagnostics()

	return res, nil
}

// Errors counts error severity diagnostics.
func (r *Result) Errors() (n int) {
	for _, d := range r.Diags {
		if d.Severity == diag.Error {
			n++
		}
	}

	return n
}

func FormatFile(ctx context.Context, name string) ([]byte, error) {
	m, err := parse.ParseFile(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	return format.Module(ctx, nil, m)
}
