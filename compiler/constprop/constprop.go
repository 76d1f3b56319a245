package constprop

import (
	"context"
	"sync"

	"github.com/plusplusswift/swift/compiler/diag"
	"github.com/plusplusswift/swift/compiler/ir"
	"golang.org/x/sync/errgroup"
	"tlog.app/go/tlog"
)

type (
	Pass struct {
		Sink diag.Sink

		// Workers is the number of functions processed concurrently.
		// Diagnostics order is deterministic only if it's 1 or less.
		Workers int
	}

	Stats struct {
		Funcs     int
		Folded    int
		Diagnosed int
	}
)

// Propagate folds constants in every function of m
// and reports evaluation errors to sink.
func Propagate(ctx context.Context, m *ir.Module, sink diag.Sink) {
	p := Pass{Sink: sink}

	p.Run(ctx, m)
}

func (p *Pass) Run(ctx context.Context, m *ir.Module) (st Stats) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "constprop: module", "name", m.Name, "funcs", len(m.Funcs), "workers", p.Workers)
	defer tr.Finish("folded", &st.Folded, "diagnosed", &st.Diagnosed)

	if p.Workers <= 1 {
		for _, f := range m.Funcs {
			st.Add(p.RunFunc(ctx, f))
		}

		return st
	}

	var mu sync.Mutex
	var g errgroup.Group

	g.SetLimit(p.Workers)

	for _, f := range m.Funcs {
		g.Go(func() error {
			fs := p.RunFunc(ctx, f)

			mu.Lock()
			st.Add(fs)
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	return st
}

func (s *Stats) Add(x Stats) {
	s.Funcs += x.Funcs
	s.Folded += x.Folded
	s.Diagnosed += x.Diagnosed
}
