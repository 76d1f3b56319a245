package constprop

import (
	"context"

	"github.com/plusplusswift/swift/compiler/fold"
	"github.com/plusplusswift/swift/compiler/ir"
	"github.com/plusplusswift/swift/compiler/set"
	"tlog.app/go/tlog"
)

// RunFunc folds f to a fixed point.
// Instructions are visited in ascending ID order,
// so are the diagnostics reported.
func (p *Pass) RunFunc(ctx context.Context, f *ir.Func) (st Stats) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "constprop: func", "name", f.Name, "insts", f.Len())
	defer tr.Finish("folded", &st.Folded, "diagnosed", &st.Diagnosed)

	st.Funcs = 1

	if tr.If("dump_func_before") {
		dump(tr, f, "code before")
	}

	q := set.NewOrdered[ir.ID](len(f.Insts))

	var failed set.Bits[ir.ID]

	f.Range(func(id ir.ID, in *ir.Inst) bool {
		if len(in.Users) != 0 {
			q.Push(id)
		}

		return true
	})

	for {
		id, ok := q.Pop()
		if !ok {
			break
		}

		in := f.Inst(id)
		if in == nil || len(in.Users) == 0 || failed.IsSet(id) {
			continue
		}

		v, res := fold.Inst(f, id, p.Sink)

		switch res {
		case fold.NotFoldable:
			continue
		case fold.Failed:
			tr.V("fold_failed").Printw("evaluation failed", "id", id, "typ", tlog.NextAsType, in.Op, "op", in.Op, "loc", in.Src.Loc)

			failed.Set(id)

			continue
		}

		tr.V("fold").Printw("folded", "id", id, "typ", tlog.NextAsType, in.Op, "op", in.Op, "val", v)

		for _, u := range in.Users {
			q.Push(u.User)

			// extracting from an aggregate may become foldable too
			if user := f.Insts[u.User]; ir.IsAggregate(user.Op) {
				for _, uu := range user.Users {
					q.Push(uu.User)
				}
			}
		}

		c := materialize(f, id, v)

		f.ReplaceAllUses(id, c)
		q.Remove(id)

		for _, d := range f.DeleteTriviallyDead(id) {
			q.Remove(d)
		}

		st.Folded++
	}

	st.Diagnosed = failed.Size()

	if tr.If("dump_func_after") {
		dump(tr, f, "code after")
	}

	return st
}

// materialize inserts literal instructions for v right before at
// and returns the value replacing at.
func materialize(f *ir.Func, at ir.ID, v fold.Value) ir.ID {
	var id ir.ID

	switch v := v.(type) {
	case fold.Ref:
		return ir.ID(v)
	case fold.Int:
		id = f.InsertBefore(at, ir.IntLit{Val: v.Val}, v.Type)
	case fold.Float:
		id = f.InsertBefore(at, ir.FloatLit{Val: v.Val}, v.Type)
	case fold.Tuple:
		elems := make([]ir.ID, len(v.Elems))

		for i, e := range v.Elems {
			elems[i] = materialize(f, at, e)
		}

		id = f.InsertBefore(at, ir.Tuple{}, v.Type, elems...)
	default:
		panic(v)
	}

	f.SetSource(id, ir.Source{Loc: f.Insts[at].Src.Loc})

	return id
}

func dump(tr tlog.Span, f *ir.Func, msg string) {
	f.Range(func(id ir.ID, in *ir.Inst) bool {
		tr.Printw(msg, "id", id, "block", in.Block, "tp", in.Type, "typ", tlog.NextAsType, in.Op, "val", in.Op, "args", in.Args, "users", len(in.Users))

		return true
	})
}
