package fold

import "github.com/plusplusswift/swift/compiler/ir"

// AggregateExtract folds reading element i of a tuple or a struct
// to the value it was built from. Operands don't need to be constant.
func AggregateExtract(f *ir.Func, x ir.ID, i int) (Value, Status) {
	agg := f.Inst(x)
	if agg == nil || !ir.IsAggregate(agg.Op) {
		return nil, NotFoldable
	}

	if i < 0 || i >= len(agg.Args) {
		return nil, NotFoldable
	}

	return Ref(agg.Args[i]), Folded
}
