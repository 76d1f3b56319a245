package fold

import (
	"math/big"

	"github.com/plusplusswift/swift/compiler/apint"
	"github.com/plusplusswift/swift/compiler/tp"
)

// IntegerToFloat rounds src to the nearest value of format to, ties to even.
func IntegerToFloat(src apint.Int, signed bool, to tp.Float) (f *big.Float, overflow bool) {
	return src.ToFloat(signed, to.Prec(), to.MaxExp())
}

func foldIToFP(c call) (Value, Status) {
	x, ok := c.lit(0)
	if !ok {
		return nil, NotFoldable
	}

	to := c.op.Types[1].(tp.Float)

	f, ov := IntegerToFloat(x, c.info.Signed, to)
	if ov {
		c.reportLiteralOverflow(to)

		return nil, Failed
	}

	return Float{Val: f, Type: to}, Folded
}
