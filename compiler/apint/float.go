package apint

import "math/big"

// ToFloat rounds x to prec significand bits, ties to even.
// Overflow is set when the rounded value exceeds the largest finite
// value of a binary format with the given maximum exponent.
func (x Int) ToFloat(signed bool, prec uint, maxExp int) (f *big.Float, overflow bool) {
	f = new(big.Float).SetPrec(prec).SetMode(big.ToNearestEven)
	f.SetInt(x.Big(signed))

	// f = mant * 2^exp, 0.5 <= |mant| < 1
	exp := f.MantExp(nil)

	return f, exp > maxExp+1
}
