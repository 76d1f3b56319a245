package apint

import (
	"math/big"

	"tlog.app/go/tlog/tlwire"
)

type (
	// Int is an integer of fixed bit width.
	// It holds a bit pattern, signedness is a property of the operation.
	// Int values are immutable.
	Int struct {
		w int
		v *big.Int // in [0, 2^w)
	}

	binop func(z, x, y *big.Int) *big.Int
)

var one = big.NewInt(1)

func New(w int, x *big.Int) Int {
	if w <= 0 {
		panic("bad width")
	}

	return Int{
		w: w,
		v: new(big.Int).And(x, mask(w)),
	}
}

func FromInt64(w int, x int64) Int {
	return New(w, big.NewInt(x))
}

func MinSigned(w int) Int {
	return New(w, new(big.Int).Lsh(one, uint(w-1)))
}

func MaxSigned(w int) Int {
	return New(w, new(big.Int).Sub(pow2(w-1), one))
}

func (x Int) Width() int { return x.w }

// Uint is the unsigned interpretation.
func (x Int) Uint() *big.Int {
	return new(big.Int).Set(x.v)
}

// Int is the two's complement interpretation.
func (x Int) Int() *big.Int {
	r := new(big.Int).Set(x.v)

	if x.v.Bit(x.w-1) == 1 {
		r.Sub(r, pow2(x.w))
	}

	return r
}

func (x Int) Big(signed bool) *big.Int {
	if signed {
		return x.Int()
	}

	return x.Uint()
}

func (x Int) IsZero() bool {
	return x.v.Sign() == 0
}

func (x Int) IsOne() bool {
	return x.v.Cmp(one) == 0
}

func (x Int) Equal(y Int) bool {
	return x.w == y.w && x.v.Cmp(y.v) == 0
}

func (x Int) Trunc(w int) Int {
	if w > x.w {
		panic("trunc to a wider type")
	}

	return New(w, x.v)
}

func (x Int) ZExt(w int) Int {
	if w < x.w {
		panic("zext to a narrower type")
	}

	return New(w, x.v)
}

func (x Int) SExt(w int) Int {
	if w < x.w {
		panic("sext to a narrower type")
	}

	return New(w, x.Int())
}

func (x Int) SAddOv(y Int) (Int, bool) { return x.ov(y, true, (*big.Int).Add) }
func (x Int) UAddOv(y Int) (Int, bool) { return x.ov(y, false, (*big.Int).Add) }
func (x Int) SSubOv(y Int) (Int, bool) { return x.ov(y, true, (*big.Int).Sub) }
func (x Int) USubOv(y Int) (Int, bool) { return x.ov(y, false, (*big.Int).Sub) }
func (x Int) SMulOv(y Int) (Int, bool) { return x.ov(y, true, (*big.Int).Mul) }
func (x Int) UMulOv(y Int) (Int, bool) { return x.ov(y, false, (*big.Int).Mul) }

// SDivOv divides rounding toward zero. y must not be zero.
func (x Int) SDivOv(y Int) (Int, bool) { return x.ov(y, true, (*big.Int).Quo) }

// SRem has the sign of x. y must not be zero.
func (x Int) SRem(y Int) Int {
	r, _ := x.ov(y, true, (*big.Int).Rem)
	return r
}

func (x Int) UDiv(y Int) Int {
	r, _ := x.ov(y, false, (*big.Int).Quo)
	return r
}

func (x Int) URem(y Int) Int {
	r, _ := x.ov(y, false, (*big.Int).Rem)
	return r
}

// Fits reports whether r is representable in w bits.
func Fits(w int, r *big.Int, signed bool) bool {
	if !signed {
		return r.Sign() >= 0 && r.BitLen() <= w
	}

	lim := pow2(w - 1)

	if r.Sign() >= 0 {
		return r.Cmp(lim) < 0
	}

	return r.CmpAbs(lim) <= 0
}

// Text is decimal.
func (x Int) Text(signed bool) string {
	return x.Big(signed).Text(10)
}

func (x Int) String() string {
	if x.v == nil {
		return "<nil>"
	}

	return x.Text(true)
}

func (x Int) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 2)
	b = e.AppendKeyInt(b, "w", x.w)
	b = e.AppendKeyString(b, "v", x.String())

	return b
}

func (x Int) ov(y Int, signed bool, op binop) (Int, bool) {
	if x.w != y.w {
		panic("width mismatch")
	}

	r := op(new(big.Int), x.Big(signed), y.Big(signed))

	return New(x.w, r), !Fits(x.w, r, signed)
}

func pow2(w int) *big.Int {
	return new(big.Int).Lsh(one, uint(w))
}

func mask(w int) *big.Int {
	m := pow2(w)
	return m.Sub(m, one)
}
