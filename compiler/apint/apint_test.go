package apint

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	assert.Equal(t, "-1", FromInt64(8, 255).Text(true))
	assert.Equal(t, "255", FromInt64(8, -1).Text(false))
	assert.Equal(t, "44", FromInt64(8, 300).Text(false))
	assert.Equal(t, "-128", MinSigned(8).Text(true))
	assert.Equal(t, "127", MaxSigned(8).Text(true))
	assert.Equal(t, "4294967295", FromInt64(32, -1).Text(false))

	assert.True(t, FromInt64(16, 65536).IsZero())
	assert.True(t, FromInt64(1, 1).Equal(FromInt64(1, -1)))
	assert.False(t, FromInt64(8, 1).Equal(FromInt64(16, 1)))
}

func TestCasts(t *testing.T) {
	x := FromInt64(16, 300)

	assert.Equal(t, "44", x.Trunc(8).Text(false))
	assert.Equal(t, "44", x.Trunc(8).ZExt(16).Text(false))

	y := FromInt64(16, -2)

	assert.Equal(t, "-2", y.Trunc(8).SExt(16).Text(true))
	assert.Equal(t, "254", y.Trunc(8).ZExt(16).Text(true))
	assert.Equal(t, "-2", y.SExt(64).Text(true))
	assert.Equal(t, "65534", y.ZExt(64).Text(true))

	assert.Panics(t, func() { x.Trunc(32) })
	assert.Panics(t, func() { x.SExt(8) })
}

func TestOverflowArith(t *testing.T) {
	type op func(x, y Int) (Int, bool)

	for _, tc := range []struct {
		name string
		op   op
		w    int
		x, y int64
		res  string
		ov   bool
	}{
		{"sadd", Int.SAddOv, 32, math.MaxInt32, 1, "-2147483648", true},
		{"sadd", Int.SAddOv, 32, 1, 2, "3", false},
		{"sadd", Int.SAddOv, 8, -128, -1, "127", true},
		{"uadd", Int.UAddOv, 8, 255, 1, "0", true},
		{"uadd", Int.UAddOv, 8, 254, 1, "-1", false},
		{"ssub", Int.SSubOv, 8, -128, 1, "127", true},
		{"ssub", Int.SSubOv, 8, 0, -128, "-128", true},
		{"ssub", Int.SSubOv, 8, -1, -128, "127", false},
		{"usub", Int.USubOv, 8, 0, 1, "-1", true},
		{"usub", Int.USubOv, 8, 5, 5, "0", false},
		{"smul", Int.SMulOv, 8, 16, 8, "-128", true},
		{"smul", Int.SMulOv, 8, -16, 8, "-128", false},
		{"smul", Int.SMulOv, 64, math.MinInt64, -1, "-9223372036854775808", true},
		{"umul", Int.UMulOv, 8, 16, 16, "0", true},
		{"umul", Int.UMulOv, 8, 15, 17, "-1", false},
		{"sadd1", Int.SAddOv, 1, -1, -1, "0", true},
		{"uadd1", Int.UAddOv, 1, 0, 1, "-1", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, ov := tc.op(FromInt64(tc.w, tc.x), FromInt64(tc.w, tc.y))

			assert.Equal(t, tc.res, r.Text(true))
			assert.Equal(t, tc.ov, ov)
			assert.Equal(t, tc.w, r.Width())
		})
	}

	assert.Panics(t, func() { FromInt64(8, 1).SAddOv(FromInt64(16, 1)) })
}

// Exhaustive check against native arithmetic for every pair of 8 bit values.
func TestOverflowArith8(t *testing.T) {
	for x := -128; x < 128; x++ {
		for y := -128; y < 128; y++ {
			a, b := FromInt64(8, int64(x)), FromInt64(8, int64(y))

			r, ov := a.SAddOv(b)
			if s := x + y; int64(int8(s)) != r.Int().Int64() || ov != (s < -128 || s > 127) {
				t.Fatalf("sadd %d %d: %v %v", x, y, r, ov)
			}

			r, ov = a.SMulOv(b)
			if s := x * y; int64(int8(s)) != r.Int().Int64() || ov != (s < -128 || s > 127) {
				t.Fatalf("smul %d %d: %v %v", x, y, r, ov)
			}

			ux, uy := uint8(x), uint8(y)

			r, ov = a.USubOv(b)
			if s := int(ux) - int(uy); uint64(uint8(s)) != r.Uint().Uint64() || ov != (s < 0) {
				t.Fatalf("usub %d %d: %v %v", ux, uy, r, ov)
			}

			r, ov = a.UMulOv(b)
			if s := int(ux) * int(uy); uint64(uint8(s)) != r.Uint().Uint64() || ov != (s > 255) {
				t.Fatalf("umul %d %d: %v %v", ux, uy, r, ov)
			}
		}
	}
}

func TestDivision(t *testing.T) {
	r, ov := FromInt64(32, -7).SDivOv(FromInt64(32, 2))
	assert.Equal(t, "-3", r.Text(true))
	assert.False(t, ov)

	_, ov = MinSigned(32).SDivOv(FromInt64(32, -1))
	assert.True(t, ov)

	assert.Equal(t, "-1", FromInt64(32, -7).SRem(FromInt64(32, 2)).Text(true))
	assert.Equal(t, "0", MinSigned(32).SRem(FromInt64(32, -1)).Text(true))

	assert.Equal(t, "2147483644", FromInt64(32, -7).UDiv(FromInt64(32, 2)).Text(true))
	assert.Equal(t, "1", FromInt64(32, -7).URem(FromInt64(32, 2)).Text(true))
}

func TestWideWidth(t *testing.T) {
	x := New(2048, new(big.Int).Lsh(big.NewInt(1), 2000))

	require.Equal(t, 2048, x.Width())
	assert.True(t, x.Trunc(64).IsZero())

	r, ov := x.SMulOv(x)
	assert.True(t, ov)
	assert.True(t, r.IsZero())
}

func TestToFloat(t *testing.T) {
	f, ov := FromInt64(64, 1<<24+1).ToFloat(true, 24, 127)
	assert.False(t, ov)
	v, _ := f.Float64()
	assert.Equal(t, float64(1<<24), v)

	f, ov = FromInt64(64, 1<<24+3).ToFloat(true, 24, 127)
	assert.False(t, ov)
	v, _ = f.Float64()
	assert.Equal(t, float64(1<<24+4), v)

	f, ov = FromInt64(64, -5).ToFloat(true, 53, 1023)
	assert.False(t, ov)
	v, _ = f.Float64()
	assert.Equal(t, -5.0, v)

	f, ov = FromInt64(8, -1).ToFloat(false, 53, 1023)
	assert.False(t, ov)
	v, _ = f.Float64()
	assert.Equal(t, 255.0, v)

	// half precision: 65504 is the largest finite value,
	// 65520 is halfway to 65536 and rounds up to even.
	_, ov = FromInt64(32, 65519).ToFloat(true, 11, 15)
	assert.False(t, ov)

	_, ov = FromInt64(32, 65520).ToFloat(true, 11, 15)
	assert.True(t, ov)

	_, ov = FromInt64(32, -65520).ToFloat(true, 11, 15)
	assert.True(t, ov)

	p128 := new(big.Int).Lsh(big.NewInt(1), 128)
	p103 := new(big.Int).Lsh(big.NewInt(1), 103)
	halfway := new(big.Int).Sub(p128, p103)

	_, ov = New(256, halfway).ToFloat(true, 24, 127)
	assert.True(t, ov)

	_, ov = New(256, new(big.Int).Sub(halfway, big.NewInt(1))).ToFloat(true, 24, 127)
	assert.False(t, ov)

	_, ov = New(2048, p128).ToFloat(true, 53, 1023)
	assert.False(t, ov)
}
