package builtin

import (
	"testing"

	"github.com/plusplusswift/swift/compiler/tp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	i8  = tp.Int{Bits: 8, Signed: true}
	u8  = tp.Int{Bits: 8}
	i16 = tp.Int{Bits: 16, Signed: true}
	i32 = tp.Int{Bits: 32, Signed: true}
	f64 = tp.Float{Bits: 64}
)

func TestLookup(t *testing.T) {
	i, ok := Lookup("ssub_with_overflow")
	require.True(t, ok)
	assert.Equal(t, SubWithOverflow, i.Kind)
	assert.Equal(t, "-", i.Op)
	assert.True(t, i.Signed)
	assert.True(t, i.Report)
	assert.Equal(t, 3, i.Args)

	i, ok = Lookup("llvm.umul.with.overflow")
	require.True(t, ok)
	assert.Equal(t, MulWithOverflow, i.Kind)
	assert.False(t, i.Signed)
	assert.False(t, i.Report)
	assert.Equal(t, 2, i.Args)

	_, ok = Lookup("fadd")
	assert.False(t, ok)

	assert.Equal(t, "exact_udiv", ExactUDiv.String())
	assert.Equal(t, "invalid", Invalid.String())
}

func TestCheck(t *testing.T) {
	i, _ := Lookup("sadd_with_overflow")

	r, err := i.Check([]tp.Type{i32}, []tp.Type{i32, i32, tp.Bool})
	require.NoError(t, err)
	assert.True(t, tp.Equal(tp.Tuple{Elems: []tp.Type{i32, tp.Bool}}, r))

	_, err = i.Check([]tp.Type{i32}, []tp.Type{i32, i16, tp.Bool})
	assert.Error(t, err)

	_, err = i.Check([]tp.Type{i32}, []tp.Type{i32, i32})
	assert.Error(t, err)

	_, err = i.Check([]tp.Type{i32}, []tp.Type{i32, i32, i8})
	assert.Error(t, err)

	i, _ = Lookup("trunc")

	r, err = i.Check([]tp.Type{i16, u8}, []tp.Type{i16})
	require.NoError(t, err)
	assert.Equal(t, u8, r)

	_, err = i.Check([]tp.Type{i8, i16}, []tp.Type{i8})
	assert.Error(t, err)

	i, _ = Lookup("sext")

	_, err = i.Check([]tp.Type{i16, i8}, []tp.Type{i16})
	assert.Error(t, err)

	i, _ = Lookup("utrunc_with_overflow")

	r, err = i.Check([]tp.Type{i16, i16}, []tp.Type{i16})
	require.NoError(t, err)
	assert.Equal(t, i16, r)

	i, _ = Lookup("itofp_with_overflow")

	r, err = i.Check([]tp.Type{i32, f64}, []tp.Type{i32})
	require.NoError(t, err)
	assert.Equal(t, f64, r)

	_, err = i.Check([]tp.Type{i32, i32}, []tp.Type{i32})
	assert.Error(t, err)

	i, _ = Lookup("urem")

	r, err = i.Check([]tp.Type{u8}, []tp.Type{i8, u8})
	require.NoError(t, err)
	assert.Equal(t, u8, r)
}
