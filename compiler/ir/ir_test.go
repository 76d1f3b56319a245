package ir

import (
	"testing"

	"github.com/plusplusswift/swift/compiler/apint"
	"github.com/plusplusswift/swift/compiler/tp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var i32 = tp.Int{Bits: 32, Signed: true}

func lit(f *Func, b int, v int64) ID {
	return f.Append(b, IntLit{Val: apint.FromInt64(32, v)}, i32)
}

func TestUseLists(t *testing.T) {
	f := NewFunc("f")
	b := f.NewBlock("bb0")

	x := lit(f, b, 5)
	y := lit(f, b, 7)
	tup := f.Append(b, Tuple{}, tp.Tuple{Elems: []tp.Type{i32, i32}}, x, y, x)
	ret := f.Append(b, Return{}, nil, tup)

	assert.Equal(t, []Use{{User: tup, Arg: 0}, {User: tup, Arg: 2}}, f.Inst(x).Users)
	assert.Equal(t, []Use{{User: ret, Arg: 0}}, f.Inst(tup).Users)

	z := f.InsertBefore(tup, IntLit{Val: apint.FromInt64(32, 9)}, i32)
	assert.Equal(t, []ID{x, y, z, tup, ret}, f.Blocks[b].Code)

	f.ReplaceAllUses(x, z)

	assert.Empty(t, f.Inst(x).Users)
	assert.Equal(t, []ID{z, y, z}, f.Inst(tup).Args)
	assert.Len(t, f.Inst(z).Users, 2)

	assert.True(t, f.IsTriviallyDead(x))
	assert.False(t, f.IsTriviallyDead(ret))

	f.Erase(x)

	assert.Nil(t, f.Inst(x))
	assert.Equal(t, []ID{y, z, tup, ret}, f.Blocks[b].Code)
	assert.Equal(t, 4, f.Len())

	assert.Panics(t, func() { f.Erase(z) })
	assert.Panics(t, func() { f.Erase(x) })
}

func TestDeleteTriviallyDead(t *testing.T) {
	f := NewFunc("f")
	b := f.NewBlock("bb0")

	x := lit(f, b, 5)
	y := lit(f, b, 7)
	tup := f.Append(b, Tuple{}, tp.Tuple{Elems: []tp.Type{i32, i32}}, x, y)
	ext := f.Append(b, TupleExtract{Index: 0}, i32, tup)
	call := f.Append(b, Call{Func: "use"}, nil, y)
	arg := f.Append(b, Arg{N: 0}, i32)

	assert.Nil(t, f.DeleteTriviallyDead(tup))
	assert.Nil(t, f.DeleteTriviallyDead(call))
	assert.Nil(t, f.DeleteTriviallyDead(arg))

	erased := f.DeleteTriviallyDead(ext)

	// y is still read by the call
	assert.ElementsMatch(t, []ID{ext, tup, x}, erased)
	assert.Equal(t, []ID{y, call, arg}, f.Blocks[b].Code)
	assert.Equal(t, []Use{{User: call, Arg: 0}}, f.Inst(y).Users)
}

func TestAccessors(t *testing.T) {
	f := NewFunc("f")
	b := f.NewBlock("bb0")

	x := lit(f, b, -3)
	ext := f.Append(b, StructExtract{Field: "a"}, i32, x)

	l, typ, ok := f.IntLit(x)
	require.True(t, ok)
	assert.Equal(t, i32, typ)
	assert.Equal(t, "-3", l.Val.String())

	_, _, ok = f.IntLit(ext)
	assert.False(t, ok)

	se, ok := OpOf[StructExtract](f, ext)
	require.True(t, ok)
	assert.Equal(t, "a", se.Field)

	_, ok = OpOf[StructExtract](f, 100)
	assert.False(t, ok)

	assert.True(t, IsLiteral(f.Inst(x).Op))
	assert.False(t, IsAggregate(f.Inst(x).Op))
	assert.True(t, IsAggregate(Struct{}))

	assert.False(t, Loc{}.IsValid())
	assert.Equal(t, "a.swift:3:9", Loc{File: "a.swift", Line: 3, Col: 9}.String())
}
