package tp

import (
	"strconv"
	"strings"
)

type (
	Type interface {
		Size() int
		String() string
	}

	// Int is a builtin integer of fixed width.
	// Signed is a tag for printing and diagnostics,
	// arithmetic signedness is chosen by the operation.
	Int struct {
		Bits   int16
		Signed bool
	}

	// Float is an IEEE binary format identified by its total width.
	Float struct {
		Bits int16
	}

	Tuple struct {
		Elems []Type
	}

	Struct struct {
		Fields []StructField
	}

	StructField struct {
		Name   string
		Offset int
		Type   Type
	}

	floatFormat struct {
		prec   uint
		maxExp int
	}
)

var (
	Bool = Int{Bits: 1, Signed: true}

	formats = map[int16]floatFormat{
		16:  {prec: 11, maxExp: 15},
		32:  {prec: 24, maxExp: 127},
		64:  {prec: 53, maxExp: 1023},
		80:  {prec: 64, maxExp: 16383},
		128: {prec: 113, maxExp: 16383},
	}
)

func (x Int) Size() int {
	return (int(x.Bits) + 7) / 8
}

func (x Int) String() string {
	if x.Signed {
		return "i" + strconv.Itoa(int(x.Bits))
	}

	return "u" + strconv.Itoa(int(x.Bits))
}

func ValidFloat(bits int16) bool {
	_, ok := formats[bits]
	return ok
}

func (x Float) Size() int {
	return int(x.Bits) / 8
}

func (x Float) String() string {
	return "f" + strconv.Itoa(int(x.Bits))
}

// Prec is the significand precision including the implicit bit.
func (x Float) Prec() uint {
	return formats[x.Bits].prec
}

// MaxExp is the largest unbiased exponent of a finite value.
func (x Float) MaxExp() int {
	return formats[x.Bits].maxExp
}

func (x Tuple) Size() (s int) {
	for _, e := range x.Elems {
		s += e.Size()
	}

	return s
}

func (x Tuple) String() string {
	var b strings.Builder

	b.WriteByte('(')

	for i, e := range x.Elems {
		if i != 0 {
			b.WriteString(", ")
		}

		b.WriteString(e.String())
	}

	b.WriteByte(')')

	return b.String()
}

func NewStruct(names []string, types []Type) Struct {
	s := Struct{Fields: make([]StructField, len(names))}
	off := 0

	for i, name := range names {
		s.Fields[i] = StructField{
			Name:   name,
			Offset: off,
			Type:   types[i],
		}

		off += types[i].Size()
	}

	return s
}

func (x Struct) Size() (s int) {
	for _, f := range x.Fields {
		s += f.Type.Size()
	}

	return s
}

func (x Struct) Field(name string) int {
	for i, f := range x.Fields {
		if f.Name == name {
			return i
		}
	}

	return -1
}

func (x Struct) String() string {
	var b strings.Builder

	b.WriteByte('{')

	for i, f := range x.Fields {
		if i != 0 {
			b.WriteString(", ")
		}

		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Type.String())
	}

	b.WriteByte('}')

	return b.String()
}

func Equal(x, y Type) bool {
	switch x := x.(type) {
	case Int:
		y, ok := y.(Int)
		return ok && x == y
	case Float:
		y, ok := y.(Float)
		return ok && x == y
	case Tuple:
		y, ok := y.(Tuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}

		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}

		return true
	case Struct:
		y, ok := y.(Struct)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}

		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name || !Equal(x.Fields[i].Type, y.Fields[i].Type) {
				return false
			}
		}

		return true
	case nil:
		return y == nil
	}

	return false
}

// SameWidth reports whether x and y are integers of the same width
// regardless of their signedness tags.
func SameWidth(x, y Type) bool {
	a, ok := x.(Int)
	if !ok {
		return false
	}

	b, ok := y.(Int)

	return ok && a.Bits == b.Bits
}
