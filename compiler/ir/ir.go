package ir

import (
	"fmt"
	"math/big"

	"github.com/plusplusswift/swift/compiler/apint"
	"github.com/plusplusswift/swift/compiler/tp"
	"tlog.app/go/tlog/tlwire"
)

type (
	// ID identifies an instruction within its function.
	// IDs are never reused, so an ID of an erased instruction
	// stays invalid.
	ID int

	Module struct {
		Name  string
		Funcs []*Func
	}

	Func struct {
		Name   string
		Blocks []*Block

		Insts []*Inst // by ID, nil once erased
	}

	Block struct {
		Label string
		Code  []ID
	}

	Inst struct {
		Op    Op
		Type  tp.Type // nil if there is no result
		Args  []ID
		Users []Use

		Block int
		Src   Source
	}

	// Use is an operand slot reading a value.
	Use struct {
		User ID
		Arg  int
	}

	Source struct {
		Loc  Loc
		Expr *Expr
	}

	Loc struct {
		File      string
		Line, Col int
	}

	// Expr describes the source call an instruction was lowered from.
	Expr struct {
		Type string   // result type
		Args []string // argument types
	}

	Op interface {
		op()
	}

	IntLit struct {
		Val apint.Int
	}

	FloatLit struct {
		Val *big.Float
	}

	// Arg is a function parameter.
	Arg struct {
		N int
	}

	Builtin struct {
		Name  string
		Types []tp.Type
	}

	Tuple struct{}

	Struct struct{}

	TupleExtract struct {
		Index int
	}

	StructExtract struct {
		Field string
	}

	Call struct {
		Func string
	}

	Return struct{}

	Br struct {
		To int
	}

	CondBr struct {
		Then, Else int
	}
)

const Nil ID = -1

func (IntLit) op()        {}
func (FloatLit) op()      {}
func (Arg) op()           {}
func (Builtin) op()       {}
func (Tuple) op()         {}
func (Struct) op()        {}
func (TupleExtract) op()  {}
func (StructExtract) op() {}
func (Call) op()          {}
func (Return) op()        {}
func (Br) op()            {}
func (CondBr) op()        {}

// IsLiteral reports whether op is a literal constant.
func IsLiteral(op Op) bool {
	switch op.(type) {
	case IntLit, FloatLit:
		return true
	}

	return false
}

// IsAggregate reports whether op builds a tuple or a struct.
func IsAggregate(op Op) bool {
	switch op.(type) {
	case Tuple, Struct:
		return true
	}

	return false
}

func (l Loc) IsValid() bool {
	return l.Line > 0
}

func (l Loc) String() string {
	if !l.IsValid() {
		return "<unknown>"
	}

	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

func (l Loc) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	return e.AppendString(b, l.String())
}

func (b *Block) index(id ID) int {
	for i, x := range b.Code {
		if x == id {
			return i
		}
	}

	return -1
}
