package builtin

import (
	"github.com/plusplusswift/swift/compiler/tp"
	"tlog.app/go/errors"
)

type (
	Kind int

	// Info describes a builtin operation.
	Info struct {
		Kind Kind
		Name string

		Args  int // operands
		Types int // type parameters

		// Op, Signed and Report describe arithmetic with overflow.
		// Report is set for the form carrying a report flag operand.
		Op     string
		Signed bool
		Report bool

		check checker
	}

	checker func(i *Info, ts, args []tp.Type) (tp.Type, error)
)

const (
	Invalid Kind = iota

	AddWithOverflow
	SubWithOverflow
	MulWithOverflow

	Trunc
	ZExt
	SExt

	SDiv
	ExactSDiv
	SRem
	UDiv
	ExactUDiv
	URem

	STruncWithOverflow
	UTruncWithOverflow

	IToFPWithOverflow
)

var registry = map[string]*Info{}

func init() {
	for _, x := range []struct {
		k    Kind
		op   string
		name string
	}{
		{AddWithOverflow, "+", "add"},
		{SubWithOverflow, "-", "sub"},
		{MulWithOverflow, "*", "mul"},
	} {
		for _, signed := range []bool{true, false} {
			s := "u"
			if signed {
				s = "s"
			}

			add(&Info{Kind: x.k, Name: s + x.name + "_with_overflow", Args: 3, Types: 1, Op: x.op, Signed: signed, Report: true, check: checkOverflow})
			add(&Info{Kind: x.k, Name: "llvm." + s + x.name + ".with.overflow", Args: 2, Types: 1, Op: x.op, Signed: signed, check: checkOverflow})
		}
	}

	add(&Info{Kind: Trunc, Name: "trunc", Args: 1, Types: 2, check: checkCast(-1)})
	add(&Info{Kind: ZExt, Name: "zext", Args: 1, Types: 2, check: checkCast(1)})
	add(&Info{Kind: SExt, Name: "sext", Args: 1, Types: 2, check: checkCast(1)})

	add(&Info{Kind: SDiv, Name: "sdiv", Args: 2, Types: 1, Op: "/", Signed: true, check: checkBinary})
	add(&Info{Kind: ExactSDiv, Name: "exact_sdiv", Args: 2, Types: 1, Op: "/", Signed: true, check: checkBinary})
	add(&Info{Kind: SRem, Name: "srem", Args: 2, Types: 1, Op: "%", Signed: true, check: checkBinary})
	add(&Info{Kind: UDiv, Name: "udiv", Args: 2, Types: 1, Op: "/", check: checkBinary})
	add(&Info{Kind: ExactUDiv, Name: "exact_udiv", Args: 2, Types: 1, Op: "/", check: checkBinary})
	add(&Info{Kind: URem, Name: "urem", Args: 2, Types: 1, Op: "%", check: checkBinary})

	add(&Info{Kind: STruncWithOverflow, Name: "strunc_with_overflow", Args: 1, Types: 2, Signed: true, check: checkCast(0)})
	add(&Info{Kind: UTruncWithOverflow, Name: "utrunc_with_overflow", Args: 1, Types: 2, check: checkCast(0)})

	add(&Info{Kind: IToFPWithOverflow, Name: "itofp_with_overflow", Args: 1, Types: 2, Signed: true, check: checkIToFP})
}

func add(i *Info) {
	if _, ok := registry[i.Name]; ok {
		panic("duplicate builtin: " + i.Name)
	}

	registry[i.Name] = i
}

func Lookup(name string) (*Info, bool) {
	i, ok := registry[name]
	return i, ok
}

// Check validates type parameters and operand types
// and returns the result type.
func (i *Info) Check(ts, args []tp.Type) (tp.Type, error) {
	if len(ts) != i.Types {
		return nil, errors.New("%v: %d type parameters expected, got %d", i.Name, i.Types, len(ts))
	}

	if len(args) != i.Args {
		return nil, errors.New("%v: %d operands expected, got %d", i.Name, i.Args, len(args))
	}

	return i.check(i, ts, args)
}

func (k Kind) String() string {
	switch k {
	case AddWithOverflow:
		return "add_with_overflow"
	case SubWithOverflow:
		return "sub_with_overflow"
	case MulWithOverflow:
		return "mul_with_overflow"
	case Trunc:
		return "trunc"
	case ZExt:
		return "zext"
	case SExt:
		return "sext"
	case SDiv:
		return "sdiv"
	case ExactSDiv:
		return "exact_sdiv"
	case SRem:
		return "srem"
	case UDiv:
		return "udiv"
	case ExactUDiv:
		return "exact_udiv"
	case URem:
		return "urem"
	case STruncWithOverflow:
		return "strunc_with_overflow"
	case UTruncWithOverflow:
		return "utrunc_with_overflow"
	case IToFPWithOverflow:
		return "itofp_with_overflow"
	}

	return "invalid"
}

func checkOverflow(i *Info, ts, args []tp.Type) (tp.Type, error) {
	t, ok := ts[0].(tp.Int)
	if !ok {
		return nil, errors.New("%v: integer type expected: %v", i.Name, ts[0])
	}

	if err := sameWidth(i, t, args[:2]); err != nil {
		return nil, err
	}

	if i.Report && !tp.SameWidth(args[2], tp.Bool) {
		return nil, errors.New("%v: report flag must be i1: %v", i.Name, args[2])
	}

	return tp.Tuple{Elems: []tp.Type{t, tp.Bool}}, nil
}

func checkBinary(i *Info, ts, args []tp.Type) (tp.Type, error) {
	t, ok := ts[0].(tp.Int)
	if !ok {
		return nil, errors.New("%v: integer type expected: %v", i.Name, ts[0])
	}

	if err := sameWidth(i, t, args); err != nil {
		return nil, err
	}

	return t, nil
}

// checkCast with dir < 0 requires narrowing, dir > 0 widening
// and dir == 0 not widening.
func checkCast(dir int) checker {
	return func(i *Info, ts, args []tp.Type) (tp.Type, error) {
		from, ok := ts[0].(tp.Int)
		if !ok {
			return nil, errors.New("%v: integer type expected: %v", i.Name, ts[0])
		}

		to, ok := ts[1].(tp.Int)
		if !ok {
			return nil, errors.New("%v: integer type expected: %v", i.Name, ts[1])
		}

		if dir < 0 && to.Bits >= from.Bits ||
			dir > 0 && to.Bits <= from.Bits ||
			dir == 0 && to.Bits > from.Bits {
			return nil, errors.New("%v: bad widths: %v to %v", i.Name, from, to)
		}

		if err := sameWidth(i, from, args); err != nil {
			return nil, err
		}

		return to, nil
	}
}

func checkIToFP(i *Info, ts, args []tp.Type) (tp.Type, error) {
	from, ok := ts[0].(tp.Int)
	if !ok {
		return nil, errors.New("%v: integer type expected: %v", i.Name, ts[0])
	}

	to, ok := ts[1].(tp.Float)
	if !ok {
		return nil, errors.New("%v: float type expected: %v", i.Name, ts[1])
	}

	if err := sameWidth(i, from, args); err != nil {
		return nil, err
	}

	return to, nil
}

func sameWidth(i *Info, t tp.Int, args []tp.Type) error {
	for j, a := range args {
		if !tp.SameWidth(t, a) {
			return errors.New("%v: operand %d: %v expected, got %v", i.Name, j, t, a)
		}
	}

	return nil
}
