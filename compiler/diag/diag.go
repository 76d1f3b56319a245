package diag

import (
	"fmt"
	"sort"
	"sync"

	"github.com/plusplusswift/swift/compiler/ir"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"
	"tlog.app/go/tlog/tlwire"
)

type (
	// Sink receives constant evaluation errors.
	// Severity is up to the implementation.
	Sink interface {
		ArithmeticOverflow(l ir.Loc, lhs, op, rhs, typ string)
		ArithmeticOverflowGeneric(l ir.Loc, lhs, op, rhs string, signed bool, bits int)
		DivisionByZero(l ir.Loc)
		DivisionOverflow(l ir.Loc, num, op, den string)
		LiteralOverflow(l ir.Loc, typ string)
		LiteralOverflowWarning(l ir.Loc, typ string)
	}

	Kind int

	Severity int

	Diagnostic struct {
		Loc      ir.Loc
		Kind     Kind
		Severity Severity
		Message  string

		From loc.PC
	}

	// List collects diagnostics. It's safe for concurrent use.
	List struct {
		mu sync.Mutex
		l  []Diagnostic
	}
)

const (
	ArithmeticOverflow Kind = iota
	ArithmeticOverflowGeneric
	DivisionByZero
	DivisionOverflow
	LiteralOverflow
)

const (
	Error Severity = iota
	Warning
)

var _ Sink = &List{}

func (l *List) ArithmeticOverflow(at ir.Loc, lhs, op, rhs, typ string) {
	l.add(at, ArithmeticOverflow, Error, "arithmetic operation '%s %s %s' (on type '%s') results in an overflow", lhs, op, rhs, typ)
}

func (l *List) ArithmeticOverflowGeneric(at ir.Loc, lhs, op, rhs string, signed bool, bits int) {
	sign := "unsigned"
	if signed {
		sign = "signed"
	}

	l.add(at, ArithmeticOverflowGeneric, Error, "arithmetic operation '%s %s %s' (on %s %d-bit integer type) results in an overflow", lhs, op, rhs, sign, bits)
}

func (l *List) DivisionByZero(at ir.Loc) {
	l.add(at, DivisionByZero, Error, "division by zero")
}

func (l *List) DivisionOverflow(at ir.Loc, num, op, den string) {
	l.add(at, DivisionOverflow, Error, "division '%s %s %s' results in an overflow", num, op, den)
}

func (l *List) LiteralOverflow(at ir.Loc, typ string) {
	l.add(at, LiteralOverflow, Error, "integer literal overflows when stored into '%s'", typ)
}

func (l *List) LiteralOverflowWarning(at ir.Loc, typ string) {
	l.add(at, LiteralOverflow, Warning, "integer literal overflows when stored into '%s'", typ)
}

func (l *List) Diagnostics() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]Diagnostic{}, l.l...)
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.l)
}

// Errors counts error severity diagnostics.
func (l *List) Errors() (n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, d := range l.l {
		if d.Severity == Error {
			n++
		}
	}

	return n
}

// Sort orders diagnostics by location keeping report order for equal ones.
func (l *List) Sort() {
	l.mu.Lock()
	defer l.mu.Unlock()

	sort.SliceStable(l.l, func(i, j int) bool {
		a, b := l.l[i].Loc, l.l[j].Loc

		if a.File != b.File {
			return a.File < b.File
		}

		if a.Line != b.Line {
			return a.Line < b.Line
		}

		return a.Col < b.Col
	})
}

func (l *List) add(at ir.Loc, k Kind, sev Severity, f string, args ...any) {
	d := Diagnostic{
		Loc:      at,
		Kind:     k,
		Severity: sev,
		Message:  fmt.Sprintf(f, args...),
		From:     loc.Caller(2),
	}

	tlog.V("diag").Printw("diagnostic", "diag", d, "from", d.From)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.l = append(l.l, d)
}

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}

	return "error"
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %v: %s", d.Loc, d.Severity, d.Message)
}

func (d Diagnostic) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 3)
	b = e.AppendKeyString(b, "loc", d.Loc.String())
	b = e.AppendKeyString(b, "sev", d.Severity.String())
	b = e.AppendKeyString(b, "msg", d.Message)

	return b
}
