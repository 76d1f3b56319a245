package parse

import (
	"strconv"

	"github.com/plusplusswift/swift/compiler/tp"
)

func (p *parser) typ() (tp.Type, error) {
	st := p.i

	switch p.peek() {
	case '(':
		p.i++

		var t tp.Tuple

		for !p.punct(')') {
			if len(t.Elems) != 0 {
				if err := p.expect(','); err != nil {
					return nil, err
				}
			}

			e, err := p.typ()
			if err != nil {
				return nil, err
			}

			t.Elems = append(t.Elems, e)
		}

		return t, nil
	case '{':
		p.i++

		var names []string
		var types []tp.Type

		for !p.punct('}') {
			if len(names) != 0 {
				if err := p.expect(','); err != nil {
					return nil, err
				}
			}

			fst := p.i

			n, err := p.ident()
			if err != nil {
				return nil, err
			}

			for _, x := range names {
				if x == n {
					return nil, p.errorf(fst, "duplicate field: %v", n)
				}
			}

			if err = p.expect(':'); err != nil {
				return nil, err
			}

			t, err := p.typ()
			if err != nil {
				return nil, err
			}

			names = append(names, n)
			types = append(types, t)
		}

		return tp.NewStruct(names, types), nil
	}

	w, err := p.ident()
	if err != nil {
		return nil, p.errorf(st, "type expected")
	}

	if len(w) < 2 {
		return nil, p.errorf(st, "bad type: %v", w)
	}

	bits, err := strconv.ParseInt(w[1:], 10, 16)
	if err != nil || bits <= 0 {
		return nil, p.errorf(st, "bad type: %v", w)
	}

	switch w[0] {
	case 'i', 'u':
		return tp.Int{Bits: int16(bits), Signed: w[0] == 'i'}, nil
	case 'f':
		if !tp.ValidFloat(int16(bits)) {
			return nil, p.errorf(st, "unsupported float width: %v", w)
		}

		return tp.Float{Bits: int16(bits)}, nil
	}

	return nil, p.errorf(st, "bad type: %v", w)
}
