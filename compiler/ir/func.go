package ir

import (
	"github.com/plusplusswift/swift/compiler/tp"
)

func NewFunc(name string) *Func {
	return &Func{Name: name}
}

func (f *Func) NewBlock(label string) int {
	f.Blocks = append(f.Blocks, &Block{Label: label})

	return len(f.Blocks) - 1
}

// Inst returns nil if id was erased or never existed.
func (f *Func) Inst(id ID) *Inst {
	if id < 0 || int(id) >= len(f.Insts) {
		return nil
	}

	return f.Insts[id]
}

// OpOf returns the payload of id if it's of type T.
func OpOf[T Op](f *Func, id ID) (x T, ok bool) {
	in := f.Inst(id)
	if in == nil {
		return x, false
	}

	x, ok = in.Op.(T)

	return x, ok
}

// IntLit returns the literal value of id if it's an integer literal.
func (f *Func) IntLit(id ID) (IntLit, tp.Int, bool) {
	x, ok := OpOf[IntLit](f, id)
	if !ok {
		return x, tp.Int{}, false
	}

	return x, f.Insts[id].Type.(tp.Int), true
}

// Append adds a new instruction to the end of block b.
func (f *Func) Append(b int, op Op, typ tp.Type, args ...ID) ID {
	id := f.alloc(b, op, typ, args)

	blk := f.Blocks[b]
	blk.Code = append(blk.Code, id)

	return id
}

// InsertBefore adds a new instruction right before at in its block.
func (f *Func) InsertBefore(at ID, op Op, typ tp.Type, args ...ID) ID {
	b := f.Insts[at].Block
	id := f.alloc(b, op, typ, args)

	blk := f.Blocks[b]
	i := blk.index(at)

	blk.Code = append(blk.Code, 0)
	copy(blk.Code[i+1:], blk.Code[i:])
	blk.Code[i] = id

	return id
}

func (f *Func) SetSource(id ID, src Source) {
	f.Insts[id].Src = src
}

// ReplaceAllUses makes every reader of old read v instead.
func (f *Func) ReplaceAllUses(old, v ID) {
	if old == v {
		return
	}

	o := f.Insts[old]
	n := f.Insts[v]

	for _, u := range o.Users {
		f.Insts[u.User].Args[u.Arg] = v
	}

	n.Users = append(n.Users, o.Users...)
	o.Users = nil
}

// Erase removes an instruction that has no users.
func (f *Func) Erase(id ID) {
	in := f.Insts[id]
	if in == nil {
		panic("erase of erased instruction")
	}

	if len(in.Users) != 0 {
		panic("erase of used instruction")
	}

	for i, a := range in.Args {
		p := f.Insts[a]
		p.Users = dropUse(p.Users, Use{User: id, Arg: i})
	}

	blk := f.Blocks[in.Block]

	if i := blk.index(id); i >= 0 {
		blk.Code = append(blk.Code[:i], blk.Code[i+1:]...)
	}

	f.Insts[id] = nil
}

func (f *Func) HasSideEffects(id ID) bool {
	switch f.Insts[id].Op.(type) {
	case Arg, Call, Return, Br, CondBr:
		return true
	}

	return false
}

// IsTriviallyDead reports whether id can be erased without changing
// the function's behavior.
func (f *Func) IsTriviallyDead(id ID) bool {
	in := f.Inst(id)

	return in != nil && len(in.Users) == 0 && !f.HasSideEffects(id)
}

// DeleteTriviallyDead erases id if it is trivially dead
// and then every operand that becomes dead after that, transitively.
// It returns erased instructions.
func (f *Func) DeleteTriviallyDead(id ID) (erased []ID) {
	if !f.IsTriviallyDead(id) {
		return nil
	}

	stack := []ID{id}

	for len(stack) != 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.IsTriviallyDead(id) {
			continue
		}

		args := f.Insts[id].Args

		f.Erase(id)
		erased = append(erased, id)

		for _, a := range args {
			if f.IsTriviallyDead(a) {
				stack = append(stack, a)
			}
		}
	}

	return erased
}

// Range calls fn for each instruction in block order.
func (f *Func) Range(fn func(id ID, in *Inst) bool) {
	for _, b := range f.Blocks {
		for _, id := range b.Code {
			if !fn(id, f.Insts[id]) {
				return
			}
		}
	}
}

// Len is the number of live instructions.
func (f *Func) Len() (n int) {
	for _, b := range f.Blocks {
		n += len(b.Code)
	}

	return n
}

func (f *Func) alloc(b int, op Op, typ tp.Type, args []ID) ID {
	id := ID(len(f.Insts))

	in := &Inst{
		Op:    op,
		Type:  typ,
		Args:  append([]ID{}, args...),
		Block: b,
	}

	for i, a := range args {
		p := f.Insts[a]
		p.Users = append(p.Users, Use{User: id, Arg: i})
	}

	f.Insts = append(f.Insts, in)

	return id
}

func dropUse(us []Use, u Use) []Use {
	for i, x := range us {
		if x == u {
			return append(us[:i], us[i+1:]...)
		}
	}

	return us
}
