package back

import (
	"context"
	"maps"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/stackbf/compiler/bf"
	"github.com/slowlang/stackbf/compiler/format"
	"github.com/slowlang/stackbf/compiler/ir"
)

type (
	// Compiler lowers ir into the tape machine code.
	// Zero value emits code without comments.
	Compiler struct {
		Format format.Options
	}

	// State is threaded through compilation by value.
	// Pointer is always at cell Depth, variable lives at cell Vars[name].
	State struct {
		Vars  map[string]int
		Depth int
		Code  []byte

		lvl int
	}
)

var (
	ErrUndefinedVariable  = errors.New("undefined variable")
	ErrNegativeStackDepth = errors.New("negative stack depth")
	ErrStackImbalance     = errors.New("stack imbalance")
	ErrConditionDepth     = errors.New("condition must push exactly one value")
	ErrThenDepth          = errors.New("then block must not change stack depth")

	ErrDuplicateVariable  = errors.New("duplicate variable")
	ErrVariableOutOfReach = errors.New("variable is not below stack top")
	ErrNegativeConstant   = errors.New("negative constant")
	ErrUnsupportedInstr   = errors.New("unsupported instruction")
	ErrNilProgram         = errors.New("nil program")
)

func New() *Compiler {
	return &Compiler{Format: format.Default()}
}

func (c *Compiler) Program(ctx context.Context, p *ir.Program) ([]byte, error) {
	if p == nil {
		return nil, ErrNilProgram
	}

	return c.Scope(ctx, p.Vars, p.Body)
}

// Scope declares vars in order, each in its own cell, and compiles body.
// Stack depth left at the end is not checked.
func (c *Compiler) Scope(ctx context.Context, vars []string, body []ir.Instr) (_ []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "back: scope", "vars", vars, "instrs", len(body))
	defer tr.Finish("err", &err)

	s := State{Vars: make(map[string]int, len(vars))}

	for _, name := range vars {
		if _, ok := s.Vars[name]; ok {
			return nil, errors.Wrap(ErrDuplicateVariable, "let %v", name)
		}

		s.Vars[name] = s.Depth

		s, err = c.append(s, "let "+name, ">", 1)
		if err != nil {
			return nil, errors.Wrap(err, "let %v", name)
		}
	}

	s.Code = c.Format.Break(s.Code)

	s, err = c.compileList(ctx, s, body)
	if err != nil {
		return nil, err
	}

	if tr.If("dump_code") {
		tr.Printw("code", "depth", s.Depth, "size", len(s.Code), "code", s.Code)
	}

	return s.Code, nil
}

func (c *Compiler) compileList(ctx context.Context, s State, list []ir.Instr) (_ State, err error) {
	tr := tlog.SpanFromContext(ctx)

	for i, x := range list {
		tr.V("instr").Printw("instr", "i", i, "lvl", s.lvl, "depth", s.Depth, "x", ir.Label(x))

		s, err = c.compileInstr(ctx, s, x)
		if err != nil {
			return s, errors.Wrap(err, "instr %d (%v)", i, ir.Label(x))
		}
	}

	return s, nil
}

func (c *Compiler) compileInstr(ctx context.Context, s State, x ir.Instr) (State, error) {
	switch x := x.(type) {
	case ir.Clear:
		return c.append(s, "clear", "[-]", 0)
	case ir.Copy:
		return c.append(s, "copy", "[>+>+<<-]>>[<<+>>-]<", 1)
	case ir.Inc:
		return c.append(s, "inc", "+", 0)
	case ir.Dec:
		return c.append(s, "dec", "-", 0)
	case ir.Add:
		return c.append(s, "add", "[<+>-]<", -1)
	case ir.Sub:
		return c.append(s, "sub", "[<->-]<", -1)
	case ir.Mul:
		return c.append(s, "mul", "<[>>+<<-]>[>[<<+>>>+<-]>[<+>-]<<-]>[-]<<", -1)
	case ir.Bool:
		return c.append(s, "bool", "[[-]>+<]>[<+>-]<", 0)
	case ir.Read:
		return c.append(s, "read", ">,", 1)
	case ir.Write:
		return c.append(s, "write", ".[-]<", -1)
	case ir.Push:
		if x.N < 0 {
			return s, errors.Wrap(ErrNegativeConstant, "push %d", x.N)
		}

		return c.append(s, ir.Label(x), ">"+bf.Number(x.N), 1)
	case ir.Addc:
		if x.N < 0 {
			return s, errors.Wrap(ErrNegativeConstant, "addc %d", x.N)
		}

		return c.append(s, ir.Label(x), bf.Repeat(x.N, "+"), 0)
	case ir.Subc:
		if x.N < 0 {
			return s, errors.Wrap(ErrNegativeConstant, "subc %d", x.N)
		}

		return c.append(s, ir.Label(x), bf.Repeat(x.N, "-"), 0)
	case ir.Get:
		a, err := s.addr(x.Name)
		if err != nil {
			return s, err
		}

		if a < 0 {
			return s, errors.Wrap(ErrVariableOutOfReach, "%v: slot %d, depth %d", x.Name, s.Vars[x.Name], s.Depth)
		}

		return c.append(s, ir.Label(x), ">"+bf.CopyRight(1+a), 1)
	case ir.Set:
		a, err := s.addr(x.Name)
		if err != nil {
			return s, err
		}

		if a < 1 {
			return s, errors.Wrap(ErrVariableOutOfReach, "%v: slot %d, depth %d", x.Name, s.Vars[x.Name], s.Depth)
		}

		return c.append(s, ir.Label(x), bf.MoveLeft(a)+"<", -1)
	case ir.Print:
		return c.append(s, ir.Label(x), ">"+bf.Print(x.Text)+"<", 0)
	case ir.Stat:
		return c.compileStat(ctx, s, x)
	case ir.If:
		return c.compileIf(ctx, s, x)
	default:
		return s, errors.Wrap(ErrUnsupportedInstr, "%T", x)
	}
}

func (c *Compiler) compileStat(ctx context.Context, s State, x ir.Stat) (State, error) {
	body, err := c.compileList(ctx, s.sub(), x.Body)
	if err != nil {
		return s, errors.Wrap(err, "stat")
	}

	if body.Depth != s.Depth {
		return s, errors.Wrap(ErrStackImbalance, "stat: depth %d -> %d", s.Depth, body.Depth)
	}

	var b []byte

	b = c.Format.Break(b)
	b = append(b, body.Code...)
	b = c.Format.Mark(b, s.lvl, "end stat")

	return c.append(s, "stat", string(b), 0)
}

func (c *Compiler) compileIf(ctx context.Context, s State, x ir.If) (State, error) {
	cond, err := c.compileList(ctx, s.sub(), x.Cond)
	if err != nil {
		return s, errors.Wrap(err, "cond")
	}

	if cond.Depth != s.Depth+1 {
		return s, errors.Wrap(ErrConditionDepth, "if: depth %d -> %d", s.Depth, cond.Depth)
	}

	then := cond.sub()
	then.lvl = s.lvl + 1

	then, err = c.compileList(ctx, then, x.Then)
	if err != nil {
		return s, errors.Wrap(err, "then")
	}

	if then.Depth != cond.Depth {
		return s, errors.Wrap(ErrThenDepth, "then: depth %d -> %d", cond.Depth, then.Depth)
	}

	var b []byte

	b = c.Format.Break(b)
	b = append(b, cond.Code...)
	b = c.Format.Mark(b, s.lvl, "then")
	b = append(b, '[')
	b = c.Format.Break(b)
	b = append(b, then.Code...)
	b = c.Format.Mark(b, s.lvl, "end if")
	b = append(b, "[-]]<"...)

	return c.append(s, "if", string(b), 0)
}

func (c *Compiler) append(s State, label, code string, delta int) (State, error) {
	d := s.Depth + delta
	if d < 0 {
		return s, errors.Wrap(ErrNegativeStackDepth, "%v: depth %d, delta %d", label, s.Depth, delta)
	}

	s.Code = c.Format.Line(s.Code, s.lvl, label, code, d)
	s.Depth = d

	return s, nil
}

// addr is the distance from the stack top to the variable.
func (s State) addr(name string) (int, error) {
	slot, ok := s.Vars[name]
	if !ok {
		return 0, errors.Wrap(ErrUndefinedVariable, "%q", name)
	}

	return s.Depth - slot, nil
}

func (s State) sub() State {
	return State{
		Vars:  maps.Clone(s.Vars),
		Depth: s.Depth,
		lvl:   s.lvl + 1,
	}
}
