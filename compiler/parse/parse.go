// Package parse reads the text form of the intermediate language.
//
//	let a b;
//	push 5 set a
//	if { get a bool } then { print "yes" }
//	stat { get a get a mul set b }
package parse

import (
	"context"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/stackbf/compiler/ir"
)

type (
	File struct {
		Pos lexer.Position

		Vars []string `( "let" @Ident* ";" )?`
		Body []*Instr `@@*`
	}

	Instr struct {
		Pos lexer.Position

		Get   *string `  "get" @Ident`
		Set   *string `| "set" @Ident`
		Push  *int    `| "push" @Int`
		Addc  *int    `| "addc" @Int`
		Subc  *int    `| "subc" @Int`
		Print *string `| "print" @String`
		Stat  *Block  `| "stat" @@`
		If    *If     `| @@`
		Op    *string `| @( "clear" | "copy" | "inc" | "dec" | "add" | "sub" | "mul" | "bool" | "read" | "write" )`
	}

	Block struct {
		Body []*Instr `"{" @@* "}"`
	}

	If struct {
		Cond *Block `"if" @@`
		Then *Block `"then" @@`
	}
)

var lex = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[{};]`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(lex),
	participle.Elide("Whitespace", "Comment"),
)

func ParseFile(ctx context.Context, name string) (*ir.Program, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return Parse(ctx, name, text)
}

func Parse(ctx context.Context, name string, text []byte) (p *ir.Program, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "parse", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	f, err := parser.ParseBytes(name, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	body, err := convert(f.Body)
	if err != nil {
		return nil, err
	}

	return &ir.Program{
		Vars: f.Vars,
		Body: body,
	}, nil
}

func convert(list []*Instr) (r []ir.Instr, err error) {
	for _, x := range list {
		y, err := x.instr()
		if err != nil {
			return nil, errors.Wrap(err, "%v", x.Pos)
		}

		r = append(r, y)
	}

	return r, nil
}

func (x *Instr) instr() (ir.Instr, error) {
	switch {
	case x.Get != nil:
		return ir.Get{Name: *x.Get}, nil
	case x.Set != nil:
		return ir.Set{Name: *x.Set}, nil
	case x.Push != nil:
		return ir.Push{N: *x.Push}, nil
	case x.Addc != nil:
		return ir.Addc{N: *x.Addc}, nil
	case x.Subc != nil:
		return ir.Subc{N: *x.Subc}, nil
	case x.Print != nil:
		s, err := strconv.Unquote(*x.Print)
		if err != nil {
			return nil, errors.Wrap(err, "unquote %s", *x.Print)
		}

		return ir.Print{Text: s}, nil
	case x.Stat != nil:
		body, err := convert(x.Stat.Body)
		if err != nil {
			return nil, errors.Wrap(err, "stat")
		}

		return ir.Stat{Body: body}, nil
	case x.If != nil:
		cond, err := convert(x.If.Cond.Body)
		if err != nil {
			return nil, errors.Wrap(err, "if")
		}

		then, err := convert(x.If.Then.Body)
		if err != nil {
			return nil, errors.Wrap(err, "then")
		}

		return ir.If{Cond: cond, Then: then}, nil
	case x.Op != nil:
		return op(*x.Op)
	default:
		return nil, errors.New("empty instruction")
	}
}

func op(name string) (ir.Instr, error) {
	switch name {
	case "clear":
		return ir.Clear{}, nil
	case "copy":
		return ir.Copy{}, nil
	case "inc":
		return ir.Inc{}, nil
	case "dec":
		return ir.Dec{}, nil
	case "add":
		return ir.Add{}, nil
	case "sub":
		return ir.Sub{}, nil
	case "mul":
		return ir.Mul{}, nil
	case "bool":
		return ir.Bool{}, nil
	case "read":
		return ir.Read{}, nil
	case "write":
		return ir.Write{}, nil
	default:
		return nil, errors.New("unknown op: %v", name)
	}
}
