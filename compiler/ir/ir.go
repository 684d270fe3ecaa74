package ir

import "fmt"

type (
	// Instr is one of the types below.
	Instr any

	Clear struct{}
	Copy  struct{}
	Inc   struct{}
	Dec   struct{}
	Add   struct{}
	Sub   struct{}
	Mul   struct{}
	Bool  struct{}
	Read  struct{}
	Write struct{}

	Push struct{ N int }
	Addc struct{ N int }
	Subc struct{ N int }

	Get struct{ Name string }
	Set struct{ Name string }

	Print struct{ Text string }

	// Stat must leave the stack as it was.
	Stat struct {
		Body []Instr
	}

	// If runs Then once if Cond leaves nonzero on top.
	// Cond pushes exactly one value, Then is stack neutral.
	// The value is consumed either way.
	If struct {
		Cond []Instr
		Then []Instr
	}

	Program struct {
		Vars []string
		Body []Instr
	}
)

// Label is a short mnemonic of x.
func Label(x Instr) string {
	switch x := x.(type) {
	case Clear:
		return "clear"
	case Copy:
		return "copy"
	case Inc:
		return "inc"
	case Dec:
		return "dec"
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Bool:
		return "bool"
	case Read:
		return "read"
	case Write:
		return "write"
	case Push:
		return fmt.Sprintf("push %d", x.N)
	case Addc:
		return fmt.Sprintf("addc %d", x.N)
	case Subc:
		return fmt.Sprintf("subc %d", x.N)
	case Get:
		return "get " + x.Name
	case Set:
		return "set " + x.Name
	case Print:
		return fmt.Sprintf("print %q", x.Text)
	case Stat:
		return "stat"
	case If:
		return "if"
	default:
		return fmt.Sprintf("%T", x)
	}
}
