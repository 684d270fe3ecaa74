package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	for _, tc := range []struct {
		x Instr
		l string
	}{
		{Clear{}, "clear"},
		{Mul{}, "mul"},
		{Push{N: 5}, "push 5"},
		{Subc{N: 2}, "subc 2"},
		{Get{Name: "a"}, "get a"},
		{Set{Name: "b"}, "set b"},
		{Print{Text: "hi\n"}, `print "hi\n"`},
		{Stat{}, "stat"},
		{If{}, "if"},
		{42, "int"},
	} {
		assert.Equal(t, tc.l, Label(tc.x))
	}
}
