// Package bftest is a reference tape machine for tests.
package bftest

import (
	"tlog.app/go/errors"
)

type (
	Machine struct {
		Tape []byte
		Ptr  int

		// Steps bounds execution, 0 means 1e7.
		Steps int
	}
)

var (
	ErrUnmatched  = errors.New("unmatched bracket")
	ErrOutOfRange = errors.New("pointer out of range")
	ErrTooLong    = errors.New("step limit exceeded")
)

const TapeSize = 30000

func New() *Machine {
	return &Machine{Tape: make([]byte, TapeSize)}
}

// Run executes code on a fresh machine.
func Run(code, in []byte) (out []byte, m *Machine, err error) {
	m = New()

	out, err = m.Run(code, in)

	return out, m, err
}

func (m *Machine) Run(code, in []byte) (out []byte, err error) {
	jump, err := brackets(code)
	if err != nil {
		return nil, err
	}

	steps := m.Steps
	if steps == 0 {
		steps = 1e7
	}

	for pc := 0; pc < len(code); pc++ {
		if steps--; steps < 0 {
			return out, errors.Wrap(ErrTooLong, "at %d", pc)
		}

		switch code[pc] {
		case '+':
			m.Tape[m.Ptr]++
		case '-':
			m.Tape[m.Ptr]--
		case '>':
			m.Ptr++
		case '<':
			m.Ptr--
		case '[':
			if m.Tape[m.Ptr] == 0 {
				pc = jump[pc]
			}
		case ']':
			if m.Tape[m.Ptr] != 0 {
				pc = jump[pc]
			}
		case '.':
			out = append(out, m.Tape[m.Ptr])
		case ',':
			var c byte

			if len(in) != 0 {
				c, in = in[0], in[1:]
			}

			m.Tape[m.Ptr] = c
		default:
			continue
		}

		if m.Ptr < 0 || m.Ptr >= len(m.Tape) {
			return out, errors.Wrap(ErrOutOfRange, "at %d: ptr %d", pc, m.Ptr)
		}
	}

	return out, nil
}

func brackets(code []byte) (map[int]int, error) {
	jump := map[int]int{}
	var st []int

	for i, c := range code {
		switch c {
		case '[':
			st = append(st, i)
		case ']':
			if len(st) == 0 {
				return nil, errors.Wrap(ErrUnmatched, "at %d", i)
			}

			j := st[len(st)-1]
			st = st[:len(st)-1]

			jump[i] = j
			jump[j] = i
		}
	}

	if len(st) != 0 {
		return nil, errors.Wrap(ErrUnmatched, "at %d", st[len(st)-1])
	}

	return jump, nil
}
