package bf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/stackbf/compiler/bf/bftest"
)

func TestRepeat(t *testing.T) {
	assert.Equal(t, "", Repeat(0, "+"))
	assert.Equal(t, "", Repeat(-1, "+"))
	assert.Equal(t, "<<<", Repeat(3, "<"))
	assert.Equal(t, "+++++", Number(5))
}

func TestFragments(t *testing.T) {
	assert.Equal(t, "<[-]>[<+>-]", MoveLeft(1))
	assert.Equal(t, "[-]<[>+<-]>", MoveRight(1))
	assert.Equal(t, "[-]<<[>>+>+<<<-]>>>[<<<+>>>-]<", CopyRight(2))
}

func run(t *testing.T, code string, ptr int, tape ...byte) *bftest.Machine {
	t.Helper()

	m := bftest.New()
	copy(m.Tape, tape)
	m.Ptr = ptr

	_, err := m.Run([]byte(code), nil)
	require.NoError(t, err)

	return m
}

func TestMoveLeft(t *testing.T) {
	m := run(t, MoveLeft(3), 3, 9, 0, 0, 42)

	assert.Equal(t, 3, m.Ptr)
	assert.Equal(t, []byte{42, 0, 0, 0}, m.Tape[:4])
}

func TestMoveRight(t *testing.T) {
	m := run(t, MoveRight(2), 2, 17, 0, 5)

	assert.Equal(t, 2, m.Ptr)
	assert.Equal(t, []byte{0, 0, 17}, m.Tape[:3])
}

func TestCopyRight(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		tape := make([]byte, n+1)
		tape[0] = 33
		tape[n] = 7 // garbage in the destination is cleared

		m := run(t, CopyRight(n), n, tape...)

		assert.Equal(t, n, m.Ptr, "n %d", n)
		assert.Equal(t, byte(33), m.Tape[0], "n %d", n)
		assert.Equal(t, byte(33), m.Tape[n], "n %d", n)
		assert.Equal(t, byte(0), m.Tape[n+1], "scratch, n %d", n)
	}
}

func TestEncodeString(t *testing.T) {
	out, _, err := bftest.Run([]byte(EncodeString("Hi!")), nil)
	require.NoError(t, err)
	assert.Equal(t, "Hi!", string(out))

	out, m, err := bftest.Run([]byte(Print("ok")), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.Equal(t, 0, m.Ptr)
	assert.Equal(t, byte(0), m.Tape[0])
}

func TestStrip(t *testing.T) {
	assert.Equal(t, "+>[-]<.,", string(Strip([]byte("/* push 1 */ +> #1\n[-] x<\t.,"))))
	assert.True(t, IsPrimitive('['))
	assert.False(t, IsPrimitive('#'))
}
