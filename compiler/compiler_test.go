package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/stackbf/compiler/back"
	"github.com/slowlang/stackbf/compiler/bf"
	"github.com/slowlang/stackbf/compiler/bf/bftest"
	"github.com/slowlang/stackbf/compiler/format"
)

func TestCompile(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		text string
		in   string
		out  string
	}{
		{`let a b; push 5 set a get a push 2 add write`, "", "\x07"},
		{`if { push 0 } then { push 9 write }`, "", ""},
		{`if { push 1 } then { print "yes" }`, "", "yes"},
		{`let c; read set c get c get c mul print "=" write`, "\x03", "=\x09"},
		{`
let n;
push 3 set n
if { get n } then {
	stat { get n subc 1 set n }
	print "a"
}
get n addc 48 write
`, "", "a2"},
	} {
		obj, err := Compile(ctx, "test", []byte(tc.text), format.Default())
		require.NoError(t, err, "text: %s", tc.text)

		out, _, err := bftest.Run(obj, []byte(tc.in))
		require.NoError(t, err, "code:\n%s", obj)

		assert.Equal(t, tc.out, string(out), "code:\n%s", obj)

		plain, err := Compile(ctx, "test", []byte(tc.text), format.Plain())
		require.NoError(t, err)

		assert.Equal(t, bf.Strip(obj), plain)
	}
}

func TestCompileErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Compile(ctx, "test", []byte(`push 3 stat { push 1 push 1 add }`), format.Default())
	assert.ErrorIs(t, err, back.ErrStackImbalance)

	_, err = Compile(ctx, "test", []byte(`get x`), format.Default())
	assert.ErrorIs(t, err, back.ErrUndefinedVariable)

	_, err = Compile(ctx, "test", []byte(`push 1 if { } then { }`), format.Default())
	assert.ErrorIs(t, err, back.ErrConditionDepth)

	_, err = Compile(ctx, "test", []byte(`if { push 1 } then { push 1 }`), format.Default())
	assert.ErrorIs(t, err, back.ErrThenDepth)

	_, err = Compile(ctx, "test", []byte(`add`), format.Default())
	assert.ErrorIs(t, err, back.ErrNegativeStackDepth)

	_, err = Compile(ctx, "test", []byte(`push`), format.Default())
	assert.Error(t, err)
}

func TestCompileFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "prog.sbf")

	err := os.WriteFile(name, []byte(`print "ok"`), 0o644)
	require.NoError(t, err)

	obj, err := CompileFile(context.Background(), name, format.Plain())
	require.NoError(t, err)

	out, _, err := bftest.Run(obj, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
}

func TestExampleFile(t *testing.T) {
	obj, err := CompileFile(context.Background(), "../examples/example.sbf", format.Default())
	require.NoError(t, err)

	out, m, err := bftest.Run(obj, nil)
	require.NoError(t, err)

	assert.Equal(t, []byte{40}, out)
	assert.Equal(t, []byte{5, 0}, m.Tape[:2])
}
