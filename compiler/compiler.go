package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/stackbf/compiler/back"
	"github.com/slowlang/stackbf/compiler/format"
	"github.com/slowlang/stackbf/compiler/parse"
)

func CompileFile(ctx context.Context, name string, f format.Options) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text, f)
}

func Compile(ctx context.Context, name string, text []byte, f format.Options) (obj []byte, err error) {
	p, err := parse.Parse(ctx, name, text)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	c := &back.Compiler{Format: f}

	obj, err = c.Program(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, "compile")
	}

	return obj, nil
}
