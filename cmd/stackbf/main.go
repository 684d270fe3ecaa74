package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/stackbf/compiler"
	"github.com/slowlang/stackbf/compiler/bf"
	"github.com/slowlang/stackbf/compiler/format"
	"github.com/slowlang/stackbf/compiler/ir"
	"github.com/slowlang/stackbf/compiler/parse"
)

func main() {
	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print instruction tree",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile programs into tape machine code",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("config", "", "yaml file with format options"),
			cli.NewFlag("plain", false, "emit bare code without comments"),
			cli.NewFlag("indent", -1, "indent size for nested blocks, negative means from config"),
		},
	}

	stripCmd := &cli.Command{
		Name:        "strip",
		Description: "remove comments from tape machine code",
		Action:      stripAct,
		Args:        cli.Args{},
	}

	encodeCmd := &cli.Command{
		Name:        "encode",
		Description: "generate code printing the args",
		Action:      encodeAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "stackbf",
		Description: "stackbf compiles stack language into tape machine code",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "tlog verbosity topics"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			parseCmd,
			compileCmd,
			stripCmd,
			encodeCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func parseAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		p, err := parse.ParseFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		fmt.Printf("vars: %v\n", p.Vars)
		dump(p.Body, 0)
	}

	return nil
}

func dump(list []ir.Instr, d int) {
	ind := strings.Repeat("\t", d)

	for _, x := range list {
		fmt.Printf("%s%s\n", ind, ir.Label(x))

		switch x := x.(type) {
		case ir.Stat:
			dump(x.Body, d+1)
		case ir.If:
			dump(x.Cond, d+1)
			fmt.Printf("%sthen\n", ind)
			dump(x.Then, d+1)
		}
	}
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	f := format.Default()

	if name := c.String("config"); name != "" {
		f, err = format.ReadOptions(name)
		if err != nil {
			return errors.Wrap(err, "config")
		}
	}

	if c.Bool("plain") {
		f.Comments = false
	}

	if v := c.Int("indent"); v >= 0 {
		f.IndentSize = v
	}

	for _, a := range c.Args {
		obj, err := compiler.CompileFile(ctx, a, f)
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		fmt.Printf("%s", obj)
	}

	return nil
}

func stripAct(c *cli.Command) (err error) {
	for _, a := range c.Args {
		data, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read %v", a)
		}

		fmt.Printf("%s\n", bf.Strip(data))
	}

	return nil
}

func encodeAct(c *cli.Command) (err error) {
	fmt.Printf("%s\n", bf.EncodeString(strings.Join(c.Args, " ")))

	return nil
}
