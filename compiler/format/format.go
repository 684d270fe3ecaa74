package format

import (
	"os"
	"strings"

	"github.com/nikandfor/hacked/hfmt"
	"gopkg.in/yaml.v3"
	"tlog.app/go/errors"

	"github.com/slowlang/stackbf/compiler/bf"
)

type (
	// Options control comments around generated code.
	// They never change the primitive stream.
	Options struct {
		Comments   bool `yaml:"comments"`
		IndentSize int  `yaml:"indent"`
		LabelWidth int  `yaml:"label_width"`
	}
)

func Default() Options {
	return Options{
		Comments:   true,
		IndentSize: 4,
		LabelWidth: 16,
	}
}

// Plain options emit bare code.
func Plain() Options { return Options{} }

// ReadOptions reads yaml file on top of Default.
func ReadOptions(name string) (o Options, err error) {
	o = Default()

	data, err := os.ReadFile(name)
	if err != nil {
		return o, errors.Wrap(err, "read file")
	}

	err = yaml.Unmarshal(data, &o)
	if err != nil {
		return o, errors.Wrap(err, "decode %v", name)
	}

	if o.IndentSize < 0 || o.LabelWidth < 0 {
		return o, errors.New("negative width: indent %d, label %d", o.IndentSize, o.LabelWidth)
	}

	return o, nil
}

// Line appends code followed by the resulting stack depth.
// lvl is block nesting level.
func (o Options) Line(b []byte, lvl int, label, code string, depth int) []byte {
	if !o.Comments {
		return append(b, code...)
	}

	b = o.comment(b, lvl, label)

	return hfmt.Appendf(b, " %s #%d\n", code, depth)
}

// Mark is a comment without code.
func (o Options) Mark(b []byte, lvl int, label string) []byte {
	if !o.Comments {
		return b
	}

	b = o.comment(b, lvl, label)

	return append(b, ' ')
}

func (o Options) Break(b []byte) []byte {
	if !o.Comments {
		return b
	}

	return append(b, '\n')
}

func (o Options) comment(b []byte, lvl int, label string) []byte {
	ind := lvl * o.IndentSize
	label = Sanitize(label)

	pad := o.LabelWidth - ind - len(label)
	if pad < 0 {
		pad = 0
	}

	return hfmt.Appendf(b, "/* %s%s%s */", spaces(ind), label, spaces(pad))
}

// Sanitize replaces primitive symbols so the text can be put into comments.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && bf.IsPrimitive(byte(r)) {
			return '_'
		}

		if r == '\n' || r == '\r' {
			return ' '
		}

		return r
	}, s)
}

func spaces(n int) string { return strings.Repeat(" ", n) }
