// Package bf generates fragments of the single-tape machine code.
//
// The pointer is left where the fragment says it is.
// Distances are never validated here, callers pass addresses they computed themselves.
package bf

import "strings"

const Primitives = "+-<>[].,"

func Repeat(n int, sym string) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat(sym, n)
}

// Number is n increments.
func Number(n int) string { return Repeat(n, "+") }

// MoveLeft clears the cell n to the left and moves the current value there.
// The pointer ends on the (now zero) source cell.
func MoveLeft(n int) string {
	l, r := Repeat(n, "<"), Repeat(n, ">")

	return l + "[-]" + r + "[" + l + "+" + r + "-]"
}

// MoveRight moves the value of the cell n to the left into the current cell.
func MoveRight(n int) string {
	l, r := Repeat(n, "<"), Repeat(n, ">")

	return "[-]" + l + "[" + r + "+" + l + "-]" + r
}

// CopyRight copies the value of the cell n to the left into the current cell.
// Cell n+1 to the right of the source is used as scratch and is zero after.
func CopyRight(n int) string {
	l, r := Repeat(n, "<"), Repeat(n, ">")
	l1, r1 := Repeat(n+1, "<"), Repeat(n+1, ">")

	return "[-]" + l + "[" + r + "+>+<" + l + "-]" + r1 + "[" + l1 + "+" + r1 + "-]<"
}

// EncodeString writes s byte by byte, each one in the next cell.
// Cells are expected to be zero.
func EncodeString(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		b.WriteString(Number(int(s[i])))
		b.WriteString(".>")
	}

	return b.String()
}

// Print writes s using the current cell and leaves it zero.
func Print(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		b.WriteString(Number(int(s[i])))
		b.WriteString(".[-]")
	}

	return b.String()
}

func IsPrimitive(c byte) bool {
	return strings.IndexByte(Primitives, c) >= 0
}

// Strip drops everything but primitives.
func Strip(code []byte) []byte {
	r := make([]byte, 0, len(code))

	for _, c := range code {
		if IsPrimitive(c) {
			r = append(r, c)
		}
	}

	return r
}
