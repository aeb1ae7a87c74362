package il

import (
	"fmt"
	"strconv"
	"strings"
)

// Image is an immutable, loaded IL program: an ordered instruction
// sequence plus the label -> index map produced at load time.
//
// Unlike a byte/cell-addressed image, the "cells" here are already
// decoded Instr values, since IL source names its opcodes directly
// instead of encoding them as small integers.
type Image struct {
	Instrs []Instr
	Labels map[string]int
}

// Label resolves a label name to an instruction index. ok is false if
// the label was never defined.
func (img *Image) Label(name string) (int, bool) {
	idx, ok := img.Labels[name]
	return idx, ok
}

// MustLabel is like Label but panics with a descriptive message if the
// label is undefined. The vm package uses it for the well-known entry
// points (CO, XEC, ERRENT): a trusted IL program missing one of these is
// a load-time-should-have-caught-it programmer error, not a recoverable
// BASIC runtime condition.
func (img *Image) MustLabel(name string) int {
	idx, ok := img.Labels[name]
	if !ok {
		panic(fmt.Sprintf("il: undefined label %q", name))
	}
	return idx
}

// Disassemble renders the instruction at pc as a single line of text,
// e.g. "TST L12,IF" or "FOO: TSTN L5". Used by the --debug CLI flag.
func (img *Image) Disassemble(pc int) string {
	if pc < 0 || pc >= len(img.Instrs) {
		return "???"
	}
	in := img.Instrs[pc]
	var labels []string
	for name, idx := range img.Labels {
		if idx == pc {
			labels = append(labels, name)
		}
	}
	var b strings.Builder
	if len(labels) > 0 {
		for _, l := range labels {
			b.WriteString(l)
			b.WriteByte(':')
		}
		b.WriteByte(' ')
	}
	b.WriteString(in.Op)
	for i, op := range in.Operands {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(op)
	}
	return b.String()
}

// String renders the whole image, one instruction per line, prefixed
// with its index.
func (img *Image) String() string {
	var b strings.Builder
	width := len(strconv.Itoa(len(img.Instrs)))
	for pc := range img.Instrs {
		fmt.Fprintf(&b, "%*d  %s\n", width, pc, img.Disassemble(pc))
	}
	return b.String()
}
