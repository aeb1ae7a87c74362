package vm

import (
	"fmt"
	"strings"
)

// nxt is the sequencer: the mechanism that
// advances through stored BASIC lines. basic_linenum == 0 means command
// mode, so NXT returns control to CO. Otherwise basic_linenum is first
// moved past any empty slots (returning to command mode if none
// remain), the line there is loaded into the line buffer, basic_linenum
// is advanced past any empty slots to the next candidate (wrapping to 0,
// i.e. back to command mode, if none remain), and control transfers to
// XEC to parse/run the line just loaded.
func (i *Instance) nxt() {
	for i.basicLinenum > 0 && i.basicLinenum < i.MaxLines && strings.TrimSpace(i.Program[i.basicLinenum]) == "" {
		i.basicLinenum++
	}
	if i.basicLinenum <= 0 || i.basicLinenum >= i.MaxLines {
		i.basicLinenum = 0
		i.PC = i.Image.MustLabel("CO")
		return
	}
	i.LineBuffer = i.Program[i.basicLinenum]
	i.basicLinenum++
	for i.basicLinenum < i.MaxLines && strings.TrimSpace(i.Program[i.basicLinenum]) == "" {
		i.basicLinenum++
	}
	if i.basicLinenum == i.MaxLines {
		i.basicLinenum = 0
	}
	i.PC = i.Image.MustLabel("XEC")
}

// opNXTX is TBX's NXTX: re-enter statement execution on the current
// line without advancing basic_linenum. The bundled tbx.il does not use
// it; opDONE handles the `$` statement separator itself.
func (i *Instance) opNXTX() {
	i.PC = i.Image.MustLabel("XEC")
}

// opDONE implements the end-of-statement syntax check. In TBX, a
// residual line buffer starting with `$` begins
// another statement on the same line; otherwise a non-empty residual
// is a syntax error, and an empty one falls through normally.
func (i *Instance) opDONE() {
	left := strings.TrimLeft(i.LineBuffer, " \t")
	if i.Dialect == TBX && strings.HasPrefix(left, "$") {
		i.LineBuffer = left[1:]
		i.PC = i.Image.MustLabel("XEC")
		return
	}
	if strings.TrimSpace(i.LineBuffer) != "" {
		fmt.Fprintf(i.Output, "Syntax error at line %d.\n", i.basicLinenum)
		i.Output.Flush()
		i.PC = i.Image.MustLabel("ERRENT")
	}
}
