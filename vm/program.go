package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// listingRange tracks which lines LST should print, set by LIST0/1/2.
type listingRange struct {
	all      bool
	lo, hi   int
	hasRange bool
}

func (r listingRange) includes(n int) bool {
	if r.all || !r.hasRange {
		return true
	}
	return n >= r.lo && n <= r.hi
}

// Init implements the IL's INIT opcode: a cold-start reset of the line
// buffer, input queue, program memory, scalar variables and all three
// stacks. Array storage appended by DIM1/DIM2 and the array row widths
// are discarded along with everything else.
func (i *Instance) Init() {
	i.LineBuffer = ""
	i.inputQueue = nil
	i.Program = make([]string, i.MaxLines)
	i.Vars = make([]Cell, 26)
	i.widths = make([]Cell, 26)
	i.clearExprStack()
	i.clearControlStack()
	i.clearSubStack()
	i.listing = listingRange{all: true}
}

// XINIT is the dispatch gate run at the top of every user-line
// dispatch. If the just-read line buffer is empty (the
// bare `RUN` case, which left no residual command text), the three
// stacks are cleared, basic_linenum is set to 1, and the sequencer is
// invoked; otherwise XINIT is a no-op and the IL continues with the
// next instruction.
func (i *Instance) opXINIT() {
	if strings.TrimSpace(i.LineBuffer) != "" {
		return
	}
	i.clearExprStack()
	i.clearControlStack()
	i.clearSubStack()
	i.basicLinenum = 1
	i.nxt()
}

// opINSRT implements INSRT: pull a leading decimal line number off the
// line buffer and store the remaining trimmed text at that line. The
// line number is assumed already range-checked by a preceding TSTL (a
// violation here is a VM invariant error, not a BASIC runtime one). The
// line buffer is always cleared afterward (see SPEC_FULL.md's Open
// Question decision for il_insrt).
func (i *Instance) opINSRT() error {
	i.LineBuffer = strings.TrimLeft(i.LineBuffer, " \t")
	j := 0
	for j < len(i.LineBuffer) && i.LineBuffer[j] >= '0' && i.LineBuffer[j] <= '9' {
		j++
	}
	if j == 0 {
		return i.fatalf("INSRT: no line number at head of %q", i.LineBuffer)
	}
	n, err := strconv.Atoi(i.LineBuffer[:j])
	if err != nil {
		return i.fatalf("INSRT: %v", err)
	}
	if n <= 0 || n >= i.MaxLines {
		return i.fatalf("INSRT: line number %d out of range", n)
	}
	i.Program[n] = strings.TrimSpace(i.LineBuffer[j:])
	i.LineBuffer = ""
	return nil
}

// opLST prints every non-empty stored line over the current listing
// range, number right-aligned to width 3 followed by a single space.
func (i *Instance) opLST() {
	for n, src := range i.Program {
		if strings.TrimSpace(src) == "" || !i.listing.includes(n) {
			continue
		}
		fmt.Fprintf(i.Output, "%3d %s\n", n, src)
	}
}

func (i *Instance) opLIST0() { i.listing = listingRange{all: true} }

func (i *Instance) opLIST1() error {
	n, err := i.popExpr()
	if err != nil {
		return err
	}
	i.listing = listingRange{lo: int(n), hi: int(n), hasRange: true}
	return nil
}

func (i *Instance) opLIST2() error {
	hi, err := i.popExpr()
	if err != nil {
		return err
	}
	lo, err := i.popExpr()
	if err != nil {
		return err
	}
	if lo < 1 || hi >= Cell(i.MaxLines) || lo > hi {
		i.raiseToErrent(ErrInvalidLineNumber, ErrInvalidLineNumber.Message())
		return nil
	}
	i.listing = listingRange{lo: int(lo), hi: int(hi), hasRange: true}
	return nil
}
