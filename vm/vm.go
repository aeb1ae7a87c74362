// Package vm implements the Tiny BASIC / TBX Interpretive Language
// virtual machine: three independent stacks, the parsing and evaluator
// opcodes that jointly recognize and run BASIC source, and the host I/O
// opcodes that connect the line buffer to a terminal.
//
// The opcode set and stack discipline are fixed by the IL (see the il
// package); this package only supplies the machinery that executes
// whatever IL program it is given.
package vm

import (
	"bufio"
	"io"
	"math/rand"

	"github.com/pkg/errors"
	"tinybasic-il/il"
)

// Cell is the signed integer type used by the expression stack, variable
// memory and line numbers.
type Cell int

// Dialect re-exports il.Dialect so callers only need to import vm.
type Dialect = il.Dialect

const (
	TinyBasic = il.TinyBasic
	TBX       = il.TBX
)

const (
	maxLinesTinyBasic = 256
	maxLinesTBX       = 65536
)

// LineReader is the interactive line source behind GETLN/INNUM once the
// autoload queue is drained. Implementations may offer line editing
// (internal/lineio wraps github.com/kylelemons/goat/term) or may just be
// a bufio.Scanner. ok is false on end of input.
type LineReader interface {
	ReadLine(prompt string) (line string, ok bool, err error)
}

// Instance is one running VM: an IL image plus all BASIC-visible state.
type Instance struct {
	Image   *il.Image
	Dialect Dialect

	PC int

	// The three independent stacks: expression values,
	// IL call-return addresses, and BASIC GOSUB/RETURN line numbers.
	// They are never shared and must be kept as literal separate
	// LIFOs: the expression stack in particular mixes values, variable
	// indices, comparison operator codes and line numbers by
	// convention, so it is deliberately untyped ([]Cell), not split
	// into per-kind stacks.
	exprStack    []Cell
	controlStack []int
	subStack     []Cell

	LineBuffer string

	MaxLines     int
	Program      []string
	Vars         []Cell
	widths       []Cell
	basicLinenum int

	listing listingRange

	autoload    []string
	inputQueue  []Cell
	lineReader  LineReader
	cmdPrompt   string
	inputPrompt string

	Output *bufio.Writer

	rng *rand.Rand

	quit           bool
	breakRequested bool

	// lastErr records the most recent TBX ERR code, for
	// IL that wants to branch on it. Zero means "no error yet".
	lastErr int
}

// Option configures an Instance at construction time.
type Option func(*Instance)

// WithOutput sets the writer BASIC's PRN/PRS/SPC/NLINE/TAB opcodes and
// LST write to.
func WithOutput(w io.Writer) Option {
	return func(i *Instance) { i.Output = bufio.NewWriter(w) }
}

// WithLineReader sets the interactive reader used once the autoload
// queue (see WithAutoload) is exhausted.
func WithLineReader(r LineReader) Option {
	return func(i *Instance) { i.lineReader = r }
}

// WithAutoload seeds the autoload queue that GETLN drains from before
// falling back to the interactive LineReader, in the given order.
func WithAutoload(lines []string) Option {
	return func(i *Instance) { i.autoload = append([]string(nil), lines...) }
}

// WithRandSource overrides the PRNG behind the TBX RANDOM opcode
// (tests use this for determinism).
func WithRandSource(src rand.Source) Option {
	return func(i *Instance) { i.rng = rand.New(src) }
}

// New creates a VM instance bound to img, ready to run from PC 0 with an
// empty BASIC program: it runs Init (equivalent to the IL's INIT opcode)
// itself before returning.
func New(img *il.Image, dialect Dialect, opts ...Option) (*Instance, error) {
	if img == nil {
		return nil, errors.New("vm: nil image")
	}
	i := &Instance{
		Image:   img,
		Dialect: dialect,
	}
	if dialect == TBX {
		i.MaxLines = maxLinesTBX
		i.cmdPrompt, i.inputPrompt = ": ", "? "
	} else {
		i.MaxLines = maxLinesTinyBasic
		i.cmdPrompt, i.inputPrompt = "? ", "# "
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.Output == nil {
		i.Output = bufio.NewWriter(io.Discard)
	}
	if i.rng == nil {
		i.rng = rand.New(rand.NewSource(1))
	}
	i.Init()
	return i, nil
}

// Quit reports whether the VM has reached end-of-input (GETLN or INNUM
// hit EOF on its interactive source). The dispatcher's Run loop exits
// when this becomes true.
func (i *Instance) Quit() bool { return i.quit }

// BasicLine returns the BASIC line number currently executing, or 0 in
// command mode.
func (i *Instance) BasicLine() int { return i.basicLinenum }

// Break requests that the dispatcher transfer control to ERRENT at the
// start of its next iteration; the three stacks are
// deliberately left untouched. Safe to call from a signal handler.
func (i *Instance) Break() { i.breakRequested = true }
