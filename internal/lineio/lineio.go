// Package lineio supplies the line-oriented console reader GETLN and
// INNUM block on: a plain bufio.Scanner over redirected input, or an
// interactive editing session over a real terminal.
package lineio

import (
	"bufio"
	"io"
	"os"

	"github.com/kylelemons/goat/term"
)

// Reader is the interactive line source the vm package consumes.
type Reader interface {
	// ReadLine prints prompt (if interactive) and returns the next
	// line with its trailing newline stripped. ok is false at
	// end-of-input.
	ReadLine(prompt string) (line string, ok bool, err error)
}

// IsTerminal reports whether f looks like an interactive character
// device, to decide between NewTTYReader and NewScanner.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// scanReader is the non-interactive fallback: one bufio.Scanner line
// per ReadLine, with the prompt written out so piped transcripts still
// read naturally.
type scanReader struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewScanner wraps r for non-terminal input (files, pipes); prompts are
// echoed to out before each read, the way a terminal session would show
// them.
func NewScanner(r io.Reader, out io.Writer) Reader {
	return &scanReader{out: out, scanner: bufio.NewScanner(r)}
}

func (s *scanReader) ReadLine(prompt string) (string, bool, error) {
	if s.out != nil {
		io.WriteString(s.out, prompt)
	}
	if !s.scanner.Scan() {
		return "", false, s.scanner.Err()
	}
	if s.out != nil {
		io.WriteString(s.out, s.scanner.Text()+"\n")
	}
	return s.scanner.Text(), true, nil
}

// ttyReader drives a goat/term.TTY in Line mode: basic in-place editing
// (backspace, cursor recall) without needing raw termios, since Tiny
// BASIC's console is line-oriented like a teletype, not a
// character-stream VT100 target.
type ttyReader struct {
	tty *term.TTY
	out io.Writer
}

// NewTTYReader wraps f (normally os.Stdin) in a goat/term.TTY running
// in Line mode, echoing to out.
func NewTTYReader(f *os.File, out io.Writer) Reader {
	t := term.NewTTY(f)
	t.SetEcho(out)
	t.SetMode(term.Line)
	return &ttyReader{tty: t, out: out}
}

// ReadLine accumulates chunks from the TTY until it sees a CR or LF
// control byte, which goat/term.TTY always emits as a separate
// single-byte chunk following the line content.
func (r *ttyReader) ReadLine(prompt string) (string, bool, error) {
	if r.out != nil {
		io.WriteString(r.out, prompt)
	}
	var line []byte
	buf := make([]byte, 256)
	for {
		n, err := r.tty.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if n == 1 && (chunk[0] == '\r' || chunk[0] == '\n') {
				return string(line), true, nil
			}
			if n == 1 && chunk[0] == 4 { // Ctrl-D
				return string(line), false, nil
			}
			line = append(line, chunk...)
		}
		if err != nil {
			if err == io.EOF {
				return string(line), len(line) > 0, nil
			}
			return "", false, err
		}
	}
}
