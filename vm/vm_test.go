package vm

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"tinybasic-il/il"
)

// minimalLabels gives every test image the three host-hardcoded entry
// points (CO, XEC, ERRENT) so opcodes that transfer to them by name
// (FIN, nxt, raiseToErrent, ...) don't panic on an undefined label.
const minimalLabels = "CO: NOP\nXEC: NOP\nERRENT: NOP\n"

func mustImage(t *testing.T, src string) *il.Image {
	t.Helper()
	img, err := il.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("il.Load: %v", err)
	}
	return img
}

// newTestInstance builds an Instance over src (minimalLabels should
// usually be included, or appended by the caller) with a fixed rand
// source and output captured in a bytes.Buffer.
func newTestInstance(t *testing.T, dialect Dialect, src string, opts ...Option) (*Instance, *bytes.Buffer) {
	t.Helper()
	img := mustImage(t, src)
	var out bytes.Buffer
	allOpts := append([]Option{
		WithOutput(&out),
		WithRandSource(rand.NewSource(1)),
	}, opts...)
	inst, err := New(img, dialect, allOpts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return inst, &out
}

type fakeReader struct {
	lines []string
	i     int
}

func (f *fakeReader) ReadLine(prompt string) (string, bool, error) {
	if f.i >= len(f.lines) {
		return "", false, nil
	}
	l := f.lines[f.i]
	f.i++
	return l, true, nil
}

func TestNewRejectsNilImage(t *testing.T) {
	if _, err := New(nil, TinyBasic); err == nil {
		t.Fatal("expected error for nil image")
	}
}

func TestNewDialectDefaults(t *testing.T) {
	inst, _ := newTestInstance(t, TinyBasic, minimalLabels)
	if inst.MaxLines != maxLinesTinyBasic {
		t.Errorf("TinyBasic MaxLines = %d, want %d", inst.MaxLines, maxLinesTinyBasic)
	}
	inst, _ = newTestInstance(t, TBX, minimalLabels)
	if inst.MaxLines != maxLinesTBX {
		t.Errorf("TBX MaxLines = %d, want %d", inst.MaxLines, maxLinesTBX)
	}
}

func TestBreakRequestsErrent(t *testing.T) {
	inst, _ := newTestInstance(t, TinyBasic, minimalLabels+"LOOP: IJMP LOOP\n")
	inst.PC = inst.Image.MustLabel("LOOP")
	inst.Break()
	if err := inst.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !inst.breakRequested {
		t.Fatal("breakRequested should still be true after Step, only Run consumes it")
	}
}

func TestQuitAndBasicLine(t *testing.T) {
	inst, _ := newTestInstance(t, TinyBasic, minimalLabels)
	if inst.Quit() {
		t.Fatal("fresh instance should not be quit")
	}
	inst.basicLinenum = 42
	if inst.BasicLine() != 42 {
		t.Errorf("BasicLine() = %d, want 42", inst.BasicLine())
	}
}
