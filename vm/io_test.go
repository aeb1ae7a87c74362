package vm

import (
	"strings"
	"testing"
)

func TestOpGETLNFromAutoload(t *testing.T) {
	inst, out := newTestInstance(t, TinyBasic, minimalLabels, WithAutoload([]string{"10 PRINT 1"}))
	if err := inst.opGETLN(); err != nil {
		t.Fatalf("opGETLN: %v", err)
	}
	if inst.LineBuffer != "10 PRINT 1" {
		t.Errorf("LineBuffer = %q", inst.LineBuffer)
	}
	if !strings.Contains(out.String(), "10 PRINT 1") {
		t.Errorf("autoloaded line should be echoed, got %q", out.String())
	}
}

func TestOpGETLNSkipsBlankLinesFromReader(t *testing.T) {
	inst, _ := newTestInstance(t, TinyBasic, minimalLabels,
		WithLineReader(&fakeReader{lines: []string{"", "  ", "PRINT 1"}}))
	if err := inst.opGETLN(); err != nil {
		t.Fatalf("opGETLN: %v", err)
	}
	if inst.LineBuffer != "PRINT 1" {
		t.Errorf("LineBuffer = %q, want first non-blank line", inst.LineBuffer)
	}
}

func TestOpGETLNEndOfInputQuits(t *testing.T) {
	inst, _ := newTestInstance(t, TinyBasic, minimalLabels, WithLineReader(&fakeReader{}))
	if err := inst.opGETLN(); err != nil {
		t.Fatalf("opGETLN: %v", err)
	}
	if !inst.Quit() {
		t.Fatal("GETLN at end of input should set quit")
	}
}

func TestOpINNUMParsesCommaList(t *testing.T) {
	inst, _ := newTestInstance(t, TinyBasic, minimalLabels, WithLineReader(&fakeReader{lines: []string{"1, 2,3"}}))
	for _, want := range []Cell{1, 2, 3} {
		if err := inst.opINNUM(); err != nil {
			t.Fatalf("opINNUM: %v", err)
		}
		v, _ := inst.popExpr()
		if v != want {
			t.Errorf("INNUM got %d, want %d", v, want)
		}
	}
}

func TestOpINNUMRetriesOnBadInput(t *testing.T) {
	inst, out := newTestInstance(t, TinyBasic, minimalLabels, WithLineReader(&fakeReader{lines: []string{"abc", "5"}}))
	if err := inst.opINNUM(); err != nil {
		t.Fatalf("opINNUM: %v", err)
	}
	v, _ := inst.popExpr()
	if v != 5 {
		t.Errorf("INNUM = %d, want 5 after retry", v)
	}
	if !strings.Contains(out.String(), "Type a number.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestOpPRN(t *testing.T) {
	inst, out := newTestInstance(t, TinyBasic, minimalLabels)
	inst.pushExpr(-17)
	if err := inst.opPRN(); err != nil {
		t.Fatalf("opPRN: %v", err)
	}
	inst.Output.Flush()
	if out.String() != "-17" {
		t.Errorf("output = %q, want -17", out.String())
	}
}

func TestOpPRSStopsAtQuote(t *testing.T) {
	inst, out := newTestInstance(t, TinyBasic, minimalLabels)
	inst.LineBuffer = `HELLO"REST`
	inst.opPRS()
	inst.Output.Flush()
	if out.String() != "HELLO" {
		t.Errorf("output = %q, want HELLO", out.String())
	}
	if inst.LineBuffer != "REST" {
		t.Errorf("LineBuffer after PRS = %q, want REST", inst.LineBuffer)
	}
}

func TestOpPRSUnterminatedConsumesWholeBuffer(t *testing.T) {
	inst, out := newTestInstance(t, TinyBasic, minimalLabels)
	inst.LineBuffer = "NO CLOSING QUOTE"
	inst.opPRS()
	inst.Output.Flush()
	if out.String() != "NO CLOSING QUOTE" {
		t.Errorf("output = %q", out.String())
	}
	if inst.LineBuffer != "" {
		t.Errorf("LineBuffer should be drained, got %q", inst.LineBuffer)
	}
}

func TestOpSPCAndSPCONEDiffer(t *testing.T) {
	inst, out := newTestInstance(t, TBX, minimalLabels)
	inst.opSPC()
	inst.opSPCONE()
	inst.Output.Flush()
	if out.String() != "\t " {
		t.Errorf("output = %q, want tab then single space", out.String())
	}
}

func TestOpTABPrintsSpacesAndBumpsControlSlot(t *testing.T) {
	inst, out := newTestInstance(t, TBX, minimalLabels)
	inst.pushControl(1)
	inst.pushControl(2)
	inst.pushControl(3)
	inst.pushExpr(4)
	if err := inst.opTAB(); err != nil {
		t.Fatalf("opTAB: %v", err)
	}
	inst.Output.Flush()
	if out.String() != "    " {
		t.Errorf("output = %q, want 4 spaces", out.String())
	}
	if inst.controlStack[0] != 2 {
		t.Errorf("controlStack[0] = %d, want bumped to 2", inst.controlStack[0])
	}
}

func TestOpTABTooShallowControlStack(t *testing.T) {
	inst, _ := newTestInstance(t, TBX, minimalLabels)
	inst.pushExpr(1)
	if err := inst.opTAB(); err == nil {
		t.Fatal("expected control stack depth error")
	}
}
