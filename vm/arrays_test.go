package vm

import "testing"

func TestOpDIM1(t *testing.T) {
	inst, _ := newTestInstance(t, TBX, minimalLabels)
	base := len(inst.Vars)
	inst.pushExpr(2)  // var index ('C')
	inst.pushExpr(10) // size
	if err := inst.opDIM1(); err != nil {
		t.Fatalf("opDIM1: %v", err)
	}
	if inst.Vars[2] != Cell(base) {
		t.Errorf("Vars[2] = %d, want base index %d", inst.Vars[2], base)
	}
	if len(inst.Vars) != base+11 {
		t.Errorf("len(Vars) = %d, want %d (size+1 cells appended)", len(inst.Vars), base+11)
	}
}

func TestOpARRAY1RoundTripsThroughINDAndSTORE(t *testing.T) {
	inst, _ := newTestInstance(t, TBX, minimalLabels)
	inst.pushExpr(0) // 'A'
	inst.pushExpr(5) // size
	if err := inst.opDIM1(); err != nil {
		t.Fatalf("opDIM1: %v", err)
	}

	inst.pushExpr(0) // var
	inst.pushExpr(3) // offset
	if err := inst.opARRAY1(); err != nil {
		t.Fatalf("opARRAY1: %v", err)
	}
	idx, _ := inst.popExpr()
	inst.pushExpr(idx)
	inst.pushExpr(idx)
	inst.pushExpr(42) // value
	if err := inst.opSTORE(); err != nil {
		t.Fatalf("opSTORE: %v", err)
	}

	inst.pushExpr(idx)
	if err := inst.opIND(); err != nil {
		t.Fatalf("opIND: %v", err)
	}
	v, _ := inst.popExpr()
	if v != 42 {
		t.Errorf("A(3) round-trip = %d, want 42", v)
	}
}

func TestOpDIM2AndARRAY2(t *testing.T) {
	inst, _ := newTestInstance(t, TBX, minimalLabels)
	inst.pushExpr(1) // 'B'
	inst.pushExpr(3) // xSize
	inst.pushExpr(2) // ySize
	if err := inst.opDIM2(); err != nil {
		t.Fatalf("opDIM2: %v", err)
	}
	if inst.widths[1] != 4 {
		t.Errorf("widths[1] = %d, want xSize+1 = 4", inst.widths[1])
	}

	inst.pushExpr(1) // var
	inst.pushExpr(2) // x
	inst.pushExpr(1) // y
	if err := inst.opARRAY2(); err != nil {
		t.Fatalf("opARRAY2: %v", err)
	}
	idx, _ := inst.popExpr()
	want := inst.Vars[1] + 1*4 + 2
	if idx != want {
		t.Errorf("ARRAY2 index = %d, want %d", idx, want)
	}
}

func TestOpARRAY1OutOfRangeVar(t *testing.T) {
	inst, _ := newTestInstance(t, TBX, minimalLabels)
	inst.pushExpr(999)
	inst.pushExpr(0)
	if err := inst.opARRAY1(); err == nil {
		t.Fatal("expected out-of-range error")
	}
}
