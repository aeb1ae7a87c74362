package vm

import (
	"github.com/pkg/errors"
)

// Step fetches and executes a single IL instruction. It returns a
// non-nil error only for VM invariant violations or an unknown opcode --
// both fatal, since the IL text is trusted. BASIC runtime errors never
// surface here: they are printed and recovered to ERRENT by the opcode
// handlers themselves.
func (i *Instance) Step() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "vm: recovered panic @pc=%d", i.PC)
			default:
				err = errors.Errorf("vm: recovered panic @pc=%d: %v", i.PC, e)
			}
		}
	}()

	pc := i.PC
	if pc < 0 || pc >= len(i.Image.Instrs) {
		return i.fatalf("PC %d out of range (image has %d instructions)", pc, len(i.Image.Instrs))
	}
	in := i.Image.Instrs[pc]
	i.PC = pc + 1

	switch in.Op {
	case "NOP":
		// no-op

	// --- Parse opcodes (TST family) ---
	case "TST":
		err = i.opTST(pc, in.Operand(0), in.Operand(1))
	case "TSTN":
		err = i.opTSTN(pc, in.Operand(0))
	case "TSTV":
		err = i.opTSTV(pc, in.Operand(0))
	case "TSTL":
		err = i.opTSTL(pc, in.Operand(0))
	case "TSTA":
		err = i.requireTBX(in.Op, func() error { return i.opTSTA(pc, in.Operand(0)) })
	case "TSTF":
		err = i.requireTBX(in.Op, func() error { return i.opTSTF(pc, in.Operand(0)) })

	// --- Evaluator opcodes ---
	case "LIT":
		err = i.opLIT(in.Operand(0))
	case "IND":
		err = i.opIND()
	case "STORE":
		err = i.opSTORE()
	case "ADD":
		err = i.opADD()
	case "SUB":
		err = i.opSUB()
	case "MPY":
		err = i.opMPY()
	case "DIV":
		err = i.opDIV()
	case "NEG":
		err = i.opNEG()
	case "CMPR":
		err = i.opCMPR()
	case "RANDOM":
		err = i.requireTBX(in.Op, func() error { i.opRANDOM(); return nil })

	// --- Flow-control opcodes ---
	case "ICALL":
		i.opICALL(in.Operand(0))
	case "RTN":
		err = i.opRTN()
	case "IJMP", "HOP":
		i.opIJMP(in.Operand(0))
	case "SAV":
		i.opSAV()
	case "RSTR":
		err = i.opRSTR()
	case "FIN":
		i.opFIN()
	case "XFER":
		err = i.opXFER()

	// --- Sequencer ---
	case "NXT":
		i.nxt()
	case "NXTX":
		err = i.requireTBX(in.Op, func() error { i.opNXTX(); return nil })
	case "DONE":
		i.opDONE()

	// --- Program store ---
	case "INSRT":
		err = i.opINSRT()
	case "LST":
		i.opLST()
	case "LIST0":
		i.opLIST0()
	case "LIST1":
		err = i.opLIST1()
	case "LIST2":
		err = i.opLIST2()
	case "INIT":
		i.Init()
	case "XINIT":
		i.opXINIT()

	// --- Arrays (TBX) ---
	case "DIM1":
		err = i.requireTBX(in.Op, i.opDIM1)
	case "DIM2":
		err = i.requireTBX(in.Op, i.opDIM2)
	case "ARRAY1":
		err = i.requireTBX(in.Op, i.opARRAY1)
	case "ARRAY2":
		err = i.requireTBX(in.Op, i.opARRAY2)

	// --- Host I/O ---
	case "GETLN":
		err = i.opGETLN()
	case "INNUM":
		err = i.opINNUM()
	case "PRN":
		err = i.opPRN()
	case "PRS":
		i.opPRS()
	case "SPC":
		i.opSPC()
	case "SPCONE":
		err = i.requireTBX(in.Op, func() error { i.opSPCONE(); return nil })
	case "TAB":
		err = i.requireTBX(in.Op, i.opTAB)
	case "NLINE":
		i.opNLINE()

	default:
		return i.fatalf("unknown opcode %q at pc=%d", in.Op, pc)
	}
	return err
}

// requireTBX rejects a TBX-only opcode when running in classic Tiny
// BASIC mode, instead of silently executing it: an IL program using the
// wrong dialect's opcode is a programmer error.
func (i *Instance) requireTBX(op string, f func() error) error {
	if i.Dialect != TBX {
		return i.fatalf("opcode %q is TBX-only", op)
	}
	return f()
}

// Run dispatches instructions until the VM quits (GETLN/INNUM hit
// end-of-input) or Step returns a fatal error. A pending Break request
// is honored between instructions. Output is flushed when Run returns.
func (i *Instance) Run() error {
	defer i.Output.Flush()
	for !i.quit {
		if i.breakRequested {
			i.breakRequested = false
			i.basicLinenum = 0
			i.PC = i.Image.MustLabel("ERRENT")
			continue
		}
		if err := i.Step(); err != nil {
			return err
		}
	}
	return nil
}
