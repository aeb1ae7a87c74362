package vm

// opICALL pushes the current (already-advanced) PC to the control
// stack and transfers to label.
func (i *Instance) opICALL(label string) {
	i.pushControl(i.PC)
	i.PC = i.Image.MustLabel(label)
}

// opRTN pops the control stack into PC.
func (i *Instance) opRTN() error {
	pc, err := i.popControl()
	if err != nil {
		return err
	}
	i.PC = pc
	return nil
}

// opIJMP implements IJMP/HOP: an unconditional IL jump, no stack
// involved.
func (i *Instance) opIJMP(label string) {
	i.PC = i.Image.MustLabel(label)
}

// opSAV pushes the current BASIC line number to the subroutine stack,
// for GOSUB.
func (i *Instance) opSAV() {
	i.pushSub(Cell(i.basicLinenum))
}

// opRSTR pops the subroutine stack into basic_linenum, for RETURN.
func (i *Instance) opRSTR() error {
	line, err := i.popSub()
	if err != nil {
		i.raiseToErrent(ErrRetWithoutGosub, ErrRetWithoutGosub.Message())
		return nil
	}
	i.basicLinenum = int(line)
	return nil
}

// opFIN drops back to command mode: basic_linenum = 0, transfer to CO.
func (i *Instance) opFIN() {
	i.basicLinenum = 0
	i.PC = i.Image.MustLabel("CO")
}

// opXFER implements XFER/GOTO: pop a target line number, and if it
// names a non-empty stored line, make it the current BASIC line and
// invoke the sequencer; otherwise report "Invalid line number." and
// recover to ERRENT. Target 1 is special-cased to mean "the first
// non-empty stored line", so GOTO 1 runs the program from its start.
func (i *Instance) opXFER() error {
	loc, err := i.popExpr()
	if err != nil {
		return err
	}
	n := int(loc)
	if n == 1 {
		for n < i.MaxLines && i.Program[n] == "" {
			n++
		}
	}
	if n < 1 || n >= i.MaxLines || i.Program[n] == "" {
		i.raiseToErrent(ErrInvalidLineNumber, ErrInvalidLineNumber.Message())
		return nil
	}
	i.basicLinenum = n
	i.nxt()
	return nil
}
