package vm

import "errors"

// pushExpr/popExpr implement the expression stack. It is a
// LIFO of Cell that carries values, 0-25 variable indices, 0-5
// comparison operator codes and line numbers all at once, per the
// opcodes that target it; see the field comment on Instance.exprStack.
func (i *Instance) pushExpr(v Cell) {
	i.exprStack = append(i.exprStack, v)
}

func (i *Instance) popExpr() (Cell, error) {
	n := len(i.exprStack)
	if n == 0 {
		return 0, i.fatalf("expression stack underflow")
	}
	v := i.exprStack[n-1]
	i.exprStack = i.exprStack[:n-1]
	return v, nil
}

func (i *Instance) exprDepth() int { return len(i.exprStack) }

func (i *Instance) clearExprStack() { i.exprStack = i.exprStack[:0] }

// pushControl/popControl implement the IL-call stack used by
// ICALL/RTN. Independent of the expression stack.
func (i *Instance) pushControl(pc int) {
	i.controlStack = append(i.controlStack, pc)
}

func (i *Instance) popControl() (int, error) {
	n := len(i.controlStack)
	if n == 0 {
		return 0, i.fatalf("control stack underflow")
	}
	pc := i.controlStack[n-1]
	i.controlStack = i.controlStack[:n-1]
	return pc, nil
}

func (i *Instance) clearControlStack() { i.controlStack = i.controlStack[:0] }

// controlFromTop returns the address of the slot n entries below the
// top of the control stack (0 = the top itself), or an error if the
// stack isn't deep enough. Used by TAB's control_stack[2] bump: callers
// validate depth instead of indexing blindly.
func (i *Instance) controlFromTop(n int) (*int, error) {
	idx := len(i.controlStack) - 1 - n
	if idx < 0 {
		return nil, i.fatalf("control stack depth %d too shallow for index %d from top", len(i.controlStack), n)
	}
	return &i.controlStack[idx], nil
}

// pushSub/popSub implement the BASIC GOSUB/RETURN line-number stack
// used by SAV/RSTR.
func (i *Instance) pushSub(line Cell) {
	i.subStack = append(i.subStack, line)
}

var errSubStackEmpty = errors.New("vm: sub stack empty")

func (i *Instance) popSub() (Cell, error) {
	n := len(i.subStack)
	if n == 0 {
		return 0, errSubStackEmpty
	}
	v := i.subStack[n-1]
	i.subStack = i.subStack[:n-1]
	return v, nil
}

func (i *Instance) clearSubStack() { i.subStack = i.subStack[:0] }
