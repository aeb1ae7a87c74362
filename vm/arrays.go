package vm

// opDIM1 (TBX) allocates a one-dimensional array: pop size and var
// index, record vars[var] = the base index (current table length), and
// extend the variable table by size+1 zeroed cells. Arrays only grow;
// a second DIM on the same variable wastes space rather than reusing it.
func (i *Instance) opDIM1() error {
	size, err := i.popExpr()
	if err != nil {
		return err
	}
	v, err := i.popExpr()
	if err != nil {
		return err
	}
	base := Cell(len(i.Vars))
	if err := i.setVarAt(v, base); err != nil {
		return err
	}
	i.Vars = append(i.Vars, make([]Cell, size+1)...)
	return nil
}

// opDIM2 (TBX) allocates a two-dimensional array: pop y size, x size,
// var index; record the base index and the row width x_size+1, and
// extend the table by (x_size+1)*(y_size+1) cells.
func (i *Instance) opDIM2() error {
	ySize, err := i.popExpr()
	if err != nil {
		return err
	}
	xSize, err := i.popExpr()
	if err != nil {
		return err
	}
	v, err := i.popExpr()
	if err != nil {
		return err
	}
	base := Cell(len(i.Vars))
	if err := i.setVarAt(v, base); err != nil {
		return err
	}
	if err := i.setWidthAt(v, xSize+1); err != nil {
		return err
	}
	i.Vars = append(i.Vars, make([]Cell, (xSize+1)*(ySize+1))...)
	return nil
}

// opARRAY1 (TBX) pops an offset and a var index, and pushes
// vars[var]+offset -- an index usable by a following IND/STORE.
func (i *Instance) opARRAY1() error {
	offset, err := i.popExpr()
	if err != nil {
		return err
	}
	v, err := i.popExpr()
	if err != nil {
		return err
	}
	base, err := i.varAt(v)
	if err != nil {
		return err
	}
	i.pushExpr(base + offset)
	return nil
}

// opARRAY2 (TBX) pops y, x, var and pushes vars[var] + y*width[var] + x.
func (i *Instance) opARRAY2() error {
	y, err := i.popExpr()
	if err != nil {
		return err
	}
	x, err := i.popExpr()
	if err != nil {
		return err
	}
	v, err := i.popExpr()
	if err != nil {
		return err
	}
	base, err := i.varAt(v)
	if err != nil {
		return err
	}
	width, err := i.widthAt(v)
	if err != nil {
		return err
	}
	i.pushExpr(base + y*width + x)
	return nil
}

func (i *Instance) widthAt(idx Cell) (Cell, error) {
	if idx < 0 || int(idx) >= len(i.widths) {
		return 0, i.fatalf("variable index %d out of range for width lookup", idx)
	}
	return i.widths[idx], nil
}

func (i *Instance) setWidthAt(idx, w Cell) error {
	if idx < 0 || int(idx) >= len(i.widths) {
		return i.fatalf("variable index %d out of range for width lookup", idx)
	}
	i.widths[idx] = w
	return nil
}
