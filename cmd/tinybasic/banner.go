package main

import (
	"fmt"
	"io"

	"tinybasic-il/vm"
)

func printBanner(w io.Writer, dialect vm.Dialect) {
	fmt.Fprintln(w)
	if dialect == vm.TBX {
		fmt.Fprintln(w, "Tiny BASIC Extended")
		fmt.Fprintln(w, "Built on Tiny BASIC, as published in Dr Dobb's Journal, Vol.1, No.1 (Jan 1976).")
	} else {
		fmt.Fprintln(w, "Tiny BASIC")
		fmt.Fprintln(w, "As published in Dr Dobb's Journal, Vol.1, No.1 (Jan 1976).")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press ^C to break and ^D to quit.")
}
