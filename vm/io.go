package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// opGETLN implements GETLN: drain one line from the
// autoload queue if non-empty, echoing it with the command prompt the
// way a typed line would appear; otherwise block on the interactive
// LineReader using the command prompt, retrying on a blank line.
// End-of-input sets the quit flag.
func (i *Instance) opGETLN() error {
	if len(i.autoload) > 0 {
		line := i.autoload[0]
		i.autoload = i.autoload[1:]
		i.LineBuffer = line
		fmt.Fprintf(i.Output, "%s%s\n", i.cmdPrompt, line)
		i.Output.Flush()
		return nil
	}
	if i.lineReader == nil {
		i.quit = true
		return nil
	}
	for {
		line, ok, err := i.lineReader.ReadLine(i.cmdPrompt)
		if !ok {
			i.quit = true
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		i.LineBuffer = line
		return nil
	}
}

// opINNUM implements INNUM: drain one integer from the input queue,
// refilling it by reading a comma-separated line on the input prompt
// when empty. A line that doesn't parse as a comma list of integers
// prints "Type a number." and is retried. End-of-input sets quit.
func (i *Instance) opINNUM() error {
	for len(i.inputQueue) == 0 {
		if i.lineReader == nil {
			i.quit = true
			return nil
		}
		line, ok, err := i.lineReader.ReadLine(i.inputPrompt)
		if !ok {
			i.quit = true
			return err
		}
		nums, ok := parseIntList(line)
		if !ok {
			fmt.Fprintln(i.Output, "Type a number.")
			i.Output.Flush()
			continue
		}
		i.inputQueue = append(i.inputQueue, nums...)
	}
	n := i.inputQueue[0]
	i.inputQueue = i.inputQueue[1:]
	i.pushExpr(n)
	return nil
}

func parseIntList(line string) ([]Cell, bool) {
	parts := strings.Split(line, ",")
	nums := make([]Cell, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		nums = append(nums, Cell(n))
	}
	return nums, true
}

// opPRN pops an integer and prints it.
func (i *Instance) opPRN() error {
	v, err := i.popExpr()
	if err != nil {
		return err
	}
	fmt.Fprint(i.Output, int(v))
	return nil
}

// opPRS prints the line buffer up to (but not including) the next '"',
// then sets the line buffer to whatever follows that quote. An
// unterminated string consumes the entire remaining buffer and prints
// all of it.
func (i *Instance) opPRS() {
	head, tail, _ := strings.Cut(i.LineBuffer, `"`)
	fmt.Fprint(i.Output, head)
	i.LineBuffer = tail
}

func (i *Instance) opNLINE() { fmt.Fprintln(i.Output) }

func (i *Instance) opSPC() { fmt.Fprint(i.Output, "\t") }

// opSPCONE (TBX) prints a single space, unlike SPC's tab.
func (i *Instance) opSPCONE() { fmt.Fprint(i.Output, " ") }

// opTAB (TBX) pops n, prints n spaces, and bumps the control stack
// entry two below the top -- signaling the IL-call frame that requested
// it to suppress its own "result" output. The index is validated
// rather than assumed; see DESIGN.md for why.
func (i *Instance) opTAB() error {
	n, err := i.popExpr()
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprint(i.Output, strings.Repeat(" ", int(n)))
	}
	slot, err := i.controlFromTop(2)
	if err != nil {
		return err
	}
	*slot++
	return nil
}
