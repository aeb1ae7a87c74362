package il

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Load reads IL source text from r and returns the assembled Image.
//
// Per-line grammar: `[LABEL:] [OPCODE [OPERAND1[,OPERAND2]]] [; comment]`.
// Comments start at the first unquoted ';' and run to end of line. A
// line naming only a label attaches that label to whichever instruction
// comes next (including one on a later line). Blank and comment-only
// lines are ignored. A second operand may be wrapped in a single pair
// of single quotes, which are stripped. A `DB value` line on its own
// appends `value` as an extra operand to the previously emitted
// instruction, used by TBX's IL dialect to tack on a raw byte literal
// (including a literal comma, spelled `','`).
//
// Duplicate label definitions are a load-time error, as is a DB with no
// preceding instruction.
func Load(r io.Reader) (*Image, error) {
	img := &Image{Labels: make(map[string]int)}
	var pending []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()

		label, statement := splitLabel(stripComment(raw))
		statement = strings.TrimSpace(statement)

		if label != "" {
			if _, dup := img.Labels[label]; dup {
				return nil, errors.Errorf("il: line %d: duplicate label %q", lineNo, label)
			}
			for _, p := range pending {
				if p == label {
					return nil, errors.Errorf("il: line %d: duplicate label %q", lineNo, label)
				}
			}
			pending = append(pending, label)
		}

		if statement == "" {
			continue
		}

		fields := strings.Fields(statement)
		op := fields[0]
		rest := strings.TrimSpace(strings.TrimPrefix(statement, op))

		if strings.EqualFold(op, "DB") {
			if len(img.Instrs) == 0 {
				return nil, errors.Errorf("il: line %d: DB with no preceding instruction", lineNo)
			}
			img.Instrs[len(img.Instrs)-1].Operands = append(
				img.Instrs[len(img.Instrs)-1].Operands, decodeDB(rest))
			continue
		}

		in := Instr{Op: strings.ToUpper(op), Line: lineNo}
		if rest != "" {
			op1, op2, hasOp2 := splitOperands(rest)
			in.Operands = append(in.Operands, op1)
			if hasOp2 {
				in.Operands = append(in.Operands, op2)
			}
		}
		idx := len(img.Instrs)
		img.Instrs = append(img.Instrs, in)
		for _, l := range pending {
			img.Labels[l] = idx
		}
		pending = pending[:0]
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "il: read failed")
	}
	if len(pending) > 0 {
		return nil, errors.Errorf("il: trailing label(s) %v with no instruction", pending)
	}
	return img, nil
}

// stripComment removes everything from the first ';' that is not inside
// single quotes, so a quoted literal such as ';' survives.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\'':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

// splitLabel recognizes a leading "NAME:" token and returns the label
// name (without colon) and the remaining text.
func splitLabel(line string) (label, rest string) {
	trimmed := strings.TrimLeft(line, " \t")
	i := 0
	for i < len(trimmed) && isLabelRune(rune(trimmed[i])) {
		i++
	}
	if i > 0 && i < len(trimmed) && trimmed[i] == ':' {
		return trimmed[:i], trimmed[i+1:]
	}
	return "", line
}

func isLabelRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// splitOperands splits "OP1,OP2" on the first comma, trims whitespace
// from both sides, and strips a single leading/trailing quote from the
// second operand.
func splitOperands(s string) (op1, op2 string, hasOp2 bool) {
	i := strings.IndexByte(s, ',')
	if i < 0 {
		return strings.TrimSpace(s), "", false
	}
	op1 = strings.TrimSpace(s[:i])
	op2 = strings.TrimSpace(s[i+1:])
	if len(op2) >= 2 && op2[0] == '\'' && op2[len(op2)-1] == '\'' {
		op2 = op2[1 : len(op2)-1]
	}
	return op1, op2, true
}

// decodeDB mirrors the reference loader's handling of the literal comma
// byte: `DB ','` yields a single comma character; otherwise commas and
// quotes are stripped from the operand text.
func decodeDB(s string) string {
	s = strings.TrimSpace(s)
	if s == "','" {
		return ","
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "'", "")
	return s
}
