package vm

// Instruction is one decoded instruction word: the opcode and the
// addressing mode of each declared operand. Instructions are transient
// values; the interpreter decodes a fresh one every fetch cycle and
// never caches them across a suspension.
type Instruction struct {
	Op    Opcode
	Modes []Mode
}

// Decode splits a raw instruction word into an opcode and its operand
// modes. The opcode is the low two decimal digits; the remaining digits,
// consumed least-significant first, give the mode of each operand in
// declaration order, with missing digits defaulting to position mode.
//
// Decode validates three things: the opcode is defined, every mode digit
// is in {0, 1, 2}, and a write-target operand is not in immediate mode.
// It is a pure function of word; addr is carried only for error reports.
func Decode(word, addr int64) (Instruction, error) {
	op := Opcode(word % 100)
	info, ok := opcodeInfoTable[op]
	if !ok {
		return Instruction{}, &BadOpcodeError{Word: word, Addr: addr}
	}

	inst := Instruction{
		Op:    op,
		Modes: make([]Mode, info.Arity),
	}

	digits := word / 100
	for i := 0; i < info.Arity; i++ {
		mode := Mode(digits % 10)
		digits /= 10

		switch mode {
		case ModePosition, ModeImmediate, ModeRelative:
		default:
			return Instruction{}, &ModeError{Mode: mode, Op: op, Operand: i}
		}
		if mode == ModeImmediate && info.WritesTarget && i == info.Arity-1 {
			return Instruction{}, &ModeError{Mode: mode, Op: op, Operand: i}
		}
		inst.Modes[i] = mode
	}

	return inst, nil
}
