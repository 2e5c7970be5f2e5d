package vm

import "fmt"

// Opcode selects the operation an instruction performs. It is the low
// two decimal digits of the raw instruction word.
type Opcode int64

const (
	OpAdd           Opcode = 1  // dst = a + b
	OpMultiply      Opcode = 2  // dst = a * b
	OpInput         Opcode = 3  // dst = next input value (suspends when none queued)
	OpOutput        Opcode = 4  // append src to the output queue
	OpJumpIfTrue    Opcode = 5  // pc = target if cond != 0
	OpJumpIfFalse   Opcode = 6  // pc = target if cond == 0
	OpLessThan      Opcode = 7  // dst = 1 if a < b else 0
	OpEquals        Opcode = 8  // dst = 1 if a == b else 0
	OpAdjustRelBase Opcode = 9  // relative base += delta
	OpTerminate     Opcode = 99 // halt immediately
)

// Mode is a per-operand addressing rule, one decimal digit of the raw
// instruction word above the opcode.
type Mode int

const (
	ModePosition  Mode = 0 // operand is an address to dereference
	ModeImmediate Mode = 1 // operand is the value itself (read operands only)
	ModeRelative  Mode = 2 // operand is an offset from the relative base
)

// String returns the mode's name.
func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	case ModeRelative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// OpcodeInfo provides metadata about each opcode for decoding, tracing
// and validation.
type OpcodeInfo struct {
	Name         string // human-readable name
	Arity        int    // number of operands following the instruction word
	WritesTarget bool   // last operand is a write target, never a value
}

// opcodeInfoTable maps opcodes to their metadata. The interpreter does
// not dispatch through this table; it exists so that decoding and
// diagnostics share one definition of each opcode's shape.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpAdd:           {"ADD", 3, true},
	OpMultiply:      {"MULTIPLY", 3, true},
	OpInput:         {"INPUT", 1, true},
	OpOutput:        {"OUTPUT", 1, false},
	OpJumpIfTrue:    {"JUMP_IF_TRUE", 2, false},
	OpJumpIfFalse:   {"JUMP_IF_FALSE", 2, false},
	OpLessThan:      {"LESS_THAN", 3, true},
	OpEquals:        {"EQUALS", 3, true},
	OpAdjustRelBase: {"ADJUST_REL_BASE", 1, false},
	OpTerminate:     {"TERMINATE", 0, false},
}

// GetOpcodeInfo returns metadata for an opcode and whether the opcode is
// defined.
func GetOpcodeInfo(op Opcode) (OpcodeInfo, bool) {
	info, ok := opcodeInfoTable[op]
	return info, ok
}

// String returns the human-readable name of an opcode.
func (op Opcode) String() string {
	if info, ok := opcodeInfoTable[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int64(op))
}

// Arity returns the number of operands the opcode declares.
func (op Opcode) Arity() int {
	return opcodeInfoTable[op].Arity
}

// WritesTarget reports whether the opcode's last operand names a memory
// cell to write rather than a value to read.
func (op Opcode) WritesTarget() bool {
	return opcodeInfoTable[op].WritesTarget
}

// InstructionLen returns the total instruction length in words
// (1 + arity). The program counter advances by this amount when the
// instruction does not jump.
func (op Opcode) InstructionLen() int64 {
	return 1 + int64(op.Arity())
}

// IsJump reports whether the opcode may redirect the program counter.
func (op Opcode) IsJump() bool {
	return op == OpJumpIfTrue || op == OpJumpIfFalse
}

// AllOpcodes returns all defined opcodes. Useful for testing that every
// opcode has metadata.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, len(opcodeInfoTable))
	for op := range opcodeInfoTable {
		opcodes = append(opcodes, op)
	}
	return opcodes
}
