package vm

import "fmt"

// BadOpcodeError reports an instruction word whose low two digits are not
// a recognized opcode. Execution cannot continue past it.
type BadOpcodeError struct {
	Word int64 // the raw instruction word
	Addr int64 // address the word was fetched from
}

func (e *BadOpcodeError) Error() string {
	return fmt.Sprintf("vm: bad opcode %d (word %d at address %d)", e.Word%100, e.Word, e.Addr)
}

// AddressError reports a read or write that resolved to a negative
// address. Memory has no cells below zero.
type AddressError struct {
	Addr int64
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("vm: address cannot be negative: %d", e.Addr)
}

// ModeError reports an addressing mode that is either outside the defined
// set or immediate on a write-target operand, where a literal value has
// no meaning.
type ModeError struct {
	Mode    Mode
	Op      Opcode
	Operand int // zero-based operand index within the instruction
}

func (e *ModeError) Error() string {
	if e.Mode == ModeImmediate {
		return fmt.Sprintf("vm: immediate mode is invalid for the write target of %s (operand %d)", e.Op, e.Operand)
	}
	return fmt.Sprintf("vm: invalid parameter mode %d for %s (operand %d)", int(e.Mode), e.Op, e.Operand)
}
