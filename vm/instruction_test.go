package vm

import (
	"errors"
	"testing"
)

func TestDecodeModes(t *testing.T) {
	tests := []struct {
		word  int64
		op    Opcode
		modes []Mode
	}{
		// Missing leading digits default to position mode.
		{1, OpAdd, []Mode{ModePosition, ModePosition, ModePosition}},
		{1002, OpMultiply, []Mode{ModePosition, ModeImmediate, ModePosition}},
		{104, OpOutput, []Mode{ModeImmediate}},
		{204, OpOutput, []Mode{ModeRelative}},
		{3, OpInput, []Mode{ModePosition}},
		{203, OpInput, []Mode{ModeRelative}},
		{1105, OpJumpIfTrue, []Mode{ModeImmediate, ModeImmediate}},
		{1006, OpJumpIfFalse, []Mode{ModePosition, ModeImmediate}},
		// Write target may be relative.
		{21101, OpAdd, []Mode{ModeImmediate, ModeImmediate, ModeRelative}},
		{21108, OpEquals, []Mode{ModeImmediate, ModeImmediate, ModeRelative}},
		{109, OpAdjustRelBase, []Mode{ModeImmediate}},
		{99, OpTerminate, []Mode{}},
	}

	for _, tt := range tests {
		inst, err := Decode(tt.word, 0)
		if err != nil {
			t.Errorf("Decode(%d) failed: %v", tt.word, err)
			continue
		}
		if inst.Op != tt.op {
			t.Errorf("Decode(%d): expected opcode %s, got %s", tt.word, tt.op, inst.Op)
		}
		if len(inst.Modes) != len(tt.modes) {
			t.Errorf("Decode(%d): expected %d modes, got %d", tt.word, len(tt.modes), len(inst.Modes))
			continue
		}
		for i, mode := range tt.modes {
			if inst.Modes[i] != mode {
				t.Errorf("Decode(%d): operand %d expected %s, got %s", tt.word, i, mode, inst.Modes[i])
			}
		}
	}
}

func TestDecodeBadOpcode(t *testing.T) {
	for _, word := range []int64{0, 10, 98, 100, -1, 1234567} {
		_, err := Decode(word, 5)
		if err == nil {
			t.Errorf("Decode(%d): expected BadOpcodeError", word)
			continue
		}
		var badOp *BadOpcodeError
		if !errors.As(err, &badOp) {
			t.Errorf("Decode(%d): expected BadOpcodeError, got %T: %v", word, err, err)
			continue
		}
		if badOp.Addr != 5 {
			t.Errorf("Decode(%d): expected error to carry address 5, got %d", word, badOp.Addr)
		}
	}
}

func TestDecodeInvalidModeDigit(t *testing.T) {
	// 304: output with mode digit 3.
	_, err := Decode(304, 0)
	if err == nil {
		t.Fatal("Expected error for mode digit 3")
	}
	var modeErr *ModeError
	if !errors.As(err, &modeErr) {
		t.Fatalf("Expected ModeError, got %T: %v", err, err)
	}
	if modeErr.Mode != Mode(3) {
		t.Errorf("Expected mode 3 in error, got %d", int(modeErr.Mode))
	}
}

func TestDecodeImmediateWriteTargetRejected(t *testing.T) {
	tests := []int64{
		103,   // input, immediate destination
		11101, // add, immediate destination
		11102, // multiply, immediate destination
		11107, // less-than, immediate destination
		11108, // equals, immediate destination
	}
	for _, word := range tests {
		_, err := Decode(word, 0)
		if err == nil {
			t.Errorf("Decode(%d): expected immediate write target to be rejected", word)
			continue
		}
		var modeErr *ModeError
		if !errors.As(err, &modeErr) {
			t.Errorf("Decode(%d): expected ModeError, got %T: %v", word, err, err)
		}
	}
}

// Decoding must be a pure function of the word: the suspend path
// re-decodes the blocked instruction on every resume.
func TestDecodeIsPure(t *testing.T) {
	a, err := Decode(21101, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	b, err := Decode(21101, 99)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if a.Op != b.Op || len(a.Modes) != len(b.Modes) {
		t.Fatal("Expected identical decodes of identical words")
	}
	for i := range a.Modes {
		if a.Modes[i] != b.Modes[i] {
			t.Errorf("Operand %d decoded differently: %s vs %s", i, a.Modes[i], b.Modes[i])
		}
	}
}
