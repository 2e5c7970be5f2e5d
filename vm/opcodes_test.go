package vm

import "testing"

func TestAllOpcodesHaveMetadata(t *testing.T) {
	for _, op := range AllOpcodes() {
		info, ok := GetOpcodeInfo(op)
		if !ok {
			t.Errorf("Opcode %d has no metadata", op)
			continue
		}
		if info.Name == "" {
			t.Errorf("Opcode %d has no name", op)
		}
	}
}

func TestOpcodeArity(t *testing.T) {
	tests := []struct {
		op    Opcode
		arity int
	}{
		{OpTerminate, 0},
		{OpInput, 1},
		{OpOutput, 1},
		{OpAdjustRelBase, 1},
		{OpJumpIfTrue, 2},
		{OpJumpIfFalse, 2},
		{OpAdd, 3},
		{OpMultiply, 3},
		{OpLessThan, 3},
		{OpEquals, 3},
	}
	for _, tt := range tests {
		if got := tt.op.Arity(); got != tt.arity {
			t.Errorf("%s: expected arity %d, got %d", tt.op, tt.arity, got)
		}
		if got := tt.op.InstructionLen(); got != int64(1+tt.arity) {
			t.Errorf("%s: expected instruction length %d, got %d", tt.op, 1+tt.arity, got)
		}
	}
}

func TestOpcodeWritesTarget(t *testing.T) {
	writers := map[Opcode]bool{
		OpAdd: true, OpMultiply: true, OpInput: true, OpLessThan: true, OpEquals: true,
	}
	for _, op := range AllOpcodes() {
		if got := op.WritesTarget(); got != writers[op] {
			t.Errorf("%s: WritesTarget = %v, expected %v", op, got, writers[op])
		}
	}
}

func TestOpcodeString(t *testing.T) {
	if OpAdd.String() != "ADD" {
		t.Errorf("Expected ADD, got %s", OpAdd)
	}
	if Opcode(42).String() != "UNKNOWN(42)" {
		t.Errorf("Expected UNKNOWN(42), got %s", Opcode(42))
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModePosition, "position"},
		{ModeImmediate, "immediate"},
		{ModeRelative, "relative"},
		{Mode(9), "mode(9)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d): expected %q, got %q", int(tt.mode), tt.want, got)
		}
	}
}
