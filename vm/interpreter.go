package vm

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("intcode.vm")

// run is the fetch-decode-execute loop. It returns when the machine
// halts, blocks on input, or faults. The loop condition keeps the
// program counter within the loaded image: an instruction stream that
// advances past the highest address ever touched has run off the program
// and halts.
func (m *VM) run() error {
	for m.state == StateRunning && m.pc <= m.mem.Highest() {
		if err := m.step(); err != nil {
			return err
		}
	}
	if m.state == StateRunning {
		// Ran off the end of the image.
		m.state = StateHalted
	}
	return nil
}

// step executes the single instruction at the program counter.
func (m *VM) step() error {
	word, err := m.mem.Read(m.pc)
	if err != nil {
		return err
	}
	inst, err := Decode(word, m.pc)
	if err != nil {
		return err
	}

	log.Debugf("[%06d] %-16s rel=%d", m.pc, inst.Op, m.relBase)

	switch inst.Op {
	case OpAdd:
		a, b, dst, err := m.binaryOperands(inst)
		if err != nil {
			return err
		}
		if err := m.mem.Write(dst, a+b); err != nil {
			return err
		}

	case OpMultiply:
		a, b, dst, err := m.binaryOperands(inst)
		if err != nil {
			return err
		}
		if err := m.mem.Write(dst, a*b); err != nil {
			return err
		}

	case OpInput:
		if len(m.inputs) == 0 {
			// Suspend without advancing: the same instruction
			// re-decodes and re-attempts on the next Run.
			m.state = StateWaitingForInput
			return nil
		}
		dst, err := m.writeTarget(inst, 0)
		if err != nil {
			return err
		}
		value := m.inputs[0]
		m.inputs = m.inputs[1:]
		if err := m.mem.Write(dst, value); err != nil {
			return err
		}

	case OpOutput:
		value, err := m.readOperand(inst, 0)
		if err != nil {
			return err
		}
		m.outputs = append(m.outputs, value)

	case OpJumpIfTrue:
		cond, err := m.readOperand(inst, 0)
		if err != nil {
			return err
		}
		target, err := m.readOperand(inst, 1)
		if err != nil {
			return err
		}
		if cond != 0 {
			m.pc = target
			return nil
		}

	case OpJumpIfFalse:
		cond, err := m.readOperand(inst, 0)
		if err != nil {
			return err
		}
		target, err := m.readOperand(inst, 1)
		if err != nil {
			return err
		}
		if cond == 0 {
			m.pc = target
			return nil
		}

	case OpLessThan:
		a, b, dst, err := m.binaryOperands(inst)
		if err != nil {
			return err
		}
		result := int64(0)
		if a < b {
			result = 1
		}
		if err := m.mem.Write(dst, result); err != nil {
			return err
		}

	case OpEquals:
		a, b, dst, err := m.binaryOperands(inst)
		if err != nil {
			return err
		}
		result := int64(0)
		if a == b {
			result = 1
		}
		if err := m.mem.Write(dst, result); err != nil {
			return err
		}

	case OpAdjustRelBase:
		delta, err := m.readOperand(inst, 0)
		if err != nil {
			return err
		}
		m.relBase += delta

	case OpTerminate:
		m.state = StateHalted
		return nil
	}

	m.pc += inst.Op.InstructionLen()
	return nil
}

// readOperand resolves operand i of inst as a value to read, applying
// the instruction's addressing mode.
func (m *VM) readOperand(inst Instruction, i int) (int64, error) {
	raw, err := m.mem.Read(m.pc + 1 + int64(i))
	if err != nil {
		return 0, err
	}
	switch inst.Modes[i] {
	case ModeImmediate:
		return raw, nil
	case ModeRelative:
		return m.mem.Read(m.relBase + raw)
	default:
		return m.mem.Read(raw)
	}
}

// writeTarget resolves operand i of inst as the address to write.
// Position mode writes at the operand value itself and relative mode at
// relative-base + value; neither dereferences a second time, and Decode
// has already rejected immediate mode here.
func (m *VM) writeTarget(inst Instruction, i int) (int64, error) {
	raw, err := m.mem.Read(m.pc + 1 + int64(i))
	if err != nil {
		return 0, err
	}
	addr := raw
	if inst.Modes[i] == ModeRelative {
		addr = m.relBase + raw
	}
	if addr < 0 {
		return 0, &AddressError{Addr: addr}
	}
	return addr, nil
}

// binaryOperands resolves the (a, b, dst) shape shared by add, multiply,
// less-than and equals.
func (m *VM) binaryOperands(inst Instruction) (a, b, dst int64, err error) {
	if a, err = m.readOperand(inst, 0); err != nil {
		return
	}
	if b, err = m.readOperand(inst, 1); err != nil {
		return
	}
	dst, err = m.writeTarget(inst, 2)
	return
}
