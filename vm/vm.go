package vm

// State is the run-state of a machine.
type State int

const (
	// StateRunning means the machine can execute its next instruction.
	StateRunning State = iota
	// StateWaitingForInput means the machine is blocked on an input
	// instruction with an empty input queue. Enqueue a value and call
	// Run to resume; the blocked instruction re-attempts, it is never
	// half-executed.
	StateWaitingForInput
	// StateHalted means the machine executed a terminate instruction,
	// ran off the end of its loaded image, or failed fatally.
	StateHalted
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateWaitingForInput:
		return "waiting-for-input"
	case StateHalted:
		return "halted"
	}
	return "unknown"
}

// VM is one Intcode machine instance: memory, program counter, relative
// base, pending-input queue and emitted-output queue. A VM is driven by
// one caller at a time; it has no internal concurrency.
type VM struct {
	mem     *Memory
	pc      int64
	relBase int64
	state   State
	inputs  []int64
	outputs []int64
}

// NewVM creates a machine with empty memory and no loaded program.
// Running it halts immediately; call Load first.
func NewVM() *VM {
	return &VM{
		mem:   NewMemory(),
		state: StateRunning,
	}
}

// Load initializes memory from the program image at addresses
// 0..len(image)-1 and resets the registers, the queues, and the
// run-state.
func (m *VM) Load(image []int64) {
	m.mem.Load(image)
	m.pc = 0
	m.relBase = 0
	m.state = StateRunning
	m.inputs = nil
	m.outputs = nil
}

// EnqueueInput appends a value to the input queue. It never resumes
// execution by itself; a machine blocked on input stays
// StateWaitingForInput until the next Run call consumes the value.
func (m *VM) EnqueueInput(value int64) {
	m.inputs = append(m.inputs, value)
}

// PendingInput returns the number of input values queued but not yet
// consumed.
func (m *VM) PendingInput() int {
	return len(m.inputs)
}

// State returns the machine's current run-state.
func (m *VM) State() State {
	return m.state
}

// Peek reads a memory cell without executing anything. Intended for
// inspecting results after a run (or before one).
func (m *VM) Peek(addr int64) (int64, error) {
	return m.mem.Read(addr)
}

// Poke overwrites a memory cell without executing anything. Intended for
// pre-run configuration such as noun/verb patching; it is not part of
// the execution contract.
func (m *VM) Poke(addr, value int64) error {
	return m.mem.Write(addr, value)
}

// Run drives the machine until it blocks on input or halts, and returns
// the final state together with every output produced since the previous
// Run call (the output queue is drained). A fatal error (bad opcode,
// negative address, invalid mode) aborts the run, leaves the machine
// halted, and is returned alongside whatever outputs were produced
// before the fault.
func (m *VM) Run() (State, []int64, error) {
	if m.state == StateWaitingForInput {
		m.state = StateRunning
	}

	var err error
	if m.state == StateRunning {
		err = m.run()
	}

	out := m.outputs
	m.outputs = nil

	if err != nil {
		m.state = StateHalted
		return m.state, out, err
	}
	return m.state, out, nil
}
