package vm

// Memory is a sparse, auto-growing integer store addressed by
// non-negative index. Reading a cell that was never written yields zero;
// any access below address zero is an AddressError. A Memory is owned by
// exactly one VM and is never shared.
type Memory struct {
	cells   map[int64]int64
	highest int64 // highest address ever read or written, -1 when untouched
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{
		cells:   make(map[int64]int64),
		highest: -1,
	}
}

// Load initializes the memory from a program image, placing image[i] at
// address i. Existing contents are discarded.
func (m *Memory) Load(image []int64) {
	m.cells = make(map[int64]int64, len(image))
	m.highest = int64(len(image)) - 1
	for i, v := range image {
		m.cells[int64(i)] = v
	}
}

// Read returns the value at addr, zero for cells never written.
func (m *Memory) Read(addr int64) (int64, error) {
	if addr < 0 {
		return 0, &AddressError{Addr: addr}
	}
	if addr > m.highest {
		m.highest = addr
	}
	return m.cells[addr], nil
}

// Write stores value at addr.
func (m *Memory) Write(addr, value int64) error {
	if addr < 0 {
		return &AddressError{Addr: addr}
	}
	if addr > m.highest {
		m.highest = addr
	}
	m.cells[addr] = value
	return nil
}

// Highest returns the maximum address ever read or written, or -1 for a
// memory that was never touched. The interpreter keeps fetching while
// the program counter is at most Highest; an instruction stream that
// runs past it has run off the loaded image.
func (m *Memory) Highest() int64 {
	return m.highest
}

// Cells returns a copy of every explicitly-set cell. Zero-default cells
// that were only ever read are not included.
func (m *Memory) Cells() map[int64]int64 {
	out := make(map[int64]int64, len(m.cells))
	for addr, v := range m.cells {
		out[addr] = v
	}
	return out
}
