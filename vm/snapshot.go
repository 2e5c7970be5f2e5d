package vm

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode is configured for canonical encoding so that identical
// machine states always serialize to identical bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// snapshot is the serialized form of a machine's complete state. The
// version field guards against decoding a snapshot written by an
// incompatible build.
type snapshot struct {
	Version int             `cbor:"version"`
	Cells   map[int64]int64 `cbor:"cells"`
	Highest int64           `cbor:"highest"`
	PC      int64           `cbor:"pc"`
	RelBase int64           `cbor:"relBase"`
	State   int             `cbor:"state"`
	Inputs  []int64         `cbor:"inputs"`
	Outputs []int64         `cbor:"outputs"`
}

const snapshotVersion = 1

// Snapshot serializes the machine's complete state (memory, registers,
// queues, run-state) to CBOR bytes. The bytes are self-contained; what
// the caller does with them is its own business.
func (m *VM) Snapshot() ([]byte, error) {
	s := snapshot{
		Version: snapshotVersion,
		Cells:   m.mem.Cells(),
		Highest: m.mem.Highest(),
		PC:      m.pc,
		RelBase: m.relBase,
		State:   int(m.state),
		Inputs:  append([]int64(nil), m.inputs...),
		Outputs: append([]int64(nil), m.outputs...),
	}
	data, err := cborEncMode.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("vm: marshal snapshot: %w", err)
	}
	return data, nil
}

// RestoreSnapshot reconstructs a machine from Snapshot bytes. The
// restored machine is fully independent of the one that produced the
// snapshot.
func RestoreSnapshot(data []byte) (*VM, error) {
	var s snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("vm: unmarshal snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("vm: unsupported snapshot version %d", s.Version)
	}

	m := NewVM()
	m.mem.cells = make(map[int64]int64, len(s.Cells))
	for addr, v := range s.Cells {
		m.mem.cells[addr] = v
	}
	m.mem.highest = s.Highest
	m.pc = s.PC
	m.relBase = s.RelBase
	m.state = State(s.State)
	m.inputs = append([]int64(nil), s.Inputs...)
	m.outputs = append([]int64(nil), s.Outputs...)
	return m, nil
}

// Clone returns an independent copy of the machine via a snapshot
// round-trip. Cloning a freshly-loaded template is how the network
// orchestrator boots many identical instances of one program.
func (m *VM) Clone() (*VM, error) {
	data, err := m.Snapshot()
	if err != nil {
		return nil, err
	}
	return RestoreSnapshot(data)
}
