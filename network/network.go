// Package network runs many Intcode machines as a point-to-point packet
// network. All machines load the same program; machine i learns its
// address from its first input value. Scheduling is a single-threaded
// cooperative round-robin: every machine gets at most one run turn per
// round, and packets produced in a round become visible to their
// destinations only on the following round. That ordering guarantee is a
// correctness requirement of the protocol, so the rounds are explicit
// rather than hidden behind goroutines.
package network

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/intcode/vm"
)

var log = commonlog.GetLogger("intcode.network")

// Sentinel is the input value a machine receives when it asks for a
// packet and none is queued.
const Sentinel = -1

// Packet is one unit of inter-machine communication: three consecutive
// output values (destination, x, y). The destination is not re-delivered
// as input; the target machine receives x then y.
type Packet struct {
	Dest int64
	X    int64
	Y    int64
}

// Round is the result of stepping the network once.
type Round struct {
	Sent  []Packet // every completed packet, in emission order
	Stray []Packet // packets whose destination is outside the network
	Idle  bool     // no packets sent, no input pending, no partial output
}

// Network drives n machines in cooperative rounds and routes packets
// between them.
type Network struct {
	nodes   []*vm.VM
	partial [][]int64 // per-node output values not yet forming a packet
	rounds  int
}

// New boots a network of n machines, each loaded with the same program
// image and given its own index as the first input value.
func New(image []int64, n int) (*Network, error) {
	if n <= 0 {
		return nil, fmt.Errorf("network: need at least one node, got %d", n)
	}

	template := vm.NewVM()
	template.Load(image)

	net := &Network{
		nodes:   make([]*vm.VM, n),
		partial: make([][]int64, n),
	}
	for i := range net.nodes {
		node, err := template.Clone()
		if err != nil {
			return nil, fmt.Errorf("network: boot node %d: %w", i, err)
		}
		node.EnqueueInput(int64(i))
		net.nodes[i] = node
	}
	return net, nil
}

// Size returns the number of machines in the network.
func (n *Network) Size() int {
	return len(n.nodes)
}

// Node returns machine i. Callers must not drive it while rounds are in
// progress; the network owns scheduling.
func (n *Network) Node(i int) *vm.VM {
	return n.nodes[i]
}

// Inject queues values directly on machine node's input. They become
// visible on its next turn. This is the delivery path for out-of-band
// senders such as a NAT.
func (n *Network) Inject(node int, values ...int64) error {
	if node < 0 || node >= len(n.nodes) {
		return fmt.Errorf("network: inject into unknown node %d", node)
	}
	for _, v := range values {
		n.nodes[node].EnqueueInput(v)
	}
	return nil
}

// Step runs one full round: each non-halted machine gets one run turn in
// index order, with the sentinel injected first when its input queue is
// empty. Packets completed during the round are delivered to in-range
// destinations after every machine has taken its turn, never mid-round.
//
// The returned Round reports Idle when the round sent no packets, left
// every input queue empty, and holds no partial output triple. A network
// that is idle stays idle unless the caller injects new input, so the
// caller decides whether idling is success or a stall.
func (n *Network) Step() (*Round, error) {
	n.rounds++
	round := &Round{}

	for i, node := range n.nodes {
		if node.State() == vm.StateHalted {
			continue
		}
		if node.PendingInput() == 0 {
			node.EnqueueInput(Sentinel)
		}

		state, outputs, err := node.Run()
		if err != nil {
			return nil, fmt.Errorf("network: node %d faulted: %w", i, err)
		}

		n.partial[i] = append(n.partial[i], outputs...)
		for len(n.partial[i]) >= 3 {
			p := Packet{
				Dest: n.partial[i][0],
				X:    n.partial[i][1],
				Y:    n.partial[i][2],
			}
			n.partial[i] = n.partial[i][3:]
			round.Sent = append(round.Sent, p)
			log.Debugf("round %d: node %d -> %d (%d, %d)", n.rounds, i, p.Dest, p.X, p.Y)
		}

		if state == vm.StateHalted {
			log.Debugf("round %d: node %d halted", n.rounds, i)
		}
	}

	// Deliver after the round boundary so every packet becomes visible
	// on the following round, regardless of sender and receiver order.
	for _, p := range round.Sent {
		if p.Dest < 0 || p.Dest >= int64(len(n.nodes)) {
			round.Stray = append(round.Stray, p)
			continue
		}
		dest := n.nodes[p.Dest]
		dest.EnqueueInput(p.X)
		dest.EnqueueInput(p.Y)
	}

	round.Idle = len(round.Sent) == 0 && n.quiescent()
	if round.Idle {
		log.Debugf("round %d: idle", n.rounds)
	}
	return round, nil
}

// quiescent reports whether every machine's input queue is empty and no
// machine holds a partial output triple. A buffered partial triple still
// owes the network a packet, so it blocks idleness even though no
// complete packet moved this round. Halted machines are skipped: they
// can neither consume queued input nor complete a partial triple, so
// whatever they hold is dead.
func (n *Network) quiescent() bool {
	for i, node := range n.nodes {
		if node.State() == vm.StateHalted {
			continue
		}
		if node.PendingInput() > 0 || len(n.partial[i]) > 0 {
			return false
		}
	}
	return true
}

// RunUntilIdle steps the network until a round reports idle, returning
// that round. It gives up with an error after maxRounds rounds so a
// chattering network cannot spin forever.
func (n *Network) RunUntilIdle(maxRounds int) (*Round, error) {
	for i := 0; i < maxRounds; i++ {
		round, err := n.Step()
		if err != nil {
			return nil, err
		}
		if round.Idle {
			return round, nil
		}
	}
	return nil, fmt.Errorf("network: no idle round within %d rounds", maxRounds)
}
