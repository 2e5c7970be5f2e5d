package network

import "fmt"

// NATAddress is the conventional destination of packets meant for the
// idle monitor rather than for another machine.
const NATAddress = 255

// NAT is the network's idle monitor. It captures packets addressed to
// NATAddress, remembering only the most recent one, and when the network
// reports an idle round it re-injects that packet's (x, y) into node 0
// to wake the network back up.
type NAT struct {
	net *Network

	last    Packet
	hasLast bool

	firstY    int64
	sawFirst  bool
	prevSentY int64
	sentOnce  bool
}

// NewNAT attaches an idle monitor to a network.
func NewNAT(net *Network) *NAT {
	return &NAT{net: net}
}

// FirstY returns the Y value of the first packet captured at NATAddress,
// and whether one has been captured yet.
func (t *NAT) FirstY() (int64, bool) {
	return t.firstY, t.sawFirst
}

// Step runs one network round under NAT supervision: strays addressed to
// NATAddress are absorbed, and an idle round triggers re-injection of
// the last absorbed packet into node 0.
//
// The returned repeated flag is true when the Y value just re-injected
// equals the Y of the previous re-injection — the network has settled
// into a cycle, which callers usually treat as the terminal condition.
func (t *NAT) Step() (repeated bool, y int64, err error) {
	round, err := t.net.Step()
	if err != nil {
		return false, 0, err
	}

	for _, p := range round.Stray {
		if p.Dest != NATAddress {
			continue
		}
		if !t.sawFirst {
			t.firstY = p.Y
			t.sawFirst = true
		}
		t.last = p
		t.hasLast = true
	}

	if !round.Idle {
		return false, 0, nil
	}
	if !t.hasLast {
		// Idle with nothing to deliver: the network is truly stalled
		// and re-stepping cannot change that.
		return false, 0, fmt.Errorf("network: idle with no packet held by NAT")
	}

	log.Debugf("nat: idle, delivering (%d, %d) to node 0", t.last.X, t.last.Y)
	if err := t.net.Inject(0, t.last.X, t.last.Y); err != nil {
		return false, 0, err
	}
	if t.sentOnce && t.prevSentY == t.last.Y {
		return true, t.last.Y, nil
	}
	t.prevSentY = t.last.Y
	t.sentOnce = true
	return false, 0, nil
}

// RunUntilRepeat steps under NAT supervision until the monitor delivers
// the same Y value to node 0 twice in a row, returning that Y. It fails
// after maxRounds rounds.
func (t *NAT) RunUntilRepeat(maxRounds int) (int64, error) {
	for i := 0; i < maxRounds; i++ {
		repeated, y, err := t.Step()
		if err != nil {
			return 0, err
		}
		if repeated {
			return y, nil
		}
	}
	return 0, fmt.Errorf("network: no repeated NAT delivery within %d rounds", maxRounds)
}
