// Intcode CLI - loads a program image and runs it to completion,
// interactively, or as a packet network.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/chazu/intcode/manifest"
	"github.com/chazu/intcode/network"
	"github.com/chazu/intcode/vm"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output (debug-level round and instruction tracing)")
	inputsFlag := flag.String("input", "", "Comma-separated input values to enqueue before running")
	pokesFlag := flag.String("poke", "", "Comma-separated addr=value memory patches applied before running")
	interactive := flag.Bool("i", false, "Interactive ASCII mode: read stdin lines when the program wants input")
	netNodes := flag.Int("net", 0, "Run N copies of the program as a packet network")
	natMode := flag.Bool("nat", false, "With -net: attach the idle monitor and run until a repeated delivery")
	maxRounds := flag.Int("max-rounds", 100000, "With -net: give up after this many scheduling rounds")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: intcode [options] [program-file]\n\n")
		fmt.Fprintf(os.Stderr, "Runs an Intcode program image (comma-separated integers).\n")
		fmt.Fprintf(os.Stderr, "Without a program file, looks for an intcode.toml manifest in the\n")
		fmt.Fprintf(os.Stderr, "current directory or any parent.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  intcode -input 1 diagnostics.txt        # run with one input value\n")
		fmt.Fprintf(os.Stderr, "  intcode -poke 1=12,2=2 gravity.txt      # patch noun/verb, then run\n")
		fmt.Fprintf(os.Stderr, "  intcode -i adventure.txt                # drive an ASCII program from stdin\n")
		fmt.Fprintf(os.Stderr, "  intcode -net 50 -nat nic.txt            # 50-node network with idle monitor\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	image, inputs, pokes, netCfg, err := resolveRun(flag.Args(), *inputsFlag, *pokesFlag, *netNodes, *natMode, *maxRounds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if netCfg != nil {
		if err := runNetwork(image, netCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runMachine(image, inputs, pokes, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type netConfig struct {
	nodes     int
	nat       bool
	maxRounds int
}

// resolveRun combines command-line flags with an optional manifest into
// one run description. Explicit flags win over manifest settings.
func resolveRun(args []string, inputsFlag, pokesFlag string, netNodes int, natMode bool, maxRounds int) (image []int64, inputs []int64, pokes []manifest.Patch, netCfg *netConfig, err error) {
	var programPath string

	switch len(args) {
	case 0:
		m, ferr := manifest.FindAndLoad(".")
		if ferr != nil {
			return nil, nil, nil, nil, ferr
		}
		if m == nil {
			return nil, nil, nil, nil, fmt.Errorf("no program file given and no intcode.toml found")
		}
		programPath = m.ProgramPath()
		inputs = m.Run.Inputs
		pokes = m.Patch
		if m.Network != nil && netNodes == 0 {
			netCfg = &netConfig{nodes: m.Network.Nodes, nat: m.Network.NAT, maxRounds: m.Network.MaxRounds}
		}
	case 1:
		programPath = args[0]
	default:
		return nil, nil, nil, nil, fmt.Errorf("expected at most one program file, got %d", len(args))
	}

	data, rerr := os.ReadFile(programPath)
	if rerr != nil {
		return nil, nil, nil, nil, rerr
	}
	image, err = vm.ParseImage(string(data))
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if inputsFlag != "" {
		inputs, err = parseInts(inputsFlag)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("bad -input: %w", err)
		}
	}
	if pokesFlag != "" {
		pokes, err = parsePokes(pokesFlag)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("bad -poke: %w", err)
		}
	}
	if netNodes > 0 {
		netCfg = &netConfig{nodes: netNodes, nat: natMode, maxRounds: maxRounds}
	}
	return image, inputs, pokes, netCfg, nil
}

// runMachine drives a single machine to halt, feeding scripted inputs
// first and stdin lines afterwards when interactive mode is on.
func runMachine(image []int64, inputs []int64, pokes []manifest.Patch, interactive bool) error {
	m := vm.NewVM()
	m.Load(image)
	for _, p := range pokes {
		if err := m.Poke(p.Address, p.Value); err != nil {
			return err
		}
	}
	for _, v := range inputs {
		m.EnqueueInput(v)
	}

	stdin := bufio.NewReader(os.Stdin)
	for {
		state, outputs, err := m.Run()
		printOutputs(outputs, interactive)
		if err != nil {
			return err
		}
		if state == vm.StateHalted {
			return nil
		}

		// WaitingForInput: in interactive mode feed a line of ASCII,
		// otherwise there is nothing more to give.
		if !interactive {
			return fmt.Errorf("program wants input but none is left (use -input or -i)")
		}
		line, err := stdin.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		for _, b := range []byte(line) {
			m.EnqueueInput(int64(b))
		}
	}
}

// printOutputs renders output values: one integer per line normally, or
// as a character stream in interactive ASCII mode (values outside the
// printable range fall back to integers).
func printOutputs(outputs []int64, ascii bool) {
	for _, v := range outputs {
		if ascii && v >= 0 && v < 128 {
			fmt.Printf("%c", rune(v))
		} else {
			fmt.Println(v)
		}
	}
}

// runNetwork boots the packet network and runs it to its terminal
// condition: a repeated NAT delivery when the idle monitor is attached,
// the first idle round otherwise.
func runNetwork(image []int64, cfg *netConfig) error {
	net, err := network.New(image, cfg.nodes)
	if err != nil {
		return err
	}

	if cfg.nat {
		nat := network.NewNAT(net)
		y, err := nat.RunUntilRepeat(cfg.maxRounds)
		if err != nil {
			return err
		}
		if first, ok := nat.FirstY(); ok {
			fmt.Printf("first packet to %d: y=%d\n", network.NATAddress, first)
		}
		fmt.Printf("first repeated delivery: y=%d\n", y)
		return nil
	}

	round, err := net.RunUntilIdle(cfg.maxRounds)
	if err != nil {
		return err
	}
	fmt.Println("network idle")
	for _, p := range round.Stray {
		fmt.Printf("stray packet to %d: (%d, %d)\n", p.Dest, p.X, p.Y)
	}
	return nil
}

func parseInts(s string) ([]int64, error) {
	fields := strings.Split(s, ",")
	out := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parsePokes(s string) ([]manifest.Patch, error) {
	fields := strings.Split(s, ",")
	out := make([]manifest.Patch, len(fields))
	for i, f := range fields {
		addr, value, ok := strings.Cut(strings.TrimSpace(f), "=")
		if !ok {
			return nil, fmt.Errorf("expected addr=value, got %q", f)
		}
		a, err := strconv.ParseInt(addr, 10, 64)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = manifest.Patch{Address: a, Value: v}
	}
	return out, nil
}
