// Package vm implements an Intcode virtual machine: a small computer
// that executes programs encoded as flat arrays of signed integers.
//
// The instruction format packs an opcode and per-operand addressing modes
// into a single decimal word. The machine grows its memory on demand,
// supports position/immediate/relative addressing, and can suspend
// cooperatively when it asks for input that has not been supplied yet.
//
// The package is organized into:
//
//   - Memory: a sparse integer store addressed by non-negative index,
//     defaulting unread cells to zero and tracking the highest address
//     ever touched.
//
//   - Instruction decoding: Decode splits a raw word into an opcode and
//     its addressing modes, validating both. Decoding is a pure function
//     of the word, which is what makes re-decoding after a suspension
//     safe.
//
//   - The interpreter: a fetch-decode-execute loop with an exhaustive
//     switch over the closed opcode set. The loop runs until the program
//     terminates, runs off the end of the loaded image, or blocks on
//     input.
//
//   - VM: the instance wrapper callers drive. It owns the memory, the
//     program counter, the relative base, and the input/output queues,
//     and exposes Run with pause/resume semantics.
//
//   - Snapshots: canonical CBOR serialization of a machine's complete
//     state, used to clone a loaded template into many identical
//     instances and to hand suspended state between owners.
//
// # Suspension
//
// Run drives the machine until it halts or needs input. A machine that
// returns StateWaitingForInput has not advanced past the blocked input
// instruction; enqueue at least one value and call Run again to resume
// exactly where it left off. Outputs are drained on every Run return, so
// interleaving enqueue/run cycles observes the same output stream as a
// single fully-fed run.
package vm
