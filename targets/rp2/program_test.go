//go:build rp2040 || rp2350

package rp2

import "testing"

// Pins the assembled program words: opcode, side-set and delay fields
// must encode exactly the documented cycle split.
func TestStripProgramEncoding(t *testing.T) {
	expected := []uint16{
		0x6321, // 0: out x, 1    side 0 [3]
		0x1223, // 1: jmp !x, 3   side 1 [2]
		0x1200, // 2: jmp 0       side 1 [2]
		0xa242, // 3: nop         side 0 [2]
	}

	program := stripProgram()
	if len(program) != len(expected) {
		t.Fatalf("program has %d instructions, want %d", len(program), len(expected))
	}
	for i := range program {
		if program[i] != expected[i] {
			t.Errorf("instr %d = %#04x, want %#04x", i, program[i], expected[i])
		}
	}
}
