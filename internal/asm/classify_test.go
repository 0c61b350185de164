package asm

import (
	"testing"

	"github.com/anvil-systems/lc3asm/internal/vm"
)

func TestParseCondCodes(t *testing.T) {
	tests := []struct {
		mnemonic string
		want     vm.Condition
		ok       bool
	}{
		{"BR", vm.ConditionAll, true},
		{"BRn", vm.ConditionNegative, true},
		{"BRz", vm.ConditionZero, true},
		{"BRp", vm.ConditionPositive, true},
		{"BRnz", vm.ConditionNegative | vm.ConditionZero, true},
		{"BRnzp", vm.ConditionAll, true},
		{"BRnn", 0, false},  // repeated flag
		{"BRx", 0, false},   // not a flag
		{"BRN", 0, false},   // uppercase flags are rejected
		{"ADD", 0, false},   // not a branch at all
	}

	for _, tt := range tests {
		got, ok := parseCondCodes(tt.mnemonic)
		if ok != tt.ok {
			t.Errorf("parseCondCodes(%q) ok = %v, want %v", tt.mnemonic, ok, tt.ok)
			continue
		}

		if ok && got != tt.want {
			t.Errorf("parseCondCodes(%q) = %v, want %v", tt.mnemonic, got, tt.want)
		}
	}
}

func TestClassifyTrapAliases(t *testing.T) {
	for alias, vec := range trapVectors {
		kind, _, ok := classify(alias)
		if !ok || kind != KindTRAP {
			t.Errorf("classify(%q) = %v, %v, want KindTRAP, true", alias, kind, ok)
		}

		if vec < 0x20 || vec > 0x25 {
			t.Errorf("trapVectors[%q] = %#x, outside the service routine range", alias, vec)
		}
	}
}

func TestLooksLikeBranch(t *testing.T) {
	for _, m := range []string{"BR", "BRn", "BRnzp", "BRnn", "BRppp"} {
		if !looksLikeBranch(m) {
			t.Errorf("looksLikeBranch(%q) = false, want true", m)
		}
	}

	for _, m := range []string{"BRANCH", "BRx", "ADD", "B"} {
		if looksLikeBranch(m) {
			t.Errorf("looksLikeBranch(%q) = true, want false", m)
		}
	}
}

func TestParseRegister(t *testing.T) {
	for i := 0; i <= 7; i++ {
		tok := "R" + string(rune('0'+i))

		got, ok := ParseRegister(tok)
		if !ok || got != vm.GPR(i) {
			t.Errorf("ParseRegister(%q) = %v, %v, want %v, true", tok, got, ok, vm.GPR(i))
		}
	}

	for _, bad := range []string{"R8", "RA", "X0", "R", "R00"} {
		if _, ok := ParseRegister(bad); ok {
			t.Errorf("ParseRegister(%q) = true, want false", bad)
		}
	}
}

func TestParseImmediate(t *testing.T) {
	tests := []struct {
		operand string
		width   uint8
		want    uint16
		wantErr bool
	}{
		{"#0", 5, 0, false},
		{"#-16", 5, 0x10, false},
		{"#15", 5, 0x0f, false},
		{"#16", 5, 0, true},  // out of range for signed 5 bits
		{"#-17", 5, 0, true}, // out of range
		{"x3000", 16, 0x3000, false},
		{"xFF", 8, 0xff, false},
		{"x100", 8, 0, true}, // out of range for 8 unsigned bits
		{"R0", 5, 0, true},   // not an immediate at all
	}

	for _, tt := range tests {
		got, err := ParseImmediate(tt.operand, tt.width)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseImmediate(%q, %d) error = %v, wantErr %v", tt.operand, tt.width, err, tt.wantErr)
			continue
		}

		if err == nil && got != tt.want {
			t.Errorf("ParseImmediate(%q, %d) = %#x, want %#x", tt.operand, tt.width, got, tt.want)
		}
	}
}
