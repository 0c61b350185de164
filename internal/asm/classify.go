package asm

import (
	"strconv"
	"strings"

	"github.com/anvil-systems/lc3asm/internal/vm"
)

// Kind identifies what a mnemonic or directive does, independent of its operands.
type Kind int

const (
	KindADD Kind = iota
	KindAND
	KindBR
	KindJMP
	KindJSR
	KindJSRR
	KindLD
	KindLDI
	KindLDR
	KindLEA
	KindNOT
	KindRET
	KindRTI
	KindST
	KindSTI
	KindSTR
	KindTRAP

	KindOrig
	KindFill
	KindBlkw
	KindEnd
)

// mnemonicTable holds every mnemonic whose spelling is fixed. BR is handled separately because it
// carries a variable n/z/p condition-code suffix.
var mnemonicTable = map[string]Kind{
	"ADD":  KindADD,
	"AND":  KindAND,
	"JMP":  KindJMP,
	"JSR":  KindJSR,
	"JSRR": KindJSRR,
	"LD":   KindLD,
	"LDI":  KindLDI,
	"LDR":  KindLDR,
	"LEA":  KindLEA,
	"NOT":  KindNOT,
	"RET":  KindRET,
	"RTI":  KindRTI,
	"ST":   KindST,
	"STI":  KindSTI,
	"STR":  KindSTR,
	"TRAP": KindTRAP,

	// Trap service routine aliases. Each assembles to TRAP with a fixed vector; see trapVectors.
	"GETC":  KindTRAP,
	"OUT":   KindTRAP,
	"PUTS":  KindTRAP,
	"IN":    KindTRAP,
	"PUTSP": KindTRAP,
	"HALT":  KindTRAP,
}

// trapVectors gives the vector each trap alias expands to. An alias takes no operands; the bare
// TRAP mnemonic takes its vector as an explicit hex operand instead.
var trapVectors = map[string]uint16{
	"GETC":  0x20,
	"OUT":   0x21,
	"PUTS":  0x22,
	"IN":    0x23,
	"PUTSP": 0x24,
	"HALT":  0x25,
}

var directiveTable = map[string]Kind{
	".ORIG": KindOrig,
	".FILL": KindFill,
	".BLKW": KindBlkw,
	".END":  KindEnd,
}

// looksLikeBranch reports whether mnemonic is "BR" followed only by condition-code letters,
// however malformed -- "BRnn", "BRpn", "BRzz". Such a token gets a BadCondCodes diagnostic rather
// than UnknownMnemonic, since the author clearly meant a branch.
func looksLikeBranch(mnemonic string) bool {
	if len(mnemonic) < 2 || mnemonic[:2] != "BR" {
		return false
	}

	for _, r := range mnemonic[2:] {
		if r != 'n' && r != 'z' && r != 'p' {
			return false
		}
	}

	return true
}

// parseCondCodes parses a BR mnemonic's condition-code suffix. Bare "BR" means all three flags;
// any of n, z, p may follow BR, in any order, but not more than once apiece.
func parseCondCodes(mnemonic string) (vm.Condition, bool) {
	if len(mnemonic) < 2 || mnemonic[:2] != "BR" {
		return 0, false
	}

	suffix := mnemonic[2:]
	if suffix == "" {
		return vm.ConditionAll, true
	}

	var (
		cond vm.Condition
		seen vm.Condition
	)

	for _, r := range suffix {
		var flag vm.Condition

		switch r {
		case 'n':
			flag = vm.ConditionNegative
		case 'z':
			flag = vm.ConditionZero
		case 'p':
			flag = vm.ConditionPositive
		default:
			return 0, false
		}

		if seen&flag != 0 {
			return 0, false
		}

		seen |= flag
		cond |= flag
	}

	return cond, true
}

// classify identifies a mnemonic, returning its Kind and, for BR, its parsed condition mask.
func classify(mnemonic string) (Kind, vm.Condition, bool) {
	if cond, ok := parseCondCodes(mnemonic); ok {
		return KindBR, cond, true
	}

	if kind, ok := mnemonicTable[mnemonic]; ok {
		return kind, 0, true
	}

	if kind, ok := directiveTable[mnemonic]; ok {
		return kind, 0, true
	}

	return 0, 0, false
}

// ParseRegister parses an "R0".."R7" operand. It returns vm.BadGPR, false if operand does not
// name a general-purpose register.
func ParseRegister(operand string) (vm.GPR, bool) {
	if len(operand) != 2 || (operand[0] != 'R' && operand[0] != 'r') {
		return vm.BadGPR, false
	}

	if operand[1] < '0' || operand[1] > '7' {
		return vm.BadGPR, false
	}

	return vm.GPR(operand[1] - '0'), true
}

// ParseImmediate parses a "#123", "#-1", "x3F", or "X3f" literal. width bounds the number of bits
// the caller expects the value to fit in; decimal literals are range-checked as signed, hex
// literals as unsigned, matching the assembler's two immediate syntaxes.
func ParseImmediate(operand string, width uint8) (uint16, error) {
	if operand == "" {
		return 0, BadOperandKind{Operand: operand, Want: "immediate"}
	}

	switch operand[0] {
	case '#':
		n, err := strconv.ParseInt(operand[1:], 10, 32)
		if err != nil {
			return 0, BadOperandKind{Operand: operand, Want: "decimal immediate"}
		}

		lo, hi := -(int64(1) << (width - 1)), (int64(1)<<(width-1))-1
		if n < lo || n > hi {
			return 0, ImmediateOutOfRange{Literal: operand, Bits: width}
		}

		return uint16(n) & mask(width), nil

	case 'x', 'X':
		n, err := strconv.ParseUint(operand[1:], 16, 32)
		if err != nil {
			return 0, BadOperandKind{Operand: operand, Want: "hex immediate"}
		}

		if n >= uint64(1)<<width {
			return 0, ImmediateOutOfRange{Literal: operand, Bits: width}
		}

		return uint16(n), nil

	default:
		return 0, BadOperandKind{Operand: operand, Want: "immediate"}
	}
}

// isImmediate reports whether operand looks like an immediate literal, without validating it.
func isImmediate(operand string) bool {
	return strings.HasPrefix(operand, "#") || strings.HasPrefix(operand, "x") || strings.HasPrefix(operand, "X")
}

func mask(width uint8) uint16 {
	return uint16(1<<width) - 1
}
