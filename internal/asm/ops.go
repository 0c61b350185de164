package asm

import (
	"fmt"
	"strings"

	"github.com/anvil-systems/lc3asm/internal/vm"
)

// instLine is a classified line: the lexer's LineRecord plus the Kind and, for BR, the condition
// mask that classify derived from its mnemonic.
type instLine struct {
	Kind     Kind
	Cond     vm.Condition
	Mnemonic string
	Operands []string
	LineNo   int
}

// wordCount reports how many words a line emits to object code. Pass 1 uses it to advance the
// location counter; pass 2 uses the very same function so the two passes can never disagree about
// a line's size.
func wordCount(ln instLine) (int, error) {
	switch ln.Kind {
	case KindOrig, KindEnd:
		return 0, nil
	case KindBlkw:
		if len(ln.Operands) != 1 {
			return 0, BadOperandCount{Mnemonic: ".BLKW", Want: 1, Got: len(ln.Operands)}
		}

		return parseBlockCount(ln.Operands[0])
	default:
		return 1, nil
	}
}

// generate resolves ln's operands and encodes its words. symbols must already hold every label
// bound by pass 1; lc is the address ln's first word is loaded at.
func generate(ln instLine, symbols *SymbolTable, lc vm.Word) ([]vm.Word, error) {
	switch ln.Kind {
	case KindADD, KindAND:
		return genArith(ln)
	case KindNOT:
		return genNot(ln)
	case KindRTI:
		return genRTI(ln)
	case KindBR:
		return genBR(ln, symbols, lc)
	case KindJMP:
		return genJmpBase(ln, vm.JMP, 1)
	case KindRET:
		return genRet(ln)
	case KindJSR:
		return genJSR(ln, symbols, lc)
	case KindJSRR:
		return genJmpBase(ln, vm.JSR, 1)
	case KindLD:
		return genPCOffset(ln, vm.LD, symbols, lc)
	case KindLDI:
		return genPCOffset(ln, vm.LDI, symbols, lc)
	case KindLEA:
		return genPCOffset(ln, vm.LEA, symbols, lc)
	case KindST:
		return genPCOffsetSrc(ln, vm.ST, symbols, lc)
	case KindSTI:
		return genPCOffsetSrc(ln, vm.STI, symbols, lc)
	case KindLDR:
		return genBaseOffset(ln, vm.LDR)
	case KindSTR:
		return genBaseOffset(ln, vm.STR)
	case KindTRAP:
		return genTrap(ln)
	case KindFill:
		return genFill(ln, symbols)
	case KindBlkw:
		n, err := wordCount(ln)
		if err != nil {
			return nil, err
		}

		return make([]vm.Word, n), nil
	case KindOrig, KindEnd:
		return nil, nil
	default:
		return nil, UnknownMnemonic{Mnemonic: ln.Mnemonic}
	}
}

func want(ln instLine, n int) error {
	if len(ln.Operands) != n {
		return BadOperandCount{Mnemonic: ln.Mnemonic, Want: n, Got: len(ln.Operands)}
	}

	return nil
}

func reg(ln instLine, i int) (vm.GPR, error) {
	r, ok := ParseRegister(ln.Operands[i])
	if !ok {
		return vm.BadGPR, BadOperandKind{Mnemonic: ln.Mnemonic, Operand: ln.Operands[i], Want: "register"}
	}

	return r, nil
}

// parseBlockCount parses a .BLKW word count. Unlike an instruction immediate, a count may not be
// negative: the location counter only moves forward.
func parseBlockCount(operand string) (int, error) {
	if strings.HasPrefix(operand, "#-") {
		return 0, BadDirective{Directive: ".BLKW", Reason: "count must be non-negative"}
	}

	n, err := ParseImmediate(operand, 16)
	if err != nil {
		return 0, BadDirective{Directive: ".BLKW", Reason: fmt.Sprintf("bad count %q", operand)}
	}

	return int(n), nil
}

// genArith builds ADD and AND, which share a layout: DR, SR1, and either a register SR2 or a
// 5-bit signed immediate.
func genArith(ln instLine) ([]vm.Word, error) {
	if err := want(ln, 3); err != nil {
		return nil, err
	}

	dr, err := reg(ln, 0)
	if err != nil {
		return nil, err
	}

	sr1, err := reg(ln, 1)
	if err != nil {
		return nil, err
	}

	opcode := vm.AND
	if ln.Kind == KindADD {
		opcode = vm.ADD
	}

	inst := vm.NewInstruction(opcode, uint16(dr)<<9|uint16(sr1)<<6)

	if isImmediate(ln.Operands[2]) {
		imm, err := ParseImmediate(ln.Operands[2], 5)
		if err != nil {
			return nil, err
		}

		inst.Operand(1<<5 | imm)
	} else {
		sr2, err := reg(ln, 2)
		if err != nil {
			return nil, err
		}

		inst.Operand(uint16(sr2))
	}

	return []vm.Word{inst.Encode()}, nil
}

func genNot(ln instLine) ([]vm.Word, error) {
	if err := want(ln, 2); err != nil {
		return nil, err
	}

	dr, err := reg(ln, 0)
	if err != nil {
		return nil, err
	}

	sr, err := reg(ln, 1)
	if err != nil {
		return nil, err
	}

	inst := vm.NewInstruction(vm.NOT, uint16(dr)<<9|uint16(sr)<<6|0x3f)

	return []vm.Word{inst.Encode()}, nil
}

func genBR(ln instLine, symbols *SymbolTable, lc vm.Word) ([]vm.Word, error) {
	if err := want(ln, 1); err != nil {
		return nil, err
	}

	offset, err := symbols.Offset(ln.Operands[0], lc, 9)
	if err != nil {
		return nil, err
	}

	inst := vm.NewInstruction(vm.BR, uint16(ln.Cond)<<9|offset)

	return []vm.Word{inst.Encode()}, nil
}

func genJmpBase(ln instLine, opcode vm.Opcode, nOperands int) ([]vm.Word, error) {
	if err := want(ln, nOperands); err != nil {
		return nil, err
	}

	var baseR vm.GPR

	if nOperands == 1 {
		r, err := reg(ln, 0)
		if err != nil {
			return nil, err
		}

		baseR = r
	}

	inst := vm.NewInstruction(opcode, uint16(baseR)<<6)

	return []vm.Word{inst.Encode()}, nil
}

func genRet(ln instLine) ([]vm.Word, error) {
	if err := want(ln, 0); err != nil {
		return nil, err
	}

	inst := vm.NewInstruction(vm.JMP, uint16(vm.RETP)<<6)

	return []vm.Word{inst.Encode()}, nil
}

func genJSR(ln instLine, symbols *SymbolTable, lc vm.Word) ([]vm.Word, error) {
	if err := want(ln, 1); err != nil {
		return nil, err
	}

	offset, err := symbols.Offset(ln.Operands[0], lc, 11)
	if err != nil {
		return nil, err
	}

	inst := vm.NewInstruction(vm.JSR, 1<<11|offset)

	return []vm.Word{inst.Encode()}, nil
}

func genPCOffset(ln instLine, opcode vm.Opcode, symbols *SymbolTable, lc vm.Word) ([]vm.Word, error) {
	if err := want(ln, 2); err != nil {
		return nil, err
	}

	dr, err := reg(ln, 0)
	if err != nil {
		return nil, err
	}

	offset, err := symbols.Offset(ln.Operands[1], lc, 9)
	if err != nil {
		return nil, err
	}

	inst := vm.NewInstruction(opcode, uint16(dr)<<9|offset)

	return []vm.Word{inst.Encode()}, nil
}

// genPCOffsetSrc is genPCOffset with the register operand in source, rather than destination,
// position -- ST and STI read the register and write to the PC-relative address.
func genPCOffsetSrc(ln instLine, opcode vm.Opcode, symbols *SymbolTable, lc vm.Word) ([]vm.Word, error) {
	return genPCOffset(ln, opcode, symbols, lc)
}

func genBaseOffset(ln instLine, opcode vm.Opcode) ([]vm.Word, error) {
	if err := want(ln, 3); err != nil {
		return nil, err
	}

	dr, err := reg(ln, 0)
	if err != nil {
		return nil, err
	}

	base, err := reg(ln, 1)
	if err != nil {
		return nil, err
	}

	offset, err := ParseImmediate(ln.Operands[2], 6)
	if err != nil {
		return nil, err
	}

	inst := vm.NewInstruction(opcode, uint16(dr)<<9|uint16(base)<<6|offset)

	return []vm.Word{inst.Encode()}, nil
}

func genRTI(ln instLine) ([]vm.Word, error) {
	if err := want(ln, 0); err != nil {
		return nil, err
	}

	inst := vm.NewInstruction(vm.RTI, 0)

	return []vm.Word{inst.Encode()}, nil
}

// genTrap builds TRAP and its service-routine aliases. An alias like HALT carries its vector in
// the mnemonic and takes no operands; bare TRAP takes the vector as a hex operand.
func genTrap(ln instLine) ([]vm.Word, error) {
	if vec, ok := trapVectors[ln.Mnemonic]; ok {
		if err := want(ln, 0); err != nil {
			return nil, err
		}

		return []vm.Word{vm.NewInstruction(vm.TRAP, vec).Encode()}, nil
	}

	if err := want(ln, 1); err != nil {
		return nil, err
	}

	vec, err := ParseImmediate(ln.Operands[0], 8)
	if err != nil {
		return nil, err
	}

	inst := vm.NewInstruction(vm.TRAP, vec)

	return []vm.Word{inst.Encode()}, nil
}

func genFill(ln instLine, symbols *SymbolTable) ([]vm.Word, error) {
	if err := want(ln, 1); err != nil {
		return nil, err
	}

	operand := ln.Operands[0]

	if isImmediate(operand) {
		val, err := ParseImmediate(operand, 16)
		if err != nil {
			return nil, err
		}

		return []vm.Word{vm.Word(val)}, nil
	}

	addr, ok := symbols.Lookup(operand)
	if !ok {
		return nil, UndefinedLabel{Label: operand}
	}

	return []vm.Word{addr}, nil
}
