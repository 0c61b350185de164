package asm

import (
	"errors"
	"testing"

	"github.com/anvil-systems/lc3asm/internal/vm"
)

func TestGenerateArithmetic(t *testing.T) {
	t.Parallel()

	// ADD R0, R1, R2 -> 0001 000 001 000 010
	ln := instLine{Kind: KindADD, Mnemonic: "ADD", Operands: []string{"R0", "R1", "R2"}}

	words, err := generate(ln, newSymbolTable(), 0x3000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := vm.Word(0b0001_000_001_0_00_010)
	if words[0] != want {
		t.Errorf("ADD reg mode = %016b, want %016b", words[0], want)
	}

	// ADD R0, R1, #-1 -> 0001 000 001 1 11111
	ln = instLine{Kind: KindADD, Mnemonic: "ADD", Operands: []string{"R0", "R1", "#-1"}}

	words, err = generate(ln, newSymbolTable(), 0x3000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want = vm.Word(0b0001_000_001_1_11111)
	if words[0] != want {
		t.Errorf("ADD imm mode = %016b, want %016b", words[0], want)
	}
}

func TestGenerateBR(t *testing.T) {
	t.Parallel()

	syms := newSymbolTable()
	_ = syms.Define("LOOP", 0x2ffe)

	ln := instLine{Kind: KindBR, Cond: vm.ConditionAll, Mnemonic: "BR", Operands: []string{"LOOP"}}

	words, err := generate(ln, syms, 0x3000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// offset = 0x2ffe - 0x3000 - 1 = -3, 9-bit two's complement = 0x1fd
	want := vm.Word(0b0000_111_1_1111_1101)
	if words[0] != want {
		t.Errorf("BR = %016b, want %016b", words[0], want)
	}
}

func TestGenerateTrap(t *testing.T) {
	t.Parallel()

	ln := instLine{Kind: KindTRAP, Mnemonic: "TRAP", Operands: []string{"x25"}}

	words, err := generate(ln, newSymbolTable(), 0x3000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := vm.Word(0b1111_0000_0010_0101)
	if words[0] != want {
		t.Errorf("TRAP = %016b, want %016b", words[0], want)
	}
}

func TestGenerateFillLiteralAndLabel(t *testing.T) {
	t.Parallel()

	syms := newSymbolTable()
	_ = syms.Define("MSG", 0x3010)

	words, err := generate(instLine{Kind: KindFill, Mnemonic: ".FILL", Operands: []string{"MSG"}}, syms, 0x3000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if words[0] != 0x3010 {
		t.Errorf(".FILL label = %#x, want 0x3010", words[0])
	}

	words, err = generate(instLine{Kind: KindFill, Mnemonic: ".FILL", Operands: []string{"x7"}}, syms, 0x3000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if words[0] != 7 {
		t.Errorf(".FILL literal = %#x, want 7", words[0])
	}
}

func TestGenerateRet(t *testing.T) {
	t.Parallel()

	words, err := generate(instLine{Kind: KindRET, Mnemonic: "RET"}, newSymbolTable(), 0x3000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := vm.Word(0b1100_000_111_000000)
	if words[0] != want {
		t.Errorf("RET = %016b, want %016b", words[0], want)
	}
}

func TestGenerateTrapAlias(t *testing.T) {
	t.Parallel()

	words, err := generate(instLine{Kind: KindTRAP, Mnemonic: "HALT"}, newSymbolTable(), 0x3000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if words[0] != 0xf025 {
		t.Errorf("HALT = %#04x, want 0xf025", uint16(words[0]))
	}

	_, err = generate(instLine{Kind: KindTRAP, Mnemonic: "HALT", Operands: []string{"x25"}}, newSymbolTable(), 0x3000)

	var count BadOperandCount
	if !errors.As(err, &count) {
		t.Errorf("HALT with operand = %v, want BadOperandCount", err)
	}
}

func TestGenerateRTI(t *testing.T) {
	t.Parallel()

	words, err := generate(instLine{Kind: KindRTI, Mnemonic: "RTI"}, newSymbolTable(), 0x3000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if words[0] != 0x8000 {
		t.Errorf("RTI = %#04x, want 0x8000", uint16(words[0]))
	}
}

func TestWordCountBlkw(t *testing.T) {
	t.Parallel()

	n, err := wordCount(instLine{Kind: KindBlkw, Operands: []string{"#4"}})
	if err != nil {
		t.Fatalf("wordCount: %v", err)
	}

	if n != 4 {
		t.Errorf("wordCount(.BLKW #4) = %d, want 4", n)
	}

	_, err = wordCount(instLine{Kind: KindBlkw, Operands: []string{"#-1"}})

	var bad BadDirective
	if !errors.As(err, &bad) {
		t.Errorf("wordCount(.BLKW #-1) = %v, want BadDirective", err)
	}
}
