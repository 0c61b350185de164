package asm

import (
	"sort"

	"github.com/anvil-systems/lc3asm/internal/vm"
)

// SymbolTable maps label names to the address pass 1 bound them to.
type SymbolTable struct {
	addrs map[string]vm.Word
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{addrs: make(map[string]vm.Word)}
}

// Define binds label to addr. It is an error to define the same label twice.
func (t *SymbolTable) Define(label string, addr vm.Word) error {
	if _, ok := t.addrs[label]; ok {
		return DuplicateLabel{Label: label}
	}

	t.addrs[label] = addr

	return nil
}

// Lookup returns the address bound to label, if any.
func (t *SymbolTable) Lookup(label string) (vm.Word, bool) {
	addr, ok := t.addrs[label]
	return addr, ok
}

// Names returns every bound label in lexical order.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.addrs))
	for name := range t.addrs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Len reports the number of bound symbols.
func (t *SymbolTable) Len() int {
	return len(t.addrs)
}

// Offset computes the signed PC-relative displacement from the instruction at lc to label, and
// range-checks it against the bits-wide field the caller will encode it into. The LC-3 computes
// the effective address as PC + offset, where PC is the address following the instruction word,
// hence lc+1.
func (t *SymbolTable) Offset(label string, lc vm.Word, bits uint8) (uint16, error) {
	addr, ok := t.addrs[label]
	if !ok {
		return 0, UndefinedLabel{Label: label}
	}

	offset := int(int32(addr) - int32(lc) - 1)

	lo, hi := -(1 << (bits - 1)), (1<<(bits-1))-1
	if offset < lo || offset > hi {
		return 0, OffsetOutOfRange{Label: label, Bits: bits, Value: offset}
	}

	return uint16(offset) & mask(bits), nil
}
