package asm

import (
	"encoding/binary"
	"io"

	"github.com/anvil-systems/lc3asm/internal/vm"
)

// BinarySink writes words to an io.Writer as big-endian 16-bit values -- the LC-3 object file
// format.
type BinarySink struct {
	out io.Writer
}

// NewBinarySink returns a BinarySink that writes to out.
func NewBinarySink(out io.Writer) *BinarySink {
	return &BinarySink{out: out}
}

func (s *BinarySink) WriteWord(w vm.Word) error {
	return binary.Write(s.out, binary.BigEndian, uint16(w))
}

// SliceSink collects words in memory, for tests that want to inspect assembled output directly.
type SliceSink struct {
	Words []vm.Word
}

func (s *SliceSink) WriteWord(w vm.Word) error {
	s.Words = append(s.Words, w)
	return nil
}
