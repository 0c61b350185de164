package encoding

import (
	"io"

	"github.com/anvil-systems/lc3asm/internal/vm"
)

// HexSink accumulates words written to it and, on Close, marshals them as a single Intel Hex
// record and writes it to an underlying io.Writer. It satisfies the same WriteWord contract as
// asm.BinarySink, so a caller can select either format without asm knowing this package exists.
type HexSink struct {
	out  io.Writer
	orig vm.Word
	code []vm.Word
}

// NewHexSink returns a HexSink that writes to out. orig is the program's load address, as given
// by its .ORIG directive.
func NewHexSink(out io.Writer, orig vm.Word) *HexSink {
	return &HexSink{out: out, orig: orig}
}

// WriteWord buffers a single word for encoding at Close.
func (h *HexSink) WriteWord(w vm.Word) error {
	h.code = append(h.code, w)
	return nil
}

// Close marshals the buffered words as Intel Hex and writes them to the underlying writer.
func (h *HexSink) Close() error {
	enc := HexEncoding{code: []vm.ObjectCode{{Orig: h.orig, Code: h.code}}}

	text, err := enc.MarshalText()
	if err != nil {
		return err
	}

	_, err = h.out.Write(text)

	return err
}
