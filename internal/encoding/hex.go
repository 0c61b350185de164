// Package encoding marshals assembled object code to and from Intel Hex text, the assembler's
// optional alternate output format.
//
// Each record is a colon-prefixed line holding a length, a load address, a record type, the data
// bytes, and a checksum:
//
//	:LLAAAATT[DD...]CC
//
// Only the data and end-of-file record types are implemented; that is all the assembler needs,
// and a file it writes always ends with the end-of-file record.
package encoding

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/anvil-systems/lc3asm/internal/vm"
)

// Record types.
type kind byte

const (
	kindData kind = 0
	kindEOF  kind = 1
)

// HexEncoding implements encoding.TextMarshaler and encoding.TextUnmarshaler for assembled LC-3
// object code. Each vm.ObjectCode becomes one data record whose address field is the code's
// origin.
type HexEncoding struct {
	code []vm.ObjectCode
}

// Code returns the collected object code.
func (h HexEncoding) Code() []vm.ObjectCode {
	return h.code
}

func (h *HexEncoding) MarshalText() ([]byte, error) {
	var buf bytes.Buffer

	for _, code := range h.code {
		record := make([]byte, 0, 4+2*len(code.Code)+1)
		record = append(record, byte(2*len(code.Code)), byte(code.Orig>>8), byte(code.Orig), byte(kindData))

		for _, word := range code.Code {
			record = append(record, byte(word>>8), byte(word))
		}

		record = append(record, checksum(record))

		buf.WriteByte(':')
		buf.WriteString(hex.EncodeToString(record))
		buf.WriteByte('\n')
	}

	buf.WriteString(":00000001ff\n")

	return buf.Bytes(), nil
}

func (h *HexEncoding) UnmarshalText(bs []byte) error {
	lines := bufio.NewScanner(bytes.NewReader(bs))

	for lines.Scan() {
		text := bytes.TrimSpace(lines.Bytes())
		if len(text) == 0 {
			continue
		}

		if text[0] != ':' {
			return fmt.Errorf("%w: record does not start with ':'", errInvalidHex)
		}

		record := make([]byte, hex.DecodedLen(len(text)-1))
		if _, err := hex.Decode(record, text[1:]); err != nil {
			return fmt.Errorf("%w: %s", errInvalidHex, err)
		}

		if len(record) < 5 {
			return fmt.Errorf("%w: record too short", errInvalidHex)
		}

		payload, want := record[:len(record)-1], record[len(record)-1]
		if got := checksum(payload); got != want {
			return fmt.Errorf("%w: checksum %02x, computed %02x", errInvalidHex, want, got)
		}

		length := int(record[0])
		addr := binary.BigEndian.Uint16(record[1:3])
		data := record[4 : len(record)-1]

		if length != len(data) {
			return fmt.Errorf("%w: length field %d, data %d bytes", errInvalidHex, length, len(data))
		}

		switch kind(record[3]) {
		case kindEOF:
			if len(h.code) == 0 {
				return errEmpty
			}

			return nil

		case kindData:
			if length%2 != 0 {
				return fmt.Errorf("%w: odd data length", errInvalidHex)
			}

			words := make([]vm.Word, length/2)
			for i := range words {
				words[i] = vm.Word(binary.BigEndian.Uint16(data[2*i:]))
			}

			h.code = append(h.code, vm.ObjectCode{Orig: vm.Word(addr), Code: words})

		default:
			return fmt.Errorf("%w: unexpected record type %d", errInvalidHex, record[3])
		}
	}

	if len(h.code) == 0 {
		return errEmpty
	}

	return nil
}

// checksum computes the Intel Hex checksum: the two's complement of the byte sum of the length,
// address, type, and data fields.
func checksum(record []byte) byte {
	var sum byte

	for _, b := range record {
		sum += b
	}

	return -sum
}

var (
	// ErrDecode is the wrapped error returned when decoding fails.
	ErrDecode = errors.New("decoding error")

	errEmpty      = fmt.Errorf("%w: no data decoded", ErrDecode)
	errInvalidHex = fmt.Errorf("%w: invalid encoding", ErrDecode)
)
