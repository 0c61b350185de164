package vm

// ops.go enumerates the sixteen LC-3 opcodes used to encode instruction words.

//go:generate go run golang.org/x/tools/cmd/stringer -type Opcode -output opcode_string.go

// Opcode identifies the operation encoded in the top four bits of an instruction word, as the
// plain 4-bit value (0-15) -- NewInstruction places it in position. The ISA has fifteen opcodes,
// plus one, RESV, that is reserved and undefined.
type Opcode uint16

// Opcode constants.
const (
	BR Opcode = iota
	ADD
	LD
	ST
	JSR
	AND
	LDR
	STR
	RTI
	NOT
	LDI
	STI
	JMP
	RESV
	LEA
	TRAP
)
