/*
Package vm defines the data types of the LC-3 instruction set architecture: the 16-bit word, the
general-purpose register file, the condition-code flags, and the 16 opcodes of the LC-3 ISA.

These are the types the assembler encodes into and the loader reads out of; the package does not
execute LC-3 programs. A simulator that fetches, decodes, and executes these words is a distinct
concern and is not implemented here.

# Registers

The LC-3 has eight general-purpose registers, R0 through R7, each holding one Word. By convention
R6 is used as a stack pointer and R7 holds a subroutine's return address, but the ISA does not
enforce either convention; the assembler does not either.

# Instruction Encoding

Every instruction is one Word. The top four bits select the Opcode; the remaining twelve bits hold
operands whose layout depends on the opcode. NewInstruction and Instruction.Operand build up an
encoded word bitfield by bitfield, mirroring how the reference architecture lays out its
instruction formats.

	| OPCODE | ... operand bits ... |
	|--------+-----------------------|
	|15    12|11                   0|
*/
package vm
