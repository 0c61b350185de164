/*
Package asm assembles LC-3 assembly source into machine-code object words.

The pipeline is four stages: lexing splits a line of source into a label, a mnemonic, and
operands; classification recognizes the mnemonic as one of the seventeen instructions, six trap
aliases, or four directives; pass 1 walks the program once to bind every label to an address;
pass 2 walks it again, validating operands and resolving them -- including PC-relative offsets,
which depend on a label's resolved address and the instruction's own address -- into encoded
words.

The package does not read files or print diagnostics; see [Assemble] and [LineProvider].

# Grammar

	program   = { line } ;
	line      = [ label ] [ instruction | directive ] [ comment ] ;
	label     = ident [ ':' ] ;
	instruction = mnemonic { operand } ;
	directive = '.ORIG' imm | '.FILL' ( imm | ident ) | '.BLKW' imm | '.END' ;
	operand   = register | imm | ident ;
	register  = 'R' digit ;
	imm       = '#' [ '-' ] digit { digit } | 'x' hex { hex } ;
	ident     = ( alpha | '_' ) { alpha | digit | '_' } ;
	comment   = ';' { any } ;
*/
package asm
