package asm

import (
	"errors"
	"strings"

	"github.com/anvil-systems/lc3asm/internal/log"
	"github.com/anvil-systems/lc3asm/internal/vm"
)

// LineProvider yields a program's source lines, in order, starting with line 1.
type LineProvider interface {
	Lines() ([]string, error)
}

// WordSink receives the words of assembled object code, in order, starting with the .ORIG
// address itself.
type WordSink interface {
	WriteWord(vm.Word) error
}

// Summary reports what a successful Assemble produced.
type Summary struct {
	Origin  vm.Word
	Words   int
	Symbols *SymbolTable
}

// Options adjusts assembly policy that is not fixed by the source language itself.
type Options struct {
	// RequireEnd makes a missing .END directive an error. Without it, a program that simply
	// runs out of lines assembles as if .END followed the last one.
	RequireEnd bool
}

// Assemble reads every line source yields, resolves labels, encodes instructions, and writes the
// resulting words -- origin first, then each instruction or directive's words in program order --
// to sink. It returns a Summary on success. On failure it returns every Diagnostic it accumulated,
// joined with errors.Join; Assemble does not stop at the first error so a caller can report every
// problem in one run.
func Assemble(source LineProvider, sink WordSink) (Summary, error) {
	return AssembleWith(source, sink, Options{})
}

// AssembleWith is Assemble with explicit Options.
func AssembleWith(source LineProvider, sink WordSink, opts Options) (Summary, error) {
	logger := log.DefaultLogger()

	lines, err := source.Lines()
	if err != nil {
		return Summary{}, err
	}

	records, lexErrs := lex(lines)

	origin, symbols, pass1Errs := resolveSymbols(records, opts)

	if len(lexErrs)+len(pass1Errs) > 0 {
		return Summary{}, errors.Join(append(lexErrs, pass1Errs...)...)
	}

	logger.Debug("pass 1 complete", log.Int("symbols", symbols.Len()))

	words, genErrs := encode(records, symbols, origin)
	if len(genErrs) > 0 {
		return Summary{}, errors.Join(genErrs...)
	}

	if err := sink.WriteWord(origin); err != nil {
		return Summary{}, err
	}

	for _, w := range words {
		if err := sink.WriteWord(w); err != nil {
			return Summary{}, err
		}
	}

	logger.Debug("pass 2 complete", log.Int("words", len(words)))

	return Summary{Origin: origin, Words: len(words), Symbols: symbols}, nil
}

func lex(lines []string) ([]LineRecord, []error) {
	var (
		records []LineRecord
		errs    []error
	)

	for i, line := range lines {
		lineNo := i + 1

		rec, err := Lex(line, lineNo)
		if err != nil {
			errs = append(errs, &Diagnostic{Line: lineNo, Err: err})
			continue
		}

		records = append(records, rec)
	}

	return records, errs
}

// resolveSymbols is pass 1: it walks records once, binding every label to the address of the
// instruction or directive that follows it, and validates that the program begins with .ORIG and
// ends with .END.
func resolveSymbols(records []LineRecord, opts Options) (vm.Word, *SymbolTable, []error) {
	var (
		origin         vm.Word
		lc             vm.Word
		seenOrg        bool
		seenEnd        bool
		reportedNoOrig bool
		errs           []error
	)

	symbols := newSymbolTable()

	for _, rec := range records {
		if rec.Blank || seenEnd {
			continue
		}

		var (
			kind Kind
			cond vm.Condition
		)

		if rec.Mnemonic != "" {
			var ok bool

			kind, cond, ok = classify(rec.Mnemonic)
			if !ok {
				err := error(UnknownMnemonic{Mnemonic: rec.Mnemonic})

				switch {
				case strings.HasPrefix(rec.Mnemonic, "."):
					err = BadDirective{Directive: rec.Mnemonic, Reason: "unknown directive"}
				case looksLikeBranch(rec.Mnemonic):
					err = BadCondCodes{Mnemonic: rec.Mnemonic}
				}

				errs = append(errs, &Diagnostic{Line: rec.LineNo, Err: err})

				continue
			}

			if kind == KindOrig {
				if seenOrg {
					errs = append(errs, &Diagnostic{Line: rec.LineNo, Err: DuplicateOrig{}})
					continue
				}

				val, err := want1Orig(rec)
				if err != nil {
					errs = append(errs, &Diagnostic{Line: rec.LineNo, Err: err})
					continue
				}

				origin, lc = val, val
				seenOrg = true

				continue
			}
		}

		if !seenOrg {
			if !reportedNoOrig {
				errs = append(errs, &Diagnostic{Line: rec.LineNo, Err: MissingOrig{}})
				reportedNoOrig = true
			}

			continue
		}

		// A label binds to the current location counter whether or not an instruction shares
		// its line: a label-only line names the next emitting line's address.
		if rec.Label != "" {
			if err := symbols.Define(rec.Label, lc); err != nil {
				errs = append(errs, &Diagnostic{Line: rec.LineNo, Err: err})
			}
		}

		if rec.Mnemonic == "" {
			continue
		}

		if kind == KindEnd {
			seenEnd = true
			continue
		}

		ln := instLine{Kind: kind, Cond: cond, Mnemonic: rec.Mnemonic, Operands: rec.Operands, LineNo: rec.LineNo}

		n, err := wordCount(ln)
		if err != nil {
			errs = append(errs, &Diagnostic{Line: rec.LineNo, Err: err})
			continue
		}

		next := int(lc) + n
		if next > 0xffff {
			errs = append(errs, &Diagnostic{Line: rec.LineNo, Err: LabelOverflow{Address: next}})
			continue
		}

		lc = vm.Word(next)
	}

	if !seenOrg && !reportedNoOrig {
		errs = append(errs, &Diagnostic{Line: 0, Err: MissingOrig{}})
	}

	if seenOrg && !seenEnd && opts.RequireEnd {
		errs = append(errs, &Diagnostic{Line: len(records), Err: MissingEnd{}})
	}

	return origin, symbols, errs
}

func want1Orig(rec LineRecord) (vm.Word, error) {
	if len(rec.Operands) != 1 {
		return 0, BadOperandCount{Mnemonic: ".ORIG", Want: 1, Got: len(rec.Operands)}
	}

	val, err := ParseImmediate(rec.Operands[0], 16)
	if err != nil {
		return 0, err
	}

	return vm.Word(val), nil
}

// encode is pass 2: it walks records again, now with every label resolved, and produces the
// object code words in program order.
func encode(records []LineRecord, symbols *SymbolTable, origin vm.Word) ([]vm.Word, []error) {
	var (
		words   []vm.Word
		errs    []error
		lc      = origin
		seenEnd bool
	)

	for _, rec := range records {
		if rec.Blank || rec.Mnemonic == "" || seenEnd {
			continue
		}

		kind, cond, ok := classify(rec.Mnemonic)
		if !ok {
			continue // already reported in pass 1
		}

		if kind == KindOrig {
			continue
		}

		if kind == KindEnd {
			seenEnd = true
			continue
		}

		ln := instLine{Kind: kind, Cond: cond, Mnemonic: rec.Mnemonic, Operands: rec.Operands, LineNo: rec.LineNo}

		out, err := generate(ln, symbols, lc)
		if err != nil {
			errs = append(errs, &Diagnostic{Line: rec.LineNo, Err: err})
			continue
		}

		words = append(words, out...)
		lc += vm.Word(len(out))
	}

	return words, errs
}
