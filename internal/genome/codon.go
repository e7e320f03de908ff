package genome

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSequence = errors.New("sequence contains non-ATCG base")

// stop marks the three stop codons in the translation table.
const stop = '_'

// codonTable is the standard genetic code over DNA triplets.
var codonTable = map[string]byte{
	"ATA": 'I', "ATC": 'I', "ATT": 'I', "ATG": 'M',
	"ACA": 'T', "ACC": 'T', "ACG": 'T', "ACT": 'T',
	"AAC": 'N', "AAT": 'N', "AAA": 'K', "AAG": 'K',
	"AGC": 'S', "AGT": 'S', "AGA": 'R', "AGG": 'R',
	"TCA": 'S', "TCC": 'S', "TCG": 'S', "TCT": 'S',
	"TTC": 'F', "TTT": 'F', "TTA": 'L', "TTG": 'L',
	"TAC": 'Y', "TAT": 'Y', "TAA": stop, "TAG": stop,
	"TGC": 'C', "TGT": 'C', "TGA": stop, "TGG": 'W',
	"CTA": 'L', "CTC": 'L', "CTG": 'L', "CTT": 'L',
	"CCA": 'P', "CCC": 'P', "CCG": 'P', "CCT": 'P',
	"CAC": 'H', "CAT": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGA": 'R', "CGC": 'R', "CGG": 'R', "CGT": 'R',
	"GTA": 'V', "GTC": 'V', "GTG": 'V', "GTT": 'V',
	"GCA": 'A', "GCC": 'A', "GCG": 'A', "GCT": 'A',
	"GAC": 'D', "GAT": 'D', "GAA": 'E', "GAG": 'E',
	"GGA": 'G', "GGC": 'G', "GGG": 'G', "GGT": 'G',
}

// Validate rejects sequences containing bases outside {A,T,C,G}. Translation
// and mutation both require validated input; unknown bases are an error at
// the boundary, never silently mistranslated.
func Validate(dna string) error {
	for i := 0; i < len(dna); i++ {
		switch dna[i] {
		case 'A', 'T', 'C', 'G':
		default:
			return fmt.Errorf("%w: %q at position %d", ErrInvalidSequence, dna[i], i)
		}
	}
	return nil
}

// Translate maps a nucleotide sequence to its protein sequence. Triplets are
// read left-to-right without overlap, trailing leftover bases are ignored,
// and the first stop codon terminates translation with the stop excluded.
func Translate(dna string) (string, error) {
	if err := Validate(dna); err != nil {
		return "", err
	}

	var prot strings.Builder
	end := (len(dna) / 3) * 3
	for i := 0; i < end; i += 3 {
		aa, ok := codonTable[dna[i:i+3]]
		if !ok {
			return "", fmt.Errorf("%w: unknown codon %q", ErrInvalidSequence, dna[i:i+3])
		}
		if aa == stop {
			break
		}
		prot.WriteByte(aa)
	}
	return prot.String(), nil
}
