package core

import "fmt"

const (
	// MassWater is the monoisotopic mass of H2O added to the residue sum.
	MassWater = 18.0105646837
	// ProtonMass is used for charge state m/z calculations.
	ProtonMass = 1.00727646688
)

// ResidueMasses maps amino acid one-letter codes to monoisotopic residue masses.
var ResidueMasses = map[rune]float64{
	'G': 57.021464,
	'A': 71.037114,
	'S': 87.032028,
	'P': 97.052764,
	'V': 99.068414,
	'T': 101.047679,
	'C': 103.009185,
	'L': 113.084064,
	'I': 113.084064,
	'N': 114.042927,
	'D': 115.026943,
	'Q': 128.058578,
	'K': 128.094963,
	'E': 129.042593,
	'M': 131.040485,
	'H': 137.058912,
	'F': 147.068414,
	'R': 156.101111,
	'Y': 163.063329,
	'W': 186.079313,
}

// NeutralMass computes the unmodified monoisotopic mass of a peptide sequence.
func NeutralMass(sequence string) (float64, error) {
	if sequence == "" {
		return 0, fmt.Errorf("empty sequence")
	}
	mass := MassWater
	for i, aa := range sequence {
		m, ok := ResidueMasses[aa]
		if !ok {
			return 0, fmt.Errorf("unknown residue %q at position %d in %s", aa, i, sequence)
		}
		mass += m
	}
	return mass, nil
}

// PrecursorMZ returns the m/z of a peptide at the given charge state.
func PrecursorMZ(sequence string, charge int) (float64, error) {
	if charge <= 0 {
		return 0, fmt.Errorf("charge must be positive, got %d", charge)
	}
	mass, err := NeutralMass(sequence)
	if err != nil {
		return 0, err
	}
	return (mass + float64(charge)*ProtonMass) / float64(charge), nil
}
