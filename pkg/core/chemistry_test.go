package core

import (
	"math"
	"testing"
)

func TestPrecursorMZ(t *testing.T) {
	tests := []struct {
		name      string
		sequence  string
		charge    int
		wantMZ    float64
		tolerance float64
		wantErr   bool
	}{
		{"tripeptide charge 1", "AAA", 1, 232.129, 0.01, false},
		{"tripeptide charge 2", "AAA", 2, 116.569, 0.01, false},
		{"PEPTIDE charge 2", "PEPTIDE", 2, 400.687, 0.01, false},
		{"zero charge", "PEPTIDE", 0, 0, 0, true},
		{"unknown residue", "PEPTIDEX", 2, 0, 0, true},
		{"empty sequence", "", 2, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PrecursorMZ(tt.sequence, tt.charge)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PrecursorMZ() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got-tt.wantMZ) > tt.tolerance {
				t.Errorf("PrecursorMZ() = %.3f, want %.3f (within %.3f)", got, tt.wantMZ, tt.tolerance)
			}
		})
	}
}

func TestNeutralMass(t *testing.T) {
	got, err := NeutralMass("AAA")
	if err != nil {
		t.Fatalf("NeutralMass() error = %v", err)
	}
	if math.Abs(got-231.122) > 0.01 {
		t.Errorf("NeutralMass() = %.3f, want 231.122", got)
	}
}
