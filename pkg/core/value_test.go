package core

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Value
	}{
		{"empty", "", Missing()},
		{"nan", "NaN", Missing()},
		{"integer", "2", Number(2)},
		{"float", "1.5e3", Number(1500)},
		{"true", "True", Bool(true)},
		{"false", "false", Bool(false)},
		{"decoy marker", "+", String("+")},
		{"protein", "sp|P12345|HUMAN", String("sp|P12345|HUMAN")},
		{"infinity word", "INFINITY", String("INFINITY")},
		{"inf word", "inf", String("inf")},
		{"signed inf", "-Inf", String("-Inf")},
		{"hex float", "0x1p-2", String("0x1p-2")},
		{"leading zeros", "001", String("001")},
		{"zero", "0", Number(0)},
		{"zero fraction", "0.25", Number(0.25)},
		{"leading dot", ".5", Number(0.5)},
		{"signed", "-3", Number(-3)},
		{"overflow", "1e999", String("1e999")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseValue(tt.raw)
			if got.Kind() != tt.want.Kind() {
				t.Fatalf("ParseValue(%q) kind = %v, want %v", tt.raw, got.Kind(), tt.want.Kind())
			}
			if !got.IsMissing() && !got.Equal(tt.want) {
				t.Errorf("ParseValue(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same string", String("+"), String("+"), true},
		{"different string", String("+"), String("-"), false},
		{"string vs number", String("1"), Number(1), false},
		{"bool vs number", Bool(true), Number(1), false},
		{"missing vs missing", Missing(), Missing(), false},
		{"missing vs string", Missing(), String("+"), false},
		{"numbers", Number(2), Number(2.0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(2), "2"},
		{Number(2.5), "2.5"},
		{Bool(true), "True"},
		{String("PEPTIDE"), "PEPTIDE"},
		{Missing(), ""},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValueOf(t *testing.T) {
	if v := ValueOf(3); !v.Equal(Number(3)) {
		t.Errorf("ValueOf(3) = %q", v)
	}
	if v := ValueOf("+"); !v.Equal(String("+")) {
		t.Errorf("ValueOf(\"+\") = %q", v)
	}
	if v := ValueOf(true); !v.Equal(Bool(true)) {
		t.Errorf("ValueOf(true) = %q", v)
	}
	if v := ValueOf(nil); !v.IsMissing() {
		t.Errorf("ValueOf(nil) = %q, want missing", v)
	}
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []Value
	}{
		{"numbers", []string{"1", "", "2.5"}, []Value{Number(1), Missing(), Number(2.5)}},
		{"booleans", []string{"True", "False", ""}, []Value{Bool(true), Bool(false), Missing()}},
		{"mixed number and text", []string{"1", "+", ""}, []Value{String("1"), String("+"), Missing()}},
		{"mixed bool and number", []string{"True", "0"}, []Value{String("True"), String("0")}},
		{"raw file ids", []string{"001", "2"}, []Value{String("001"), String("2")}},
		{"all missing", []string{"", "NaN"}, []Value{Missing(), Missing()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseColumn(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseColumn() returned %d values, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Kind() != tt.want[i].Kind() {
					t.Fatalf("cell %d kind = %v, want %v", i, got[i].Kind(), tt.want[i].Kind())
				}
				if !got[i].IsMissing() && !got[i].Equal(tt.want[i]) {
					t.Errorf("cell %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTextColumn(t *testing.T) {
	got := TextColumn([]string{"1", "", "True"})
	if !got[0].Equal(String("1")) || !got[1].IsMissing() || !got[2].Equal(String("True")) {
		t.Errorf("TextColumn() = %q", got)
	}
}
