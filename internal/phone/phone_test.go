package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare", "9876543210", "9876543210"},
		{"country code with plus", "+919876543210", "9876543210"},
		{"formatted", "+91 98765-43210", "9876543210"},
		{"trunk zero", "09876543210", "9876543210"},
		{"spaces and dashes", "98765 432-10", "9876543210"},
		{"already normalized", "9876543210", "9876543210"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"+91 98765-43210", "09876543210", "9876543210", "1800 4250"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
