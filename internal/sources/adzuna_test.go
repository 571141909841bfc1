package sources

import "testing"

func TestAdzunaCountry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "uk", input: "UK", expect: "gb"},
		{name: "lowercase", input: "us", expect: "us"},
		{name: "padded", input: " de ", expect: "de"},
		{name: "unknown falls back to uk", input: "XX", expect: "gb"},
		{name: "empty falls back to uk", input: "", expect: "gb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := adzunaCountry(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
