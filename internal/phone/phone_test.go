package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"trunk prefixed national", "0612345678", "+33612345678", true},
		{"trunk prefixed with punctuation", "06 12 34 56 78", "+33612345678", true},
		{"trunk prefixed with dots", "06.12.34.56.78", "+33612345678", true},
		{"international exit code", "0033612345678", "+33612345678", true},
		{"plus country code", "+33612345678", "+33612345678", true},
		{"plus country code spaced", "+33 6 12 34 56 78", "+33612345678", true},
		{"spurious trunk zero after country code", "+330612345678", "+33612345678", true},
		{"bare country prefixed", "33612345678", "+33612345678", true},
		{"too short", "12345", "", false},
		{"nine digits without trunk", "612345678", "", false},
		{"plus country code wrong length", "+336123", "", false},
		{"no digits", "jean dupont", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ten digits keeps last nine", "0612345678", "612345678"},
		{"canonical form keeps subscriber", "+33612345678", "612345678"},
		{"punctuation stripped", "06-12.34 56(78)", "612345678"},
		{"fewer than nine digits kept whole", "0612", "0612"},
		{"no digits", "dupont", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fingerprint(tt.input); got != tt.want {
				t.Fatalf("Fingerprint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFingerprintAgnosticToPrefixConvention(t *testing.T) {
	forms := []string{"0612345678", "+33612345678", "0033612345678", "33612345678"}
	for _, form := range forms {
		if got := Fingerprint(form); got != "612345678" {
			t.Fatalf("Fingerprint(%q) = %q, want shared subscriber key", form, got)
		}
	}
}

func TestHasDigit(t *testing.T) {
	if !HasDigit("abc1") {
		t.Fatal("expected digit to be found")
	}
	if HasDigit("jean dupont") {
		t.Fatal("expected no digit")
	}
}
