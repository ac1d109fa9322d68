package render

import (
	"strings"
	"testing"

	"github.com/louisbranch/annuaire/internal/directory/storage"
)

func TestRecordBlockFullRecord(t *testing.T) {
	record := storage.Record{
		Firstname:    "Jean",
		Lastname:     "Dupont",
		Email:        "jean@example.org",
		Mobile:       "+33 6 12 34 56 78 ,0611112222",
		StreetNumber: "12",
		StreetType:   "rue",
		StreetName:   "de la Paix",
		PostalCode:   "75002",
		City:         "Paris",
		IBAN:         "FR7630006000011234567890189",
		BIC:          "AGRIFRPP",
		BirthDate:    "1969-12-15T00:00:00+01:00",
		Age:          "56",
	}

	block := RecordBlock(record, nil)
	lines := strings.Split(block, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}

	wantContains := []string{
		"*Firstname* : Jean",
		"*Lastname*  : Dupont",
		"*Email*     : jean@example.org",
		"*Mobile*    : +33 6 12 34 56 78, 0611112222",
		"*Address*   : 12 rue de la Paix",
		"*Postal*    : 75002 Paris",
		"*IBAN*      : FR7630006000011234567890189",
		"*BIC*       : AGRIFRPP",
		"*BirthDate* : 1969-12-15",
		"*Age*       : 56",
	}
	for i, want := range wantContains {
		if lines[i] != want {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestRecordBlockAbsentValuesRenderAsDash(t *testing.T) {
	block := RecordBlock(storage.Record{}, nil)
	lines := strings.Split(block, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, ": -") {
			t.Fatalf("expected dash for absent value, got %q", line)
		}
	}
}

func TestRecordBlockEscapesValuesOnly(t *testing.T) {
	record := storage.Record{Firstname: "Jean-Paul"}
	block := RecordBlock(record, func(s string) string {
		return strings.ReplaceAll(s, "-", `\-`)
	})
	if !strings.Contains(block, `Jean\-Paul`) {
		t.Fatalf("expected escaped value, got %q", block)
	}
	if !strings.Contains(block, "*Firstname*") {
		t.Fatalf("expected label markup untouched, got %q", block)
	}
}

func TestTrimBirthDate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"1969-12-15T00:00:00+01:00", "1969-12-15"},
		{"1969-12-15", "1969-12-15"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TrimBirthDate(tt.in); got != tt.want {
			t.Fatalf("TrimBirthDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewLocalizerFallsBackToFrench(t *testing.T) {
	// "de" and "not-a-locale" parse as valid tags but match no catalog;
	// a raw message key must never reach the user.
	for _, locale := range []string{"not-a-locale", "de", "ja-JP", ""} {
		loc := NewLocalizer(locale)
		if got := loc.Sprintf("dialog.farewell"); got != "Bye." {
			t.Fatalf("locale %q: expected french fallback copy, got %q", locale, got)
		}
	}
}

func TestNewLocalizerMatchesRegionalVariants(t *testing.T) {
	loc := NewLocalizer("en-US")
	if got := loc.Sprintf("dialog.search.none"); got != "No results." {
		t.Fatalf("expected english copy for en-US, got %q", got)
	}
}

func TestLocalizedStatusLine(t *testing.T) {
	fr := NewLocalizer("fr")
	got := fr.Sprintf("dialog.status", 3, 12)
	if !strings.Contains(got, "3") || !strings.Contains(got, "12") {
		t.Fatalf("expected counts in status copy, got %q", got)
	}
	en := NewLocalizer("en")
	if !strings.Contains(en.Sprintf("dialog.status", 3, 12), "Numbers left") {
		t.Fatal("expected english copy for english locale")
	}
}
