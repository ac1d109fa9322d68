// Package render builds the user-facing copy emitted by the dialog
// controller: localized prompts and the fixed record block layout.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/louisbranch/annuaire/internal/directory/storage"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer is the minimal message-printer contract required by the
// dialog controller.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// supportedTags lists the locales the catalogs actually carry; the
// matcher keeps unknown-but-parseable tags from producing a printer with
// no entries.
var supportedTags = []language.Tag{language.French, language.English}

var localeMatcher = language.NewMatcher(supportedTags)

// NewLocalizer returns a printer for the requested locale tag, falling
// back to French when the tag is unknown or matches no catalog.
func NewLocalizer(locale string) Localizer {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return message.NewPrinter(language.French)
	}
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		return message.NewPrinter(language.French)
	}
	return message.NewPrinter(supportedTags[index])
}

// EscapeFunc escapes one rendered value for the transport's markup
// syntax. The core stays markup-agnostic; the transport injects its own
// escaping and tests inject identity.
type EscapeFunc func(string) string

var commaSpacing = regexp.MustCompile(`\s*,\s*`)

// RecordBlock renders one directory record as the fixed ten-line block:
// one fact per line, absent values shown as "-", labels bolded in the
// markup, values escaped through esc.
func RecordBlock(record storage.Record, esc EscapeFunc) string {
	if esc == nil {
		esc = func(s string) string { return s }
	}

	mobile := commaSpacing.ReplaceAllString(strings.TrimSpace(record.Mobile), ", ")
	address := strings.TrimSpace(fmt.Sprintf("%s %s %s",
		record.StreetNumber, record.StreetType, record.StreetName))
	postal := strings.TrimSpace(fmt.Sprintf("%s %s", record.PostalCode, record.City))
	birth := TrimBirthDate(record.BirthDate)

	lines := []string{
		"*Firstname* : " + esc(orDash(record.Firstname)),
		"*Lastname*  : " + esc(orDash(record.Lastname)),
		"*Email*     : " + esc(orDash(record.Email)),
		"*Mobile*    : " + esc(orDash(mobile)),
		"*Address*   : " + esc(orDash(address)),
		"*Postal*    : " + esc(orDash(postal)),
		"*IBAN*      : " + esc(orDash(record.IBAN)),
		"*BIC*       : " + esc(orDash(record.BIC)),
		"*BirthDate* : " + esc(orDash(birth)),
		"*Age*       : " + esc(orDash(record.Age)),
	}
	return strings.Join(lines, "\n")
}

// TrimBirthDate keeps only the date portion of an ISO timestamp,
// dropping everything after the literal T separator.
func TrimBirthDate(birthDate string) string {
	if birthDate == "" {
		return ""
	}
	return strings.SplitN(birthDate, "T", 2)[0]
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
