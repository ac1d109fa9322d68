// Package seed imports people records and pool numbers into the bot
// database from local files.
package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	dirstorage "github.com/louisbranch/annuaire/internal/directory/storage"
	dirsqlite "github.com/louisbranch/annuaire/internal/directory/storage/sqlite"
	"github.com/louisbranch/annuaire/internal/phone"
	poolsqlite "github.com/louisbranch/annuaire/internal/pool/storage/sqlite"
)

// Config holds seed inputs. Either file may be empty to skip that import.
type Config struct {
	DBPath     string
	PeopleCSV  string
	PhonesFile string
	Verbose    bool
}

// Run imports the configured files and reports totals on out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("database path is required")
	}
	if cfg.PeopleCSV == "" && cfg.PhonesFile == "" {
		return fmt.Errorf("nothing to import: provide a people CSV or a phones file")
	}

	if cfg.PeopleCSV != "" {
		n, err := importPeople(ctx, cfg.DBPath, cfg.PeopleCSV, cfg.Verbose, out)
		if err != nil {
			return fmt.Errorf("import people: %w", err)
		}
		fmt.Fprintf(out, "imported %d people from %s\n", n, cfg.PeopleCSV)
	}

	if cfg.PhonesFile != "" {
		n, skipped, err := importPhones(ctx, cfg.DBPath, cfg.PhonesFile)
		if err != nil {
			return fmt.Errorf("import phones: %w", err)
		}
		fmt.Fprintf(out, "imported %d numbers from %s (%d skipped)\n", n, cfg.PhonesFile, skipped)
	}
	return nil
}

// columnSetters maps CSV header names, lowercased, to record fields.
// Headers the table does not know are ignored.
var columnSetters = map[string]func(*dirstorage.Record, string){
	"firstname":    func(r *dirstorage.Record, v string) { r.Firstname = v },
	"lastname":     func(r *dirstorage.Record, v string) { r.Lastname = v },
	"email":        func(r *dirstorage.Record, v string) { r.Email = v },
	"mobile":       func(r *dirstorage.Record, v string) { r.Mobile = v },
	"streetnumber": func(r *dirstorage.Record, v string) { r.StreetNumber = v },
	"streettype":   func(r *dirstorage.Record, v string) { r.StreetType = v },
	"streetname":   func(r *dirstorage.Record, v string) { r.StreetName = v },
	"postalcode":   func(r *dirstorage.Record, v string) { r.PostalCode = v },
	"city":         func(r *dirstorage.Record, v string) { r.City = v },
	"iban":         func(r *dirstorage.Record, v string) { r.IBAN = v },
	"bic":          func(r *dirstorage.Record, v string) { r.BIC = v },
	"birth_date":   func(r *dirstorage.Record, v string) { r.BirthDate = v },
	"birthdate":    func(r *dirstorage.Record, v string) { r.BirthDate = v },
	"age":          func(r *dirstorage.Record, v string) { r.Age = v },
}

func importPeople(ctx context.Context, dbPath, csvPath string, verbose bool, out io.Writer) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	store, err := dirsqlite.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	setters := make([]func(*dirstorage.Record, string), len(header))
	known := 0
	for i, name := range header {
		if set, ok := columnSetters[strings.ToLower(strings.TrimSpace(name))]; ok {
			setters[i] = set
			known++
		}
	}
	if known == 0 {
		return 0, fmt.Errorf("no recognized columns in header %v", header)
	}

	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("row %d: %w", count+2, err)
		}
		var record dirstorage.Record
		for i, value := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&record, strings.TrimSpace(value))
			}
		}
		if record == (dirstorage.Record{}) {
			continue
		}
		if err := store.InsertRecord(ctx, record); err != nil {
			return count, fmt.Errorf("row %d: %w", count+2, err)
		}
		count++
		if verbose {
			fmt.Fprintf(out, "  + %s %s\n", record.Firstname, record.Lastname)
		}
	}
	return count, nil
}

// importPhones reads one number per line, storing the canonical +33 form
// when one exists and the raw line otherwise. Lines without a digit are
// skipped.
func importPhones(ctx context.Context, dbPath, listPath string) (int, int, error) {
	raw, err := os.ReadFile(listPath)
	if err != nil {
		return 0, 0, err
	}

	store, err := poolsqlite.Open(dbPath)
	if err != nil {
		return 0, 0, err
	}
	defer store.Close()

	count, skipped := 0, 0
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !phone.HasDigit(line) {
			skipped++
			continue
		}
		value := line
		if canonical, ok := phone.Normalize(line); ok {
			value = canonical
		}
		if err := store.AddNumber(ctx, value); err != nil {
			return count, skipped, err
		}
		count++
	}
	return count, skipped, nil
}
