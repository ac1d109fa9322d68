package seed

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dirsqlite "github.com/louisbranch/annuaire/internal/directory/storage/sqlite"
	poolsqlite "github.com/louisbranch/annuaire/internal/pool/storage/sqlite"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunImportsPeopleAndPhones(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bot.db")
	peopleCSV := writeFile(t, dir, "people.csv",
		"firstname,lastname,email,mobile,city\n"+
			"Jean,Dupont,jean@example.com,06 12 34 56 78,Paris\n"+
			"Marie,Durand,,+33698765432,Lyon\n")
	phonesFile := writeFile(t, dir, "phones.txt",
		"0611111111\n"+
			"\n"+
			"+33622222222\n"+
			"pas un numero\n"+
			"06-33-33-33-33\n")

	var out bytes.Buffer
	if err := Run(context.Background(), Config{
		DBPath:     dbPath,
		PeopleCSV:  peopleCSV,
		PhonesFile: phonesFile,
	}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	dirStore, err := dirsqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open directory store: %v", err)
	}
	defer dirStore.Close()
	if n, err := dirStore.Count(context.Background()); err != nil || n != 2 {
		t.Fatalf("expected 2 people, got %d (%v)", n, err)
	}
	records, err := dirStore.Search(context.Background(), "dupont")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(records) != 1 || records[0].City != "Paris" {
		t.Fatalf("unexpected search result %+v", records)
	}

	poolStore, err := poolsqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open pool store: %v", err)
	}
	defer poolStore.Close()
	numbers, err := poolStore.Take(context.Background(), 10)
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if len(numbers) != 3 {
		t.Fatalf("expected 3 numbers, got %d", len(numbers))
	}
	// Imported values are canonicalized when possible.
	if numbers[0].Value != "+33611111111" {
		t.Fatalf("expected canonical first number, got %q", numbers[0].Value)
	}
	if numbers[2].Value != "+33633333333" {
		t.Fatalf("expected canonical dashed number, got %q", numbers[2].Value)
	}

	report := out.String()
	if !strings.Contains(report, "2 people") || !strings.Contains(report, "3 numbers") {
		t.Fatalf("unexpected report %q", report)
	}
	if !strings.Contains(report, "1 skipped") {
		t.Fatalf("expected skip count in report %q", report)
	}
}

func TestRunRequiresInput(t *testing.T) {
	dir := t.TempDir()
	if err := Run(context.Background(), Config{DBPath: filepath.Join(dir, "bot.db")}, nil); err == nil {
		t.Fatal("expected an error with nothing to import")
	}
	if err := Run(context.Background(), Config{PeopleCSV: "people.csv"}, nil); err == nil {
		t.Fatal("expected an error without a database path")
	}
}

func TestImportPeopleIgnoresUnknownColumnsAndBlankRows(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bot.db")
	peopleCSV := writeFile(t, dir, "people.csv",
		"firstname,lastname,notes\n"+
			"Jean,Dupont,ancien client\n"+
			",,\n")

	var out bytes.Buffer
	if err := Run(context.Background(), Config{DBPath: dbPath, PeopleCSV: peopleCSV}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := dirsqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if n, err := store.Count(context.Background()); err != nil || n != 1 {
		t.Fatalf("expected the blank row skipped, got %d (%v)", n, err)
	}
}

func TestImportPeopleRejectsUnusableHeader(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bot.db")
	peopleCSV := writeFile(t, dir, "people.csv", "foo,bar\n1,2\n")

	err := Run(context.Background(), Config{DBPath: dbPath, PeopleCSV: peopleCSV}, nil)
	if err == nil || !strings.Contains(err.Error(), "no recognized columns") {
		t.Fatalf("expected header error, got %v", err)
	}
}
