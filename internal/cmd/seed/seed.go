// Package seed parses seed command flags and runs the importer.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"

	entrypoint "github.com/louisbranch/annuaire/internal/platform/cmd"
	"github.com/louisbranch/annuaire/internal/seed"
)

// Config holds seed command configuration.
type Config struct {
	DBPath     string `env:"ANNUAIRE_DB_PATH" envDefault:"data.db"`
	PeopleCSV  string
	PhonesFile string
	Verbose    bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.PeopleCSV, "people", "", "CSV file of people records to import")
	fs.StringVar(&cfg.PhonesFile, "phones", "", "file with one pool number per line")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the import.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		if err := seed.Run(ctx, seed.Config{
			DBPath:     cfg.DBPath,
			PeopleCSV:  cfg.PeopleCSV,
			PhonesFile: cfg.PhonesFile,
			Verbose:    cfg.Verbose,
		}, out); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		return nil
	})
}
