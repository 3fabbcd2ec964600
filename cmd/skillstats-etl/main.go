package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/skillstats/skillstats/internal/dataset"
	"github.com/skillstats/skillstats/internal/etl"
	"github.com/skillstats/skillstats/internal/skills"
	"github.com/skillstats/skillstats/internal/source"
	"github.com/skillstats/skillstats/internal/storage/sqlite"
)

func main() {
	ingestCmd := flag.NewFlagSet("ingest", flag.ExitOnError)
	ingestCSV := ingestCmd.String("csv", "", "path to a local CSV export")
	ingestURL := ingestCmd.String("url", "", "URL of a CSV export")
	ingestDB := ingestCmd.String("db", "", "path to the SQLite database")
	ingestManifest := ingestCmd.String("manifest", "", "dataset manifest YAML (default: built-in ITU layout)")

	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	validateManifest := validateCmd.String("manifest", "", "manifest YAML file to validate")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ingest":
		ingestCmd.Parse(os.Args[2:])
		os.Exit(runIngest(*ingestCSV, *ingestURL, *ingestDB, *ingestManifest))
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if *validateManifest == "" {
			fmt.Fprintln(os.Stderr, "Error: --manifest flag is required")
			validateCmd.Usage()
			os.Exit(1)
		}
		os.Exit(runValidate(*validateManifest))
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: skillstats-etl <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  ingest --csv <path> | --url <url>, --db <path>   Reshape a raw export and upsert it")
	fmt.Println("  validate --manifest <path>                       Validate a dataset manifest")
	fmt.Println()
}

func runIngest(csvPath, url, dbPath, manifestPath string) int {
	if dbPath == "" {
		dbPath = os.Getenv("SKILLSTATS_DB")
	}
	if dbPath == "" {
		err := &skills.MissingConfigurationError{Field: "database path (--db flag or SKILLSTATS_DB)"}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if (csvPath == "") == (url == "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of --csv or --url is required")
		return 1
	}

	manifest := dataset.Default()
	if manifestPath != "" {
		m, err := dataset.Load(manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		manifest = m
	}

	var src source.ObservationSource
	if csvPath != "" {
		src = source.NewFileSource(csvPath, manifest)
	} else {
		src = source.NewHTTPSource(source.DefaultConfig(url), manifest)
	}

	store, err := sqlite.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer store.Close()

	runner := etl.NewRunner(src, store, manifest)
	stats, err := runner.Run(context.Background())
	if err != nil {
		var dsErr *skills.DataSourceError
		if errors.As(err, &dsErr) {
			fmt.Fprintf(os.Stderr, "Error: %v (nothing was written)\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	log.Printf("Extracted %d observations, retained %d rows, upserted %d records",
		stats.Extracted, stats.Retained, stats.Upserted)
	return 0
}

func runValidate(manifestPath string) int {
	schemaPath := findSchemaFile()
	if schemaPath == "" {
		fmt.Fprintln(os.Stderr, "Error: could not find schemas/manifest_v1.json")
		return 1
	}

	validator, err := dataset.NewValidator(schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize validator: %v\n", err)
		return 1
	}

	errs := validator.ValidateFile(manifestPath)
	if len(errs) == 0 {
		fmt.Println("✓ Manifest is valid")
		return 0
	}

	fmt.Fprintf(os.Stderr, "✗ Validation failed with %d error(s):\n\n", len(errs))
	for _, err := range errs {
		if err.Path != "" {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", filepath.Base(err.File), err.Path, err.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s\n", filepath.Base(err.File), err.Message)
		}
	}

	return 1
}

// findSchemaFile looks for the schema file in common locations
func findSchemaFile() string {
	candidates := []string{
		"schemas/manifest_v1.json",
		"../schemas/manifest_v1.json",
		"../../schemas/manifest_v1.json",
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
