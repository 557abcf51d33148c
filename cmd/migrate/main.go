// CLI tool to run pending database migrations from db/.
// Skips files already recorded in the migrations table and wraps each
// migration plus its record insert in a single transaction.
// Usage: go run ./cmd/migrate [-dir db] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

var migrationPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

func main() {
	dir := flag.String("dir", envOr("MIGRATIONS_DIR", "db"), "directory holding *.sql migrations")
	dryRun := flag.Bool("dry-run", false, "list pending migrations without applying them")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "No .env loaded (%v); using environment\n", err)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	files, err := migrationFiles(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	applied, err := appliedMigrations(ctx, conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading migrations table: %v\n", err)
		os.Exit(1)
	}

	ran := 0
	for _, f := range files {
		filename := filepath.Base(f)
		if applied[filename] {
			fmt.Printf("  skip: %s\n", filename)
			continue
		}
		if *dryRun {
			fmt.Printf("  pending: %s\n", filename)
			ran++
			continue
		}
		if err := apply(ctx, conn, f); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying %s: %v\n", filename, err)
			os.Exit(1)
		}
		fmt.Printf("  applied: %s\n", filename)
		ran++
	}

	switch {
	case ran == 0:
		fmt.Println("No pending migrations.")
	case *dryRun:
		fmt.Printf("\n%d migration(s) pending.\n", ran)
	default:
		fmt.Printf("\n%d migration(s) applied.\n", ran)
	}
}

// migrationFiles returns the *.sql files in dir in name order, which is
// application order given the date-prefixed names.
func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil || len(files) == 0 {
		return nil, fmt.Errorf("no migration files found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

// appliedMigrations lists recorded migrations. A missing table means a fresh
// database; the first migration creates it.
func appliedMigrations(ctx context.Context, conn *pgx.Conn) (map[string]bool, error) {
	applied := make(map[string]bool)

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT to_regclass('migrations') IS NOT NULL").Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return applied, nil
	}

	rows, err := conn.Query(ctx, "SELECT migration FROM migrations")
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

func apply(ctx context.Context, conn *pgx.Conn, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	filename := filepath.Base(path)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO migrations (migration, description) VALUES ($1, $2)",
		filename, descriptionFromFilename(filename)); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit(ctx)
}

// descriptionFromFilename strips the YYYY-MM-DD-NNN- prefix and .sql suffix.
func descriptionFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".sql")
	name = migrationPrefix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "-", " ")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
