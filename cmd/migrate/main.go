package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/ssma/internal/config"
	"github.com/JaimeStill/ssma/pkg/database"
	"github.com/JaimeStill/ssma/pkg/settings"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
)

//go:embed migrations/*.sql
var migrations embed.FS

var dsn string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newMigrator opens the embedded migration source against the configured
// database. The caller must close the migrator.
func newMigrator() (*migrate.Migrate, error) {
	url, err := resolveDSN()
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// resolveDSN prefers --dsn, then the SSMA_DB_* variables the server reads
// (including those from .env), then a local development database.
func resolveDSN() (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	if err := godotenv.Load(config.DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("load %s: %w", config.DotEnvFile, err)
	}

	cfg := database.Config{Name: "ssma", User: "ssma", Password: "ssma"}
	if err := cfg.Finalize(settings.Key(config.EnvPrefix, "DB")); err != nil {
		return "", fmt.Errorf("database config: %w", err)
	}
	return cfg.Dsn(), nil
}

// run opens a migrator, applies fn, and treats ErrNoChange as success.
func run(fn func(m *migrate.Migrate) error) error {
	m, err := newMigrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Manage the SSMA database schema",
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := run(func(m *migrate.Migrate) error { return m.Up() }); err != nil {
			return fmt.Errorf("run up migrations: %w", err)
		}
		fmt.Println("migrations applied successfully")
		return nil
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := run(func(m *migrate.Migrate) error { return m.Down() }); err != nil {
			return fmt.Errorf("run down migrations: %w", err)
		}
		fmt.Println("migrations reverted successfully")
		return nil
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps N",
	Short: "Apply N migrations (negative N reverts)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n == 0 {
			return fmt.Errorf("steps must be a non-zero integer, got %q", args[0])
		}
		if err := run(func(m *migrate.Migrate) error { return m.Steps(n) }); err != nil {
			return fmt.Errorf("run migration steps: %w", err)
		}
		fmt.Printf("applied %d migration steps\n", n)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current migration version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(func(m *migrate.Migrate) error {
			v, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Println("no migrations applied")
				return nil
			}
			if err != nil {
				return fmt.Errorf("get version: %w", err)
			}
			fmt.Printf("version: %d, dirty: %v\n", v, dirty)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Force set the migration version (use with caution)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("version must be an integer, got %q", args[0])
		}
		if err := run(func(m *migrate.Migrate) error { return m.Force(v) }); err != nil {
			return fmt.Errorf("force version: %w", err)
		}
		fmt.Printf("forced to version %d\n", v)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database connection string (default built from SSMA_DB_*)")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(forceCmd)
}
