// Command migrate manages the FinTrack PostgreSQL schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/fintrack/backend/internal/infrastructure/migration"
	"github.com/fintrack/backend/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultDir = "migrations"

var errUsage = errors.New("usage")

// invocation is one parsed command line
type invocation struct {
	args []string // command arguments after the command name
	dir  string   // migrations directory, "" for the embedded set
	log  *zap.Logger
	out  io.Writer
	m    *migration.Migrator
}

type command struct {
	usage   string
	minArgs int
	// offline commands work on files only and never open the database
	offline bool
	run     func(inv *invocation) error
}

var commands = map[string]command{
	"up":   {usage: "up", run: func(inv *invocation) error { return inv.m.Up() }},
	"down": {usage: "down", run: func(inv *invocation) error { return inv.m.Down() }},
	"step": {usage: "step <n>", minArgs: 1, run: func(inv *invocation) error {
		n, err := strconv.Atoi(inv.args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", inv.args[0])
		}
		return inv.m.Steps(n)
	}},
	"goto": {usage: "goto <version>", minArgs: 1, run: func(inv *invocation) error {
		v, err := strconv.ParseUint(inv.args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", inv.args[0])
		}
		return inv.m.GoTo(uint(v))
	}},
	"version": {usage: "version", run: func(inv *invocation) error {
		v, dirty, err := inv.m.Version()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(inv.out, "version %d dirty=%t\n", v, dirty)
		return err
	}},
	"force": {usage: "force <version>", minArgs: 1, run: func(inv *invocation) error {
		v, err := strconv.Atoi(inv.args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", inv.args[0])
		}
		inv.log.Warn("Forcing migration version", zap.Int("version", v))
		return inv.m.Force(v)
	}},
	"drop": {usage: "drop --confirm", minArgs: 1, run: func(inv *invocation) error {
		if inv.args[0] != "--confirm" && inv.args[0] != "-confirm" {
			return fmt.Errorf("%w: drop needs --confirm", errUsage)
		}
		return inv.m.Drop()
	}},
	"create": {usage: "create <name> [description]", minArgs: 1, offline: true, run: func(inv *invocation) error {
		description := ""
		if len(inv.args) > 1 {
			description = inv.args[1]
		}
		p, err := migration.Scaffold(inv.writeDir(), inv.args[0], description)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(inv.out, "created %s\n        %s\n", p.Up, p.Down)
		return err
	}},
	"list": {usage: "list", offline: true, run: func(inv *invocation) error {
		names, err := migration.Names(os.DirFS(inv.writeDir()))
		if err != nil {
			return err
		}
		for _, name := range names {
			if _, err := fmt.Fprintln(inv.out, name); err != nil {
				return err
			}
		}
		return nil
	}},
}

// writeDir is where file commands operate, even when migrations run embedded
func (inv *invocation) writeDir() string {
	if inv.dir != "" {
		return inv.dir
	}
	return defaultDir
}

func main() {
	flags := flag.NewFlagSet("migrate", flag.ExitOnError)
	dir := flags.String("path", "", "migrations directory (default ./migrations when present, else the embedded set)")
	level := flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Usage = func() { printUsage(flags.Output()) }
	_ = flags.Parse(os.Args[1:])

	log, err := logger.New(logger.Config{Level: *level, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(flags.Args(), *dir, log, os.Stdout, openMigrator); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		}
		log.Fatal("Migration command failed", zap.Error(err))
	}
}

type migratorFactory func(dir string, log *zap.Logger) (*migration.Migrator, func(), error)

// run dispatches one command. Database commands get a migrator from open.
func run(args []string, dir string, log *zap.Logger, out io.Writer, open migratorFactory) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command", errUsage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	inv := &invocation{args: args[1:], dir: resolveDir(dir), log: log, out: out}
	if len(inv.args) < cmd.minArgs {
		return fmt.Errorf("%w: migrate %s", errUsage, cmd.usage)
	}

	if !cmd.offline {
		m, closeFn, err := open(inv.dir, log)
		if err != nil {
			return err
		}
		defer closeFn()
		inv.m = m
	}
	log.Debug("Running migration command", zap.String("command", args[0]), zap.String("dir", inv.dir))
	return cmd.run(inv)
}

// resolveDir prefers an explicit directory, then ./migrations, then embedded
func resolveDir(dir string) string {
	if dir != "" {
		return dir
	}
	if info, err := os.Stat(defaultDir); err == nil && info.IsDir() {
		return defaultDir
	}
	return ""
}

func openMigrator(dir string, log *zap.Logger) (*migration.Migrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return nil, nil, fmt.Errorf("SQL migrations only target PostgreSQL, got driver %q; SQLite schemas are created on startup", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	var files fs.FS = migrations.FS
	if dir != "" {
		files = os.DirFS(dir)
	}
	m, err := migration.New(db, files, log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return m, func() {
		_ = m.Close()
		_ = db.Close()
	}, nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `FinTrack database migrations

Usage: migrate [-path dir] [-log-level level] <command> [args]

  up                          apply all pending migrations
  down                        roll back every migration
  step <n>                    apply n migrations, negative n rolls back
  goto <version>              migrate to a version
  version                     print the current version
  force <version>             set the version without running SQL
  drop --confirm              drop every database object
  create <name> [description] write a new up/down pair
  list                        list migration files

Connection settings come from config.toml or FINTRACK_DATABASE_* variables.
`)
}
