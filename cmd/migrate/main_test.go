package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fintrack/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func failOpen(t *testing.T) migratorFactory {
	return func(string, *zap.Logger) (*migration.Migrator, func(), error) {
		t.Fatal("offline command opened the database")
		return nil, nil, nil
	}
}

func TestRun_CreateAndList(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, run([]string{"create", "add savings goals", "goals table"}, dir, zap.NewNop(), &out, failOpen(t)))
	assert.Contains(t, out.String(), filepath.Join(dir, "000001_add_savings_goals.up.sql"))

	out.Reset()
	require.NoError(t, run([]string{"create", "drop goals"}, dir, zap.NewNop(), &out, failOpen(t)))

	out.Reset()
	require.NoError(t, run([]string{"list"}, dir, zap.NewNop(), &out, failOpen(t)))
	assert.Equal(t, []string{"000001_add_savings_goals", "000002_drop_goals"},
		strings.Fields(out.String()))
}

func TestRun_UsageErrors(t *testing.T) {
	cases := map[string][]string{
		"no command":      nil,
		"unknown command": {"sideways"},
		"missing step":    {"step"},
		"missing name":    {"create"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			err := run(args, t.TempDir(), zap.NewNop(), &bytes.Buffer{}, failOpen(t))
			assert.ErrorIs(t, err, errUsage)
		})
	}
}

func TestRun_OpenFailureIsReturned(t *testing.T) {
	boom := errors.New("connection refused")
	open := func(string, *zap.Logger) (*migration.Migrator, func(), error) { return nil, nil, boom }

	err := run([]string{"up"}, t.TempDir(), zap.NewNop(), &bytes.Buffer{}, open)
	assert.ErrorIs(t, err, boom)
}

func TestResolveDir(t *testing.T) {
	assert.Equal(t, "/srv/sql", resolveDir("/srv/sql"))
	t.Chdir(t.TempDir())
	assert.Equal(t, "", resolveDir(""))
}
