package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// Pair is a freshly scaffolded migration
type Pair struct {
	Version int
	Up      string
	Down    string
}

var scaffold = template.Must(template.New("migration").Parse(`-- {{.Direction}}: {{.Name}}
-- Created: {{.Created}}
{{- with .Description}}
-- {{.}}
{{- end}}

`))

// Scaffold writes an empty up/down pair into dir, numbered one past the
// highest version already there. Existing files are never overwritten.
func Scaffold(dir, name, description string) (Pair, error) {
	s := slug(name)
	if s == "" {
		return Pair{}, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Pair{}, fmt.Errorf("create migrations directory: %w", err)
	}
	names, err := Names(os.DirFS(dir))
	if err != nil {
		return Pair{}, err
	}

	p := Pair{Version: nextVersion(names)}
	base := filepath.Join(dir, fmt.Sprintf("%06d_%s", p.Version, s))
	p.Up, p.Down = base+".up.sql", base+".down.sql"

	created := time.Now().Format(time.RFC3339)
	if err := writeScaffold(p.Up, "up", name, description, created); err != nil {
		return Pair{}, err
	}
	if err := writeScaffold(p.Down, "down", name, description, created); err != nil {
		_ = os.Remove(p.Up)
		return Pair{}, err
	}
	return p, nil
}

func writeScaffold(path, direction, name, description, created string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return scaffold.Execute(f, map[string]string{
		"Direction":   direction,
		"Name":        name,
		"Description": description,
		"Created":     created,
	})
}

// Names returns the sorted base names of the up migrations in fsys. A
// missing directory has no migrations.
func Names(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	var names []string
	for _, e := range entries {
		if base, ok := strings.CutSuffix(e.Name(), ".up.sql"); ok && base != "" && !e.IsDir() {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}

func nextVersion(names []string) int {
	highest := 0
	for _, name := range names {
		prefix, _, _ := strings.Cut(name, "_")
		if n, err := strconv.Atoi(prefix); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// slug keeps lower-case letters and digits, joining the runs with underscores.
func slug(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
	return strings.Join(words, "_")
}
