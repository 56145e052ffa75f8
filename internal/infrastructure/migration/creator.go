package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"
)

var skeletons = template.Must(template.New("migration").Parse(`
{{- define "up" -}}
-- Migration: {{.Name}}
-- Created: {{.Created}}
-- Description: {{.Description}}

{{end}}
{{- define "down" -}}
-- Migration: {{.Name}} (Rollback)
-- Created: {{.Created}}

{{end}}`))

// versionWidth matches the zero padding of migrations/000001_init_schema
const versionWidth = 6

var (
	slugInvalid   = regexp.MustCompile(`[^a-z0-9 _-]`)
	slugSeparator = regexp.MustCompile(`[ _-]+`)
)

// MigrationFile is a generated up/down pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Created     string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down pair numbered after the highest
// existing version in dir.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}
	existing, err := ListMigrations(dir)
	if err != nil {
		return nil, err
	}

	version := fmt.Sprintf("%0*d", versionWidth, nextVersion(existing))
	base := filepath.Join(dir, version+"_"+slug)
	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		Created:     time.Now().Format(time.RFC3339),
		UpPath:      base + ".up.sql",
		DownPath:    base + ".down.sql",
	}

	if err := render(mf.UpPath, "up", mf); err != nil {
		return nil, err
	}
	if err := render(mf.DownPath, "down", mf); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

// render creates path from the named skeleton. Existing files are never overwritten.
func render(path, skeleton string, mf *MigrationFile) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s migration: %w", skeleton, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return skeletons.ExecuteTemplate(f, skeleton, mf)
}

func nextVersion(existing []string) int {
	highest := 0
	for _, m := range existing {
		prefix, _, _ := strings.Cut(m, "_")
		if v, err := strconv.Atoi(prefix); err == nil {
			highest = max(highest, v)
		}
	}
	return highest + 1
}

// sanitizeName lower-cases name, drops anything but letters, digits and
// separators, then joins the words with single underscores.
func sanitizeName(name string) string {
	s := slugInvalid.ReplaceAllString(strings.ToLower(name), "")
	s = slugSeparator.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// ListMigrations returns the sorted base names of the *.up.sql files in dir.
// A missing directory yields an empty list.
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if base, ok := strings.CutSuffix(e.Name(), ".up.sql"); ok && !e.IsDir() {
			names = append(names, base)
		}
	}
	slices.Sort(names)
	return names, nil
}
