package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"checklist-cli/internal/model"
	"checklist-cli/internal/tree"
)

const (
	checklistsDirName = "checklists"
	sqliteFileName    = "state.sqlite"
	sessionsFileName  = "sessions.toml"
	checklistExt      = ".json"
)

var (
	ErrInvalidName = errors.New("invalid checklist name")
	ErrNotFound    = errors.New("checklist not found")
)

// Store is a checklist directory:
//
//	<dir>/checklists/*.json   checklist trees
//	<dir>/state.sqlite        checked-sets and the run log
//	<dir>/sessions.toml       per-checklist cursor and start time
type Store struct {
	Dir string
}

func (s Store) ChecklistsDir() string {
	return filepath.Join(s.Dir, checklistsDirName)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) sessionsPath() string {
	return filepath.Join(s.Dir, sessionsFileName)
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: dir is empty")
	}
	return os.MkdirAll(s.ChecklistsDir(), 0o755)
}

// SafePath returns the file for a checklist name, refusing names that would
// resolve outside the checklists directory.
func (s Store) SafePath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	root, err := filepath.Abs(s.ChecklistsDir())
	if err != nil {
		return "", err
	}
	p := filepath.Join(root, name+checklistExt)
	if filepath.Dir(p) != root {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return p, nil
}

// ListChecklists returns the stored checklists sorted by name.
func (s Store) ListChecklists() ([]model.ChecklistRef, error) {
	ents, err := os.ReadDir(s.ChecklistsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.ChecklistRef{}, nil
		}
		return nil, err
	}
	out := []model.ChecklistRef{}
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), checklistExt) {
			continue
		}
		out = append(out, model.ChecklistRef{
			Name:     strings.TrimSuffix(e.Name(), checklistExt),
			Filename: e.Name(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s Store) LoadChecklist(name string) (tree.Value, error) {
	p, err := s.SafePath(name)
	if err != nil {
		return tree.Value{}, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tree.Value{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return tree.Value{}, err
	}
	root, err := tree.Parse(b)
	if err != nil {
		return tree.Value{}, fmt.Errorf("checklist %s: %w", name, err)
	}
	if _, ok := root.Group(); !ok {
		return tree.Value{}, fmt.Errorf("checklist %s: top level must be an object", name)
	}
	return root, nil
}

func (s Store) SaveChecklist(name string, root tree.Value) error {
	if _, ok := root.Group(); !ok {
		return fmt.Errorf("checklist %s: top level must be an object", name)
	}
	p, err := s.SafePath(name)
	if err != nil {
		return err
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := marshalIndent(root)
	if err != nil {
		return err
	}
	return atomicWriteFile(filepath.Dir(p), filepath.Base(p)+".*.tmp", p, b, 0o644)
}
