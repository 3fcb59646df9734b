package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"checklist-cli/internal/model"

	"github.com/pelletier/go-toml/v2"
)

type sessionsFile struct {
	Version  int                      `toml:"version"`
	Sessions map[string]model.Session `toml:"sessions"`
}

// LoadSessions reads sessions.toml. A missing or corrupt file yields an empty map;
// session state is only a convenience.
func (s Store) LoadSessions() (map[string]model.Session, error) {
	out := map[string]model.Session{}
	if strings.TrimSpace(s.Dir) == "" {
		return out, nil
	}
	b, err := os.ReadFile(s.sessionsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, err
	}
	var f sessionsFile
	if err := toml.Unmarshal(b, &f); err != nil {
		return out, nil
	}
	for k, v := range f.Sessions {
		out[k] = v
	}
	return out, nil
}

func (s Store) SaveSessions(sessions map[string]model.Session) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := toml.Marshal(sessionsFile{Version: 1, Sessions: sessions})
	if err != nil {
		return err
	}
	p := s.sessionsPath()
	return atomicWriteFile(filepath.Dir(p), sessionsFileName+".*.tmp", p, b, 0o644)
}

// Session returns the stored session of one checklist.
func (s Store) Session(name string) (model.Session, error) {
	all, err := s.LoadSessions()
	if err != nil {
		return model.Session{}, err
	}
	return all[name], nil
}

// UpdateSession applies fn to one checklist's session and saves the file.
func (s Store) UpdateSession(name string, fn func(*model.Session)) (model.Session, error) {
	all, err := s.LoadSessions()
	if err != nil {
		return model.Session{}, err
	}
	sess := all[name]
	fn(&sess)
	all[name] = sess
	if err := s.SaveSessions(all); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}
