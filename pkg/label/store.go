package label

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Store persists one template per project as a TOML file under dir. There is
// no ambient global: callers construct a Store with an explicit directory and
// pass it where template access is needed.
type Store struct {
	dir string
}

// NewStore returns a template store rooted at dir. The directory is created
// lazily on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// path returns the template file path for a project.
func (s *Store) path(projectID string) string {
	return filepath.Join(s.dir, projectID+".toml")
}

// Load returns the saved template for the project, or DefaultTemplate when
// none has been saved yet.
func (s *Store) Load(projectID string) (Template, error) {
	data, err := os.ReadFile(s.path(projectID))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultTemplate(), nil
	}
	if err != nil {
		return Template{}, fmt.Errorf("read template for project %s: %w", projectID, err)
	}

	var tpl Template
	if err := toml.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("parse template for project %s: %w", projectID, err)
	}
	if len(tpl.Fields) == 0 {
		return DefaultTemplate(), nil
	}
	return tpl, nil
}

// Save writes the project's template, replacing any previous one.
func (s *Store) Save(projectID string, tpl Template) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create template dir: %w", err)
	}

	data, err := toml.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("encode template for project %s: %w", projectID, err)
	}

	if err := os.WriteFile(s.path(projectID), data, 0o644); err != nil {
		return fmt.Errorf("write template for project %s: %w", projectID, err)
	}
	return nil
}
