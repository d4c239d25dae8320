package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"OptScreen/internal/domain/models"
	"OptScreen/internal/domain/repository"

	"gopkg.in/ini.v1"
)

const (
	presetExt     = ".ini"
	filterSection = "FILTER"
)

// INIPresetStore reads presets from <dir>/<name>.ini.
type INIPresetStore struct {
	dir string
}

var _ repository.PresetStore = (*INIPresetStore)(nil)

// NewINIPresetStore creates a preset store rooted at dir.
func NewINIPresetStore(dir string) *INIPresetStore {
	return &INIPresetStore{dir: dir}
}

// Dir returns the directory presets are read from.
func (s *INIPresetStore) Dir() string {
	return s.dir
}

// Load parses the FILTER section of a preset. Keys keep their case and
// order; keys with empty values are dropped.
func (s *INIPresetStore) Load(_ context.Context, name string) (*models.Preset, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: invalid name %q", repository.ErrPresetNotFound, name)
	}

	path := filepath.Join(s.dir, name+presetExt)
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repository.ErrPresetNotFound, path)
		}
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}

	sec, err := f.GetSection(filterSection)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no [%s] section", repository.ErrPresetNotFound, path, filterSection)
	}

	preset := &models.Preset{Name: name}
	for _, k := range sec.Keys() {
		v := k.String()
		if v == "" {
			continue
		}
		preset.Fields = append(preset.Fields, models.PresetField{Key: k.Name(), Value: v})
	}
	return preset, nil
}

// List returns preset names in lexical order.
func (s *INIPresetStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read presets dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), presetExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), presetExt))
	}
	sort.Strings(names)
	return names, nil
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
