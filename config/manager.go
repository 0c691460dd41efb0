package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/coalsim/coalsimerr"
	"github.com/lixenwraith/coalsim/toml"
)

// Manager handles save/load for named scenario files under one base
// directory, rejecting any scenario whose fields are internally
// inconsistent on the way in or out rather than letting a malformed
// migration matrix or unrecognized model kind surface later as a
// confusing Build failure.
type Manager struct {
	basePath string
}

// NewManager creates a manager rooted at the given base directory.
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a scenario file.
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+".toml")
}

// Exists checks whether a scenario file exists.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// Save validates dto and writes it to name.toml under the manager's
// base directory, refusing to persist a scenario that Build could never
// apply (an inconsistent migration matrix, an unrecognized model kind).
func (m *Manager) Save(name string, dto ScenarioDTO) error {
	if err := validateScenario(dto); err != nil {
		return err
	}

	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return coalsimerr.New(coalsimerr.CodeIO, fmt.Sprintf("creating scenario directory %q: %v", m.basePath, err))
	}

	data, err := toml.Marshal(dto)
	if err != nil {
		return coalsimerr.New(coalsimerr.CodeIO, fmt.Sprintf("encoding scenario %q: %v", name, err))
	}

	if err := os.WriteFile(m.FilePath(name), data, 0644); err != nil {
		return coalsimerr.New(coalsimerr.CodeIO, fmt.Sprintf("writing scenario %q: %v", name, err))
	}
	return nil
}

// Load reads and validates a scenario from disk, rejecting a file that
// decodes but is internally inconsistent (see Save) before it ever
// reaches Build.
func (m *Manager) Load(name string) (ScenarioDTO, error) {
	var dto ScenarioDTO

	data, err := os.ReadFile(m.FilePath(name))
	if err != nil {
		return dto, coalsimerr.New(coalsimerr.CodeIO, fmt.Sprintf("reading scenario %q: %v", name, err))
	}

	if err := toml.Unmarshal(data, &dto); err != nil {
		return dto, coalsimerr.New(coalsimerr.CodeIO, fmt.Sprintf("decoding scenario %q: %v", name, err))
	}

	if err := validateScenario(dto); err != nil {
		return dto, err
	}

	return dto, nil
}
