package utils

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile loads and parses a TOML file into the provided struct
func LoadTOMLFile(configPath string, config any) error {
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	return nil
}

// Salvage is a TOML document decoded without a schema, so that a value of
// the wrong type in one key does not cost the rest of the file. Lookups
// take dotted paths such as "solver.word_length".
type Salvage struct {
	source string
	tree   map[string]any
	// Recovered counts the values copied out so far.
	Recovered int
}

// ParseTOMLWithRecovery decodes configPath into a Salvage.
func ParseTOMLWithRecovery(configPath string) (*Salvage, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	tree := make(map[string]any)
	if _, err := toml.Decode(string(data), &tree); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return &Salvage{source: configPath, tree: tree}, nil
}

// lookup walks the sections named by the leading parts of path.
func (s *Salvage) lookup(path string) (any, bool) {
	parts := strings.Split(path, ".")
	node := s.tree
	for _, section := range parts[:len(parts)-1] {
		next, ok := node[section].(map[string]any)
		if !ok {
			return nil, false
		}
		node = next
	}
	val, ok := node[parts[len(parts)-1]]
	return val, ok
}

// Int copies the integer at path into dst. A missing key leaves dst
// alone; a key of another type is skipped with a warning.
func (s *Salvage) Int(path string, dst *int) bool {
	raw, ok := s.lookup(path)
	if !ok {
		return false
	}
	val, ok := raw.(int64)
	if !ok {
		log.Warnf("Ignoring %s in %s: want an integer, got %T", path, s.source, raw)
		return false
	}
	*dst = int(val)
	s.recovered(path, val)
	return true
}

// String copies the string at path into dst.
func (s *Salvage) String(path string, dst *string) bool {
	raw, ok := s.lookup(path)
	if !ok {
		return false
	}
	val, ok := raw.(string)
	if !ok {
		log.Warnf("Ignoring %s in %s: want a string, got %T", path, s.source, raw)
		return false
	}
	*dst = val
	s.recovered(path, val)
	return true
}

// Bool copies the boolean at path into dst.
func (s *Salvage) Bool(path string, dst *bool) bool {
	raw, ok := s.lookup(path)
	if !ok {
		return false
	}
	val, ok := raw.(bool)
	if !ok {
		log.Warnf("Ignoring %s in %s: want true or false, got %T", path, s.source, raw)
		return false
	}
	*dst = val
	s.recovered(path, val)
	return true
}

func (s *Salvage) recovered(path string, val any) {
	s.Recovered++
	log.Debugf("Recovered %s = %v", path, val)
}
