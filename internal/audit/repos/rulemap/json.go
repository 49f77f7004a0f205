package rulemap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Encode writes the rule map in its documented JSON schema:
//
//	{ "example.com": { "robots": { "GPTBot": {"allow": [...], "disallow": [...]} }, "ai": { ... } } }
func Encode(w io.Writer, m Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Decode reads a rule map from its JSON form.
func Decode(r io.Reader) (Map, error) {
	var m Map
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// WriteFile persists the rule map artifact at path.
func WriteFile(path string, m Map) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create rule map file %s: %w", path, err)
	}
	if err := Encode(f, m); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode rule map: %w", err)
	}
	return f.Close()
}

// ReadFile loads a rule map artifact from path.
func ReadFile(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule map file %s: %w", path, err)
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rule map file %s: %w", path, err)
	}
	return m, nil
}
