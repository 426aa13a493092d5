package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ExtraKey is the key under the manifest's "extra" object that holds the
// settings block.
const ExtraKey = "environment-dependencies"

// LoadFromFile reads and parses a YAML settings file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses YAML settings from raw bytes. Unknown keys are
// rejected so that typos fail at load time.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadFromManifest extracts the extra.environment-dependencies block from a
// JSON dependency manifest. Comments and trailing commas are tolerated.
// Returns nil without error when the manifest has no such block.
func LoadFromManifest(data []byte) (*Config, error) {
	var doc struct {
		Extra map[string]json.RawMessage `json:"extra"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	raw, ok := doc.Extra[ExtraKey]
	if !ok {
		return nil, nil
	}
	switch string(bytes.TrimSpace(raw)) {
	case "null", "[]", "{}":
		return nil, nil
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing extra.%s: %w", ExtraKey, err)
	}
	return &cfg, nil
}
