package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// State is the CPU-and-memory snapshot used by a SingleStepTests-style
// (https://github.com/SingleStepTests/65x02) conformance vector, before
// or after the single instruction under test.
type State struct {
	PC  uint16   `json:"pc"`
	S   uint8    `json:"s"`
	A   uint8    `json:"a"`
	X   uint8    `json:"x"`
	Y   uint8    `json:"y"`
	P   uint8    `json:"p"`
	RAM [][2]int `json:"ram"`
}

// Vector is one single-instruction test case: the state before
// execution, the state the instruction must produce, and the cycle
// count it must consume.
type Vector struct {
	Name    string `json:"name"`
	Initial State  `json:"initial"`
	Final   State  `json:"final"`
	Cycles  int    `json:"cycles"`
}

// LoadVectors reads every *.json file directly inside dir (each file
// holds a JSON array of Vector) and returns them concatenated, sorted
// by name for deterministic reporting.
func LoadVectors(dir string) ([]Vector, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading vector directory %q", dir)
	}

	var vectors []Vector
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading vector file %q", path)
		}

		var vs []Vector
		if err := json.Unmarshal(data, &vs); err != nil {
			return nil, errors.Wrapf(err, "parsing vector file %q", path)
		}
		vectors = append(vectors, vs...)
	}

	sort.Slice(vectors, func(i, j int) bool { return vectors[i].Name < vectors[j].Name })
	return vectors, nil
}

// Manifest describes a named vector suite as a set of directories (each
// loaded the same way LoadVectors loads a single directory), so a suite
// can be assembled from several opcode-group fixture directories without
// flattening them into one. Entries marked Skip are reported but not
// loaded, e.g. to carve out a fixture set known to need unimplemented
// decimal-mode support.
type Manifest struct {
	Name    string          `yaml:"name"`
	Entries []ManifestEntry `yaml:"entries"`
}

type ManifestEntry struct {
	Dir  string `yaml:"dir"`
	Skip bool   `yaml:"skip"`
}

// LoadManifest reads a yaml suite manifest at path and loads every
// non-skipped entry's vectors, resolving each entry's Dir relative to
// the manifest file's own directory. Returns the combined, name-sorted
// vector list and the number of entries skipped.
func LoadManifest(path string) ([]Vector, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "reading manifest %q", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, 0, errors.Wrapf(err, "parsing manifest %q", path)
	}

	base := filepath.Dir(path)
	var vectors []Vector
	skipped := 0
	for _, e := range m.Entries {
		if e.Skip {
			skipped++
			continue
		}
		dir := e.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		vs, err := LoadVectors(dir)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "loading manifest entry %q", e.Dir)
		}
		vectors = append(vectors, vs...)
	}

	sort.Slice(vectors, func(i, j int) bool { return vectors[i].Name < vectors[j].Name })
	return vectors, skipped, nil
}
