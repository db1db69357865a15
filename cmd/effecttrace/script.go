package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Script describes a replay: a sequence of frames, each assigning a key
// value to the element scopes mounted on that frame.
type Script struct {
	Frames []Frame `yaml:"frames"`
}

// Frame maps scope names to key values. A scope absent from a frame is
// unmounted for that frame. A null key registers the effects unkeyed.
type Frame map[string]any

// LoadScript reads and parses a replay script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if len(script.Frames) == 0 {
		return nil, fmt.Errorf("script %s declares no frames", path)
	}
	return &script, nil
}

// ScopeNames returns every scope name mentioned in the script, sorted so
// replays are deterministic.
func (s *Script) ScopeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, frame := range s.Frames {
		for name := range frame {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
