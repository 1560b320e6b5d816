package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"passforge/backend/internal/password"

	"gopkg.in/yaml.v3"
)

// rulesFile is the YAML layout accepted by --rules-file:
//
//	preset: custom
//	rules:
//	  length: 20
//	  include_digits: true
//	  min_digits: 4
type rulesFile struct {
	Preset string          `yaml:"preset"`
	Rules  *password.Rules `yaml:"rules"`
}

func loadRulesFile(path string) (*rulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rf rulesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return &rf, nil
}
