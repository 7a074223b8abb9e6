package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest files recognized in a project root, in lookup order.
const (
	ManifestJSON = "goex.json"
	ManifestYAML = "goex.yaml"
)

// Manifest holds the project configuration.
type Manifest struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	MainPackage string   `json:"main_package" yaml:"main_package"`
	SourceDir   string   `json:"source_dir" yaml:"source_dir"`
	OutputDir   string   `json:"output_dir" yaml:"output_dir"`
	Module      string   `json:"module" yaml:"module"`
	Includes    []string `json:"includes,omitempty" yaml:"includes,omitempty"`
	Excludes    []string `json:"excludes,omitempty" yaml:"excludes,omitempty"`
}

// DefaultManifest returns the manifest a project named name gets when no
// manifest file exists.
func DefaultManifest(name string) *Manifest {
	return &Manifest{
		Name:        name,
		Version:     "1.0.0",
		MainPackage: "main",
		SourceDir:   "src",
		OutputDir:   "build",
		Module:      "github.com/user/" + name,
	}
}

// LoadManifest loads the project manifest from dir, trying goex.json then
// goex.yaml. When neither exists, defaults derived from the directory
// name are returned.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestJSON)
	if data, err := os.ReadFile(path); err == nil {
		m := DefaultManifest(filepath.Base(dir))
		if err := json.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("%s: %w", ManifestJSON, err)
		}
		return m.normalized(), nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	path = filepath.Join(dir, ManifestYAML)
	if data, err := os.ReadFile(path); err == nil {
		m := DefaultManifest(filepath.Base(dir))
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("%s: %w", ManifestYAML, err)
		}
		return m.normalized(), nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return DefaultManifest(filepath.Base(dir)), nil
}

// normalized fills in empty fields with their defaults.
func (m *Manifest) normalized() *Manifest {
	d := DefaultManifest(m.Name)
	if m.Version == "" {
		m.Version = d.Version
	}
	if m.MainPackage == "" {
		m.MainPackage = d.MainPackage
	}
	if m.SourceDir == "" {
		m.SourceDir = d.SourceDir
	}
	if m.OutputDir == "" {
		m.OutputDir = d.OutputDir
	}
	if m.Module == "" {
		if m.Name == "" {
			m.Name = "project"
		}
		m.Module = "github.com/user/" + m.Name
	}
	return m
}

// Save writes the manifest as indented JSON into dir.
func (m *Manifest) Save(dir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ManifestJSON), append(data, '\n'), 0644)
}

// ExceptionsImport returns the import path of the project's shared
// exception module.
func (m *Manifest) ExceptionsImport() string {
	return m.Module + "/exceptions"
}
