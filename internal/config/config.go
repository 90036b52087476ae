// Package config provides loading and resolution of the YAML build configuration.
// The document maps target names to their compiler definitions.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// DefsKey is the document key holding a target's definition list.
const DefsKey = "defs"

// Sentinel errors for configuration loading and resolution
var (
	ErrConfigUnreadable = errors.New("unable to open configuration file")
	ErrInvalidConfig    = errors.New("invalid build configuration")
	ErrTargetNotFound   = errors.New("definition not found")
)

// TargetNotFoundError reports the document key that was missing during resolution.
// Key is either the target name itself or DefsKey when the target exists without definitions.
type TargetNotFoundError struct {
	Target string
	Key    string
}

func (e *TargetNotFoundError) Error() string {
	if e.Key != e.Target {
		return fmt.Sprintf("definition not found: %s (target %s)", e.Key, e.Target)
	}
	return fmt.Sprintf("definition not found: %s", e.Key)
}

// Is reports whether target is ErrTargetNotFound.
func (e *TargetNotFoundError) Is(target error) bool {
	return target == ErrTargetNotFound
}

// BuildConfig is the typed form of a build configuration document.
type BuildConfig struct {
	Targets map[string]Target
}

// Target is a named build profile.
type Target struct {
	Name string
	// Defs holds definitions without the -D prefix, in document order.
	Defs []string
	// HasDefs is false when the document declares the target without a defs sequence.
	HasDefs bool
	// CMakeVersion is an optional semver constraint on the cmake executable.
	CMakeVersion string
}

type rawTarget struct {
	Defs         *[]string `yaml:"defs"`
	CMakeVersion string    `yaml:"cmake_version"`
}

// LoadConfig reads and validates a build configuration from a YAML file.
func LoadConfig(filePath string) (*BuildConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConfigUnreadable, filePath, err)
	}
	return Parse(data)
}

// Parse decodes a build configuration document.
func Parse(data []byte) (*BuildConfig, error) {
	var raw map[string]*rawTarget
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := &BuildConfig{Targets: make(map[string]Target, len(raw))}
	for name, rt := range raw {
		target := Target{Name: name}
		if rt != nil {
			if rt.Defs != nil {
				target.Defs = *rt.Defs
				target.HasDefs = true
			}
			target.CMakeVersion = rt.CMakeVersion
		}
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("%w: target %s: %w", ErrInvalidConfig, name, err)
		}
		cfg.Targets[name] = target
	}
	return cfg, nil
}

// Validate checks the optional fields of a target.
// A missing defs list is not a load error; it surfaces when the target is resolved.
func (t *Target) Validate() error {
	if t.CMakeVersion == "" {
		return nil
	}
	if _, err := semver.NewConstraint(t.CMakeVersion); err != nil {
		return fmt.Errorf("cmake_version %q: %w", t.CMakeVersion, err)
	}
	return nil
}

// Lookup returns the named target and whether it is present.
func (c *BuildConfig) Lookup(name string) (Target, bool) {
	target, ok := c.Targets[name]
	return target, ok
}

// Resolve returns the definitions of the named target in document order.
func (c *BuildConfig) Resolve(name string) ([]string, error) {
	target, ok := c.Lookup(name)
	if !ok {
		return nil, &TargetNotFoundError{Target: name, Key: name}
	}
	if !target.HasDefs {
		return nil, &TargetNotFoundError{Target: name, Key: DefsKey}
	}
	defs := make([]string, len(target.Defs))
	copy(defs, target.Defs)
	return defs, nil
}

// TargetNames returns the configured target names in sorted order.
func (c *BuildConfig) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
