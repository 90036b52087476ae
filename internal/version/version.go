// Package version provides semantic version checks for external build tools
package version

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// String constants for operations (used in ErrVersionParseFailed)
const (
	OpParseToolVersion = "parse_tool_version"
	OpParseConstraint  = "parse_constraint"
)

// Custom error types for better error handling and comparison
var (
	ErrNoVersionFound         = errors.New("no version found in tool output")
	ErrToolVersionUnsatisfied = errors.New("tool version does not satisfy constraint")
)

// ErrVersionParseFailed represents a version parsing error
type ErrVersionParseFailed struct {
	Version string
	Op      string
	Cause   error
}

func (e ErrVersionParseFailed) Error() string {
	return fmt.Sprintf("failed to parse version %s in operation %s: %v", e.Version, e.Op, e.Cause)
}

func (e ErrVersionParseFailed) Unwrap() error {
	return e.Cause
}

func (e ErrVersionParseFailed) Is(target error) bool {
	var parseErr ErrVersionParseFailed
	return errors.As(target, &parseErr)
}

// "cmake version 3.28.3", "cmake3 version 3.17.5", "cmake version 3.29.0-rc1"
var toolVersionPattern = regexp.MustCompile(`version\s+(\d+(?:\.\d+){0,2}(?:-[0-9A-Za-z.-]+)?)`)

// ParseToolVersion extracts the version reported by `<tool> --version`.
// Pre-release suffixes are dropped so release candidates compare as their release.
func ParseToolVersion(output string) (*semver.Version, error) {
	match := toolVersionPattern.FindStringSubmatch(output)
	if match == nil {
		firstLine, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
		return nil, ErrVersionParseFailed{Version: firstLine, Op: OpParseToolVersion, Cause: ErrNoVersionFound}
	}

	v, err := semver.NewVersion(match[1])
	if err != nil {
		return nil, ErrVersionParseFailed{Version: match[1], Op: OpParseToolVersion, Cause: err}
	}
	if v.Prerelease() != "" {
		stripped, err := v.SetPrerelease("")
		if err != nil {
			return nil, ErrVersionParseFailed{Version: match[1], Op: OpParseToolVersion, Cause: err}
		}
		v = &stripped
	}
	return v, nil
}

// CheckToolVersion reports whether the tool output satisfies constraint.
// An empty constraint accepts any version.
func CheckToolVersion(constraint, output string) (*semver.Version, error) {
	v, err := ParseToolVersion(output)
	if err != nil {
		return nil, err
	}
	if constraint == "" {
		return v, nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return v, ErrVersionParseFailed{Version: constraint, Op: OpParseConstraint, Cause: err}
	}
	if ok, errs := c.Validate(v); !ok {
		return v, fmt.Errorf("%w: %s %s: %w", ErrToolVersionUnsatisfied, v.String(), constraint, errors.Join(errs...))
	}
	return v, nil
}
