// Package cmake builds cmake configuration arguments and dispatches them
// either to standard output or to the cmake executable.
package cmake

import (
	"strings"
)

const (
	// BuildTypeDefinition is the cache entry carrying the build type.
	BuildTypeDefinition = "CMAKE_BUILD_TYPE"
	// DefaultBuildType is used when no build type is requested.
	DefaultBuildType = "Debug"
	// SourceDir is the source tree as seen from build/<target>.
	SourceDir = "../.."
)

// Arguments is an ordered cmake argument list. It is not modified after construction.
// The zero value is an empty list and renders as "".
type Arguments struct {
	tokens []string
}

// BuildArguments merges target definitions, caller definitions and the build type.
// Target definitions come first so that later -D flags override them in cmake.
// Definitions are passed through verbatim.
func BuildArguments(targetDefs, extraDefs []string, buildType string) Arguments {
	if buildType == "" {
		buildType = DefaultBuildType
	}

	tokens := make([]string, 0, len(targetDefs)+len(extraDefs)+2)
	for _, def := range targetDefs {
		tokens = append(tokens, "-D"+def)
	}
	for _, def := range extraDefs {
		tokens = append(tokens, "-D"+def)
	}
	tokens = append(tokens, "-D"+BuildTypeDefinition+"="+buildType, SourceDir)
	return Arguments{tokens: tokens}
}

// Tokens returns a copy of the argument list, suitable for exec.
func (a Arguments) Tokens() []string {
	out := make([]string, len(a.tokens))
	copy(out, a.tokens)
	return out
}

// String renders the arguments as a single space separated string.
func (a Arguments) String() string {
	var b strings.Builder
	for _, token := range a.tokens {
		b.WriteString(token)
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}
