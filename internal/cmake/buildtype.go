package cmake

import (
	"golang.org/x/text/cases"
)

// Standard build types understood by single-config cmake generators.
var knownBuildTypes = []string{"Debug", "Release", "RelWithDebInfo", "MinSizeRel"}

// NormalizeBuildType maps a build type onto its canonical spelling.
// Unknown build types are returned unchanged with ok set to false.
func NormalizeBuildType(buildType string) (string, bool) {
	if buildType == "" {
		return DefaultBuildType, true
	}
	fold := cases.Fold()
	folded := fold.String(buildType)
	for _, known := range knownBuildTypes {
		if fold.String(known) == folded {
			return known, true
		}
	}
	return buildType, false
}
