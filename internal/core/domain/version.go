package domain

import (
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// VersionsEqual compares two versions under PEP 440 normalization.
// Strings that are not valid versions compare case-insensitively.
func VersionsEqual(a, b string) bool {
	va, errA := pep440.Parse(strings.TrimSpace(a))
	vb, errB := pep440.Parse(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		return va.Equal(vb)
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
