package domain

import (
	"regexp"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
	"go.trai.ch/zerr"
)

var (
	specifierClause = regexp.MustCompile(`^(===|==|!=|<=|>=|~=|<|>)\s*(\S+)$`)
	releaseSegments = regexp.MustCompile(`^(?:\d+!)?(\d+(?:\.\d+)*)`)
)

// PythonVersion is a parsed interpreter version.
type PythonVersion struct {
	version pep440.Version
}

// ParsePythonVersion parses an interpreter version such as "3.12.1" or "3.13.0rc1".
func ParsePythonVersion(raw string) (*PythonVersion, error) {
	v, err := pep440.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrInvalidRequiresPython.Error()), "version", raw)
	}
	return &PythonVersion{version: v}, nil
}

func (p *PythonVersion) String() string {
	return p.version.String()
}

// RequiresPython is a parsed requires-python specifier set such as ">=3.8,<4".
type RequiresPython struct {
	raw        string
	specifiers *pep440.Specifiers
}

// ParseRequiresPython parses a comma separated specifier set. An empty string
// allows every interpreter.
func ParseRequiresPython(raw string) (*RequiresPython, error) {
	r := &RequiresPython{raw: strings.TrimSpace(raw)}
	if r.raw == "" {
		return r, nil
	}

	clauses := strings.Split(r.raw, ",")
	for i, part := range clauses {
		clause := strings.TrimSpace(part)
		if err := checkClause(clause); err != nil {
			return nil, zerr.With(err, "requires_python", raw)
		}
		clauses[i] = clause
	}

	// Pre-release interpreters are matched like any other version.
	specifiers, err := pep440.NewSpecifiers(strings.Join(clauses, ","), pep440.WithPreRelease(true))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrInvalidRequiresPython.Error()), "requires_python", raw)
	}
	r.specifiers = &specifiers
	return r, nil
}

func (r *RequiresPython) String() string {
	return r.raw
}

// Allows reports whether python satisfies every clause.
func (r *RequiresPython) Allows(python *PythonVersion) bool {
	if r.specifiers == nil {
		return true
	}
	return r.specifiers.Check(python.version)
}

// checkClause rejects clauses PEP 440 forbids but a lenient matcher would accept:
// a missing operator, wildcards outside == and !=, and ~= with a single segment.
func checkClause(clause string) error {
	m := specifierClause.FindStringSubmatch(clause)
	if m == nil {
		return zerr.With(ErrInvalidRequiresPython, "clause", clause)
	}
	op, text := m[1], m[2]
	if op == "===" {
		return nil
	}

	if prefix, ok := strings.CutSuffix(text, ".*"); ok {
		if op != "==" && op != "!=" {
			return zerr.With(ErrInvalidRequiresPython, "clause", clause)
		}
		text = prefix
	}
	if _, err := pep440.Parse(text); err != nil {
		return zerr.With(zerr.Wrap(err, ErrInvalidRequiresPython.Error()), "clause", clause)
	}
	if op == "~=" {
		release := releaseSegments.FindStringSubmatch(text)
		if release == nil || !strings.Contains(release[1], ".") {
			return zerr.With(ErrInvalidRequiresPython, "clause", clause)
		}
	}
	return nil
}
