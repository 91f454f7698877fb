package symbol

import (
	"fmt"
	"strings"
	"unicode"
)

// QualifiedName is a parsed dotted reference of the form
// "<module-path>.<symbol>". Immutable once parsed.
type QualifiedName struct {
	segments []string
}

// ParseQualifiedName validates and splits a dotted name. The name needs at
// least one module segment and a trailing symbol segment, each a valid
// identifier under host module-name rules.
func ParseQualifiedName(raw string) (QualifiedName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return QualifiedName{}, InvalidSpecError{Reason: "qualified name is empty"}
	}

	segments := strings.Split(trimmed, ".")
	if len(segments) < 2 {
		return QualifiedName{}, InvalidSpecError{Reason: fmt.Sprintf("qualified name %q has no module path", trimmed)}
	}
	for _, segment := range segments {
		if !validIdentifier(segment) {
			return QualifiedName{}, InvalidSpecError{Reason: fmt.Sprintf("qualified name %q contains an invalid segment %q", trimmed, segment)}
		}
	}

	clone := append([]string(nil), segments...)
	return QualifiedName{segments: clone}, nil
}

// validIdentifier reports whether a segment follows identifier rules: a
// letter or underscore followed by letters, digits, or underscores.
// Keeping segments to identifiers also keeps punctuation out of registry
// keys, so distinct specs can never collide on one key.
func validIdentifier(segment string) bool {
	if segment == "" {
		return false
	}
	for i, r := range segment {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

// MustParseQualifiedName panics on parse failure. Useful for tests and
// init-time wiring.
func MustParseQualifiedName(raw string) QualifiedName {
	name, err := ParseQualifiedName(raw)
	if err != nil {
		panic(err)
	}
	return name
}

// String returns the full dotted form.
func (q QualifiedName) String() string {
	return strings.Join(q.segments, ".")
}

// Module returns the dotted module path without the trailing symbol.
func (q QualifiedName) Module() string {
	if len(q.segments) < 2 {
		return ""
	}
	return strings.Join(q.segments[:len(q.segments)-1], ".")
}

// ModulePath returns a copy of the module path segments.
func (q QualifiedName) ModulePath() []string {
	if len(q.segments) < 2 {
		return nil
	}
	return append([]string(nil), q.segments[:len(q.segments)-1]...)
}

// Symbol returns the trailing symbol segment.
func (q QualifiedName) Symbol() string {
	if len(q.segments) == 0 {
		return ""
	}
	return q.segments[len(q.segments)-1]
}

// IsZero reports whether the name was never parsed.
func (q QualifiedName) IsZero() bool {
	return len(q.segments) == 0
}
