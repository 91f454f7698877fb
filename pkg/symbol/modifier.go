package symbol

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// Strict is the one modifier the library defines: it verifies that the
// target module is importable at class-lookup time instead of deferring the
// failure to first construction.
const Strict = "strict"

// Modifier is a named configuration action attached to a subscript key.
// Bare names carry no arguments; range-like constructs carry up to two.
type Modifier struct {
	Name string
	Args []any
}

// modifierNames is the set of recognized actions. Extensible through
// RegisterModifier; unknown names fail key parsing.
var (
	modifierMu    sync.RWMutex
	modifierNames = map[string]struct{}{Strict: {}}
)

// RegisterModifier adds a recognized modifier name. Duplicate registrations
// return an error so wiring mistakes surface early.
func RegisterModifier(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("symbol: modifier name is required")
	}
	if !validModifierName(trimmed) {
		return fmt.Errorf("symbol: modifier name %q must be a letter followed by letters, digits, '_' or '-'", trimmed)
	}

	modifierMu.Lock()
	defer modifierMu.Unlock()

	if _, exists := modifierNames[trimmed]; exists {
		return fmt.Errorf("symbol: modifier %q already registered", trimmed)
	}
	modifierNames[trimmed] = struct{}{}
	return nil
}

// validModifierName keeps registered names free of the punctuation
// CacheKey uses as separators.
func validModifierName(name string) bool {
	for i, r := range name {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_' || r == '-'):
		default:
			return false
		}
	}
	return name != ""
}

// KnownModifier reports whether a name maps to a recognized action.
func KnownModifier(name string) bool {
	modifierMu.RLock()
	defer modifierMu.RUnlock()

	_, ok := modifierNames[name]
	return ok
}

// Spec is the normalized form of a subscript key: a qualified name plus an
// ordered list of modifiers.
type Spec struct {
	Name      QualifiedName
	Modifiers []Modifier
}

// ParseKey normalizes a subscript-style key. The first part must be the
// qualified-name string; remaining parts are modifiers, each either a bare
// name or a Modifier value carrying up to two arguments.
func ParseKey(parts ...any) (Spec, error) {
	if len(parts) == 0 {
		return Spec{}, InvalidSpecError{Reason: "key is empty"}
	}

	raw, ok := parts[0].(string)
	if !ok {
		return Spec{}, InvalidSpecError{Reason: fmt.Sprintf("key must start with a qualified-name string, got %T", parts[0])}
	}
	name, err := ParseQualifiedName(raw)
	if err != nil {
		return Spec{}, err
	}

	modifiers := make([]Modifier, 0, len(parts)-1)
	for _, part := range parts[1:] {
		modifier, err := normalizeModifier(part)
		if err != nil {
			return Spec{}, err
		}
		modifiers = append(modifiers, modifier)
	}
	if len(modifiers) == 0 {
		modifiers = nil
	}

	return Spec{Name: name, Modifiers: modifiers}, nil
}

func normalizeModifier(part any) (Modifier, error) {
	var modifier Modifier
	switch value := part.(type) {
	case string:
		modifier = Modifier{Name: value}
	case Modifier:
		modifier = value
	default:
		return Modifier{}, InvalidSpecError{Reason: fmt.Sprintf("modifier must be a name or a Modifier, got %T", part)}
	}

	modifier.Name = strings.TrimSpace(modifier.Name)
	if !KnownModifier(modifier.Name) {
		return Modifier{}, InvalidSpecError{Modifier: modifier.Name}
	}
	if len(modifier.Args) > 2 {
		return Modifier{}, InvalidSpecError{Reason: fmt.Sprintf("modifier %q carries %d arguments, at most two are allowed", modifier.Name, len(modifier.Args))}
	}
	if len(modifier.Args) > 0 {
		modifier.Args = append([]any(nil), modifier.Args...)
	}
	return modifier, nil
}

// Strict reports whether the spec carries the strict modifier.
func (s Spec) Strict() bool {
	for _, modifier := range s.Modifiers {
		if modifier.Name == Strict {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the spec, so callers can hand it out
// without sharing modifier argument slices.
func (s Spec) Clone() Spec {
	clone := Spec{Name: s.Name}
	if len(s.Modifiers) > 0 {
		clone.Modifiers = make([]Modifier, len(s.Modifiers))
		for i, modifier := range s.Modifiers {
			if len(modifier.Args) > 0 {
				modifier.Args = append([]any(nil), modifier.Args...)
			}
			clone.Modifiers[i] = modifier
		}
	}
	return clone
}

// CacheKey returns the canonical registry key for the spec. Two keys are
// equal exactly when the qualified name and the ordered modifier list
// match. Name segments and modifier names are identifier-shaped, and
// argument values are typed and quoted, so the separators below cannot be
// smuggled in through key content.
func (s Spec) CacheKey() string {
	var builder strings.Builder
	builder.WriteString(s.Name.String())
	for _, modifier := range s.Modifiers {
		builder.WriteByte(';')
		builder.WriteString(modifier.Name)
		for _, arg := range modifier.Args {
			builder.WriteString(fmt.Sprintf(":%T=%q", arg, fmt.Sprint(arg)))
		}
	}
	return builder.String()
}
