// Package symbol defines qualified names, subscript-key parsing, and the
// module-system collaborators used to resolve a dotted name such as
// "mathlib.Matrix" into a loadable Symbol. Resolution is deliberately
// deferred: parsing a name performs no imports, and the Resolver only
// touches the module table when asked. Modules announce themselves through
// Registry.Register the way database/sql drivers do, so a program can
// declare references to heavy or optional dependencies without linking
// their initialization into every binary path.
package symbol
