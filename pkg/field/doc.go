// Package field builds proxy classes that participate as typed fields in
// an external data-validation model. A field class is a plain proxy class
// plus a schema fragment describing the field's external representation.
// The fragment is derived by running the declared representation type
// through kin-openapi's schema generator via a throwaway single-field
// model, with explicit overrides merged on top. The class exposes exactly
// two hooks for the validation model: a validator that constructs a proxy
// instance from a raw value, and a schema contribution that merges the
// fragment into the model's overall schema document.
package field
