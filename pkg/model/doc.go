// Package model defines the typed question-set model consumed by the
// composition engine. FieldSetDefinition values come from the read-only
// catalog and are never mutated by the engine; AnswerMap values belong to a
// single section and are mutated only through operator events. Answer keys
// are the normalised field categories (see pkg/token), so callers may address
// a field either by its display category or by its key.
package model
