// Package catalog exposes the read-only set of field-set definitions an
// operator can pick from.
//
// Raw payloads (JSON or YAML) enter through Parse, which validates every entry
// and quarantines the ones it cannot turn into a model.FieldSetDefinition.
// Downstream code only ever sees typed definitions through a Reader.
package catalog
