package model

import (
	"github.com/goliatone/go-reportgen/pkg/token"
)

// FieldKind enumerates the supported question kinds. Values match the catalog
// wire format.
type FieldKind string

const (
	FieldKindSingle  FieldKind = "radio"
	FieldKindMulti   FieldKind = "checkbox"
	FieldKindNumeric FieldKind = "number"
)

// Valid reports whether k is one of the known kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindSingle, FieldKindMulti, FieldKindNumeric:
		return true
	default:
		return false
	}
}

// IsChoice reports whether the kind presents a list of options.
func (k FieldKind) IsChoice() bool {
	return k == FieldKindSingle || k == FieldKindMulti
}

// FieldDefinition describes one question and the sentence template it feeds.
type FieldDefinition struct {
	Category string    `json:"category"`
	Kind     FieldKind `json:"type"`
	Options  []string  `json:"forms,omitempty"`
	Template string    `json:"text"`
	// Layout is a presentation hint carried through untouched.
	Layout string `json:"classname,omitempty"`
}

// Key returns the answer key derived from the category.
func (f FieldDefinition) Key() string {
	return token.Normalize(f.Category)
}

// HasOption reports whether option is one of the declared options.
func (f FieldDefinition) HasOption(option string) bool {
	for _, candidate := range f.Options {
		if candidate == option {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the field.
func (f FieldDefinition) Clone() FieldDefinition {
	f.Options = append([]string(nil), f.Options...)
	return f
}

// FieldSetDefinition is one choosable question set. Fragments produced by its
// fields are joined with Separator (empty by default).
type FieldSetDefinition struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Fields    []FieldDefinition `json:"body"`
	Separator string            `json:"separator,omitempty"`
	Layout    string            `json:"classname,omitempty"`
}

// Field looks up a field by category or key.
func (d FieldSetDefinition) Field(categoryOrKey string) (FieldDefinition, bool) {
	key := token.Normalize(categoryOrKey)
	for _, field := range d.Fields {
		if field.Key() == key {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// Keys returns the answer keys in field order.
func (d FieldSetDefinition) Keys() []string {
	keys := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		keys = append(keys, field.Key())
	}
	return keys
}

// Clone returns a deep copy of the definition.
func (d FieldSetDefinition) Clone() FieldSetDefinition {
	fields := make([]FieldDefinition, 0, len(d.Fields))
	for _, field := range d.Fields {
		fields = append(fields, field.Clone())
	}
	d.Fields = fields
	return d
}
