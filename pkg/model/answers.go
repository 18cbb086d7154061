package model

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-reportgen/pkg/token"
)

// AnswerValue holds either a single string (radio and number fields) or an
// ordered selection (checkbox fields). The zero value is an empty text answer.
type AnswerValue struct {
	text  string
	items []string
	multi bool
}

// Text builds a single-valued answer.
func Text(value string) AnswerValue {
	return AnswerValue{text: value}
}

// Items builds a multi-valued answer. The order of items is kept as given.
func Items(items ...string) AnswerValue {
	return AnswerValue{items: append([]string{}, items...), multi: true}
}

// EmptyFor returns the empty answer matching kind.
func EmptyFor(kind FieldKind) AnswerValue {
	if kind == FieldKindMulti {
		return Items()
	}
	return Text("")
}

// IsMulti reports whether the value is a selection.
func (v AnswerValue) IsMulti() bool {
	return v.multi
}

// IsEmpty reports whether the value is "" or an empty selection.
func (v AnswerValue) IsEmpty() bool {
	if v.multi {
		return len(v.items) == 0
	}
	return v.text == ""
}

// String returns the text of a single-valued answer, "" for selections.
func (v AnswerValue) String() string {
	return v.text
}

// Values returns a copy of the selection, nil for single-valued answers.
func (v AnswerValue) Values() []string {
	if !v.multi {
		return nil
	}
	return append([]string{}, v.items...)
}

// Contains reports whether option is selected.
func (v AnswerValue) Contains(option string) bool {
	for _, item := range v.items {
		if item == option {
			return true
		}
	}
	return false
}

// Toggle returns a copy of the selection with option appended when absent or
// removed when present.
func (v AnswerValue) Toggle(option string) AnswerValue {
	next := make([]string, 0, len(v.items)+1)
	found := false
	for _, item := range v.items {
		if item == option {
			found = true
			continue
		}
		next = append(next, item)
	}
	if !found {
		next = append(next, option)
	}
	return AnswerValue{items: next, multi: true}
}

// MarshalJSON encodes text answers as strings and selections as arrays.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.multi {
		return json.Marshal(v.Values())
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts a string, a number, an array of strings, or null.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch typed := raw.(type) {
	case nil:
		*v = Text("")
	case string:
		*v = Text(typed)
	case float64:
		*v = Text(string(data))
	case []any:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("model: answer items must be strings, got %T", item)
			}
			items = append(items, s)
		}
		*v = Items(items...)
	default:
		return fmt.Errorf("model: unsupported answer payload %T", raw)
	}
	return nil
}

// AnswerMap maps normalised category keys to answers. A missing key is
// equivalent to an empty answer.
type AnswerMap map[string]AnswerValue

// InitialAnswers seeds an empty answer for every field of def.
func InitialAnswers(def FieldSetDefinition) AnswerMap {
	answers := make(AnswerMap, len(def.Fields))
	for _, field := range def.Fields {
		answers[field.Key()] = EmptyFor(field.Kind)
	}
	return answers
}

// Get returns the answer stored under the normalised key.
func (m AnswerMap) Get(key string) (AnswerValue, bool) {
	value, ok := m[token.Normalize(key)]
	return value, ok
}

// Set stores value under the normalised key.
func (m AnswerMap) Set(key string, value AnswerValue) {
	m[token.Normalize(key)] = value
}

// Toggle flips option in the selection stored under key.
func (m AnswerMap) Toggle(key, option string) AnswerValue {
	normalized := token.Normalize(key)
	next := m[normalized].Toggle(option)
	m[normalized] = next
	return next
}

// Clone returns an independent copy of the map.
func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	for key, value := range m {
		if value.multi {
			value.items = append([]string{}, value.items...)
		}
		out[key] = value
	}
	return out
}
