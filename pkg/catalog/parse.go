package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reportgen/pkg/model"
)

// ErrEmptyPayload is returned when Parse receives no bytes.
var ErrEmptyPayload = errors.New("catalog: payload is empty")

// RawField is the wire shape of one question.
type RawField struct {
	Category  string   `json:"category" yaml:"category" validate:"required"`
	Type      string   `json:"type" yaml:"type" validate:"required,oneof=radio checkbox number"`
	Forms     []string `json:"forms,omitempty" yaml:"forms,omitempty" validate:"required_unless=Type number,dive,required"`
	Text      string   `json:"text" yaml:"text" validate:"required"`
	ClassName string   `json:"classname,omitempty" yaml:"classname,omitempty"`
}

// RawFieldSet is the wire shape of one catalog entry.
type RawFieldSet struct {
	ID        string     `json:"id" yaml:"id" validate:"required"`
	Title     string     `json:"title" yaml:"title" validate:"required"`
	ClassName string     `json:"classname,omitempty" yaml:"classname,omitempty"`
	Separator string     `json:"separator,omitempty" yaml:"separator,omitempty"`
	Body      []RawField `json:"body" yaml:"body" validate:"required,min=1,dive"`
}

// Rejection records why an entry was left out of the catalog.
type Rejection struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// ParseResult holds the accepted definitions in payload order and the
// quarantined entries.
type ParseResult struct {
	Definitions []model.FieldSetDefinition
	Quarantined []Rejection
}

var rawValidator = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes a JSON or YAML list of entries. Malformed entries are
// quarantined; only an undecodable payload is an error.
func Parse(data []byte) (ParseResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ParseResult{}, ErrEmptyPayload
	}

	var entries []RawFieldSet
	if looksLikeJSON(data) {
		if err := json.Unmarshal(data, &entries); err != nil {
			return ParseResult{}, fmt.Errorf("catalog: decode json payload: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &entries); err != nil {
		return ParseResult{}, fmt.Errorf("catalog: decode yaml payload: %w", err)
	}
	return ParseEntries(entries), nil
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{')
}

// ParseEntries validates already-decoded entries.
func ParseEntries(entries []RawFieldSet) ParseResult {
	result := ParseResult{Definitions: make([]model.FieldSetDefinition, 0, len(entries))}
	seen := make(map[string]struct{}, len(entries))

	for index, entry := range entries {
		def, err := Convert(entry)
		if err == nil {
			if _, dup := seen[def.ID]; dup {
				err = fmt.Errorf("duplicate id %q", def.ID)
			}
		}
		if err != nil {
			result.Quarantined = append(result.Quarantined, Rejection{Index: index, ID: entry.ID, Reason: err.Error()})
			continue
		}
		seen[def.ID] = struct{}{}
		result.Definitions = append(result.Definitions, def)
	}
	return result
}

// Convert validates a single entry and returns its typed definition.
func Convert(entry RawFieldSet) (model.FieldSetDefinition, error) {
	if err := rawValidator.Struct(entry); err != nil {
		return model.FieldSetDefinition{}, describeValidation(err)
	}

	def := model.FieldSetDefinition{
		ID:        entry.ID,
		Title:     entry.Title,
		Separator: entry.Separator,
		Layout:    entry.ClassName,
		Fields:    make([]model.FieldDefinition, 0, len(entry.Body)),
	}
	keys := make(map[string]struct{}, len(entry.Body))
	for _, raw := range entry.Body {
		field := model.FieldDefinition{
			Category: raw.Category,
			Kind:     model.FieldKind(raw.Type),
			Options:  append([]string(nil), raw.Forms...),
			Template: raw.Text,
			Layout:   raw.ClassName,
		}
		key := field.Key()
		if key == "" {
			return model.FieldSetDefinition{}, fmt.Errorf("category %q has no usable key", raw.Category)
		}
		if _, dup := keys[key]; dup {
			return model.FieldSetDefinition{}, fmt.Errorf("category %q collides with another field", raw.Category)
		}
		keys[key] = struct{}{}
		if err := checkOptions(field); err != nil {
			return model.FieldSetDefinition{}, err
		}
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

func checkOptions(field model.FieldDefinition) error {
	if !field.Kind.IsChoice() {
		return nil
	}
	if len(field.Options) == 0 {
		return fmt.Errorf("category %q offers no options", field.Category)
	}
	seen := make(map[string]struct{}, len(field.Options))
	for _, option := range field.Options {
		if _, dup := seen[option]; dup {
			return fmt.Errorf("category %q repeats option %q", field.Category, option)
		}
		seen[option] = struct{}{}
	}
	return nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}

// RawFromDefinition returns the wire shape of def.
func RawFromDefinition(def model.FieldSetDefinition) RawFieldSet {
	raw := RawFieldSet{
		ID:        def.ID,
		Title:     def.Title,
		ClassName: def.Layout,
		Separator: def.Separator,
		Body:      make([]RawField, 0, len(def.Fields)),
	}
	for _, field := range def.Fields {
		raw.Body = append(raw.Body, RawField{
			Category:  field.Category,
			Type:      string(field.Kind),
			Forms:     append([]string(nil), field.Options...),
			Text:      field.Template,
			ClassName: field.Layout,
		})
	}
	return raw
}
