// Package compose turns a field template and the current answers into a text
// fragment. A template that references any unanswered placeholder yields an
// empty fragment: unanswered is the common case, not an error, so nothing is
// surfaced to the caller.
package compose

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-reportgen/pkg/listfmt"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/token"
)

var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Placeholder is one `{token}` occurrence inside a template.
type Placeholder struct {
	Raw   string
	Key   string
	Start int
	End   int
}

// Placeholders scans template left to right and returns every placeholder.
// A token runs from an opening brace to the next closing one, so "{a{zone}"
// yields the key of "a{zone". A brace never closed stays literal text.
func Placeholders(template string) []Placeholder {
	matches := placeholderPattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		raw := template[m[2]:m[3]]
		out = append(out, Placeholder{
			Raw:   raw,
			Key:   token.Normalize(raw),
			Start: m[0],
			End:   m[1],
		})
	}
	return out
}

// Field resolves field.Template against answers. It returns "" when any
// referenced answer is missing, "" or an empty selection.
func Field(field model.FieldDefinition, answers model.AnswerMap) string {
	template := field.Template
	placeholders := Placeholders(template)
	if len(placeholders) == 0 {
		return template
	}

	values := make([]string, len(placeholders))
	for i, ph := range placeholders {
		answer, ok := answers[ph.Key]
		if !ok || ph.Key == "" || answer.IsEmpty() {
			return ""
		}
		values[i] = render(answer)
	}

	var b strings.Builder
	b.Grow(len(template))
	last := 0
	for i, ph := range placeholders {
		b.WriteString(template[last:ph.Start])
		b.WriteString(values[i])
		last = ph.End
	}
	b.WriteString(template[last:])
	return b.String()
}

// FieldSet concatenates the non-empty fragments of every field in order,
// joined by def.Separator.
func FieldSet(def model.FieldSetDefinition, answers model.AnswerMap) string {
	fragments := Fragments(def, answers)
	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if fragment != "" {
			parts = append(parts, fragment)
		}
	}
	return strings.Join(parts, def.Separator)
}

// Fragments returns the fragment of every field, empty ones included, aligned
// with def.Fields.
func Fragments(def model.FieldSetDefinition, answers model.AnswerMap) []string {
	out := make([]string, len(def.Fields))
	for i, field := range def.Fields {
		out[i] = Field(field, answers)
	}
	return out
}

func render(answer model.AnswerValue) string {
	if answer.IsMulti() {
		return listfmt.Format(answer.Values())
	}
	return answer.String()
}
