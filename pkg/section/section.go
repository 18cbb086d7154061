// Package section implements the per-section AUTO/MANUAL state machine.
//
// A section starts in ModeAuto with empty answers and empty text. Any answer
// change recomputes the section text from its definition and forces ModeAuto,
// discarding a previous manual edit. A direct edit switches to ModeManual; the
// computed text keeps tracking answers in the background but is not shown
// until the next answer change.
package section

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-reportgen/pkg/compose"
	"github.com/goliatone/go-reportgen/pkg/model"
)

// Section owns the answers and texts of one rendered block.
type Section struct {
	definition model.FieldSetDefinition
	answers    model.AnswerMap
	text       Override
}

// New creates a section in ModeAuto with empty answers for def.
func New(def model.FieldSetDefinition) *Section {
	s := &Section{definition: def.Clone()}
	s.Reset()
	return s
}

// Apply dispatches ev. Rejected answer events leave the section untouched.
func (s *Section) Apply(ev Event) error {
	if ev == nil {
		return nil
	}
	return ev.apply(s)
}

// SetAnswer validates and stores value under key, then regenerates the text.
func (s *Section) SetAnswer(key string, value model.AnswerValue) error {
	field, ok := s.definition.Field(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if err := validate(field, value); err != nil {
		return err
	}
	s.answers[field.Key()] = value
	s.recompute()
	return nil
}

// Toggle flips option in a checkbox field, then regenerates the text.
func (s *Section) Toggle(key, option string) error {
	field, ok := s.definition.Field(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if field.Kind != model.FieldKindMulti {
		return fmt.Errorf("%w: %q is not a checkbox field", ErrKindMismatch, field.Category)
	}
	if !field.HasOption(option) {
		return fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}
	s.answers.Toggle(field.Key(), option)
	s.recompute()
	return nil
}

// Edit freezes the visible text at text. Edits are never rejected.
func (s *Section) Edit(text string) {
	s.text.Edit(text)
}

// Reset restores empty answers, empty texts and ModeAuto.
func (s *Section) Reset() {
	s.answers = model.InitialAnswers(s.definition)
	s.text.Reset()
}

// Text returns the visible text.
func (s *Section) Text() string {
	return s.text.Text()
}

// ComputedText returns the text derived from the current answers.
func (s *Section) ComputedText() string {
	return s.text.Computed()
}

// Mode returns the current mode.
func (s *Section) Mode() Mode {
	return s.text.Mode()
}

// Definition returns a copy of the section definition.
func (s *Section) Definition() model.FieldSetDefinition {
	return s.definition.Clone()
}

// Answers returns a copy of the current answers.
func (s *Section) Answers() model.AnswerMap {
	return s.answers.Clone()
}

// Answer returns the answer stored for key.
func (s *Section) Answer(key string) (model.AnswerValue, bool) {
	return s.answers.Get(key)
}

func (s *Section) recompute() {
	s.text.Reassert(compose.FieldSet(s.definition, s.answers))
}

func validate(field model.FieldDefinition, value model.AnswerValue) error {
	switch field.Kind {
	case model.FieldKindMulti:
		if !value.IsMulti() {
			return fmt.Errorf("%w: %q expects a selection", ErrKindMismatch, field.Category)
		}
		for _, item := range value.Values() {
			if !field.HasOption(item) {
				return fmt.Errorf("%w: %q", ErrInvalidOption, item)
			}
		}
	case model.FieldKindSingle:
		if value.IsMulti() {
			return fmt.Errorf("%w: %q expects a single value", ErrKindMismatch, field.Category)
		}
		if !value.IsEmpty() && !field.HasOption(value.String()) {
			return fmt.Errorf("%w: %q", ErrInvalidOption, value.String())
		}
	case model.FieldKindNumeric:
		if value.IsMulti() {
			return fmt.Errorf("%w: %q expects a single value", ErrKindMismatch, field.Category)
		}
		raw := strings.TrimSpace(value.String())
		if raw == "" {
			return nil
		}
		if _, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidNumber, value.String())
		}
	}
	return nil
}
