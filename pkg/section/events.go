package section

import "github.com/goliatone/go-reportgen/pkg/model"

// Event is an operator action applied to a single section.
type Event interface {
	apply(*Section) error
}

// AnswerChanged replaces the answer stored for Key (a category or its
// normalised key).
type AnswerChanged struct {
	Key   string
	Value model.AnswerValue
}

func (e AnswerChanged) apply(s *Section) error {
	return s.SetAnswer(e.Key, e.Value)
}

// OptionToggled flips one option of a checkbox field, keeping the order in
// which options were selected.
type OptionToggled struct {
	Key    string
	Option string
}

func (e OptionToggled) apply(s *Section) error {
	return s.Toggle(e.Key, e.Option)
}

// UserEdited replaces the visible text with operator-authored text.
type UserEdited struct {
	Text string
}

func (e UserEdited) apply(s *Section) error {
	s.Edit(e.Text)
	return nil
}

// Reset discards answers and texts.
type Reset struct{}

func (Reset) apply(s *Section) error {
	s.Reset()
	return nil
}
