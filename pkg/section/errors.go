package section

import "errors"

var (
	// ErrUnknownField is returned when an answer targets a key the section
	// definition does not declare.
	ErrUnknownField = errors.New("section: unknown field")
	// ErrInvalidOption is returned when a choice answer is not among the
	// field options.
	ErrInvalidOption = errors.New("section: option not offered by field")
	// ErrInvalidNumber is returned when a numeric answer does not parse.
	ErrInvalidNumber = errors.New("section: value is not a number")
	// ErrKindMismatch is returned when a selection is sent to a single-valued
	// field or the reverse.
	ErrKindMismatch = errors.New("section: answer shape does not match field kind")
)
