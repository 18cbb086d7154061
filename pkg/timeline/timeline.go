// Package timeline holds the "Bloc horaires" time stamps of an intervention.
package timeline

import (
	"errors"
	"fmt"
	"time"
)

// ErrSlotOutOfRange is returned for slot indexes outside the timeline.
var ErrSlotOutOfRange = errors.New("timeline: slot out of range")

// StampLayout formats stamps as 14h05.
const StampLayout = "15h04"

// DefaultLabels are the intervention milestones, in order.
var DefaultLabels = []string{
	"Depart intervention",
	"Arrivee sur les lieux",
	"Transport hopital",
	"Arrivee hopital",
	"Fin intervention",
}

// Slot is one labelled time value.
type Slot struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Timeline is a fixed list of slots. Values are free text; Stamp fills a slot
// with the current clock time.
type Timeline struct {
	slots []Slot
	now   func() time.Time
}

// Option configures a Timeline.
type Option func(*Timeline)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Timeline) {
		if now != nil {
			t.now = now
		}
	}
}

// WithLabels replaces DefaultLabels.
func WithLabels(labels ...string) Option {
	return func(t *Timeline) {
		t.slots = make([]Slot, 0, len(labels))
		for _, label := range labels {
			t.slots = append(t.slots, Slot{Label: label})
		}
	}
}

// New creates a timeline with empty values.
func New(opts ...Option) *Timeline {
	t := &Timeline{now: time.Now}
	WithLabels(DefaultLabels...)(t)
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Set stores value in slot index.
func (t *Timeline) Set(index int, value string) error {
	if index < 0 || index >= len(t.slots) {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, index)
	}
	t.slots[index].Value = value
	return nil
}

// Stamp fills slot index with the current time and returns the stamp.
func (t *Timeline) Stamp(index int) (string, error) {
	stamp := t.now().Format(StampLayout)
	if err := t.Set(index, stamp); err != nil {
		return "", err
	}
	return stamp, nil
}

// Slots returns a copy of the slots.
func (t *Timeline) Slots() []Slot {
	return append([]Slot(nil), t.slots...)
}

// Len returns the number of slots.
func (t *Timeline) Len() int {
	return len(t.slots)
}
