// Package session is the operator workspace: a fixed lead section, the form
// instances added from the catalog, a fixed trail section, the intervention
// timeline and the composite report.
//
// Every mutating call re-derives the report before returning, so View always
// reflects the last event.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/registry"
	"github.com/goliatone/go-reportgen/pkg/report"
	"github.com/goliatone/go-reportgen/pkg/section"
	"github.com/goliatone/go-reportgen/pkg/timeline"
)

// Session is not safe for concurrent use; Manager serialises access.
type Session struct {
	id       string
	created  time.Time
	logger   *zap.Logger
	lead     *section.Section
	trail    *section.Section
	registry *registry.Registry
	report   *report.Report
	timeline *timeline.Timeline
}

type settings struct {
	id       string
	lead     model.FieldSetDefinition
	trail    model.FieldSetDefinition
	logger   *zap.Logger
	clock    func() time.Time
	keys     registry.KeyGenerator
	timeline []string
}

// Option configures a Session.
type Option func(*settings)

func WithID(id string) Option {
	return func(s *settings) {
		if id != "" {
			s.id = id
		}
	}
}

// WithLead replaces the fixed lead section.
func WithLead(def model.FieldSetDefinition) Option {
	return func(s *settings) {
		s.lead = def
	}
}

// WithTrail replaces the fixed trail section.
func WithTrail(def model.FieldSetDefinition) Option {
	return func(s *settings) {
		s.trail = def
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used for timeline stamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithKeyGenerator sets the instance key source.
func WithKeyGenerator(gen registry.KeyGenerator) Option {
	return func(s *settings) {
		s.keys = gen
	}
}

// WithTimelineLabels replaces the default timeline milestones.
func WithTimelineLabels(labels ...string) Option {
	return func(s *settings) {
		s.timeline = append([]string(nil), labels...)
	}
}

// New creates an empty session that resolves instances through reader.
func New(reader catalog.Reader, opts ...Option) *Session {
	cfg := settings{
		id:       uuid.NewString(),
		lead:     LeadDefinition(),
		trail:    TrailDefinition(),
		logger:   zap.NewNop(),
		clock:    time.Now,
		timeline: timeline.DefaultLabels,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := cfg.logger.With(zap.String("session", cfg.id))
	s := &Session{
		id:       cfg.id,
		created:  cfg.clock(),
		logger:   logger,
		lead:     section.New(cfg.lead),
		trail:    section.New(cfg.trail),
		registry: registry.New(reader, registry.WithLogger(logger), registry.WithKeyGenerator(cfg.keys)),
		report:   report.New(),
		timeline: timeline.New(timeline.WithClock(cfg.clock), timeline.WithLabels(cfg.timeline...)),
	}
	s.refresh()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.created
}

// AddInstance appends a form instance of definitionID.
func (s *Session) AddInstance(ctx context.Context, definitionID string) (string, error) {
	key, err := s.registry.Add(ctx, definitionID)
	if err != nil {
		return "", err
	}
	s.refresh()
	return key, nil
}

// RemoveInstance drops the instance with key. Unknown keys report false.
func (s *Session) RemoveInstance(key string) bool {
	removed := s.registry.Remove(key)
	if removed {
		s.refresh()
	}
	return removed
}

// Apply routes ev to target ("lead", "trail" or an instance key) and reports
// whether the target exists. Unknown instance targets are ignored.
func (s *Session) Apply(target string, ev section.Event) (bool, error) {
	var (
		applied bool
		err     error
	)
	switch target {
	case TargetLead:
		applied, err = true, s.lead.Apply(ev)
	case TargetTrail:
		applied, err = true, s.trail.Apply(ev)
	default:
		applied, err = s.registry.Update(target, ev)
	}
	if applied {
		s.refresh()
	}
	return applied, err
}

// Answer replaces the answer of field in target.
func (s *Session) Answer(target, field string, value model.AnswerValue) (bool, error) {
	return s.Apply(target, section.AnswerChanged{Key: field, Value: value})
}

// Toggle flips option in a checkbox field of target.
func (s *Session) Toggle(target, field, option string) (bool, error) {
	return s.Apply(target, section.OptionToggled{Key: field, Option: option})
}

// EditSection freezes the text of target.
func (s *Session) EditSection(target, text string) bool {
	applied, _ := s.Apply(target, section.UserEdited{Text: text})
	return applied
}

// ResetSection clears answers and text of target.
func (s *Session) ResetSection(target string) bool {
	applied, _ := s.Apply(target, section.Reset{})
	return applied
}

// EditReport freezes the composite report.
func (s *Session) EditReport(text string) {
	s.report.Edit(text)
}

// SetTime stores value in timeline slot index.
func (s *Session) SetTime(index int, value string) error {
	return s.timeline.Set(index, value)
}

// StampTime fills timeline slot index with the current time.
func (s *Session) StampTime(index int) (string, error) {
	return s.timeline.Stamp(index)
}

// Report returns the visible composite report.
func (s *Session) Report() string {
	return s.report.Text()
}

// Section returns the section addressed by target.
func (s *Session) Section(target string) (*section.Section, error) {
	switch target {
	case TargetLead:
		return s.lead, nil
	case TargetTrail:
		return s.trail, nil
	}
	inst, err := s.registry.Get(target)
	if err != nil {
		return nil, err
	}
	return inst.Section, nil
}

func (s *Session) refresh() {
	instances := s.registry.Instances()
	sources := make([]report.Source, 0, len(instances))
	for _, inst := range instances {
		sources = append(sources, inst)
	}
	s.report.Refresh(s.lead.Text(), sources, s.trail.Text())
}
