// Package assist walks an operator through a report in the terminal: the
// fixed lead section, any number of catalog forms, the fixed trail section,
// and a final chance to rewrite the report.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/session"
)

const finishOption = "Terminer"

// Runner drives one interactive session.
type Runner struct {
	driver   PromptDriver
	reader   catalog.Reader
	logger   *zap.Logger
	sessions []session.Option
}

// Option configures a Runner.
type Option func(*Runner)

// WithDriver replaces the survey driver.
func WithDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSessionOptions forwards opts to the session the runner creates.
func WithSessionOptions(opts ...session.Option) Option {
	return func(r *Runner) {
		r.sessions = append(r.sessions, opts...)
	}
}

// New creates a Runner over reader.
func New(reader catalog.Reader, opts ...Option) (*Runner, error) {
	if reader == nil {
		return nil, errors.New("assist: catalog reader is required")
	}
	r := &Runner{reader: reader, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Run asks every question and returns the final session snapshot.
func (r *Runner) Run(ctx context.Context) (session.View, error) {
	s := session.New(r.reader, append([]session.Option{session.WithLogger(r.logger)}, r.sessions...)...)

	if err := r.fill(ctx, s, session.TargetLead); err != nil {
		return session.View{}, err
	}
	if err := r.addInstances(ctx, s); err != nil {
		return session.View{}, err
	}
	if err := r.fill(ctx, s, session.TargetTrail); err != nil {
		return session.View{}, err
	}
	if err := r.reviewReport(ctx, s); err != nil {
		return session.View{}, err
	}
	return s.View(), nil
}

func (r *Runner) addInstances(ctx context.Context, s *session.Session) error {
	defs, err := r.reader.List(ctx)
	if err != nil {
		return fmt.Errorf("assist: list catalog: %w", err)
	}
	if len(defs) == 0 {
		return nil
	}

	titles := make([]string, 0, len(defs))
	for _, def := range defs {
		titles = append(titles, def.Title)
	}

	for {
		idx, err := r.driver.Choose(ctx, ChoiceConfig{
			Message:   "Ajouter une blessure",
			Options:   titles,
			Default:   -1,
			Skippable: true,
			SkipLabel: finishOption,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(defs) {
			return nil
		}

		key, err := s.AddInstance(ctx, defs[idx].ID)
		if err != nil {
			return err
		}
		r.logger.Debug("instance added", zap.String("definition", defs[idx].ID), zap.String("key", key))
		if err := r.fill(ctx, s, key); err != nil {
			return err
		}
	}
}

func (r *Runner) fill(ctx context.Context, s *session.Session, target string) error {
	sec, err := s.Section(target)
	if err != nil {
		return err
	}
	def := sec.Definition()
	if err := r.driver.Heading(ctx, def.Title); err != nil {
		return err
	}

	for _, field := range def.Fields {
		if err := r.ask(ctx, s, target, field); err != nil {
			return err
		}
	}

	text := sec.Text()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	edited, ok, err := r.driver.Review(ctx, ReviewConfig{Title: def.Title, Text: text, Question: "Modifier ce texte ?"})
	if err != nil || !ok {
		return err
	}
	s.EditSection(target, edited)
	return nil
}

func (r *Runner) ask(ctx context.Context, s *session.Session, target string, field model.FieldDefinition) error {
	sec, err := s.Section(target)
	if err != nil {
		return err
	}
	current, _ := sec.Answer(field.Key())

	switch field.Kind {
	case model.FieldKindSingle:
		option, ok, err := AskChoice(ctx, r.driver, field, current)
		if err != nil || !ok {
			return err
		}
		_, err = s.Answer(target, field.Key(), model.Text(option))
		return err

	case model.FieldKindMulti:
		toggles, err := AskSelection(ctx, r.driver, field, current)
		if err != nil {
			return err
		}
		for _, option := range toggles {
			if _, err := s.Toggle(target, field.Key(), option); err != nil {
				return err
			}
		}
		return nil

	case model.FieldKindNumeric:
		value, err := AskNumber(ctx, r.driver, field, current)
		if err != nil {
			return err
		}
		_, err = s.Answer(target, field.Key(), model.Text(value))
		return err
	}
	return nil
}

func (r *Runner) reviewReport(ctx context.Context, s *session.Session) error {
	edited, ok, err := r.driver.Review(ctx, ReviewConfig{Title: "Rendu", Text: s.Report(), Question: "Modifier le rendu ?"})
	if err != nil || !ok {
		return err
	}
	s.EditReport(edited)
	return nil
}
