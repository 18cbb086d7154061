package assist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// DefaultSkipLabel closes every skippable choice list.
const DefaultSkipLabel = "(passer)"

// ChoiceConfig describes a pick among Options. With Skippable set the list
// ends with SkipLabel and choosing it yields -1. Default is an index into
// Options; -1 preselects the skip entry.
type ChoiceConfig struct {
	Message   string
	Options   []string
	Default   int
	Skippable bool
	SkipLabel string
}

func (c ChoiceConfig) skipLabel() string {
	if c.SkipLabel == "" {
		return DefaultSkipLabel
	}
	return c.SkipLabel
}

// entries returns the labels shown to the operator.
func (c ChoiceConfig) entries() []string {
	out := append([]string(nil), c.Options...)
	if c.Skippable {
		out = append(out, c.skipLabel())
	}
	return out
}

// resolve maps the label picked back to an index into Options, -1 for skip
// or an unknown label.
func (c ChoiceConfig) resolve(label string) int {
	for i, option := range c.Options {
		if option == label {
			return i
		}
	}
	return -1
}

// SelectionConfig describes a checkbox question. Selected indexes Options.
type SelectionConfig struct {
	Message  string
	Options  []string
	Selected []int
}

// NumberConfig describes a numeric question. Drivers reject anything
// validateNumber refuses.
type NumberConfig struct {
	Message string
	Default string
}

// ReviewConfig shows Text and offers to rewrite it.
type ReviewConfig struct {
	Title    string
	Text     string
	Question string
}

// PromptDriver is the terminal surface the runner talks to.
type PromptDriver interface {
	Heading(ctx context.Context, title string) error
	Choose(ctx context.Context, cfg ChoiceConfig) (int, error)
	ChooseMany(ctx context.Context, cfg SelectionConfig) ([]int, error)
	Number(ctx context.Context, cfg NumberConfig) (string, error)
	// Review returns the rewritten text and true, or ("", false) when the
	// operator keeps the text as is.
	Review(ctx context.Context, cfg ReviewConfig) (string, bool, error)
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver returns a PromptDriver on the current terminal. Headings
// and reviewed texts go to out (stdout when nil).
func NewSurveyDriver(out io.Writer, opts ...survey.AskOpt) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out, opts: opts}
}

func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, response any, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(prompt, response, append(append([]survey.AskOpt(nil), d.opts...), opts...)...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d *surveyDriver) Heading(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(d.out, "\n== %s ==\n", title)
	return err
}

func (d *surveyDriver) Choose(ctx context.Context, cfg ChoiceConfig) (int, error) {
	entries := cfg.entries()
	if len(entries) == 0 {
		return -1, nil
	}
	prompt := &survey.Select{Message: cfg.Message, Options: entries}
	switch {
	case cfg.Default >= 0 && cfg.Default < len(cfg.Options):
		prompt.Default = cfg.Options[cfg.Default]
	case cfg.Skippable:
		prompt.Default = cfg.skipLabel()
	}

	var picked string
	if err := d.ask(ctx, prompt, &picked); err != nil {
		return -1, err
	}
	return cfg.resolve(picked), nil
}

func (d *surveyDriver) ChooseMany(ctx context.Context, cfg SelectionConfig) ([]int, error) {
	prompt := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options}
	var defaults []string
	for _, idx := range cfg.Selected {
		if idx >= 0 && idx < len(cfg.Options) {
			defaults = append(defaults, cfg.Options[idx])
		}
	}
	if len(defaults) > 0 {
		prompt.Default = defaults
	}

	var picked []string
	if err := d.ask(ctx, prompt, &picked); err != nil {
		return nil, err
	}
	chosen := make(map[string]struct{}, len(picked))
	for _, label := range picked {
		chosen[label] = struct{}{}
	}
	out := make([]int, 0, len(picked))
	for i, option := range cfg.Options {
		if _, ok := chosen[option]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (d *surveyDriver) Number(ctx context.Context, cfg NumberConfig) (string, error) {
	var value string
	prompt := &survey.Input{Message: cfg.Message, Default: cfg.Default}
	validator := survey.WithValidator(func(ans any) error {
		s, _ := ans.(string)
		return validateNumber(s)
	})
	if err := d.ask(ctx, prompt, &value, validator); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (d *surveyDriver) Review(ctx context.Context, cfg ReviewConfig) (string, bool, error) {
	if _, err := fmt.Fprintf(d.out, "\n%s\n\n", cfg.Text); err != nil {
		return "", false, err
	}
	var edit bool
	if err := d.ask(ctx, &survey.Confirm{Message: cfg.Question}, &edit); err != nil || !edit {
		return "", false, err
	}
	var text string
	if err := d.ask(ctx, &survey.Multiline{Message: cfg.Title, Default: cfg.Text}, &text); err != nil {
		return "", false, err
	}
	return text, true, nil
}
