package assist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-reportgen/pkg/model"
)

// AskChoice asks a radio field. The current answer is preselected, the skip
// entry otherwise. ok is false when the operator skips.
func AskChoice(ctx context.Context, d PromptDriver, field model.FieldDefinition, current model.AnswerValue) (option string, ok bool, err error) {
	cfg := ChoiceConfig{
		Message:   field.Category,
		Options:   field.Options,
		Skippable: true,
	}
	cfg.Default = cfg.resolve(current.String())

	idx, err := d.Choose(ctx, cfg)
	if err != nil {
		return "", false, err
	}
	if idx < 0 || idx >= len(field.Options) {
		return "", false, nil
	}
	return field.Options[idx], true, nil
}

// AskSelection asks a checkbox field and returns the toggles that turn
// current into the operator's picks.
func AskSelection(ctx context.Context, d PromptDriver, field model.FieldDefinition, current model.AnswerValue) ([]string, error) {
	picked, err := d.ChooseMany(ctx, SelectionConfig{
		Message:  field.Category,
		Options:  field.Options,
		Selected: selectedIndices(field.Options, current),
	})
	if err != nil {
		return nil, err
	}
	return selectionToggles(field.Options, current, picked), nil
}

// AskNumber asks a numeric field, prefilled with the current answer.
func AskNumber(ctx context.Context, d PromptDriver, field model.FieldDefinition, current model.AnswerValue) (string, error) {
	value, err := d.Number(ctx, NumberConfig{Message: field.Category, Default: current.String()})
	if err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if err := validateNumber(value); err != nil {
		return "", err
	}
	return value, nil
}

func selectedIndices(options []string, current model.AnswerValue) []int {
	var out []int
	for i, option := range options {
		if current.Contains(option) {
			out = append(out, i)
		}
	}
	return out
}

// selectionToggles returns the toggles that turn current into picked. Items
// still selected keep their position; new items are appended in option order.
func selectionToggles(options []string, current model.AnswerValue, picked []int) []string {
	wanted := make(map[string]struct{}, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(options) {
			wanted[options[idx]] = struct{}{}
		}
	}

	var toggles []string
	for _, item := range current.Values() {
		if _, keep := wanted[item]; !keep {
			toggles = append(toggles, item)
		}
	}
	for _, idx := range picked {
		if idx < 0 || idx >= len(options) {
			continue
		}
		if !current.Contains(options[idx]) {
			toggles = append(toggles, options[idx])
		}
	}
	return toggles
}

func validateNumber(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", "."), 64); err != nil {
		return fmt.Errorf("%q n'est pas un nombre", value)
	}
	return nil
}
