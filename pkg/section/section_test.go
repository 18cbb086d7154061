package section_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/section"
)

func woundDefinition() model.FieldSetDefinition {
	return model.FieldSetDefinition{
		ID:    "plaie",
		Title: "Plaie",
		Fields: []model.FieldDefinition{
			{Category: "Zone", Kind: model.FieldKindSingle, Options: []string{"bras", "jambe"}, Template: "Plaie au {zone}. "},
			{Category: "Soins", Kind: model.FieldKindMulti, Options: []string{"désinfection", "suture", "pansement"}, Template: "Soins : {soins}. "},
			{Category: "Points", Kind: model.FieldKindNumeric, Template: "{points} points."},
		},
	}
}

func TestNewSectionIsEmptyAuto(t *testing.T) {
	s := section.New(woundDefinition())

	if s.Mode() != section.ModeAuto {
		t.Fatalf("expected auto mode, got %q", s.Mode())
	}
	if s.Text() != "" || s.ComputedText() != "" {
		t.Fatalf("expected empty texts, got %q / %q", s.Text(), s.ComputedText())
	}
	want := model.AnswerMap{"zone": model.Text(""), "soins": model.Items(), "points": model.Text("")}
	if diff := cmp.Diff(want, s.Answers(), cmp.AllowUnexported(model.AnswerValue{})); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestAnswerChangeRecomputesText(t *testing.T) {
	s := section.New(woundDefinition())

	if err := s.Apply(section.AnswerChanged{Key: "Zone", Value: model.Text("bras")}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := s.Apply(section.OptionToggled{Key: "soins", Option: "suture"}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.Apply(section.OptionToggled{Key: "soins", Option: "désinfection"}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	want := "Plaie au bras. Soins : suture et désinfection. "
	if got := s.Text(); got != want {
		t.Fatalf("text mismatch: want %q, got %q", want, got)
	}
	if s.Mode() != section.ModeAuto {
		t.Fatalf("expected auto mode, got %q", s.Mode())
	}
}

func TestManualEditSurvivesUntilNextAnswer(t *testing.T) {
	s := section.New(woundDefinition())
	if err := s.SetAnswer("zone", model.Text("bras")); err != nil {
		t.Fatalf("set answer: %v", err)
	}

	s.Apply(section.UserEdited{Text: "Plaie superficielle au bras."})
	if s.Mode() != section.ModeManual {
		t.Fatalf("expected manual mode, got %q", s.Mode())
	}
	if got := s.Text(); got != "Plaie superficielle au bras." {
		t.Fatalf("unexpected visible text %q", got)
	}
	if got := s.ComputedText(); got != "Plaie au bras. " {
		t.Fatalf("unexpected computed text %q", got)
	}

	if err := s.SetAnswer("points", model.Text("4")); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	if s.Mode() != section.ModeAuto {
		t.Fatalf("expected answer change to restore auto mode, got %q", s.Mode())
	}
	if got, want := s.Text(), "Plaie au bras. 4 points."; got != want {
		t.Fatalf("text mismatch: want %q, got %q", want, got)
	}
}

func TestEditToEmptyStringIsKept(t *testing.T) {
	s := section.New(woundDefinition())
	if err := s.SetAnswer("zone", model.Text("jambe")); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	s.Edit("")
	if s.Mode() != section.ModeManual || s.Text() != "" {
		t.Fatalf("expected empty manual text, got %q (%s)", s.Text(), s.Mode())
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := section.New(woundDefinition())
	if err := s.SetAnswer("zone", model.Text("jambe")); err != nil {
		t.Fatalf("set answer: %v", err)
	}
	s.Edit("texte libre")

	if err := s.Apply(section.Reset{}); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.Mode() != section.ModeAuto || s.Text() != "" || s.ComputedText() != "" {
		t.Fatalf("expected pristine section, got %q / %q (%s)", s.Text(), s.ComputedText(), s.Mode())
	}
	if value, _ := s.Answer("zone"); !value.IsEmpty() {
		t.Fatalf("expected zone answer cleared, got %q", value.String())
	}
}

func TestRejectedAnswersLeaveStateUntouched(t *testing.T) {
	cases := []struct {
		name string
		ev   section.Event
		want error
	}{
		{name: "unknown field", ev: section.AnswerChanged{Key: "couleur", Value: model.Text("rouge")}, want: section.ErrUnknownField},
		{name: "option not offered", ev: section.AnswerChanged{Key: "zone", Value: model.Text("tête")}, want: section.ErrInvalidOption},
		{name: "selection item not offered", ev: section.AnswerChanged{Key: "soins", Value: model.Items("plâtre")}, want: section.ErrInvalidOption},
		{name: "toggle option not offered", ev: section.OptionToggled{Key: "soins", Option: "plâtre"}, want: section.ErrInvalidOption},
		{name: "toggle on radio", ev: section.OptionToggled{Key: "zone", Option: "bras"}, want: section.ErrKindMismatch},
		{name: "text on checkbox", ev: section.AnswerChanged{Key: "soins", Value: model.Text("suture")}, want: section.ErrKindMismatch},
		{name: "not a number", ev: section.AnswerChanged{Key: "points", Value: model.Text("quatre")}, want: section.ErrInvalidNumber},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := section.New(woundDefinition())
			if err := s.SetAnswer("zone", model.Text("bras")); err != nil {
				t.Fatalf("set answer: %v", err)
			}
			s.Edit("manuel")

			err := s.Apply(tc.ev)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if s.Mode() != section.ModeManual || s.Text() != "manuel" {
				t.Fatalf("state changed after rejected event: %q (%s)", s.Text(), s.Mode())
			}
			if value, _ := s.Answer("zone"); value.String() != "bras" {
				t.Fatalf("zone answer changed to %q", value.String())
			}
		})
	}
}

func TestNumericAnswersAcceptDecimalsAndEmpty(t *testing.T) {
	s := section.New(woundDefinition())
	for _, value := range []string{"4", "2.5", "2,5", ""} {
		if err := s.SetAnswer("points", model.Text(value)); err != nil {
			t.Fatalf("value %q rejected: %v", value, err)
		}
	}
}

func TestOverrideInvariant(t *testing.T) {
	var cell section.Override

	cell.Sync("a")
	if cell.Text() != "a" || cell.Mode() != section.ModeAuto {
		t.Fatalf("sync in auto should show computed text, got %q (%s)", cell.Text(), cell.Mode())
	}

	cell.Edit("manuel")
	cell.Sync("b")
	if cell.Text() != "manuel" || cell.Computed() != "b" {
		t.Fatalf("sync in manual should keep user text, got %q / %q", cell.Text(), cell.Computed())
	}

	cell.Reassert("c")
	if cell.Text() != "c" || cell.Computed() != "c" || cell.Mode() != section.ModeAuto {
		t.Fatalf("reassert should return to auto, got %q / %q (%s)", cell.Text(), cell.Computed(), cell.Mode())
	}
}
