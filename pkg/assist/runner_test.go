package assist

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/section"
	"github.com/goliatone/go-reportgen/pkg/testsupport"
)

type review struct {
	edit bool
	text string
}

type stubDriver struct {
	choices    []int
	selections [][]int
	numbers    []string
	reviews    []review

	headings   []string
	choiceCfgs []ChoiceConfig
	selectCfgs []SelectionConfig
	reviewCfgs []ReviewConfig
}

func (s *stubDriver) Heading(_ context.Context, title string) error {
	s.headings = append(s.headings, title)
	return nil
}

func (s *stubDriver) Choose(_ context.Context, cfg ChoiceConfig) (int, error) {
	if len(s.choices) == 0 {
		return -1, errors.New("no choice scripted")
	}
	s.choiceCfgs = append(s.choiceCfgs, cfg)
	val := s.choices[0]
	s.choices = s.choices[1:]
	return val, nil
}

func (s *stubDriver) ChooseMany(_ context.Context, cfg SelectionConfig) ([]int, error) {
	if len(s.selections) == 0 {
		return nil, errors.New("no selection scripted")
	}
	s.selectCfgs = append(s.selectCfgs, cfg)
	val := s.selections[0]
	s.selections = s.selections[1:]
	return val, nil
}

func (s *stubDriver) Number(_ context.Context, _ NumberConfig) (string, error) {
	if len(s.numbers) == 0 {
		return "", errors.New("no number scripted")
	}
	val := s.numbers[0]
	s.numbers = s.numbers[1:]
	return val, nil
}

func (s *stubDriver) Review(_ context.Context, cfg ReviewConfig) (string, bool, error) {
	if len(s.reviews) == 0 {
		return "", false, errors.New("no review scripted")
	}
	s.reviewCfgs = append(s.reviewCfgs, cfg)
	val := s.reviews[0]
	s.reviews = s.reviews[1:]
	return val.text, val.edit, nil
}

func TestRunComposesReport(t *testing.T) {
	driver := &stubDriver{
		// hopital, add plaie, zone, finish, depart skipped
		choices: []int{0, 0, 0, -1, -1},
		// soins, chambre, papiers
		selections: [][]int{{0, 2}, {}, {0}},
		numbers:    []string{"3"},
		// lead, plaie, trail, report
		reviews: []review{{}, {edit: true, text: "Plaie au bras, soins faits."}, {}, {}},
	}
	runner, err := New(testsupport.Reader(t), WithDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	view, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "Arrivé sur les lieux (appel dispatch) \n" +
		"Réanimation sur les lieux \n" +
		"Premier diagnostic de la douleur et de l’état du patient\n" +
		"Stabilisation de la victime puis évacuation vers Ocean Medical Center\n" +
		"Plaie au bras, soins faits.\n" +
		"Vérifications des constantes du patient\n" +
		"Transmission de l'ordonnance"
	if diff := cmp.Diff(want, view.Report.Text); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if len(view.Instances) != 1 || view.Instances[0].Mode != section.ModeManual {
		t.Fatalf("expected one manual instance, got %+v", view.Instances)
	}
	if view.Instances[0].Computed != "Plaie au bras. Soins : désinfection et pansement. 3 points de suture." {
		t.Fatalf("unexpected computed text %q", view.Instances[0].Computed)
	}
	if len(driver.choices) != 0 || len(driver.reviews) != 0 || len(driver.selections) != 0 {
		t.Fatalf("script not fully consumed: %d choices, %d reviews, %d selections left",
			len(driver.choices), len(driver.reviews), len(driver.selections))
	}
	if diff := cmp.Diff([]string{"Hopital", "Plaie", "Sortie"}, driver.headings); diff != "" {
		t.Fatalf("headings mismatch (-want +got):\n%s", diff)
	}

	finish := driver.choiceCfgs[3]
	if !finish.Skippable || finish.SkipLabel != "Terminer" || finish.Default != -1 {
		t.Fatalf("unexpected instance picker %+v", finish)
	}
	if diff := cmp.Diff([]string{"Plaie", "Fracture", "Brûlure", "Terminer"}, finish.entries()); diff != "" {
		t.Fatalf("instance picker entries mismatch (-want +got):\n%s", diff)
	}
	if got := driver.reviewCfgs[3]; got.Title != "Rendu" || got.Text != view.Report.Computed {
		t.Fatalf("report review shown %+v", got)
	}
}

func TestRunEditsReport(t *testing.T) {
	driver := &stubDriver{
		choices:    []int{-1, -1, -1},
		selections: [][]int{{}, {}},
		reviews:    []review{{edit: true, text: "Intervention annulée."}},
	}
	runner, err := New(testsupport.Reader(t), WithDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	view, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if view.Report.Text != "Intervention annulée." || view.Report.Mode != section.ModeManual {
		t.Fatalf("unexpected report %q (%s)", view.Report.Text, view.Report.Mode)
	}
}

func TestRunPropagatesAbort(t *testing.T) {
	driver := &stubDriver{}
	runner, err := New(testsupport.Reader(t), WithDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatalf("expected error when the driver runs out of answers")
	}
}

func TestSelectionTogglesKeepOrder(t *testing.T) {
	options := []string{"attelle", "plâtre", "écharpe"}
	current := model.Items("écharpe", "attelle")

	got := selectionToggles(options, current, []int{0, 1})
	if diff := cmp.Diff([]string{"écharpe", "plâtre"}, got); diff != "" {
		t.Fatalf("toggles mismatch (-want +got):\n%s", diff)
	}

	next := current
	for _, option := range got {
		next = next.Toggle(option)
	}
	if diff := cmp.Diff([]string{"attelle", "plâtre"}, next.Values()); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateNumber(t *testing.T) {
	for _, ok := range []string{"", " 4 ", "2,5", "10.75"} {
		if err := validateNumber(ok); err != nil {
			t.Fatalf("%q rejected: %v", ok, err)
		}
	}
	if err := validateNumber("quatre"); err == nil {
		t.Fatalf("expected rejection")
	}
}
