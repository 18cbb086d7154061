package session

import (
	"github.com/goliatone/go-reportgen/pkg/model"
	"github.com/goliatone/go-reportgen/pkg/section"
	"github.com/goliatone/go-reportgen/pkg/timeline"
)

// View is a read-only snapshot of a session.
type View struct {
	ID        string          `json:"id"`
	Lead      SectionView     `json:"lead"`
	Instances []SectionView   `json:"instances"`
	Trail     SectionView     `json:"trail"`
	Timeline  []timeline.Slot `json:"timeline"`
	Report    ReportView      `json:"report"`
}

// SectionView describes one section with its fields and texts.
type SectionView struct {
	Target       string       `json:"target"`
	DefinitionID string       `json:"definitionId"`
	Title        string       `json:"title"`
	Layout       string       `json:"classname,omitempty"`
	Mode         section.Mode `json:"mode"`
	Text         string       `json:"text"`
	Computed     string       `json:"computed"`
	Fields       []FieldView  `json:"fields"`
}

// FieldView describes one question and its current answer.
type FieldView struct {
	Key      string            `json:"key"`
	Category string            `json:"category"`
	Kind     model.FieldKind   `json:"type"`
	Layout   string            `json:"classname,omitempty"`
	Options  []OptionView      `json:"options,omitempty"`
	Value    model.AnswerValue `json:"value"`
}

// OptionView is one selectable option.
type OptionView struct {
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ReportView is the composite report and its mode.
type ReportView struct {
	Mode     section.Mode `json:"mode"`
	Text     string       `json:"text"`
	Computed string       `json:"computed"`
}

// View snapshots the session.
func (s *Session) View() View {
	instances := s.registry.Instances()
	view := View{
		ID:        s.id,
		Lead:      sectionView(TargetLead, s.lead),
		Instances: make([]SectionView, 0, len(instances)),
		Trail:     sectionView(TargetTrail, s.trail),
		Timeline:  s.timeline.Slots(),
		Report: ReportView{
			Mode:     s.report.Mode(),
			Text:     s.report.Text(),
			Computed: s.report.Computed(),
		},
	}
	for _, inst := range instances {
		view.Instances = append(view.Instances, sectionView(inst.Key, inst.Section))
	}
	return view
}

func sectionView(target string, sec *section.Section) SectionView {
	def := sec.Definition()
	answers := sec.Answers()
	out := SectionView{
		Target:       target,
		DefinitionID: def.ID,
		Title:        def.Title,
		Layout:       def.Layout,
		Mode:         sec.Mode(),
		Text:         sec.Text(),
		Computed:     sec.ComputedText(),
		Fields:       make([]FieldView, 0, len(def.Fields)),
	}
	for _, field := range def.Fields {
		value, ok := answers.Get(field.Key())
		if !ok {
			value = model.EmptyFor(field.Kind)
		}
		fv := FieldView{
			Key:      field.Key(),
			Category: field.Category,
			Kind:     field.Kind,
			Layout:   field.Layout,
			Value:    value,
		}
		for _, option := range field.Options {
			selected := value.Contains(option) || (!value.IsMulti() && value.String() == option)
			fv.Options = append(fv.Options, OptionView{Label: option, Selected: selected})
		}
		out.Fields = append(out.Fields, fv)
	}
	return out
}
