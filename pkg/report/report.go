// Package report assembles the final report from the lead section, the form
// instances and the trail section.
package report

import (
	"strings"

	"github.com/goliatone/go-reportgen/pkg/section"
)

// Source is anything with a visible text.
type Source interface {
	Text() string
}

// Compose joins lead, sources and trail with "\n", skipping texts that are
// empty or whitespace only.
func Compose(lead string, sources []Source, trail string) string {
	return join(collect(lead, sources, trail))
}

func collect(lead string, sources []Source, trail string) []string {
	texts := make([]string, 0, len(sources)+2)
	texts = append(texts, lead)
	for _, src := range sources {
		if src == nil {
			continue
		}
		texts = append(texts, src.Text())
	}
	return append(texts, trail)
}

func join(texts []string) string {
	parts := make([]string, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n")
}

// Report is the composite text with its own manual override. Any change in
// the upstream texts returns it to auto mode.
type Report struct {
	text     section.Override
	upstream []string
	primed   bool
}

// New returns an empty report in auto mode.
func New() *Report {
	return &Report{}
}

// Refresh recomputes the composite. The report returns to auto mode when any
// upstream text differs from the previous refresh.
func (r *Report) Refresh(lead string, sources []Source, trail string) {
	texts := collect(lead, sources, trail)
	composite := join(texts)
	if !r.primed || !equal(r.upstream, texts) {
		r.text.Reassert(composite)
	} else {
		r.text.Sync(composite)
	}
	r.upstream = texts
	r.primed = true
}

// Edit freezes the composite at text.
func (r *Report) Edit(text string) {
	r.text.Edit(text)
}

// Text returns the visible composite.
func (r *Report) Text() string {
	return r.text.Text()
}

// Computed returns the composite derived from the last refresh.
func (r *Report) Computed() string {
	return r.text.Computed()
}

// Mode returns the report mode.
func (r *Report) Mode() section.Mode {
	return r.text.Mode()
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
