// Package wizard implements the objective-creation workflow: an ordered set
// of steps, a selection set of catalog templates, per-template customization
// overrides, and the merge that turns both into objective drafts.
//
// The state object is the exclusive owner of the selection set and the
// customization map. Mutations never fail; validation issues accumulate on
// the state and gate only forward navigation.
package wizard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"okrforge/internal/catalog"
)

// Step identifies a wizard step.
type Step string

const (
	StepBrandContext      Step = "brand_context"
	StepTemplateSelection Step = "template_selection"
	StepCustomization     Step = "customization"
	StepReview            Step = "review"
	StepComplete          Step = "complete"
)

// stepOrder is the default linear ordering; StepComplete is terminal and
// excluded from progress accounting.
var stepOrder = []Step{StepBrandContext, StepTemplateSelection, StepCustomization, StepReview, StepComplete}

// ParseStep validates a step name from user input.
func ParseStep(value string) (Step, error) {
	s := Step(strings.TrimSpace(value))
	for _, known := range stepOrder {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid step %q (expected brand_context, template_selection, customization, review, or complete)", value)
}

func stepIndex(s Step) int {
	for i, known := range stepOrder {
		if s == known {
			return i
		}
	}
	return -1
}

// BrandContext captures the industry and qualitative framing gathered at the
// first step. SetBrandContext replaces it wholesale.
type BrandContext struct {
	Industry string `json:"industry"`
	Audience string `json:"audience,omitempty"`
	Voice    string `json:"voice,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Customization is a sparse per-template override set. Nil fields inherit
// the template value at finalization time.
type Customization struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	TargetValue *float64             `json:"target_value,omitempty"`
	TargetDate  *time.Time           `json:"target_date,omitempty"`
	Priority    *int                 `json:"priority,omitempty"`
	Granularity *catalog.Granularity `json:"granularity,omitempty"`
	MetricType  *string              `json:"metric_type,omitempty"`
	Platform    *string              `json:"platform,omitempty"`
}

// Issue is a single field-level validation problem, optionally scoped to a
// template. Issues are reported, never thrown.
type Issue struct {
	Field      string `json:"field"`
	Message    string `json:"message"`
	TemplateID string `json:"template_id,omitempty"`
}

// State is the in-memory wizard state for one creation session.
type State struct {
	Step           Step
	Completed      map[Step]bool
	Brand          BrandContext
	Selected       map[string]catalog.Template
	Customizations map[string]Customization
	Issues         []Issue

	// Busy flags are transient UI state and never persist.
	Loading bool
	Saving  bool
}

// New returns an empty wizard positioned at the first step.
func New() *State {
	return &State{
		Step:           StepBrandContext,
		Completed:      make(map[Step]bool),
		Selected:       make(map[string]catalog.Template),
		Customizations: make(map[string]Customization),
	}
}

// Reset restores the wizard to its initial empty form.
func (s *State) Reset() {
	*s = *New()
}

// Select adds a template to the selection set. Selecting an already-selected
// template is a no-op; otherwise a customization is seeded from the
// template's defaults so the selection and customization key sets stay equal.
func (s *State) Select(tpl catalog.Template) {
	if _, ok := s.Selected[tpl.ID]; ok {
		return
	}
	s.Selected[tpl.ID] = tpl
	if _, ok := s.Customizations[tpl.ID]; !ok {
		s.Customizations[tpl.ID] = seedCustomization(tpl)
	}
	s.revalidate()
}

// Deselect removes a template and its customization atomically.
func (s *State) Deselect(templateID string) {
	delete(s.Selected, templateID)
	delete(s.Customizations, templateID)
	s.revalidate()
}

// SelectAll selects every given template with the same seeding rules.
func (s *State) SelectAll(templates []catalog.Template) {
	for _, tpl := range templates {
		if _, ok := s.Selected[tpl.ID]; ok {
			continue
		}
		s.Selected[tpl.ID] = tpl
		if _, ok := s.Customizations[tpl.ID]; !ok {
			s.Customizations[tpl.ID] = seedCustomization(tpl)
		}
	}
	s.revalidate()
}

// DeselectAll clears the selection set and the customization map.
func (s *State) DeselectAll() {
	s.Selected = make(map[string]catalog.Template)
	s.Customizations = make(map[string]Customization)
	s.revalidate()
}

// UpdateCustomization shallow-merges the given fields into the existing
// customization; untouched fields survive. Updating a template that has no
// customization creates a sparse one holding only the given fields (no
// seeding on this path; seeding belongs to Select).
func (s *State) UpdateCustomization(templateID string, fields Customization) {
	existing := s.Customizations[templateID]
	s.Customizations[templateID] = overlayCustomization(existing, fields)
	s.revalidate()
}

// SetBrandContext replaces the brand context wholesale.
func (s *State) SetBrandContext(ctx BrandContext) {
	s.Brand = ctx
	s.revalidate()
}

// CanAdvance reports whether the current step permits forward navigation.
// It is a pure predicate over state with no side effects.
func (s *State) CanAdvance() bool {
	switch s.Step {
	case StepBrandContext:
		return strings.TrimSpace(s.Brand.Industry) != ""
	case StepTemplateSelection:
		return len(s.Selected) > 0
	case StepCustomization:
		return len(s.Issues) == 0
	case StepReview:
		return len(s.Selected) > 0 && len(s.Issues) == 0
	default:
		return false
	}
}

// Goto moves to the named step. Backward moves are always allowed; forward
// moves require CanAdvance at the current step. Leaving a step forward marks
// it completed.
func (s *State) Goto(target Step) error {
	from := stepIndex(s.Step)
	to := stepIndex(target)
	if to < 0 {
		return fmt.Errorf("invalid step %q", target)
	}
	if to <= from {
		s.Step = target
		return nil
	}
	if !s.CanAdvance() {
		return fmt.Errorf("cannot advance from %s: requirements not met", s.Step)
	}
	s.Completed[s.Step] = true
	s.Step = target
	return nil
}

// Progress reports completed non-terminal steps as a whole-number percent.
func (s *State) Progress() int {
	total := len(stepOrder) - 1
	done := 0
	for _, step := range stepOrder[:total] {
		if s.Completed[step] {
			done++
		}
	}
	return done * 100 / total
}

// SelectedIDs returns the selection set's keys in sorted order.
func (s *State) SelectedIDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Finalize assembles one objective draft per selected template by overlaying
// its customization onto the template defaults, then marks the wizard
// complete. It is only legal from the review step with a passing gate.
func (s *State) Finalize() ([]Draft, error) {
	if s.Step != StepReview {
		return nil, fmt.Errorf("finalize requires the review step, currently at %s", s.Step)
	}
	if !s.CanAdvance() {
		return nil, fmt.Errorf("cannot finalize: requirements not met")
	}

	drafts := s.Drafts()
	s.Completed[StepReview] = true
	s.Step = StepComplete
	return drafts, nil
}

// Drafts previews the merged objective drafts for the current selection,
// ordered by priority then template id.
func (s *State) Drafts() []Draft {
	drafts := make([]Draft, 0, len(s.Selected))
	for id, tpl := range s.Selected {
		drafts = append(drafts, MergeDraft(tpl, s.Customizations[id]))
	}
	sort.SliceStable(drafts, func(i, j int) bool {
		if drafts[i].Priority != drafts[j].Priority {
			return drafts[i].Priority < drafts[j].Priority
		}
		return drafts[i].TemplateID < drafts[j].TemplateID
	})
	return drafts
}

// revalidate recomputes the issue list from scratch. Issues never block
// mutations; they only gate CanAdvance.
func (s *State) revalidate() {
	var issues []Issue
	for _, id := range s.SelectedIDs() {
		c := s.Customizations[id]
		if c.Title != nil && strings.TrimSpace(*c.Title) == "" {
			issues = append(issues, Issue{
				Field:      "title",
				Message:    "title cannot be empty",
				TemplateID: id,
			})
		}
		if c.TargetValue != nil && *c.TargetValue <= 0 {
			issues = append(issues, Issue{
				Field:      "target_value",
				Message:    "target value must be greater than zero",
				TemplateID: id,
			})
		}
		if c.Priority != nil && *c.Priority < 1 {
			issues = append(issues, Issue{
				Field:      "priority",
				Message:    "priority must be 1 or greater",
				TemplateID: id,
			})
		}
	}
	s.Issues = issues
}
