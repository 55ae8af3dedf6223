// Package review renders what the customization step changed, as a unified
// diff of template defaults against the merged objective drafts.
package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"okrforge/internal/wizard"
)

type renderedDraft struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description,omitempty"`
	TargetValue float64 `yaml:"target_value"`
	TargetDate  string  `yaml:"target_date,omitempty"`
	Priority    int     `yaml:"priority"`
	Granularity string  `yaml:"granularity"`
	MetricType  string  `yaml:"metric_type"`
	Platform    string  `yaml:"platform,omitempty"`
}

// RenderChanges diffs each selected template's defaults against its merged
// draft. Templates whose drafts match their defaults are omitted; an empty
// string means nothing was customized.
func RenderChanges(state *wizard.State) (string, error) {
	var diffs []string

	for _, id := range state.SelectedIDs() {
		tpl := state.Selected[id]

		defaultText, err := renderDraft(wizard.MergeDraft(tpl, wizard.Customization{}))
		if err != nil {
			return "", fmt.Errorf("render defaults for %s: %w", id, err)
		}
		draftText, err := renderDraft(wizard.MergeDraft(tpl, state.Customizations[id]))
		if err != nil {
			return "", fmt.Errorf("render draft for %s: %w", id, err)
		}

		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(defaultText),
			B:        difflib.SplitLines(draftText),
			FromFile: "template/" + id,
			ToFile:   "draft/" + id,
			Context:  3,
		}
		diffText, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return "", fmt.Errorf("diff %s: %w", id, err)
		}
		if strings.TrimSpace(diffText) != "" {
			diffs = append(diffs, diffText)
		}
	}

	return strings.Join(diffs, "\n"), nil
}

func renderDraft(draft wizard.Draft) (string, error) {
	rendered := renderedDraft{
		Title:       draft.Title,
		Description: draft.Description,
		TargetValue: draft.TargetValue,
		Priority:    draft.Priority,
		Granularity: string(draft.Granularity),
		MetricType:  draft.MetricType,
		Platform:    draft.Platform,
	}
	if draft.TargetDate != nil {
		rendered.TargetDate = draft.TargetDate.UTC().Format(time.RFC3339)
	}
	data, err := yaml.Marshal(&rendered)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
