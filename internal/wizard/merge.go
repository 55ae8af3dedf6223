package wizard

import (
	"time"

	"okrforge/internal/catalog"
)

// Draft is a finalized objective definition handed to the persistence
// collaborator. TargetDate stays nil when no date was customized; the
// progress engine substitutes its default horizon downstream.
type Draft struct {
	TemplateID  string              `json:"template_id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	TargetValue float64             `json:"target_value"`
	TargetDate  *time.Time          `json:"target_date,omitempty"`
	Priority    int                 `json:"priority"`
	Granularity catalog.Granularity `json:"granularity"`
	MetricType  string              `json:"metric_type"`
	Platform    string              `json:"platform,omitempty"`
}

// MergeDraft overlays a customization onto a template's defaults. The
// override is per-field: only fields the customization defines replace the
// template value. This is the authoritative merge rule for finalization.
func MergeDraft(tpl catalog.Template, c Customization) Draft {
	draft := Draft{
		TemplateID:  tpl.ID,
		Title:       tpl.Title,
		Description: tpl.Description,
		TargetValue: tpl.SuggestedTarget,
		Priority:    tpl.Priority,
		Granularity: tpl.Timeframe.Granularity(),
		MetricType:  tpl.MetricType,
	}
	if len(tpl.Platforms) > 0 {
		draft.Platform = tpl.Platforms[0]
	}

	if c.Title != nil {
		draft.Title = *c.Title
	}
	if c.Description != nil {
		draft.Description = *c.Description
	}
	if c.TargetValue != nil {
		draft.TargetValue = *c.TargetValue
	}
	if c.TargetDate != nil {
		d := *c.TargetDate
		draft.TargetDate = &d
	}
	if c.Priority != nil {
		draft.Priority = *c.Priority
	}
	if c.Granularity != nil {
		draft.Granularity = *c.Granularity
	}
	if c.MetricType != nil {
		draft.MetricType = *c.MetricType
	}
	if c.Platform != nil {
		draft.Platform = *c.Platform
	}

	return draft
}

// seedCustomization copies a template's defaults into a fresh customization
// so the customization step starts from editable values.
func seedCustomization(tpl catalog.Template) Customization {
	granularity := tpl.Timeframe.Granularity()
	c := Customization{
		Title:       strPtr(tpl.Title),
		Description: strPtr(tpl.Description),
		TargetValue: floatPtr(tpl.SuggestedTarget),
		Priority:    intPtr(tpl.Priority),
		Granularity: &granularity,
		MetricType:  strPtr(tpl.MetricType),
	}
	if len(tpl.Platforms) > 0 {
		c.Platform = strPtr(tpl.Platforms[0])
	}
	return c
}

// overlayCustomization shallow-merges overlay into base, field by field.
func overlayCustomization(base, overlay Customization) Customization {
	out := base
	if overlay.Title != nil {
		out.Title = strPtr(*overlay.Title)
	}
	if overlay.Description != nil {
		out.Description = strPtr(*overlay.Description)
	}
	if overlay.TargetValue != nil {
		out.TargetValue = floatPtr(*overlay.TargetValue)
	}
	if overlay.TargetDate != nil {
		d := *overlay.TargetDate
		out.TargetDate = &d
	}
	if overlay.Priority != nil {
		out.Priority = intPtr(*overlay.Priority)
	}
	if overlay.Granularity != nil {
		g := *overlay.Granularity
		out.Granularity = &g
	}
	if overlay.MetricType != nil {
		out.MetricType = strPtr(*overlay.MetricType)
	}
	if overlay.Platform != nil {
		out.Platform = strPtr(*overlay.Platform)
	}
	return out
}

func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
