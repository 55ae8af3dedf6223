package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type rawDocument struct {
	Templates []rawTemplate `yaml:"templates"`
}

type rawTemplate struct {
	ID              string   `yaml:"template_id"`
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	SuggestedTarget *float64 `yaml:"suggested_target"`
	Timeframe       string   `yaml:"timeframe"`
	Priority        *int     `yaml:"priority"`
	MetricType      string   `yaml:"metric_type"`
	Platforms       []string `yaml:"platforms"`
	Industries      []string `yaml:"industries"`
}

// ValidationError captures a single field-specific catalog issue.
type ValidationError struct {
	File    string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Message)
}

// ValidationErrors aggregates multiple validation problems.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

// ParseAndValidateDocument unmarshals and validates a YAML catalog document.
func ParseAndValidateDocument(data []byte, source string) ([]Template, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ValidationErrors{{
			File:    source,
			Field:   "yaml",
			Message: err.Error(),
		}}
	}
	return validateRawDocument(raw, source)
}

func validateRawDocument(raw rawDocument, source string) ([]Template, error) {
	var errs ValidationErrors

	if len(raw.Templates) == 0 {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   "templates",
			Message: "must contain at least one template",
		})
	}

	ids := make(map[string]struct{})
	var normalized []Template

	for idx, rawTpl := range raw.Templates {
		fieldPath := fmt.Sprintf("templates[%d]", idx)
		tpl, tplErrs := validateTemplate(rawTpl, fieldPath, source)
		errs = append(errs, tplErrs...)

		if tpl.ID != "" {
			if _, exists := ids[tpl.ID]; exists {
				errs = append(errs, ValidationError{
					File:    source,
					Field:   fieldPath + ".template_id",
					Message: fmt.Sprintf("duplicate template_id %q within document", tpl.ID),
				})
			} else {
				ids[tpl.ID] = struct{}{}
			}
		}
		normalized = append(normalized, tpl)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return normalized, nil
}

func validateTemplate(raw rawTemplate, fieldPath, source string) (Template, ValidationErrors) {
	var errs ValidationErrors

	if strings.TrimSpace(raw.ID) == "" {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".template_id",
			Message: "template_id is required",
		})
	}
	if strings.TrimSpace(raw.Title) == "" {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".title",
			Message: "title is required",
		})
	}
	if raw.SuggestedTarget == nil {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".suggested_target",
			Message: "suggested_target is required",
		})
	} else if *raw.SuggestedTarget <= 0 {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".suggested_target",
			Message: "must be greater than zero",
		})
	}

	timeframe, tfErr := parseTimeframe(raw.Timeframe)
	if tfErr != nil {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".timeframe",
			Message: tfErr.Error(),
		})
	}

	if raw.Priority == nil {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".priority",
			Message: "priority is required",
		})
	} else if *raw.Priority < 1 {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".priority",
			Message: "must be 1 or greater",
		})
	}
	if strings.TrimSpace(raw.MetricType) == "" {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".metric_type",
			Message: "metric_type is required",
		})
	}
	for i, p := range raw.Platforms {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, ValidationError{
				File:    source,
				Field:   fmt.Sprintf("%s.platforms[%d]", fieldPath, i),
				Message: "platform entries cannot be empty",
			})
		}
	}

	tpl := Template{
		ID:          strings.TrimSpace(raw.ID),
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Timeframe:   timeframe,
		MetricType:  strings.TrimSpace(raw.MetricType),
		Platforms:   trimAll(raw.Platforms),
		Industries:  trimAll(raw.Industries),
		Source:      source,
	}
	if raw.SuggestedTarget != nil {
		tpl.SuggestedTarget = *raw.SuggestedTarget
	}
	if raw.Priority != nil {
		tpl.Priority = *raw.Priority
	}

	return tpl, errs
}

func parseTimeframe(value string) (Timeframe, error) {
	switch Timeframe(strings.TrimSpace(value)) {
	case TimeframeMonthly:
		return TimeframeMonthly, nil
	case TimeframeQuarterly:
		return TimeframeQuarterly, nil
	case TimeframeBiannual:
		return TimeframeBiannual, nil
	case TimeframeAnnual:
		return TimeframeAnnual, nil
	default:
		return Timeframe(value), fmt.Errorf("invalid timeframe %q (expected monthly, quarterly, biannual, or annual)", value)
	}
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
