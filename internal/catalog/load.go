package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LoadFromDir loads and validates all catalog YAML files from the provided
// directory and assembles them into an in-memory catalog.
func LoadFromDir(dir string) (*Catalog, error) {
	if dir == "" {
		dir = "templates"
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("scan catalog dir: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no template YAML files found in %s", dir)
	}
	sort.Strings(files)

	var templates []Template
	var vErrs ValidationErrors

	for _, path := range files {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		parsed, parseErr := ParseAndValidateDocument(data, path)
		if parseErr != nil {
			if ve, ok := parseErr.(ValidationErrors); ok {
				vErrs = append(vErrs, ve...)
				continue
			}
			return nil, parseErr
		}
		templates = append(templates, parsed...)
	}

	if len(vErrs) > 0 {
		return nil, vErrs
	}

	if dupErrs := validateCrossDocumentUniqueness(templates); len(dupErrs) > 0 {
		return nil, dupErrs
	}

	return buildCatalog(templates), nil
}

func validateCrossDocumentUniqueness(templates []Template) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]string)

	for _, tpl := range templates {
		if tpl.ID == "" {
			continue
		}
		if origin, exists := seen[tpl.ID]; exists {
			errs = append(errs, ValidationError{
				File:    tpl.Source,
				Field:   "template_id",
				Message: fmt.Sprintf("template_id %q already defined in %s", tpl.ID, origin),
			})
			continue
		}
		seen[tpl.ID] = tpl.Source
	}

	return errs
}

func buildCatalog(templates []Template) *Catalog {
	sort.SliceStable(templates, func(i, j int) bool {
		if templates[i].Priority != templates[j].Priority {
			return templates[i].Priority < templates[j].Priority
		}
		return templates[i].ID < templates[j].ID
	})

	cat := &Catalog{
		Templates: templates,
		byID:      make(map[string]Template, len(templates)),
	}
	for _, tpl := range templates {
		cat.byID[tpl.ID] = tpl
	}
	return cat
}
