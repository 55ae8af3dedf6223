package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"okrforge/internal/catalog"
)

const StateSchemaVersion = 1

// persistedState is the durable subset of wizard state. Busy flags and the
// issue list are transient and always reset on load. Maps serialize keyed by
// template id, so entry order never affects the file.
type persistedState struct {
	SchemaVersion  int                         `json:"schema_version"`
	Step           Step                        `json:"step"`
	CompletedSteps []Step                      `json:"completed_steps,omitempty"`
	Brand          BrandContext                `json:"brand_context"`
	Selected       map[string]catalog.Template `json:"selected,omitempty"`
	Customizations map[string]Customization    `json:"customizations,omitempty"`
}

// Save writes the durable subset of state to path atomically.
func (s *State) Save(path string) error {
	if path == "" {
		return fmt.Errorf("state path is required")
	}

	completed := make([]Step, 0, len(s.Completed))
	for step, done := range s.Completed {
		if done {
			completed = append(completed, step)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return stepIndex(completed[i]) < stepIndex(completed[j])
	})

	persisted := persistedState{
		SchemaVersion:  StateSchemaVersion,
		Step:           s.Step,
		CompletedSteps: completed,
		Brand:          s.Brand,
		Selected:       s.Selected,
		Customizations: s.Customizations,
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wizard state: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure state dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename state: %w", err)
	}
	return nil
}

// Load reads wizard state from path. A missing file yields a fresh wizard.
// Transient fields (busy flags, issues) always start at their defaults, and
// the selection/customization key sets are reconciled so the paired-removal
// invariant holds even for hand-edited files.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read wizard state: %w", err)
	}

	var persisted persistedState
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&persisted); err != nil {
		return nil, fmt.Errorf("decode wizard state: %w", err)
	}
	if persisted.SchemaVersion != StateSchemaVersion {
		return nil, fmt.Errorf("unsupported wizard state schema_version %d", persisted.SchemaVersion)
	}

	state := New()
	if persisted.Step != "" {
		if _, err := ParseStep(string(persisted.Step)); err != nil {
			return nil, err
		}
		state.Step = persisted.Step
	}
	for _, step := range persisted.CompletedSteps {
		if stepIndex(step) < 0 {
			return nil, fmt.Errorf("invalid completed step %q", step)
		}
		state.Completed[step] = true
	}
	state.Brand = persisted.Brand

	for id, tpl := range persisted.Selected {
		state.Selected[id] = tpl
	}
	for id, c := range persisted.Customizations {
		if _, ok := state.Selected[id]; !ok {
			// Orphaned customization; drop it to restore the invariant.
			continue
		}
		state.Customizations[id] = c
	}
	for id, tpl := range state.Selected {
		if _, ok := state.Customizations[id]; !ok {
			state.Customizations[id] = seedCustomization(tpl)
		}
	}

	// Issues intentionally start empty: prior validation output is transient
	// and recomputed on the next mutation.
	return state, nil
}
