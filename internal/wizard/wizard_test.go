package wizard

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"okrforge/internal/catalog"
)

func tplReach() catalog.Template {
	return catalog.Template{
		ID:              "tpl-reach",
		Title:           "Grow social reach",
		Description:     "Increase unique accounts reached",
		SuggestedTarget: 50000,
		Timeframe:       catalog.TimeframeQuarterly,
		Priority:        1,
		MetricType:      "reach",
		Platforms:       []string{"instagram", "tiktok"},
	}
}

func tplLeads() catalog.Template {
	return catalog.Template{
		ID:              "tpl-leads",
		Title:           "Generate qualified leads",
		SuggestedTarget: 300,
		Timeframe:       catalog.TimeframeMonthly,
		Priority:        2,
		MetricType:      "leads",
	}
}

func pairedKeys(t *testing.T, s *State) {
	t.Helper()
	if len(s.Selected) != len(s.Customizations) {
		t.Fatalf("selection has %d keys, customizations %d", len(s.Selected), len(s.Customizations))
	}
	for id := range s.Selected {
		if _, ok := s.Customizations[id]; !ok {
			t.Fatalf("selected template %s has no customization", id)
		}
	}
}

func TestSelectSeedsCustomization(t *testing.T) {
	s := New()
	s.Select(tplReach())
	pairedKeys(t, s)

	c := s.Customizations["tpl-reach"]
	if c.Title == nil || *c.Title != "Grow social reach" {
		t.Fatalf("seeded title = %v, want template title", c.Title)
	}
	if c.TargetValue == nil || *c.TargetValue != 50000 {
		t.Fatalf("seeded target = %v, want 50000", c.TargetValue)
	}
	if c.Granularity == nil || *c.Granularity != catalog.GranularityWeekly {
		t.Fatalf("seeded granularity = %v, want weekly", c.Granularity)
	}
	if c.Platform == nil || *c.Platform != "instagram" {
		t.Fatalf("seeded platform = %v, want first applicable platform", c.Platform)
	}
	if c.TargetDate != nil {
		t.Fatalf("seeded target date = %v, want nil", c.TargetDate)
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	s := New()
	s.Select(tplReach())
	custom := "My custom title"
	s.UpdateCustomization("tpl-reach", Customization{Title: &custom})
	before := s.Customizations["tpl-reach"]

	s.Select(tplReach())
	if len(s.Selected) != 1 {
		t.Fatalf("selection size = %d after re-select, want 1", len(s.Selected))
	}
	if !reflect.DeepEqual(s.Customizations["tpl-reach"], before) {
		t.Fatalf("re-select changed customization: %+v", s.Customizations["tpl-reach"])
	}
}

func TestPairedRemovalInvariant(t *testing.T) {
	s := New()
	s.Select(tplReach())
	pairedKeys(t, s)
	s.Select(tplLeads())
	pairedKeys(t, s)
	s.Deselect("tpl-reach")
	pairedKeys(t, s)
	if _, ok := s.Customizations["tpl-reach"]; ok {
		t.Fatalf("deselect left customization behind")
	}
	s.Deselect("tpl-missing")
	pairedKeys(t, s)
	s.SelectAll([]catalog.Template{tplReach(), tplLeads()})
	pairedKeys(t, s)
	if len(s.Selected) != 2 {
		t.Fatalf("selection size = %d, want 2", len(s.Selected))
	}
	s.DeselectAll()
	pairedKeys(t, s)
	if len(s.Selected) != 0 {
		t.Fatalf("selection not empty after DeselectAll")
	}
}

func TestUpdateCustomizationShallowMerge(t *testing.T) {
	s := New()
	s.Select(tplReach())

	target := 75000.0
	s.UpdateCustomization("tpl-reach", Customization{TargetValue: &target})

	c := s.Customizations["tpl-reach"]
	if c.TargetValue == nil || *c.TargetValue != 75000 {
		t.Fatalf("target = %v, want 75000", c.TargetValue)
	}
	if c.Title == nil || *c.Title != "Grow social reach" {
		t.Fatalf("unrelated field changed by merge: %v", c.Title)
	}

	// No seeding on the update path: a sparse customization holds only what
	// the caller provided.
	title := "Direct"
	s.UpdateCustomization("tpl-other", Customization{Title: &title})
	sparse := s.Customizations["tpl-other"]
	if sparse.Title == nil || *sparse.Title != "Direct" {
		t.Fatalf("sparse customization title = %v", sparse.Title)
	}
	if sparse.TargetValue != nil || sparse.MetricType != nil {
		t.Fatalf("update path seeded defaults: %+v", sparse)
	}
}

func TestCanAdvancePerStep(t *testing.T) {
	s := New()

	if s.CanAdvance() {
		t.Fatalf("brand_context should not advance with empty industry")
	}
	s.SetBrandContext(BrandContext{Industry: "retail"})
	if !s.CanAdvance() {
		t.Fatalf("brand_context should advance with industry set")
	}
	if err := s.Goto(StepTemplateSelection); err != nil {
		t.Fatal(err)
	}

	if s.CanAdvance() {
		t.Fatalf("template_selection should not advance with empty selection")
	}
	s.Select(tplReach())
	if !s.CanAdvance() {
		t.Fatalf("template_selection should advance after one select")
	}
	if err := s.Goto(StepCustomization); err != nil {
		t.Fatal(err)
	}

	bad := ""
	s.UpdateCustomization("tpl-reach", Customization{Title: &bad})
	if s.CanAdvance() {
		t.Fatalf("customization should not advance with issues: %+v", s.Issues)
	}
	if err := s.Goto(StepReview); err == nil {
		t.Fatalf("forward navigation should be gated by issues")
	}
	good := "Reach goal"
	s.UpdateCustomization("tpl-reach", Customization{Title: &good})
	if !s.CanAdvance() {
		t.Fatalf("customization should advance once issues clear")
	}
	if err := s.Goto(StepReview); err != nil {
		t.Fatal(err)
	}
	if !s.CanAdvance() {
		t.Fatalf("review should advance with selection and no issues")
	}
}

func TestIssuesReportedNotThrown(t *testing.T) {
	s := New()
	s.Select(tplReach())

	negative := -5.0
	s.UpdateCustomization("tpl-reach", Customization{TargetValue: &negative})
	if len(s.Issues) == 0 {
		t.Fatalf("expected issues for negative target")
	}
	issue := s.Issues[0]
	if issue.Field != "target_value" || issue.TemplateID != "tpl-reach" {
		t.Fatalf("unexpected issue %+v", issue)
	}

	// Mutations still succeed while invalid.
	s.Select(tplLeads())
	if len(s.Selected) != 2 {
		t.Fatalf("mutation blocked by issues")
	}
}

func TestProgress(t *testing.T) {
	s := New()
	if s.Progress() != 0 {
		t.Fatalf("initial progress = %d, want 0", s.Progress())
	}
	s.SetBrandContext(BrandContext{Industry: "retail"})
	if err := s.Goto(StepTemplateSelection); err != nil {
		t.Fatal(err)
	}
	if s.Progress() != 25 {
		t.Fatalf("progress = %d, want 25", s.Progress())
	}
	s.Select(tplReach())
	if err := s.Goto(StepCustomization); err != nil {
		t.Fatal(err)
	}
	if err := s.Goto(StepReview); err != nil {
		t.Fatal(err)
	}
	if s.Progress() != 75 {
		t.Fatalf("progress = %d, want 75", s.Progress())
	}
	if _, err := s.Finalize(); err != nil {
		t.Fatal(err)
	}
	if s.Progress() != 100 {
		t.Fatalf("progress after finalize = %d, want 100", s.Progress())
	}
}

func TestMergeDraftPerFieldOverride(t *testing.T) {
	tpl := catalog.Template{
		ID:              "tpl-a",
		Title:           "A",
		SuggestedTarget: 100,
		Timeframe:       catalog.TimeframeQuarterly,
		Priority:        1,
		MetricType:      "reach",
	}
	p := 2
	draft := MergeDraft(tpl, Customization{Priority: &p})
	if draft.Title != "A" {
		t.Fatalf("title = %q, want template default", draft.Title)
	}
	if draft.Priority != 2 {
		t.Fatalf("priority = %d, want override", draft.Priority)
	}
	if draft.TargetValue != 100 || draft.MetricType != "reach" {
		t.Fatalf("inherited fields lost: %+v", draft)
	}
}

func TestFinalizeAssemblesDrafts(t *testing.T) {
	s := New()
	s.SetBrandContext(BrandContext{Industry: "retail"})
	if err := s.Goto(StepTemplateSelection); err != nil {
		t.Fatal(err)
	}
	s.SelectAll([]catalog.Template{tplLeads(), tplReach()})
	if err := s.Goto(StepCustomization); err != nil {
		t.Fatal(err)
	}
	due := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	target := 80000.0
	s.UpdateCustomization("tpl-reach", Customization{TargetValue: &target, TargetDate: &due})
	if err := s.Goto(StepReview); err != nil {
		t.Fatal(err)
	}

	drafts, err := s.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if len(drafts) != 2 {
		t.Fatalf("drafts len = %d, want 2", len(drafts))
	}
	// Ordered by priority: reach (1) before leads (2).
	if drafts[0].TemplateID != "tpl-reach" || drafts[1].TemplateID != "tpl-leads" {
		t.Fatalf("unexpected draft order: %s, %s", drafts[0].TemplateID, drafts[1].TemplateID)
	}
	if drafts[0].TargetValue != 80000 {
		t.Fatalf("customized target = %v, want 80000", drafts[0].TargetValue)
	}
	if drafts[0].TargetDate == nil || !drafts[0].TargetDate.Equal(due) {
		t.Fatalf("target date = %v, want %v", drafts[0].TargetDate, due)
	}
	if drafts[1].TargetDate != nil {
		t.Fatalf("uncustomized draft should carry no target date")
	}
	if s.Step != StepComplete {
		t.Fatalf("step after finalize = %s, want complete", s.Step)
	}
}

func TestFinalizeRequiresReview(t *testing.T) {
	s := New()
	s.Select(tplReach())
	if _, err := s.Finalize(); err == nil {
		t.Fatalf("finalize outside review should fail")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := New()
	s.SetBrandContext(BrandContext{Industry: "retail"})
	s.Select(tplReach())
	if err := s.Goto(StepTemplateSelection); err != nil {
		t.Fatal(err)
	}

	s.Reset()
	if s.Step != StepBrandContext || len(s.Selected) != 0 || len(s.Customizations) != 0 {
		t.Fatalf("reset left state behind: %+v", s)
	}
	if s.Brand.Industry != "" || len(s.Completed) != 0 {
		t.Fatalf("reset left context behind: %+v", s)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wizard.json")

	s := New()
	s.SetBrandContext(BrandContext{Industry: "retail", Audience: "gen-z shoppers"})
	if err := s.Goto(StepTemplateSelection); err != nil {
		t.Fatal(err)
	}
	s.Select(tplReach())
	s.Select(tplLeads())
	target := 75000.0
	s.UpdateCustomization("tpl-reach", Customization{TargetValue: &target})
	bad := -1.0
	s.UpdateCustomization("tpl-leads", Customization{TargetValue: &bad})
	s.Loading = true
	s.Saving = true

	if err := s.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Step != StepTemplateSelection {
		t.Fatalf("loaded step = %s, want template_selection", loaded.Step)
	}
	if !loaded.Completed[StepBrandContext] {
		t.Fatalf("completed steps not restored")
	}
	if loaded.Brand.Industry != "retail" || loaded.Brand.Audience != "gen-z shoppers" {
		t.Fatalf("brand context not restored: %+v", loaded.Brand)
	}
	if !reflect.DeepEqual(loaded.SelectedIDs(), s.SelectedIDs()) {
		t.Fatalf("selection not restored: %v", loaded.SelectedIDs())
	}
	if !reflect.DeepEqual(loaded.Customizations["tpl-reach"], s.Customizations["tpl-reach"]) {
		t.Fatalf("customization not restored: %+v", loaded.Customizations["tpl-reach"])
	}
	pairedKeys(t, loaded)

	// Transient state never survives the round trip.
	if loaded.Loading || loaded.Saving {
		t.Fatalf("busy flags restored")
	}
	if len(loaded.Issues) != 0 {
		t.Fatalf("validation issues restored: %+v", loaded.Issues)
	}
}

func TestLoadMissingFileYieldsFreshWizard(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Step != StepBrandContext || len(s.Selected) != 0 {
		t.Fatalf("missing file did not yield fresh state: %+v", s)
	}
}

func TestLoadRejectsUnknownSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wizard.json")
	data := `{"schema_version": 99, "step": "review", "brand_context": {"industry": ""}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected schema version error")
	}
}
