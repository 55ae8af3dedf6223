package objectives

import (
	"path/filepath"
	"testing"
	"time"

	"okrforge/internal/catalog"
	"okrforge/internal/progress"
	"okrforge/internal/wizard"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "objectives.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestInsertDraftsAndList(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	drafts := []wizard.Draft{
		{
			TemplateID:  "tpl-reach",
			Title:       "Grow social reach",
			TargetValue: 2800000,
			TargetDate:  &due,
			Priority:    1,
			Granularity: catalog.GranularityWeekly,
			MetricType:  "reach",
			Platform:    "instagram",
		},
		{
			TemplateID:  "tpl-leads",
			Title:       "Generate qualified leads",
			TargetValue: 300,
			Priority:    2,
			Granularity: catalog.GranularityMonthly,
			MetricType:  "leads",
		},
	}

	records, err := store.InsertDrafts(drafts, now)
	if err != nil {
		t.Fatalf("insert drafts: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records len = %d, want 2", len(records))
	}
	if records[0].Status != progress.StatusBehind {
		t.Fatalf("new objective status = %q, want behind", records[0].Status)
	}

	listed, err := store.List(now)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed len = %d, want 2", len(listed))
	}
	if listed[0].Title != "Grow social reach" {
		t.Fatalf("list order wrong, first = %q", listed[0].Title)
	}
	if listed[0].TargetDate == nil || !listed[0].TargetDate.Equal(due) {
		t.Fatalf("target date = %v, want %v", listed[0].TargetDate, due)
	}
	// No target date: the engine assumes its default horizon.
	if listed[1].Derived.DaysRemaining != progress.DefaultHorizonDays {
		t.Fatalf("days remaining = %d, want %d", listed[1].Derived.DaysRemaining, progress.DefaultHorizonDays)
	}
}

func TestRecordSnapshotRefreshesObjective(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	records, err := store.InsertDrafts([]wizard.Draft{{
		TemplateID:  "tpl-reach",
		Title:       "Grow social reach",
		TargetValue: 2800000,
		Priority:    1,
		Granularity: catalog.GranularityWeekly,
		MetricType:  "reach",
	}}, now)
	if err != nil {
		t.Fatal(err)
	}
	id := records[0].ID

	later := now.AddDate(0, 1, 0)
	if _, err := store.RecordSnapshot(id, 1500000, "platform_api", 0.8, later); err != nil {
		t.Fatalf("record snapshot: %v", err)
	}
	final := later.AddDate(0, 1, 0)
	if _, err := store.RecordSnapshot(id, 2200000, "platform_api", 0.9, final); err != nil {
		t.Fatalf("record snapshot: %v", err)
	}

	rec, err := store.Get(id, final)
	if err != nil {
		t.Fatal(err)
	}
	if rec.CurrentValue != 2200000 {
		t.Fatalf("current value = %v, want latest snapshot value", rec.CurrentValue)
	}
	if rec.Derived.ProgressPercent != 78.6 {
		t.Fatalf("progress = %v, want 78.6", rec.Derived.ProgressPercent)
	}
	if rec.Derived.Status != progress.StatusAtRisk {
		t.Fatalf("status = %q, want at_risk", rec.Derived.Status)
	}
	if rec.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", rec.Confidence)
	}

	snaps, err := store.Snapshots(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("snapshots len = %d, want 2 (append-only)", len(snaps))
	}
	if snaps[0].Value != 2200000 || snaps[1].Value != 1500000 {
		t.Fatalf("snapshot order wrong: %v, %v", snaps[0].Value, snaps[1].Value)
	}
}

func TestRecordSnapshotUnknownObjective(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.RecordSnapshot("missing", 1, "manual", 0.5, time.Now()); err == nil {
		t.Fatalf("expected error for unknown objective")
	}
}
