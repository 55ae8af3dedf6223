// Package objectives is the persistence collaborator for finalized
// objectives and their metric snapshots, backed by SQLite.
package objectives

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"okrforge/internal/progress"
	"okrforge/internal/wizard"
)

// Record is a persisted objective. Derived fields are recomputed from the
// stored values on every read, never trusted from a cache.
type Record struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	TargetValue  float64          `json:"target_value"`
	CurrentValue float64          `json:"current_value"`
	TargetDate   *time.Time       `json:"target_date,omitempty"`
	Priority     int              `json:"priority"`
	Granularity  string           `json:"granularity"`
	MetricType   string           `json:"metric_type"`
	Platform     string           `json:"platform,omitempty"`
	Status       progress.Status  `json:"status"`
	Confidence   float64          `json:"confidence"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Derived      progress.Derived `json:"derived"`
}

// Snapshot is one timestamped observation of an objective's current value.
// Snapshots are append-only; the newest one defines the displayed value.
type Snapshot struct {
	ID          string    `json:"id"`
	ObjectiveID string    `json:"objective_id"`
	Value       float64   `json:"value"`
	Source      string    `json:"source"`
	Confidence  float64   `json:"confidence"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Store manages objective records and metric snapshots in SQLite.
type Store struct {
	DBPath string
	db     *sql.DB
	engine progress.Engine
}

// Open opens or creates the objectives database.
func Open(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve objectives db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure objectives db dir: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open objectives db: %w", err)
	}

	store := &Store{
		DBPath: absPath,
		db:     db,
	}

	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ensureSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS objectives (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	target_value REAL NOT NULL,
	current_value REAL NOT NULL DEFAULT 0,
	target_date TEXT,
	priority INTEGER NOT NULL,
	granularity TEXT NOT NULL,
	metric_type TEXT NOT NULL,
	platform TEXT,
	status TEXT NOT NULL,
	confidence REAL NOT NULL DEFAULT 0.5,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS metric_snapshots (
	id TEXT PRIMARY KEY,
	objective_id TEXT NOT NULL REFERENCES objectives(id),
	value REAL NOT NULL,
	source TEXT NOT NULL,
	confidence REAL NOT NULL,
	recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_objective_recorded ON metric_snapshots(objective_id, recorded_at);
`
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("create objectives schema: %w", err)
	}
	return nil
}

// InsertDrafts persists finalized wizard drafts as objective records and
// returns the new records in insertion order. New objectives start at zero
// current value and are classified accordingly.
func (s *Store) InsertDrafts(drafts []wizard.Draft, now time.Time) ([]Record, error) {
	if len(drafts) == 0 {
		return nil, fmt.Errorf("no drafts to insert")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	nowStr := now.UTC().Format(time.RFC3339)
	var records []Record

	for _, draft := range drafts {
		id := uuid.NewString()
		status := progress.ClassifyProgress(progress.Percent(draft.TargetValue, 0))

		var targetDate sql.NullString
		if draft.TargetDate != nil {
			targetDate = sql.NullString{String: draft.TargetDate.UTC().Format(time.RFC3339), Valid: true}
		}

		_, err := tx.Exec(`
			INSERT INTO objectives (id, title, description, target_value, current_value,
			                        target_date, priority, granularity, metric_type, platform,
			                        status, confidence, created_at, updated_at)
			VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?, 0.5, ?, ?)
		`, id, draft.Title, draft.Description, draft.TargetValue,
			targetDate, draft.Priority, string(draft.Granularity), draft.MetricType, draft.Platform,
			string(status), nowStr, nowStr)
		if err != nil {
			return nil, fmt.Errorf("insert objective %q: %w", draft.Title, err)
		}

		rec := Record{
			ID:          id,
			Title:       draft.Title,
			Description: draft.Description,
			TargetValue: draft.TargetValue,
			TargetDate:  draft.TargetDate,
			Priority:    draft.Priority,
			Granularity: string(draft.Granularity),
			MetricType:  draft.MetricType,
			Platform:    draft.Platform,
			Status:      status,
			Confidence:  0.5,
			CreatedAt:   now.UTC(),
			UpdatedAt:   now.UTC(),
			Derived:     s.engine.ComputeDerived(draft.TargetValue, 0, draft.TargetDate, now),
		}
		records = append(records, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return records, nil
}

// RecordSnapshot appends a metric snapshot and refreshes the objective's
// stored current value, status, and confidence from it. Prior snapshots are
// never touched.
func (s *Store) RecordSnapshot(objectiveID string, value float64, source string, confidence float64, at time.Time) (*Snapshot, error) {
	var targetValue float64
	err := s.db.QueryRow("SELECT target_value FROM objectives WHERE id = ?", objectiveID).Scan(&targetValue)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("objective not found: %s", objectiveID)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup objective: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	snap := Snapshot{
		ID:          uuid.NewString(),
		ObjectiveID: objectiveID,
		Value:       value,
		Source:      source,
		Confidence:  confidence,
		RecordedAt:  at.UTC(),
	}

	_, err = tx.Exec(`
		INSERT INTO metric_snapshots (id, objective_id, value, source, confidence, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.ObjectiveID, snap.Value, snap.Source, snap.Confidence, snap.RecordedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	status := progress.ClassifyProgress(progress.Percent(targetValue, value))
	_, err = tx.Exec(`
		UPDATE objectives
		SET current_value = ?, status = ?, confidence = ?, updated_at = ?
		WHERE id = ?
	`, value, string(status), confidence, at.UTC().Format(time.RFC3339), objectiveID)
	if err != nil {
		return nil, fmt.Errorf("update objective: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &snap, nil
}

// Get retrieves one objective with derived values computed for now.
func (s *Store) Get(id string, now time.Time) (*Record, error) {
	row := s.db.QueryRow(selectObjectives+" WHERE id = ?", id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("objective not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get objective: %w", err)
	}
	rec.Derived = s.engine.ComputeDerived(rec.TargetValue, rec.CurrentValue, rec.TargetDate, now)
	return rec, nil
}

// List returns all objectives ordered by priority then creation time, each
// with derived values freshly computed for now.
func (s *Store) List(now time.Time) ([]Record, error) {
	rows, err := s.db.Query(selectObjectives + " ORDER BY priority ASC, created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("query objectives: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan objective: %w", err)
		}
		rec.Derived = s.engine.ComputeDerived(rec.TargetValue, rec.CurrentValue, rec.TargetDate, now)
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate objectives: %w", err)
	}
	return records, nil
}

// Snapshots returns an objective's snapshots, newest first.
func (s *Store) Snapshots(objectiveID string) ([]Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT id, objective_id, value, source, confidence, recorded_at
		FROM metric_snapshots
		WHERE objective_id = ?
		ORDER BY recorded_at DESC, id DESC
	`, objectiveID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var recordedAt string
		if err := rows.Scan(&snap.ID, &snap.ObjectiveID, &snap.Value, &snap.Source, &snap.Confidence, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

const selectObjectives = `
	SELECT id, title, description, target_value, current_value, target_date,
	       priority, granularity, metric_type, platform, status, confidence,
	       created_at, updated_at
	FROM objectives`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var description, targetDate, platform sql.NullString
	var status, createdAt, updatedAt string

	err := row.Scan(
		&rec.ID, &rec.Title, &description, &rec.TargetValue, &rec.CurrentValue,
		&targetDate, &rec.Priority, &rec.Granularity, &rec.MetricType, &platform,
		&status, &rec.Confidence, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		rec.Description = description.String
	}
	if platform.Valid {
		rec.Platform = platform.String
	}
	if targetDate.Valid {
		t, parseErr := time.Parse(time.RFC3339, targetDate.String)
		if parseErr == nil {
			rec.TargetDate = &t
		}
	}
	rec.Status = progress.Status(status)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &rec, nil
}
