package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/metrics"
)

// Profile kinds stored in the profiles table.
const (
	kindCognitive = "cognitive"
	kindEmotional = "emotional"
)

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY,
	child_id   TEXT NOT NULL,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessments_child ON assessments(child_id);

CREATE TABLE IF NOT EXISTS profiles (
	child_id   TEXT NOT NULL,
	kind       TEXT NOT NULL,
	version    INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (child_id, kind)
);

CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	child_id   TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS family_contexts (
	child_id   TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS context_multipliers (
	child_id   TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS mosaics (
	child_id   TEXT NOT NULL,
	version    INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (child_id, version)
);
`

// SQLiteStore is the durable Store implementation backed by a single
// SQLite file. Payloads are stored as JSON; version columns back the
// optimistic profile writes.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies the
// schema. The parent directory is created when missing.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func nowUTC() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// SaveAssessment implements Store.
func (s *SQLiteStore) SaveAssessment(ctx context.Context, a model.CognitiveAssessment) error {
	defer s.observe(time.Now())
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (id, child_id, payload, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		a.ID, a.ChildID, string(payload), nowUTC())
	return err
}

// Assessment implements Store.
func (s *SQLiteStore) Assessment(ctx context.Context, id string) (model.CognitiveAssessment, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM assessments WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CognitiveAssessment{}, ErrNotFound
	}
	if err != nil {
		return model.CognitiveAssessment{}, err
	}
	var a model.CognitiveAssessment
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return model.CognitiveAssessment{}, fmt.Errorf("unmarshal assessment: %w", err)
	}
	return a, nil
}

// CognitiveProfile implements Store.
func (s *SQLiteStore) CognitiveProfile(ctx context.Context, childID string) (model.CognitiveProfile, error) {
	var p model.CognitiveProfile
	if err := s.loadProfile(ctx, childID, kindCognitive, &p); err != nil {
		return model.CognitiveProfile{}, err
	}
	return p, nil
}

// SaveCognitiveProfile implements Store.
func (s *SQLiteStore) SaveCognitiveProfile(ctx context.Context, p model.CognitiveProfile) (model.CognitiveProfile, error) {
	next := p
	next.Version++
	if err := s.saveProfile(ctx, p.ChildID, kindCognitive, p.Version, next); err != nil {
		return model.CognitiveProfile{}, err
	}
	return next, nil
}

// EmotionalProfile implements Store.
func (s *SQLiteStore) EmotionalProfile(ctx context.Context, childID string) (model.EmotionalProfile, error) {
	var p model.EmotionalProfile
	if err := s.loadProfile(ctx, childID, kindEmotional, &p); err != nil {
		return model.EmotionalProfile{}, err
	}
	return p, nil
}

// SaveEmotionalProfile implements Store.
func (s *SQLiteStore) SaveEmotionalProfile(ctx context.Context, p model.EmotionalProfile) (model.EmotionalProfile, error) {
	next := p
	next.Version++
	if err := s.saveProfile(ctx, p.ChildID, kindEmotional, p.Version, next); err != nil {
		return model.EmotionalProfile{}, err
	}
	return next, nil
}

func (s *SQLiteStore) loadProfile(ctx context.Context, childID, kind string, out any) error {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM profiles WHERE child_id = ? AND kind = ?`, childID, kind).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("unmarshal %s profile: %w", kind, err)
	}
	return nil
}

// saveProfile writes the bumped profile only when the stored version
// still equals the version the caller read.
func (s *SQLiteStore) saveProfile(ctx context.Context, childID, kind string, readVersion int64, next any) error {
	defer s.observe(time.Now())
	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal %s profile: %w", kind, err)
	}

	if readVersion == 0 {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO profiles (child_id, kind, version, payload, updated_at) VALUES (?, ?, 1, ?, ?)`,
			childID, kind, string(payload), nowUTC())
		if err != nil {
			// Unique constraint means someone inserted first.
			metrics.RecordStoreConflict(kind + "_profile")
			return ErrVersionConflict
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET version = ?, payload = ?, updated_at = ?
		WHERE child_id = ? AND kind = ? AND version = ?`,
		readVersion+1, string(payload), nowUTC(), childID, kind, readVersion)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		metrics.RecordStoreConflict(kind + "_profile")
		return ErrVersionConflict
	}
	return nil
}

// SaveSession implements Store.
func (s *SQLiteStore) SaveSession(ctx context.Context, session model.ScenarioSession) error {
	defer s.observe(time.Now())
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, child_id, payload, created_at) VALUES (?, ?, ?, ?)`,
		session.SessionID, session.ChildID, string(payload), nowUTC())
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateSession, session.SessionID)
	}
	return nil
}

// SaveFamilyContext implements Store.
func (s *SQLiteStore) SaveFamilyContext(ctx context.Context, fc model.FamilyContext) error {
	payload, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal family context: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO family_contexts (child_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(child_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		fc.ChildID, string(payload), nowUTC())
	return err
}

// FamilyContext implements Store.
func (s *SQLiteStore) FamilyContext(ctx context.Context, childID string) (model.FamilyContext, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM family_contexts WHERE child_id = ?`, childID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FamilyContext{}, ErrNotFound
	}
	if err != nil {
		return model.FamilyContext{}, err
	}
	var fc model.FamilyContext
	if err := json.Unmarshal([]byte(payload), &fc); err != nil {
		return model.FamilyContext{}, fmt.Errorf("unmarshal family context: %w", err)
	}
	return fc, nil
}

// DeleteFamilyContext implements Store.
func (s *SQLiteStore) DeleteFamilyContext(ctx context.Context, childID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM family_contexts WHERE child_id = ?`, childID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM context_multipliers WHERE child_id = ?`, childID)
	return err
}

// SaveContextMultiplier implements Store.
func (s *SQLiteStore) SaveContextMultiplier(ctx context.Context, m model.ContextMultiplier) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal multiplier: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO context_multipliers (child_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(child_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		m.ChildID, string(payload), nowUTC())
	return err
}

// ContextMultiplier implements Store.
func (s *SQLiteStore) ContextMultiplier(ctx context.Context, childID string) (model.ContextMultiplier, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM context_multipliers WHERE child_id = ?`, childID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContextMultiplier{}, ErrNotFound
	}
	if err != nil {
		return model.ContextMultiplier{}, err
	}
	var m model.ContextMultiplier
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return model.ContextMultiplier{}, fmt.Errorf("unmarshal multiplier: %w", err)
	}
	return m, nil
}

// SaveMosaic implements Store.
func (s *SQLiteStore) SaveMosaic(ctx context.Context, a model.MosaicAssessment) error {
	defer s.observe(time.Now())
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal mosaic: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO mosaics (child_id, version, payload, created_at) VALUES (?, ?, ?, ?)`,
		a.ChildID, a.Version, string(payload), nowUTC())
	if err != nil {
		// Unique constraint on (child_id, version) means a concurrent
		// generation allocated the same version.
		metrics.RecordStoreConflict("mosaic")
		return ErrVersionConflict
	}
	return nil
}

// LatestMosaic implements Store.
func (s *SQLiteStore) LatestMosaic(ctx context.Context, childID string) (model.MosaicAssessment, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM mosaics WHERE child_id = ?
		ORDER BY version DESC LIMIT 1`, childID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MosaicAssessment{}, ErrNotFound
	}
	if err != nil {
		return model.MosaicAssessment{}, err
	}
	var a model.MosaicAssessment
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return model.MosaicAssessment{}, fmt.Errorf("unmarshal mosaic: %w", err)
	}
	return a, nil
}

// MosaicHistory implements Store.
func (s *SQLiteStore) MosaicHistory(ctx context.Context, childID string) ([]model.MosaicAssessment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM mosaics WHERE child_id = ? ORDER BY version DESC`, childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MosaicAssessment
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var a model.MosaicAssessment
		if err := json.Unmarshal([]byte(payload), &a); err != nil {
			return nil, fmt.Errorf("unmarshal mosaic: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// NextMosaicVersion implements Store.
func (s *SQLiteStore) NextMosaicVersion(ctx context.Context, childID string) (int, error) {
	var maxVersion sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM mosaics WHERE child_id = ?`, childID).Scan(&maxVersion)
	if err != nil {
		return 0, err
	}
	return int(maxVersion.Int64) + 1, nil
}

// Counts implements Store.
func (s *SQLiteStore) Counts(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT child_id) FROM profiles`).Scan(&st.Children); err != nil {
		return Stats{}, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&st.Assessments); err != nil {
		return Stats{}, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&st.Sessions); err != nil {
		return Stats{}, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mosaics`).Scan(&st.Mosaics); err != nil {
		return Stats{}, err
	}
	return st, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) observe(start time.Time) {
	metrics.RecordStoreLatency(float64(time.Since(start).Milliseconds()))
}
