// Package store persists parsed analytics records in SQLite, keyed by a
// generated upload ID, so dashboards can re-fetch a parse on return visits
// without re-uploading the export.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"

	_ "modernc.org/sqlite"
)

// ErrNotFound indicates no upload exists for the given file ID.
var ErrNotFound = errors.New("upload not found")

// Schema for the uploads table, applied on Open.
const Schema = `
CREATE TABLE IF NOT EXISTS uploads (
	file_id     TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	uploaded_at INTEGER NOT NULL,
	record_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_uploads_time ON uploads(uploaded_at);
`

// Store persists parsed records to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the uploads database at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a parsed record and returns its generated file ID.
func (s *Store) Save(ctx context.Context, filename string, rec *models.AnalyticsRecord) (string, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO uploads (file_id, filename, uploaded_at, record_json)
		VALUES (?, ?, ?, ?)
	`, id, filename, time.Now().Unix(), string(payload))
	if err != nil {
		return "", fmt.Errorf("insert upload: %w", err)
	}
	return id, nil
}

// Get returns the stored record for a file ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, fileID string) (*models.AnalyticsRecord, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT record_json FROM uploads WHERE file_id = ?
	`, fileID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	var rec models.AnalyticsRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &rec, nil
}

// Upload summarizes one stored upload.
type Upload struct {
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// List returns stored uploads, newest first.
func (s *Store) List(ctx context.Context) ([]Upload, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_id, filename, uploaded_at FROM uploads ORDER BY uploaded_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []Upload
	for rows.Next() {
		var u Upload
		var ts int64
		if err := rows.Scan(&u.FileID, &u.Filename, &ts); err != nil {
			return nil, err
		}
		u.UploadedAt = time.Unix(ts, 0).UTC()
		uploads = append(uploads, u)
	}
	return uploads, rows.Err()
}
