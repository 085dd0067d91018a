package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists turn audit records in PostgreSQL, for deployments
// that want the quality-review trail to survive process restarts.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS turn_audit_records (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			emotion_label TEXT NOT NULL,
			emotion_confidence DOUBLE PRECISION NOT NULL,
			response_source TEXT NOT NULL,
			audio_present BOOLEAN NOT NULL DEFAULT FALSE,
			warnings TEXT NOT NULL DEFAULT '',
			total_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_turn_audit_session_created ON turn_audit_records (session_id, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) SaveTurn(ctx context.Context, record Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO turn_audit_records
			(id, session_id, emotion_label, emotion_confidence, response_source, audio_present, warnings, total_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID,
		record.SessionID,
		record.EmotionLabel,
		record.EmotionConfidence,
		record.ResponseSource,
		record.AudioPresent,
		strings.Join(record.Warnings, ","),
		record.TotalMS,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save turn audit record: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecentBySession(ctx context.Context, sessionID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, emotion_label, emotion_confidence, response_source, audio_present, warnings, total_ms, created_at
		 FROM turn_audit_records WHERE session_id=$1 ORDER BY created_at DESC LIMIT $2`,
		sessionID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent audit records: %w", err)
	}
	defer rows.Close()

	items := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		var warnings string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.EmotionLabel, &r.EmotionConfidence, &r.ResponseSource, &r.AudioPresent, &warnings, &r.TotalMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		if warnings != "" {
			r.Warnings = strings.Split(warnings, ",")
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit rows: %w", err)
	}

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	return items, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
