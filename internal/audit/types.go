package audit

import (
	"context"
	"time"
)

// Record is a quality-signal summary of one completed turn. It deliberately
// excludes raw user and response text: this trail is for monitoring
// emotion/quality drift, not transcript storage.
type Record struct {
	ID                string    `json:"id"`
	SessionID         string    `json:"session_id"`
	CreatedAt         time.Time `json:"created_at"`
	EmotionLabel      string    `json:"emotion_label"`
	EmotionConfidence float64   `json:"emotion_confidence"`
	ResponseSource    string    `json:"response_source"`
	AudioPresent      bool      `json:"audio_present"`
	Warnings          []string  `json:"warnings"`
	TotalMS           float64   `json:"total_ms"`
}

// Store persists and retrieves turn audit records.
type Store interface {
	SaveTurn(ctx context.Context, record Record) error
	RecentBySession(ctx context.Context, sessionID string, limit int) ([]Record, error)
	Close() error
}
