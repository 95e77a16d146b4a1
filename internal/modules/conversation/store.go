// README: Conversation store backed by PostgreSQL.
package conversation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skybook/internal/sentiment"
	"skybook/internal/types"
)

// activePhases are the non-terminal phases; at most one record per user may
// be in one of them.
var activePhases = []string{string(PhaseCollecting), string(PhaseAwaitingFeedback)}

type PGStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// FindActive returns the user's record in a non-terminal phase, or ErrNotFound.
func (s *PGStore) FindActive(ctx context.Context, userID types.ID) (*Record, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, slots, phase, feedback_sentiment, feedback_text, created_at, updated_at
		FROM conversations
		WHERE user_id = $1 AND phase = ANY($2)
		ORDER BY created_at DESC
		LIMIT 1`,
		string(userID), activePhases,
	)
	return scanRecord(row)
}

// Create initializes a record with every slot absent and phase collecting.
func (s *PGStore) Create(ctx context.Context, userID types.ID) (*Record, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := &Record{
		ID:        newID(),
		UserID:    userID,
		Phase:     PhaseCollecting,
		CreatedAt: now,
		UpdatedAt: now,
	}
	slotsJSON, err := json.Marshal(rec.Slots)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO conversations (id, user_id, slots, phase, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(rec.ID), string(rec.UserID), slotsJSON, string(rec.Phase), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Save persists record mutations and refreshes UpdatedAt. The update is
// guarded by the previous updated_at value; a lost race surfaces as
// ErrConflict instead of silently overwriting a concurrent turn's write.
func (s *PGStore) Save(ctx context.Context, rec *Record) error {
	slotsJSON, err := json.Marshal(rec.Slots)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	// Postgres stores microseconds; keep updated_at strictly increasing so
	// the optimistic guard below can tell writes apart.
	if !now.After(rec.UpdatedAt) {
		now = rec.UpdatedAt.Add(time.Microsecond)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE conversations
		SET slots = $1,
		    phase = $2,
		    feedback_sentiment = $3,
		    feedback_text = $4,
		    updated_at = $5
		WHERE id = $6 AND updated_at = $7`,
		slotsJSON,
		string(rec.Phase),
		sentimentPtr(rec.FeedbackSentiment),
		rec.FeedbackText,
		now,
		string(rec.ID),
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrConflict
	}
	rec.UpdatedAt = now
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var slotsJSON []byte
	var fbSentiment, fbText *string

	err := row.Scan(&rec.ID, &rec.UserID, &slotsJSON, &rec.Phase, &fbSentiment, &fbText, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(slotsJSON, &rec.Slots); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	if fbSentiment != nil {
		label := sentiment.Label(*fbSentiment)
		rec.FeedbackSentiment = &label
	}
	rec.FeedbackText = fbText
	return &rec, nil
}

func sentimentPtr(l *sentiment.Label) *string {
	if l == nil {
		return nil
	}
	s := string(*l)
	return &s
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
