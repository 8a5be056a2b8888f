package repository

import (
	"context"

	"github.com/echoplay/server/internal/domain"
)

type listenRepository struct {
	db DB
}

// NewListenRepository creates a listen-event repository backed by PostgreSQL.
// The listens table is append-only; there are no update or delete paths.
func NewListenRepository(db DB) ListenRepository {
	return &listenRepository{db: db}
}

func (r *listenRepository) Create(ctx context.Context, listen *domain.Listen) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO listens (user_id, audio_id, listened_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, listen.UserID, listen.AudioID, listen.ListenedAt).Scan(&listen.ID)
}

// RecentAudioIDs returns the audio ids behind the user's n most recent
// listens, newest first. The serial id breaks timestamp ties in insertion
// order. An audio listened to twice inside the window appears once.
func (r *listenRepository) RecentAudioIDs(ctx context.Context, userID string, n int) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT audio_id::text
		FROM (
			SELECT audio_id
			FROM listens
			WHERE user_id = $1
			ORDER BY listened_at DESC, id DESC
			LIMIT $2
		) recent
	`, userID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *listenRepository) PlayCount(ctx context.Context, audioID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM listens WHERE audio_id = $1`,
		audioID,
	).Scan(&count)
	return count, err
}

func (r *listenRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM listens WHERE user_id = $1`,
		userID,
	).Scan(&count)
	return count, err
}
