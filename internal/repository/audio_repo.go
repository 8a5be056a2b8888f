package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/echoplay/server/internal/domain"
)

type audioRepository struct {
	db DB
}

// NewAudioRepository creates an audio repository backed by PostgreSQL.
func NewAudioRepository(db DB) AudioRepository {
	return &audioRepository{db: db}
}

// audioSelect loads the audio row plus its owner set and play count in a
// single round trip. Owner sets are always read fresh, never cached.
const audioSelect = `
	SELECT a.id, a.title, a.duration_secs, a.release_date, a.file_name,
	       a.is_private, a.is_podcast, a.image_url, a.created_at, a.updated_at,
	       COALESCE((SELECT array_agg(o.user_id::text) FROM audio_owners o WHERE o.audio_id = a.id), '{}'),
	       (SELECT COUNT(*) FROM listens l WHERE l.audio_id = a.id)
	FROM audios a
`

func scanAudio(row pgx.Row) (*domain.Audio, error) {
	var a domain.Audio
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.DurationSec,
		&a.ReleaseDate,
		&a.FileName,
		&a.IsPrivate,
		&a.IsPodcast,
		&a.ImageURL,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.OwnerIDList,
		&a.PlayCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAudioNotFound
		}
		return nil, err
	}
	return &a, nil
}

func collectAudios(rows pgx.Rows) ([]*domain.Audio, error) {
	defer rows.Close()
	var audios []*domain.Audio
	for rows.Next() {
		a, err := scanAudio(rows)
		if err != nil {
			return nil, err
		}
		audios = append(audios, a)
	}
	return audios, rows.Err()
}

// Create inserts the audio row and its initial owner edges atomically so a
// created audio is never observable without owners.
func (r *audioRepository) Create(ctx context.Context, audio *domain.Audio, ownerIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO audios (id, title, duration_secs, release_date, file_name, is_private, is_podcast, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		audio.ID,
		audio.Title,
		audio.DurationSec,
		audio.ReleaseDate,
		audio.FileName,
		audio.IsPrivate,
		audio.IsPodcast,
		audio.ImageURL,
		audio.CreatedAt,
		audio.UpdatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO audio_owners (audio_id, user_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`, audio.ID, ownerIDs)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *audioRepository) GetByID(ctx context.Context, id string) (*domain.Audio, error) {
	row := r.db.QueryRow(ctx, audioSelect+` WHERE a.id = $1`, id)
	return scanAudio(row)
}

func (r *audioRepository) Update(ctx context.Context, audio *domain.Audio) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE audios
		SET title = $2, duration_secs = $3, release_date = $4, is_private = $5, image_url = $6, updated_at = $7
		WHERE id = $1
	`,
		audio.ID,
		audio.Title,
		audio.DurationSec,
		audio.ReleaseDate,
		audio.IsPrivate,
		audio.ImageURL,
		audio.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAudioNotFound
	}
	return nil
}

func (r *audioRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM audios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAudioNotFound
	}
	return nil
}

// ReplaceOwners reconciles the owner set to exactly ownerIDs. Disconnect
// runs before connect, both inside one transaction, so concurrent readers
// never observe a half-applied set.
func (r *audioRepository) ReplaceOwners(ctx context.Context, audioID string, ownerIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM audio_owners
		WHERE audio_id = $1 AND user_id != ALL($2::uuid[])
	`, audioID, ownerIDs)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO audio_owners (audio_id, user_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`, audioID, ownerIDs)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *audioRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Audio, error) {
	rows, err := r.db.Query(ctx, audioSelect+`
		WHERE EXISTS (SELECT 1 FROM audio_owners o WHERE o.audio_id = a.id AND o.user_id = $1)
		ORDER BY a.release_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectAudios(rows)
}

func (r *audioRepository) ListFileNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT file_name FROM audios`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Discover ranks candidates by tag overlap. The visibility predicate sits
// inside the query so private audio never enters the ranking at all.
func (r *audioRepository) Discover(ctx context.Context, p domain.Principal, n int, tagIDs []string) ([]*domain.Audio, error) {
	rows, err := r.db.Query(ctx, audioSelect+`
		JOIN audio_tags t ON t.audio_id = a.id AND t.tag_id = ANY($1::uuid[])
		WHERE NOT a.is_private
		   OR $3
		   OR EXISTS (SELECT 1 FROM audio_owners o WHERE o.audio_id = a.id AND o.user_id::text = $2)
		GROUP BY a.id
		ORDER BY COUNT(t.tag_id) DESC, a.release_date DESC
		LIMIT $4
	`, tagIDs, p.ID, p.Admin, n)
	if err != nil {
		return nil, err
	}
	return collectAudios(rows)
}
