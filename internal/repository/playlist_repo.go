package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/echoplay/server/internal/domain"
)

type playlistRepository struct {
	db DB
}

// NewPlaylistRepository creates a playlist repository backed by PostgreSQL.
func NewPlaylistRepository(db DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

const playlistSelect = `
	SELECT p.id, p.name, p.description, p.is_private, p.is_album, p.kind,
	       p.image_url, p.created_at, p.updated_at,
	       COALESCE((SELECT array_agg(o.user_id::text) FROM playlist_owners o WHERE o.playlist_id = p.id), '{}'),
	       (SELECT COUNT(*) FROM playlist_followers f WHERE f.playlist_id = p.id)
	FROM playlists p
`

func scanPlaylist(row pgx.Row) (*domain.Playlist, error) {
	var p domain.Playlist
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.IsPrivate,
		&p.IsAlbum,
		&p.Kind,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.OwnerIDList,
		&p.Followers,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlaylistNotFound
		}
		return nil, err
	}
	return &p, nil
}

func collectPlaylists(rows pgx.Rows) ([]*domain.Playlist, error) {
	defer rows.Close()
	var playlists []*domain.Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist, ownerID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO playlists (id, name, description, is_private, is_album, kind, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		playlist.ID,
		playlist.Name,
		playlist.Description,
		playlist.IsPrivate,
		playlist.IsAlbum,
		playlist.Kind,
		playlist.ImageURL,
		playlist.CreatedAt,
		playlist.UpdatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO playlist_owners (playlist_id, user_id) VALUES ($1, $2)`,
		playlist.ID, ownerID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *playlistRepository) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	row := r.db.QueryRow(ctx, playlistSelect+` WHERE p.id = $1`, id)
	return scanPlaylist(row)
}

func (r *playlistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE playlists
		SET name = $2, description = $3, is_private = $4, image_url = $5, updated_at = $6
		WHERE id = $1
	`,
		playlist.ID,
		playlist.Name,
		playlist.Description,
		playlist.IsPrivate,
		playlist.ImageURL,
		playlist.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

func (r *playlistRepository) ReplaceOwners(ctx context.Context, playlistID string, ownerIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM playlist_owners
		WHERE playlist_id = $1 AND user_id != ALL($2::uuid[])
	`, playlistID, ownerIDs)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO playlist_owners (playlist_id, user_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`, playlistID, ownerIDs)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AddAudio inserts the membership edge and the updated_at bump as one
// transaction. A duplicate edge leaves the playlist untouched.
func (r *playlistRepository) AddAudio(ctx context.Context, playlistID, audioID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO playlist_audios (playlist_id, audio_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, playlistID, audioID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE playlists SET updated_at = $2 WHERE id = $1`,
			playlistID, time.Now(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// RemoveAudio deletes the edge and bumps updated_at atomically. Removing an
// audio that was never a member reports ErrAudioNotInPlaylist and does not
// touch updated_at.
func (r *playlistRepository) RemoveAudio(ctx context.Context, playlistID, audioID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM playlist_audios WHERE playlist_id = $1 AND audio_id = $2`,
		playlistID, audioID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAudioNotInPlaylist
	}

	_, err = tx.Exec(ctx,
		`UPDATE playlists SET updated_at = $2 WHERE id = $1`,
		playlistID, time.Now(),
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *playlistRepository) ListAudios(ctx context.Context, playlistID string) ([]*domain.Audio, error) {
	rows, err := r.db.Query(ctx, audioSelect+`
		JOIN playlist_audios m ON m.audio_id = a.id
		WHERE m.playlist_id = $1
		ORDER BY a.title ASC
	`, playlistID)
	if err != nil {
		return nil, err
	}
	return collectAudios(rows)
}

func (r *playlistRepository) Follow(ctx context.Context, playlistID, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO playlist_followers (playlist_id, user_id, last_listened_at)
		VALUES ($1, $2, NOW())
	`, playlistID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

func (r *playlistRepository) Unfollow(ctx context.Context, playlistID, userID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM playlist_followers WHERE playlist_id = $1 AND user_id = $2`,
		playlistID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFollowing
	}
	return nil
}

func (r *playlistRepository) TouchFollower(ctx context.Context, playlistID, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE playlist_followers SET last_listened_at = NOW()
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	return err
}

func (r *playlistRepository) ListFollowed(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	rows, err := r.db.Query(ctx, playlistSelect+`
		JOIN playlist_followers f ON f.playlist_id = p.id
		WHERE f.user_id = $1
		ORDER BY f.last_listened_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectPlaylists(rows)
}

func (r *playlistRepository) ListOwned(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	rows, err := r.db.Query(ctx, playlistSelect+`
		WHERE EXISTS (SELECT 1 FROM playlist_owners o WHERE o.playlist_id = p.id AND o.user_id = $1)
		ORDER BY p.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectPlaylists(rows)
}
