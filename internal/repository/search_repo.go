package repository

import (
	"context"

	"github.com/echoplay/server/internal/domain"
)

type searchRepository struct {
	db DB
}

// NewSearchRepository creates a search repository backed by PostgreSQL.
func NewSearchRepository(db DB) SearchRepository {
	return &searchRepository{db: db}
}

// SearchUsers matches display names case-insensitively. User profiles have
// no privacy flag, so there is no visibility predicate here.
func (r *searchRepository) SearchUsers(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE display_name ILIKE '%' || $1 || '%'
		ORDER BY display_name ASC
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.DisplayName,
			&u.PasswordHash,
			&u.IsAdmin,
			&u.ImageURL,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// SearchPlaylists matches playlist names, restricted to what the principal
// may see: public playlists plus their own, everything for admins. The
// predicate runs in bulk inside the query rather than per row.
func (r *searchRepository) SearchPlaylists(ctx context.Context, p domain.Principal, query string, album bool, limit int) ([]*domain.Playlist, error) {
	rows, err := r.db.Query(ctx, playlistSelect+`
		WHERE p.name ILIKE '%' || $1 || '%'
		  AND p.is_album = $2
		  AND (NOT p.is_private
		       OR $4
		       OR EXISTS (SELECT 1 FROM playlist_owners o WHERE o.playlist_id = p.id AND o.user_id::text = $3))
		ORDER BY p.name ASC
		LIMIT $5
	`, query, album, p.ID, p.Admin, limit)
	if err != nil {
		return nil, err
	}
	return collectPlaylists(rows)
}

// SearchAudios matches titles within one half of the catalog: songs when
// podcast is false, podcast episodes when true.
func (r *searchRepository) SearchAudios(ctx context.Context, p domain.Principal, query string, podcast bool, limit int) ([]*domain.Audio, error) {
	rows, err := r.db.Query(ctx, audioSelect+`
		WHERE a.title ILIKE '%' || $1 || '%'
		  AND a.is_podcast = $2
		  AND (NOT a.is_private
		       OR $4
		       OR EXISTS (SELECT 1 FROM audio_owners o WHERE o.audio_id = a.id AND o.user_id::text = $3))
		ORDER BY a.title ASC
		LIMIT $5
	`, query, podcast, p.ID, p.Admin, limit)
	if err != nil {
		return nil, err
	}
	return collectAudios(rows)
}
