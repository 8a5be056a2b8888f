package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/echoplay/server/internal/domain"
)

type tagRepository struct {
	db DB
}

// NewTagRepository creates a tag repository backed by PostgreSQL.
func NewTagRepository(db DB) TagRepository {
	return &tagRepository{db: db}
}

func collectTags(rows pgx.Rows) ([]*domain.Tag, error) {
	defer rows.Close()
	var tags []*domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Label, &t.Namespace); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	return tags, rows.Err()
}

func (r *tagRepository) ListAll(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, label, namespace FROM tags ORDER BY namespace, label`,
	)
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

func (r *tagRepository) ListByNamespace(ctx context.Context, ns domain.TagNamespace) ([]*domain.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, label, namespace FROM tags WHERE namespace = $1 ORDER BY label`,
		string(ns),
	)
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

// GetInNamespace resolves a tag id within one namespace. A tag that exists
// only in the other namespace is indistinguishable from a missing one:
// both are ErrInvalidTag.
func (r *tagRepository) GetInNamespace(ctx context.Context, tagID string, ns domain.TagNamespace) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.QueryRow(ctx,
		`SELECT id, label, namespace FROM tags WHERE id = $1 AND namespace = $2`,
		tagID, string(ns),
	).Scan(&t.ID, &t.Label, &t.Namespace)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidTag
		}
		return nil, err
	}
	return &t, nil
}

func (r *tagRepository) TagsOfAudio(ctx context.Context, audioID string) ([]*domain.Tag, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.label, t.namespace
		FROM tags t
		JOIN audio_tags at ON at.tag_id = t.id
		WHERE at.audio_id = $1
		ORDER BY t.label
	`, audioID)
	if err != nil {
		return nil, err
	}
	return collectTags(rows)
}

func (r *tagRepository) TagsOfAudios(ctx context.Context, audioIDs []string) (map[string][]*domain.Tag, error) {
	result := make(map[string][]*domain.Tag, len(audioIDs))
	if len(audioIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT at.audio_id::text, t.id, t.label, t.namespace
		FROM tags t
		JOIN audio_tags at ON at.tag_id = t.id
		WHERE at.audio_id = ANY($1::uuid[])
		ORDER BY t.label
	`, audioIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var audioID string
		var t domain.Tag
		if err := rows.Scan(&audioID, &t.ID, &t.Label, &t.Namespace); err != nil {
			return nil, err
		}
		result[audioID] = append(result[audioID], &t)
	}
	return result, rows.Err()
}

func (r *tagRepository) Link(ctx context.Context, audioID, tagID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audio_tags (audio_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, audioID, tagID)
	return err
}

func (r *tagRepository) Unlink(ctx context.Context, audioID, tagID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM audio_tags WHERE audio_id = $1 AND tag_id = $2`,
		audioID, tagID,
	)
	return err
}
