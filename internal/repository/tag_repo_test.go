package repository

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/server/internal/domain"
)

func newTagRepoMock(t *testing.T) (TagRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewTagRepository(mock), mock
}

func TestGetInNamespace(t *testing.T) {
	repo, mock := newTagRepoMock(t)

	mock.ExpectQuery(`SELECT id, label, namespace FROM tags WHERE id = \$1 AND namespace = \$2`).
		WithArgs("t1", "song").
		WillReturnRows(pgxmock.NewRows([]string{"id", "label", "namespace"}).
			AddRow("t1", "rock", domain.NamespaceSong))

	tag, err := repo.GetInNamespace(context.Background(), "t1", domain.NamespaceSong)
	require.NoError(t, err)
	assert.Equal(t, "rock", tag.Label)
}

func TestGetInNamespaceWrongNamespace(t *testing.T) {
	repo, mock := newTagRepoMock(t)

	// A tag living in the other namespace matches no row.
	mock.ExpectQuery(`SELECT id, label, namespace FROM tags`).
		WithArgs("podcast-tag", "song").
		WillReturnRows(pgxmock.NewRows([]string{"id", "label", "namespace"}))

	_, err := repo.GetInNamespace(context.Background(), "podcast-tag", domain.NamespaceSong)
	assert.ErrorIs(t, err, domain.ErrInvalidTag)
}

func TestTagsOfAudiosGroupsByAudio(t *testing.T) {
	repo, mock := newTagRepoMock(t)

	mock.ExpectQuery(`SELECT at\.audio_id::text, t\.id, t\.label, t\.namespace`).
		WithArgs([]string{"a1", "a2"}).
		WillReturnRows(pgxmock.NewRows([]string{"audio_id", "id", "label", "namespace"}).
			AddRow("a1", "t1", "jazz", domain.NamespaceSong).
			AddRow("a1", "t2", "rock", domain.NamespaceSong).
			AddRow("a2", "t2", "rock", domain.NamespaceSong))

	byAudio, err := repo.TagsOfAudios(context.Background(), []string{"a1", "a2"})
	require.NoError(t, err)
	assert.Len(t, byAudio["a1"], 2)
	assert.Len(t, byAudio["a2"], 1)
	assert.Equal(t, "rock", byAudio["a2"][0].Label)
}

func TestTagsOfAudiosEmptyInput(t *testing.T) {
	repo, _ := newTagRepoMock(t)

	// No ids means no query at all.
	byAudio, err := repo.TagsOfAudios(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, byAudio)
}
