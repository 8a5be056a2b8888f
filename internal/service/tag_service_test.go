package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/pkg/logger"
)

func newTagService(tagRepo *mockTagRepo, audioRepo *mockAudioRepo) *TagService {
	return NewTagService(tagRepo, audioRepo, logger.Discard())
}

func TestTagLinkEnforcesNamespace(t *testing.T) {
	tagRepo := new(mockTagRepo)
	audioRepo := new(mockAudioRepo)
	svc := newTagService(tagRepo, audioRepo)

	podcast := &domain.Audio{ID: "a1", Title: "Episode", IsPodcast: true, OwnerIDList: []string{"u1"}}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(podcast, nil)

	// The lookup is scoped to the podcast namespace; a song tag id is
	// indistinguishable from a missing one.
	tagRepo.On("GetInNamespace", mock.Anything, "song-tag", domain.NamespacePodcast).Return(nil, domain.ErrInvalidTag)

	err := svc.Link(context.Background(), domain.Principal{ID: "u1"}, "a1", "song-tag")
	assert.ErrorIs(t, err, domain.ErrInvalidTag)
}

func TestTagLink(t *testing.T) {
	tagRepo := new(mockTagRepo)
	audioRepo := new(mockAudioRepo)
	svc := newTagService(tagRepo, audioRepo)

	song := &domain.Audio{ID: "a1", Title: "Song", OwnerIDList: []string{"u1"}}
	tag := &domain.Tag{ID: "t1", Label: "rock", Namespace: domain.NamespaceSong}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(song, nil)
	tagRepo.On("GetInNamespace", mock.Anything, "t1", domain.NamespaceSong).Return(tag, nil)
	tagRepo.On("Link", mock.Anything, "a1", "t1").Return(nil)

	assert.NoError(t, svc.Link(context.Background(), domain.Principal{ID: "u1"}, "a1", "t1"))
}

func TestTagLinkRequiresOwnership(t *testing.T) {
	tagRepo := new(mockTagRepo)
	audioRepo := new(mockAudioRepo)
	svc := newTagService(tagRepo, audioRepo)

	song := &domain.Audio{ID: "a1", Title: "Song", OwnerIDList: []string{"owner"}}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(song, nil)

	err := svc.Link(context.Background(), domain.Principal{ID: "stranger"}, "a1", "t1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTagsOfAudioRespectsVisibility(t *testing.T) {
	tagRepo := new(mockTagRepo)
	audioRepo := new(mockAudioRepo)
	svc := newTagService(tagRepo, audioRepo)

	hidden := &domain.Audio{ID: "a1", Title: "Hidden", IsPrivate: true, OwnerIDList: []string{"owner"}}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(hidden, nil)

	_, err := svc.TagsOfAudio(context.Background(), domain.Principal{}, "a1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTagsOfAudiosSkipsHiddenAndMissing(t *testing.T) {
	tagRepo := new(mockTagRepo)
	audioRepo := new(mockAudioRepo)
	svc := newTagService(tagRepo, audioRepo)

	public := &domain.Audio{ID: "a1", Title: "Public"}
	hidden := &domain.Audio{ID: "a2", Title: "Hidden", IsPrivate: true, OwnerIDList: []string{"owner"}}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(public, nil)
	audioRepo.On("GetByID", mock.Anything, "a2").Return(hidden, nil)
	audioRepo.On("GetByID", mock.Anything, "gone").Return(nil, domain.ErrAudioNotFound)

	tags := map[string][]*domain.Tag{
		"a1": {{ID: "t1", Label: "rock", Namespace: domain.NamespaceSong}},
	}
	tagRepo.On("TagsOfAudios", mock.Anything, []string{"a1"}).Return(tags, nil)

	got, err := svc.TagsOfAudios(context.Background(), domain.Principal{ID: "viewer"}, []string{"a1", "a2", "gone"})
	assert.NoError(t, err)
	assert.Equal(t, tags, got)
}

func TestTagsOfAudiosNoneVisible(t *testing.T) {
	tagRepo := new(mockTagRepo)
	audioRepo := new(mockAudioRepo)
	svc := newTagService(tagRepo, audioRepo)

	hidden := &domain.Audio{ID: "a1", Title: "Hidden", IsPrivate: true, OwnerIDList: []string{"owner"}}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(hidden, nil)

	got, err := svc.TagsOfAudios(context.Background(), domain.Principal{}, []string{"a1"})
	assert.NoError(t, err)
	assert.Empty(t, got)
	tagRepo.AssertNotCalled(t, "TagsOfAudios", mock.Anything, mock.Anything)
}
