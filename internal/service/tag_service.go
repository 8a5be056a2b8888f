package service

import (
	"context"
	"errors"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/repository"
	"github.com/echoplay/server/pkg/logger"
)

// TagService owns the tag vocabulary and the audio-tag edges. Tags live
// in two disjoint namespaces, one for songs and one for podcasts; an
// audio only ever carries tags from its own namespace.
type TagService struct {
	tagRepo   repository.TagRepository
	audioRepo repository.AudioRepository
	log       logger.Logger
}

// NewTagService creates the tag service.
func NewTagService(tagRepo repository.TagRepository, audioRepo repository.AudioRepository, log logger.Logger) *TagService {
	return &TagService{
		tagRepo:   tagRepo,
		audioRepo: audioRepo,
		log:       log,
	}
}

// ListAll returns the whole tag vocabulary across both namespaces.
func (s *TagService) ListAll(ctx context.Context) ([]*domain.Tag, error) {
	return s.tagRepo.ListAll(ctx)
}

// ListByNamespace returns the vocabulary of one namespace.
func (s *TagService) ListByNamespace(ctx context.Context, ns domain.TagNamespace) ([]*domain.Tag, error) {
	return s.tagRepo.ListByNamespace(ctx, ns)
}

// TagsOfAudio returns the tags attached to one audio.
func (s *TagService) TagsOfAudio(ctx context.Context, p domain.Principal, audioID string) ([]*domain.Tag, error) {
	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(p, audio) {
		return nil, domain.ErrForbidden
	}
	return s.tagRepo.TagsOfAudio(ctx, audioID)
}

// TagsOfAudios returns the tags of several audios at once, keyed by
// audio id. Audios the principal cannot view, and ids that match
// nothing, are left out of the result rather than reported as errors.
func (s *TagService) TagsOfAudios(ctx context.Context, p domain.Principal, audioIDs []string) (map[string][]*domain.Tag, error) {
	visible := make([]string, 0, len(audioIDs))
	for _, id := range audioIDs {
		audio, err := s.audioRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrAudioNotFound) {
				continue
			}
			return nil, err
		}
		if domain.CanView(p, audio) {
			visible = append(visible, id)
		}
	}
	if len(visible) == 0 {
		return map[string][]*domain.Tag{}, nil
	}
	return s.tagRepo.TagsOfAudios(ctx, visible)
}

// Link attaches a tag to an audio. The tag must exist in the audio's own
// namespace; a song tag on a podcast (or the reverse) is rejected as
// ErrInvalidTag, indistinguishable from a missing tag. Re-linking an
// already attached tag is a no-op.
func (s *TagService) Link(ctx context.Context, p domain.Principal, audioID, tagID string) error {
	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return err
	}
	if !domain.CanMutate(p, audio) {
		return domain.ErrForbidden
	}

	if _, err := s.tagRepo.GetInNamespace(ctx, tagID, audio.Namespace()); err != nil {
		return err
	}
	return s.tagRepo.Link(ctx, audioID, tagID)
}

// Unlink detaches a tag from an audio. Detaching an absent edge is a
// no-op.
func (s *TagService) Unlink(ctx context.Context, p domain.Principal, audioID, tagID string) error {
	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return err
	}
	if !domain.CanMutate(p, audio) {
		return domain.ErrForbidden
	}
	return s.tagRepo.Unlink(ctx, audioID, tagID)
}
