package service

import (
	"context"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/repository"
	"github.com/echoplay/server/pkg/logger"
)

// DiscoveryService derives taste signals from listen history and turns
// them into audio recommendations.
type DiscoveryService struct {
	listenRepo repository.ListenRepository
	tagRepo    repository.TagRepository
	audioRepo  repository.AudioRepository
	log        logger.Logger
}

// NewDiscoveryService creates the discovery service.
func NewDiscoveryService(listenRepo repository.ListenRepository, tagRepo repository.TagRepository, audioRepo repository.AudioRepository, log logger.Logger) *DiscoveryService {
	return &DiscoveryService{
		listenRepo: listenRepo,
		tagRepo:    tagRepo,
		audioRepo:  audioRepo,
		log:        log,
	}
}

// RecentTags returns the distinct tags on the principal's n most recent
// listens, the union across those audios. n must be positive.
func (s *DiscoveryService) RecentTags(ctx context.Context, p domain.Principal, n int) ([]*domain.Tag, error) {
	if p.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	if n <= 0 {
		return nil, domain.ErrInvalidCount
	}

	audioIDs, err := s.listenRepo.RecentAudioIDs(ctx, p.ID, n)
	if err != nil {
		return nil, err
	}
	if len(audioIDs) == 0 {
		return []*domain.Tag{}, nil
	}

	byAudio, err := s.tagRepo.TagsOfAudios(ctx, audioIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	tags := make([]*domain.Tag, 0)
	for _, id := range audioIDs {
		for _, t := range byAudio[id] {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags, nil
}

// Recommend returns up to limit audios visible to the principal, ranked
// by overlap with the tags of their recentN most recent listens. A user
// with no listen history (or whose recent listens carry no tags) gets an
// empty result, not an error. Both counts must be positive.
func (s *DiscoveryService) Recommend(ctx context.Context, p domain.Principal, limit, recentN int) ([]*domain.Audio, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidCount
	}
	tags, err := s.RecentTags(ctx, p, recentN)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return []*domain.Audio{}, nil
	}

	tagIDs := make([]string, len(tags))
	for i, t := range tags {
		tagIDs[i] = t.ID
	}
	return s.audioRepo.Discover(ctx, p, limit, tagIDs)
}
