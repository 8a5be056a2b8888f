package service

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/repository"
	"github.com/echoplay/server/pkg/logger"
)

// BlobStore is the storage collaborator the audio service moves media
// blobs through.
type BlobStore interface {
	Save(r io.Reader, originalName string) (fileName string, size int64, err error)
	Open(fileName string) (*os.File, string, error)
	Remove(fileName string) error
}

// AudioService owns the audio lifecycle: upload, fetch, stream, update,
// delete, and owner reconciliation.
type AudioService struct {
	audioRepo repository.AudioRepository
	tagRepo   repository.TagRepository
	blobs     BlobStore
	log       logger.Logger
}

// NewAudioService creates the audio service.
func NewAudioService(audioRepo repository.AudioRepository, tagRepo repository.TagRepository, blobs BlobStore, log logger.Logger) *AudioService {
	return &AudioService{
		audioRepo: audioRepo,
		tagRepo:   tagRepo,
		blobs:     blobs,
		log:       log,
	}
}

// CreateAudioInput carries upload metadata.
type CreateAudioInput struct {
	Title       string
	DurationSec int
	ReleaseDate time.Time
	IsPrivate   bool
	IsPodcast   bool
	ImageURL    string
	// Extra co-owner ids beyond the uploader.
	OwnerIDs []string
}

// Create stores the uploaded blob and inserts the audio with its owner
// set. The uploader is always an owner; anonymous principals may not
// upload.
func (s *AudioService) Create(ctx context.Context, p domain.Principal, in CreateAudioInput, file io.Reader, originalName string) (*domain.Audio, error) {
	if p.Anonymous() {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	audio := &domain.Audio{
		ID:          uuid.New().String(),
		Title:       in.Title,
		DurationSec: in.DurationSec,
		ReleaseDate: in.ReleaseDate,
		IsPrivate:   in.IsPrivate,
		IsPodcast:   in.IsPodcast,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if audio.ReleaseDate.IsZero() {
		audio.ReleaseDate = now
	}
	if err := audio.Validate(); err != nil {
		return nil, err
	}

	owners := dedupe(append([]string{p.ID}, in.OwnerIDs...))
	audio.OwnerIDList = owners

	fileName, size, err := s.blobs.Save(file, originalName)
	if err != nil {
		return nil, err
	}
	audio.FileName = fileName

	if err := s.audioRepo.Create(ctx, audio, owners); err != nil {
		// The blob is already on disk; take it back out so a failed
		// insert does not leak storage.
		if rmErr := s.blobs.Remove(fileName); rmErr != nil {
			s.log.Warn("failed to remove blob after create failure",
				logger.String("file", fileName), logger.Error(rmErr))
		}
		return nil, err
	}

	s.log.Info("audio created",
		logger.String("audio_id", audio.ID),
		logger.String("uploader", p.ID),
		logger.Int64("bytes", size))
	return audio, nil
}

// Get fetches an audio for the principal. Existence is checked before
// authorization: a missing audio is NotFound, a present but private one
// the principal does not own is Forbidden.
func (s *AudioService) Get(ctx context.Context, p domain.Principal, audioID string) (*domain.Audio, error) {
	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(p, audio) {
		return nil, domain.ErrForbidden
	}

	tags, err := s.tagRepo.TagsOfAudio(ctx, audioID)
	if err != nil {
		return nil, err
	}
	audio.Tags = tags
	return audio, nil
}

// Stream authorizes access and returns a byte source plus the blob path.
// Authorization happens once at stream start; the transport owns the rest
// of the connection's lifetime.
func (s *AudioService) Stream(ctx context.Context, p domain.Principal, audioID string) (*os.File, string, error) {
	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return nil, "", err
	}
	if !domain.CanView(p, audio) {
		return nil, "", domain.ErrForbidden
	}
	return s.blobs.Open(audio.FileName)
}

// UpdateAudioInput carries partial update fields; nil means unchanged.
type UpdateAudioInput struct {
	Title       *string
	DurationSec *int
	ReleaseDate *time.Time
	IsPrivate   *bool
	ImageURL    *string
}

// Update applies partial metadata changes. Mutation requires ownership or
// admin; public visibility alone grants nothing.
func (s *AudioService) Update(ctx context.Context, p domain.Principal, audioID string, in UpdateAudioInput) (*domain.Audio, error) {
	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(p, audio) {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		audio.Title = *in.Title
	}
	if in.DurationSec != nil {
		audio.DurationSec = *in.DurationSec
	}
	if in.ReleaseDate != nil {
		audio.ReleaseDate = *in.ReleaseDate
	}
	if in.IsPrivate != nil {
		audio.IsPrivate = *in.IsPrivate
	}
	if in.ImageURL != nil {
		audio.ImageURL = *in.ImageURL
	}
	if err := audio.Validate(); err != nil {
		return nil, err
	}
	audio.UpdatedAt = time.Now()

	if err := s.audioRepo.Update(ctx, audio); err != nil {
		return nil, err
	}
	return audio, nil
}

// Delete removes the audio, its relation edges, and its blob. Edge removal
// cascades at the store; the blob goes after the row commits.
func (s *AudioService) Delete(ctx context.Context, p domain.Principal, audioID string) error {
	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return err
	}
	if !domain.CanMutate(p, audio) {
		return domain.ErrForbidden
	}

	if err := s.audioRepo.Delete(ctx, audioID); err != nil {
		return err
	}

	if err := s.blobs.Remove(audio.FileName); err != nil {
		s.log.Warn("failed to remove blob for deleted audio",
			logger.String("audio_id", audioID), logger.Error(err))
	}

	s.log.Info("audio deleted", logger.String("audio_id", audioID), logger.String("by", p.ID))
	return nil
}

// ReplaceOwners reconciles the audio's owner set to exactly ownerIDs. An
// empty target set is rejected; an audio never drops to zero owners.
func (s *AudioService) ReplaceOwners(ctx context.Context, p domain.Principal, audioID string, ownerIDs []string) (*domain.Audio, error) {
	ownerIDs = dedupe(ownerIDs)
	if len(ownerIDs) == 0 {
		return nil, domain.ErrOwnersEmpty
	}

	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(p, audio) {
		return nil, domain.ErrForbidden
	}

	if err := s.audioRepo.ReplaceOwners(ctx, audioID, ownerIDs); err != nil {
		return nil, err
	}
	audio.OwnerIDList = ownerIDs
	return audio, nil
}

// ListByOwner returns the audios a user owns, filtered to what the
// requesting principal may see.
func (s *AudioService) ListByOwner(ctx context.Context, p domain.Principal, userID string) ([]*domain.Audio, error) {
	audios, err := s.audioRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return filterVisibleAudios(p, audios), nil
}

// filterVisibleAudios drops audios the principal may not see.
func filterVisibleAudios(p domain.Principal, audios []*domain.Audio) []*domain.Audio {
	visible := make([]*domain.Audio, 0, len(audios))
	for _, a := range audios {
		if domain.CanView(p, a) {
			visible = append(visible, a)
		}
	}
	return visible
}

// dedupe removes duplicate ids preserving first occurrence order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
