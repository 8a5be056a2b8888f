package service

import (
	"context"
	"time"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/repository"
	"github.com/echoplay/server/internal/resume"
	"github.com/echoplay/server/pkg/logger"
)

// ListenService records playback events and maintains the per-user
// resume pointer.
type ListenService struct {
	listenRepo   repository.ListenRepository
	audioRepo    repository.AudioRepository
	playlistRepo repository.PlaylistRepository
	resume       *resume.Store
	log          logger.Logger
}

// NewListenService creates the listen service.
func NewListenService(listenRepo repository.ListenRepository, audioRepo repository.AudioRepository, playlistRepo repository.PlaylistRepository, resumeStore *resume.Store, log logger.Logger) *ListenService {
	return &ListenService{
		listenRepo:   listenRepo,
		audioRepo:    audioRepo,
		playlistRepo: playlistRepo,
		resume:       resumeStore,
		log:          log,
	}
}

// RecordListenInput carries one playback event. PlaylistID is optional;
// when set it names the playlist the audio was played from.
type RecordListenInput struct {
	AudioID    string
	OffsetSecs int
	PlaylistID string
}

// RecordListen appends a listen event, moves the principal's resume
// pointer, and, when the play came from a followed playlist, refreshes
// that follow's last-listened timestamp. The listen log is append-only.
func (s *ListenService) RecordListen(ctx context.Context, p domain.Principal, in RecordListenInput) error {
	if p.Anonymous() {
		return domain.ErrUnauthorized
	}

	audio, err := s.audioRepo.GetByID(ctx, in.AudioID)
	if err != nil {
		return err
	}
	if !domain.CanView(p, audio) {
		return domain.ErrForbidden
	}

	now := time.Now()
	listen := &domain.Listen{
		UserID:     p.ID,
		AudioID:    in.AudioID,
		ListenedAt: now,
	}
	if err := s.listenRepo.Create(ctx, listen); err != nil {
		return err
	}

	state := &domain.ResumeState{
		AudioID:    in.AudioID,
		OffsetSecs: in.OffsetSecs,
		UpdatedAt:  now,
	}
	if err := s.resume.Set(ctx, p.ID, state); err != nil {
		// The event row is the durable record; a stale resume pointer
		// only degrades the next session's starting position.
		s.log.Warn("failed to update resume state",
			logger.String("user_id", p.ID), logger.Error(err))
	}

	if in.PlaylistID != "" {
		// Touching a follow edge the user does not have is a no-op.
		if err := s.playlistRepo.TouchFollower(ctx, in.PlaylistID, p.ID); err != nil {
			s.log.Warn("failed to touch playlist follow",
				logger.String("playlist_id", in.PlaylistID), logger.Error(err))
		}
	}
	return nil
}

// UpdateResume moves the resume pointer without logging a listen event,
// for mid-playback progress saves.
func (s *ListenService) UpdateResume(ctx context.Context, p domain.Principal, audioID string, offsetSecs int) error {
	if p.Anonymous() {
		return domain.ErrUnauthorized
	}
	if _, err := s.audioRepo.GetByID(ctx, audioID); err != nil {
		return err
	}
	return s.resume.Set(ctx, p.ID, &domain.ResumeState{
		AudioID:    audioID,
		OffsetSecs: offsetSecs,
		UpdatedAt:  time.Now(),
	})
}

// Resume returns the principal's resume pointer, or resume.ErrNoState if
// they have never played anything (or the pointer expired).
func (s *ListenService) Resume(ctx context.Context, p domain.Principal) (*domain.ResumeState, error) {
	if p.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	return s.resume.Get(ctx, p.ID)
}

// ListenCount returns how many listen events a user has logged. Listen
// history is private: only the user themselves or an admin may ask.
func (s *ListenService) ListenCount(ctx context.Context, p domain.Principal, userID string) (int64, error) {
	if p.Anonymous() {
		return 0, domain.ErrUnauthorized
	}
	if !p.Admin && p.ID != userID {
		return 0, domain.ErrForbidden
	}
	return s.listenRepo.CountByUser(ctx, userID)
}

// PlayCount returns how many times an audio has been played, across all
// listeners.
func (s *ListenService) PlayCount(ctx context.Context, p domain.Principal, audioID string) (int64, error) {
	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return 0, err
	}
	if !domain.CanView(p, audio) {
		return 0, domain.ErrForbidden
	}
	return s.listenRepo.PlayCount(ctx, audioID)
}
