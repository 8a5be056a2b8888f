package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/repository"
	"github.com/echoplay/server/pkg/logger"
)

// PlaylistService owns playlist lifecycle, membership, ownership, and
// the playlist-follow graph.
type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	audioRepo    repository.AudioRepository
	log          logger.Logger
}

// NewPlaylistService creates the playlist service.
func NewPlaylistService(playlistRepo repository.PlaylistRepository, audioRepo repository.AudioRepository, log logger.Logger) *PlaylistService {
	return &PlaylistService{
		playlistRepo: playlistRepo,
		audioRepo:    audioRepo,
		log:          log,
	}
}

// CreatePlaylistInput carries playlist creation fields.
type CreatePlaylistInput struct {
	Name        string
	Description string
	IsPrivate   bool
	IsAlbum     bool
	ImageURL    string
}

// Create inserts a normal playlist owned by the principal.
func (s *PlaylistService) Create(ctx context.Context, p domain.Principal, in CreatePlaylistInput) (*domain.Playlist, error) {
	if p.Anonymous() {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	playlist := &domain.Playlist{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		IsPrivate:   in.IsPrivate,
		IsAlbum:     in.IsAlbum,
		Kind:        domain.KindNormal,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
		OwnerIDList: []string{p.ID},
	}
	if err := playlist.Validate(); err != nil {
		return nil, err
	}

	if err := s.playlistRepo.Create(ctx, playlist, p.ID); err != nil {
		return nil, err
	}
	s.log.Info("playlist created",
		logger.String("playlist_id", playlist.ID), logger.String("owner", p.ID))
	return playlist, nil
}

// Get fetches the playlist shell for the principal. Existence is checked
// before authorization.
func (s *PlaylistService) Get(ctx context.Context, p domain.Principal, playlistID string) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !domain.CanView(p, playlist) {
		return nil, domain.ErrForbidden
	}
	return playlist, nil
}

// GetWithAudios fetches the playlist with its member audios. Membership
// does not grant access: each member audio is re-checked against the
// viewing principal, so the same playlist can render differently for
// different viewers.
func (s *PlaylistService) GetWithAudios(ctx context.Context, p domain.Principal, playlistID string) (*domain.Playlist, error) {
	playlist, err := s.Get(ctx, p, playlistID)
	if err != nil {
		return nil, err
	}

	audios, err := s.playlistRepo.ListAudios(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	playlist.Audios = filterVisibleAudios(p, audios)
	return playlist, nil
}

// UpdatePlaylistInput carries partial update fields; nil means unchanged.
type UpdatePlaylistInput struct {
	Name        *string
	Description *string
	IsPrivate   *bool
	IsAlbum     *bool
	ImageURL    *string
}

// Update applies partial metadata changes. Mutation requires ownership
// or admin.
func (s *PlaylistService) Update(ctx context.Context, p domain.Principal, playlistID string, in UpdatePlaylistInput) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(p, playlist) {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		playlist.Name = *in.Name
	}
	if in.Description != nil {
		playlist.Description = *in.Description
	}
	if in.IsPrivate != nil {
		playlist.IsPrivate = *in.IsPrivate
	}
	if in.IsAlbum != nil {
		playlist.IsAlbum = *in.IsAlbum
	}
	if in.ImageURL != nil {
		playlist.ImageURL = *in.ImageURL
	}
	if err := playlist.Validate(); err != nil {
		return nil, err
	}
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// Delete removes the playlist and its edges. The per-user favorites
// playlist cannot be deleted on its own; it goes away with the account.
func (s *PlaylistService) Delete(ctx context.Context, p domain.Principal, playlistID string) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if !domain.CanMutate(p, playlist) {
		return domain.ErrForbidden
	}
	if playlist.Kind == domain.KindFavorites {
		return domain.ErrFavoritesImmutable
	}

	if err := s.playlistRepo.Delete(ctx, playlistID); err != nil {
		return err
	}
	s.log.Info("playlist deleted", logger.String("playlist_id", playlistID), logger.String("by", p.ID))
	return nil
}

// AddAudio inserts the audio into the playlist. The principal must be
// able to mutate the playlist and to view the audio; adding an audio that
// is already a member is a no-op.
func (s *PlaylistService) AddAudio(ctx context.Context, p domain.Principal, playlistID, audioID string) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if !domain.CanMutate(p, playlist) {
		return domain.ErrForbidden
	}

	audio, err := s.audioRepo.GetByID(ctx, audioID)
	if err != nil {
		return err
	}
	if !domain.CanView(p, audio) {
		return domain.ErrForbidden
	}

	return s.playlistRepo.AddAudio(ctx, playlistID, audioID)
}

// RemoveAudio takes the audio out of the playlist. Removing a non-member
// fails with ErrAudioNotInPlaylist and leaves the playlist untouched.
func (s *PlaylistService) RemoveAudio(ctx context.Context, p domain.Principal, playlistID, audioID string) error {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if !domain.CanMutate(p, playlist) {
		return domain.ErrForbidden
	}
	return s.playlistRepo.RemoveAudio(ctx, playlistID, audioID)
}

// ReplaceOwners reconciles the playlist's collaborator set to exactly
// ownerIDs. An empty target set is rejected.
func (s *PlaylistService) ReplaceOwners(ctx context.Context, p domain.Principal, playlistID string, ownerIDs []string) (*domain.Playlist, error) {
	ownerIDs = dedupe(ownerIDs)
	if len(ownerIDs) == 0 {
		return nil, domain.ErrOwnersEmpty
	}

	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(p, playlist) {
		return nil, domain.ErrForbidden
	}

	if err := s.playlistRepo.ReplaceOwners(ctx, playlistID, ownerIDs); err != nil {
		return nil, err
	}
	playlist.OwnerIDList = ownerIDs
	return playlist, nil
}

// AddOwner adds a collaborator to the playlist.
func (s *PlaylistService) AddOwner(ctx context.Context, p domain.Principal, playlistID, userID string) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(p, playlist) {
		return nil, domain.ErrForbidden
	}

	owners := dedupe(append(playlist.OwnerIDList, userID))
	if err := s.playlistRepo.ReplaceOwners(ctx, playlistID, owners); err != nil {
		return nil, err
	}
	playlist.OwnerIDList = owners
	return playlist, nil
}

// RemoveOwner takes a collaborator off the playlist. Removing the last
// owner is rejected: a playlist never drops to zero owners.
func (s *PlaylistService) RemoveOwner(ctx context.Context, p domain.Principal, playlistID, userID string) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(p, playlist) {
		return nil, domain.ErrForbidden
	}

	owners := make([]string, 0, len(playlist.OwnerIDList))
	for _, id := range playlist.OwnerIDList {
		if id != userID {
			owners = append(owners, id)
		}
	}
	if len(owners) == 0 {
		return nil, domain.ErrOwnersEmpty
	}
	if len(owners) == len(playlist.OwnerIDList) {
		return playlist, nil
	}

	if err := s.playlistRepo.ReplaceOwners(ctx, playlistID, owners); err != nil {
		return nil, err
	}
	playlist.OwnerIDList = owners
	return playlist, nil
}

// Follow makes the principal follow a playlist they can see.
func (s *PlaylistService) Follow(ctx context.Context, p domain.Principal, playlistID string) error {
	if p.Anonymous() {
		return domain.ErrUnauthorized
	}
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return err
	}
	if !domain.CanView(p, playlist) {
		return domain.ErrForbidden
	}
	return s.playlistRepo.Follow(ctx, playlistID, p.ID)
}

// Unfollow removes a playlist-follow edge.
func (s *PlaylistService) Unfollow(ctx context.Context, p domain.Principal, playlistID string) error {
	if p.Anonymous() {
		return domain.ErrUnauthorized
	}
	if _, err := s.playlistRepo.GetByID(ctx, playlistID); err != nil {
		return err
	}
	return s.playlistRepo.Unfollow(ctx, playlistID, p.ID)
}

// ListFollowed returns the playlists the principal follows, most recently
// listened first, filtered to what they may still see.
func (s *PlaylistService) ListFollowed(ctx context.Context, p domain.Principal) ([]*domain.Playlist, error) {
	if p.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	playlists, err := s.playlistRepo.ListFollowed(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return filterVisiblePlaylists(p, playlists), nil
}

// ListOwned returns a user's playlists, filtered to what the requesting
// principal may see.
func (s *PlaylistService) ListOwned(ctx context.Context, p domain.Principal, userID string) ([]*domain.Playlist, error) {
	playlists, err := s.playlistRepo.ListOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	return filterVisiblePlaylists(p, playlists), nil
}

// filterVisiblePlaylists drops playlists the principal may not see.
func filterVisiblePlaylists(p domain.Principal, playlists []*domain.Playlist) []*domain.Playlist {
	visible := make([]*domain.Playlist, 0, len(playlists))
	for _, pl := range playlists {
		if domain.CanView(p, pl) {
			visible = append(visible, pl)
		}
	}
	return visible
}
