package repository

import (
	"context"

	"github.com/echoplay/server/internal/domain"
)

// UserRepository persists accounts and the user-follow edges.
type UserRepository interface {
	// Create inserts the user and their favorites playlist in one
	// transaction. The playlist's owner edge is created as well.
	Create(ctx context.Context, user *domain.User, favorites *domain.Playlist) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	ListFollowing(ctx context.Context, userID string) ([]*domain.User, error)
	ListFollowers(ctx context.Context, userID string) ([]*domain.User, error)
}

// AudioRepository persists audios, their owner sets, and derives play counts.
type AudioRepository interface {
	// Create inserts the audio and its initial owner edges in one transaction.
	Create(ctx context.Context, audio *domain.Audio, ownerIDs []string) error
	// GetByID loads the audio row together with its current owner set and
	// play count. Returns domain.ErrAudioNotFound if absent.
	GetByID(ctx context.Context, id string) (*domain.Audio, error)
	Update(ctx context.Context, audio *domain.Audio) error
	// Delete removes the row; relation edges cascade at the store level.
	Delete(ctx context.Context, id string) error
	// ReplaceOwners reconciles the owner set to exactly ownerIDs:
	// disconnect-then-connect as two bulk statements in one transaction.
	ReplaceOwners(ctx context.Context, audioID string, ownerIDs []string) error
	ListByOwner(ctx context.Context, userID string) ([]*domain.Audio, error)
	// ListFileNames returns every stored blob name referenced by an audio
	// row, for orphan sweeps.
	ListFileNames(ctx context.Context) ([]string, error)
	// Discover ranks audios visible to p by overlap with tagIDs (count
	// descending, then release date descending), at most n results. The
	// visibility filter is applied inside the query, before ranking.
	Discover(ctx context.Context, p domain.Principal, n int, tagIDs []string) ([]*domain.Audio, error)
}

// PlaylistRepository persists playlists and the membership, owner and
// follower edges around them.
type PlaylistRepository interface {
	// Create inserts the playlist and its initial owner edge in one transaction.
	Create(ctx context.Context, playlist *domain.Playlist, ownerID string) error
	// GetByID loads the playlist row with its owner set and follower count.
	GetByID(ctx context.Context, id string) (*domain.Playlist, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id string) error
	ReplaceOwners(ctx context.Context, playlistID string, ownerIDs []string) error

	// AddAudio inserts the membership edge and bumps updated_at in one
	// transaction. A duplicate edge is a no-op that leaves updated_at alone.
	AddAudio(ctx context.Context, playlistID, audioID string) error
	// RemoveAudio deletes the edge and bumps updated_at in one transaction.
	// Returns domain.ErrAudioNotInPlaylist (and no bump) if absent.
	RemoveAudio(ctx context.Context, playlistID, audioID string) error
	// ListAudios returns the member audios with their owner sets loaded,
	// so callers can apply per-viewer visibility.
	ListAudios(ctx context.Context, playlistID string) ([]*domain.Audio, error)

	Follow(ctx context.Context, playlistID, userID string) error
	Unfollow(ctx context.Context, playlistID, userID string) error
	TouchFollower(ctx context.Context, playlistID, userID string) error
	ListFollowed(ctx context.Context, userID string) ([]*domain.Playlist, error)
	ListOwned(ctx context.Context, userID string) ([]*domain.Playlist, error)
}

// TagRepository persists tags and the audio-tag edges.
type TagRepository interface {
	ListAll(ctx context.Context) ([]*domain.Tag, error)
	ListByNamespace(ctx context.Context, ns domain.TagNamespace) ([]*domain.Tag, error)
	// GetInNamespace returns the tag only if it exists in the given
	// namespace; domain.ErrInvalidTag otherwise.
	GetInNamespace(ctx context.Context, tagID string, ns domain.TagNamespace) (*domain.Tag, error)
	TagsOfAudio(ctx context.Context, audioID string) ([]*domain.Tag, error)
	TagsOfAudios(ctx context.Context, audioIDs []string) (map[string][]*domain.Tag, error)
	Link(ctx context.Context, audioID, tagID string) error
	Unlink(ctx context.Context, audioID, tagID string) error
}

// ListenRepository appends playback events and reads them back for
// play counts and recency queries. Events are never updated or deleted.
type ListenRepository interface {
	Create(ctx context.Context, listen *domain.Listen) error
	// RecentAudioIDs returns the distinct audio ids of the user's most
	// recent n listens, newest first, ties broken by insertion order.
	RecentAudioIDs(ctx context.Context, userID string, n int) ([]string, error)
	PlayCount(ctx context.Context, audioID string) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// SearchRepository runs the per-category text queries. Visibility is a
// bulk predicate inside each query, not a per-row callback.
type SearchRepository interface {
	SearchUsers(ctx context.Context, query string, limit int) ([]*domain.User, error)
	SearchPlaylists(ctx context.Context, p domain.Principal, query string, album bool, limit int) ([]*domain.Playlist, error)
	SearchAudios(ctx context.Context, p domain.Principal, query string, podcast bool, limit int) ([]*domain.Audio, error)
}
