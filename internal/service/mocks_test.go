package service

import (
	"context"
	"io"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/echoplay/server/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User, favorites *domain.Playlist) error {
	args := m.Called(ctx, user, favorites)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) Follow(ctx context.Context, followerID, followeeID string) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *mockUserRepo) Unfollow(ctx context.Context, followerID, followeeID string) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *mockUserRepo) ListFollowing(ctx context.Context, userID string) ([]*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserRepo) ListFollowers(ctx context.Context, userID string) ([]*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

type mockAudioRepo struct {
	mock.Mock
}

func (m *mockAudioRepo) Create(ctx context.Context, audio *domain.Audio, ownerIDs []string) error {
	args := m.Called(ctx, audio, ownerIDs)
	return args.Error(0)
}

func (m *mockAudioRepo) GetByID(ctx context.Context, id string) (*domain.Audio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Audio), args.Error(1)
}

func (m *mockAudioRepo) Update(ctx context.Context, audio *domain.Audio) error {
	args := m.Called(ctx, audio)
	return args.Error(0)
}

func (m *mockAudioRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAudioRepo) ReplaceOwners(ctx context.Context, audioID string, ownerIDs []string) error {
	args := m.Called(ctx, audioID, ownerIDs)
	return args.Error(0)
}

func (m *mockAudioRepo) ListByOwner(ctx context.Context, userID string) ([]*domain.Audio, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Audio), args.Error(1)
}

func (m *mockAudioRepo) ListFileNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockAudioRepo) Discover(ctx context.Context, p domain.Principal, n int, tagIDs []string) ([]*domain.Audio, error) {
	args := m.Called(ctx, p, n, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Audio), args.Error(1)
}

type mockPlaylistRepo struct {
	mock.Mock
}

func (m *mockPlaylistRepo) Create(ctx context.Context, playlist *domain.Playlist, ownerID string) error {
	args := m.Called(ctx, playlist, ownerID)
	return args.Error(0)
}

func (m *mockPlaylistRepo) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Playlist), args.Error(1)
}

func (m *mockPlaylistRepo) Update(ctx context.Context, playlist *domain.Playlist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

func (m *mockPlaylistRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPlaylistRepo) ReplaceOwners(ctx context.Context, playlistID string, ownerIDs []string) error {
	args := m.Called(ctx, playlistID, ownerIDs)
	return args.Error(0)
}

func (m *mockPlaylistRepo) AddAudio(ctx context.Context, playlistID, audioID string) error {
	args := m.Called(ctx, playlistID, audioID)
	return args.Error(0)
}

func (m *mockPlaylistRepo) RemoveAudio(ctx context.Context, playlistID, audioID string) error {
	args := m.Called(ctx, playlistID, audioID)
	return args.Error(0)
}

func (m *mockPlaylistRepo) ListAudios(ctx context.Context, playlistID string) ([]*domain.Audio, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Audio), args.Error(1)
}

func (m *mockPlaylistRepo) Follow(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

func (m *mockPlaylistRepo) Unfollow(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

func (m *mockPlaylistRepo) TouchFollower(ctx context.Context, playlistID, userID string) error {
	args := m.Called(ctx, playlistID, userID)
	return args.Error(0)
}

func (m *mockPlaylistRepo) ListFollowed(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Playlist), args.Error(1)
}

func (m *mockPlaylistRepo) ListOwned(ctx context.Context, userID string) ([]*domain.Playlist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Playlist), args.Error(1)
}

type mockTagRepo struct {
	mock.Mock
}

func (m *mockTagRepo) ListAll(ctx context.Context) ([]*domain.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) ListByNamespace(ctx context.Context, ns domain.TagNamespace) ([]*domain.Tag, error) {
	args := m.Called(ctx, ns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) GetInNamespace(ctx context.Context, tagID string, ns domain.TagNamespace) (*domain.Tag, error) {
	args := m.Called(ctx, tagID, ns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) TagsOfAudio(ctx context.Context, audioID string) ([]*domain.Tag, error) {
	args := m.Called(ctx, audioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) TagsOfAudios(ctx context.Context, audioIDs []string) (map[string][]*domain.Tag, error) {
	args := m.Called(ctx, audioIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*domain.Tag), args.Error(1)
}

func (m *mockTagRepo) Link(ctx context.Context, audioID, tagID string) error {
	args := m.Called(ctx, audioID, tagID)
	return args.Error(0)
}

func (m *mockTagRepo) Unlink(ctx context.Context, audioID, tagID string) error {
	args := m.Called(ctx, audioID, tagID)
	return args.Error(0)
}

type mockListenRepo struct {
	mock.Mock
}

func (m *mockListenRepo) Create(ctx context.Context, listen *domain.Listen) error {
	args := m.Called(ctx, listen)
	return args.Error(0)
}

func (m *mockListenRepo) RecentAudioIDs(ctx context.Context, userID string, n int) ([]string, error) {
	args := m.Called(ctx, userID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockListenRepo) PlayCount(ctx context.Context, audioID string) (int64, error) {
	args := m.Called(ctx, audioID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockListenRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockSearchRepo struct {
	mock.Mock
}

func (m *mockSearchRepo) SearchUsers(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockSearchRepo) SearchPlaylists(ctx context.Context, p domain.Principal, query string, album bool, limit int) ([]*domain.Playlist, error) {
	args := m.Called(ctx, p, query, album, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Playlist), args.Error(1)
}

func (m *mockSearchRepo) SearchAudios(ctx context.Context, p domain.Principal, query string, podcast bool, limit int) ([]*domain.Audio, error) {
	args := m.Called(ctx, p, query, podcast, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Audio), args.Error(1)
}

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Save(r io.Reader, originalName string) (string, int64, error) {
	args := m.Called(r, originalName)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *mockBlobStore) Open(fileName string) (*os.File, string, error) {
	args := m.Called(fileName)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*os.File), args.String(1), args.Error(2)
}

func (m *mockBlobStore) Remove(fileName string) error {
	args := m.Called(fileName)
	return args.Error(0)
}

func (m *mockBlobStore) ListFiles() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
