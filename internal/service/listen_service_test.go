package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/resume"
	"github.com/echoplay/server/pkg/logger"
)

func newListenService(t *testing.T, listenRepo *mockListenRepo, audioRepo *mockAudioRepo, playlistRepo *mockPlaylistRepo) (*ListenService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := resume.NewStore(client, time.Hour)
	return NewListenService(listenRepo, audioRepo, playlistRepo, store, logger.Discard()), mr
}

func TestRecordListen(t *testing.T) {
	listenRepo := new(mockListenRepo)
	audioRepo := new(mockAudioRepo)
	playlistRepo := new(mockPlaylistRepo)
	svc, mr := newListenService(t, listenRepo, audioRepo, playlistRepo)

	audio := &domain.Audio{ID: "a1", Title: "Song", OwnerIDList: []string{"artist"}}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(audio, nil)
	listenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	p := domain.Principal{ID: "u1"}
	err := svc.RecordListen(context.Background(), p, RecordListenInput{AudioID: "a1", OffsetSecs: 42})
	assert.NoError(t, err)

	listen := listenRepo.Calls[0].Arguments.Get(1).(*domain.Listen)
	assert.Equal(t, "u1", listen.UserID)
	assert.Equal(t, "a1", listen.AudioID)

	// The resume pointer moved with the listen.
	assert.True(t, mr.Exists(resume.Key("u1")))
	state, err := svc.Resume(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "a1", state.AudioID)
	assert.Equal(t, 42, state.OffsetSecs)
}

func TestRecordListenTouchesFollowedPlaylist(t *testing.T) {
	listenRepo := new(mockListenRepo)
	audioRepo := new(mockAudioRepo)
	playlistRepo := new(mockPlaylistRepo)
	svc, _ := newListenService(t, listenRepo, audioRepo, playlistRepo)

	audio := &domain.Audio{ID: "a1", Title: "Song", OwnerIDList: []string{"artist"}}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(audio, nil)
	listenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	playlistRepo.On("TouchFollower", mock.Anything, "p1", "u1").Return(nil)

	err := svc.RecordListen(context.Background(), domain.Principal{ID: "u1"}, RecordListenInput{AudioID: "a1", PlaylistID: "p1"})
	assert.NoError(t, err)
	playlistRepo.AssertCalled(t, "TouchFollower", mock.Anything, "p1", "u1")
}

func TestRecordListenPrivateAudioForbidden(t *testing.T) {
	listenRepo := new(mockListenRepo)
	audioRepo := new(mockAudioRepo)
	svc, _ := newListenService(t, listenRepo, audioRepo, new(mockPlaylistRepo))

	hidden := &domain.Audio{ID: "a1", Title: "Hidden", IsPrivate: true, OwnerIDList: []string{"artist"}}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(hidden, nil)

	err := svc.RecordListen(context.Background(), domain.Principal{ID: "stranger"}, RecordListenInput{AudioID: "a1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	listenRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResumeNoState(t *testing.T) {
	svc, _ := newListenService(t, new(mockListenRepo), new(mockAudioRepo), new(mockPlaylistRepo))

	_, err := svc.Resume(context.Background(), domain.Principal{ID: "never-played"})
	assert.ErrorIs(t, err, resume.ErrNoState)

	_, err = svc.Resume(context.Background(), domain.Principal{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateResume(t *testing.T) {
	audioRepo := new(mockAudioRepo)
	svc, _ := newListenService(t, new(mockListenRepo), audioRepo, new(mockPlaylistRepo))

	audio := &domain.Audio{ID: "a1", Title: "Song", OwnerIDList: []string{"artist"}}
	audioRepo.On("GetByID", mock.Anything, "a1").Return(audio, nil)

	p := domain.Principal{ID: "u1"}
	require.NoError(t, svc.UpdateResume(context.Background(), p, "a1", 120))

	state, err := svc.Resume(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, 120, state.OffsetSecs)
}

func TestListenCountOwnHistoryOnly(t *testing.T) {
	listenRepo := new(mockListenRepo)
	svc, _ := newListenService(t, listenRepo, new(mockAudioRepo), new(mockPlaylistRepo))

	listenRepo.On("CountByUser", mock.Anything, "u1").Return(int64(7), nil)

	count, err := svc.ListenCount(context.Background(), domain.Principal{ID: "u1"}, "u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)

	_, err = svc.ListenCount(context.Background(), domain.Principal{ID: "stranger"}, "u1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListenCount(context.Background(), domain.Principal{}, "u1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListenCountAdmin(t *testing.T) {
	listenRepo := new(mockListenRepo)
	svc, _ := newListenService(t, listenRepo, new(mockAudioRepo), new(mockPlaylistRepo))

	listenRepo.On("CountByUser", mock.Anything, "u1").Return(int64(3), nil)

	count, err := svc.ListenCount(context.Background(), domain.Principal{ID: "admin", Admin: true}, "u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
