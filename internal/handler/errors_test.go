package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/resume"
	"github.com/echoplay/server/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFailStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"audio not found", domain.ErrAudioNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"playlist not found", domain.ErrPlaylistNotFound, http.StatusNotFound},
		{"audio not in playlist", domain.ErrAudioNotInPlaylist, http.StatusNotFound},
		{"no resume state", resume.ErrNoState, http.StatusNotFound},
		{"blob not found", storage.ErrBlobNotFound, http.StatusNotFound},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict},
		{"already following", domain.ErrAlreadyFollowing, http.StatusConflict},
		{"owners empty", domain.ErrOwnersEmpty, http.StatusConflict},
		{"favorites immutable", domain.ErrFavoritesImmutable, http.StatusConflict},
		{"invalid title", domain.ErrInvalidTitle, http.StatusBadRequest},
		{"invalid tag", domain.ErrInvalidTag, http.StatusBadRequest},
		{"empty query", domain.ErrEmptyQuery, http.StatusBadRequest},
		{"unsupported media", storage.ErrUnsupportedMedia, http.StatusBadRequest},
		{"self follow", domain.ErrSelfFollow, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"unknown error", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/", nil)

			fail(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestFailWrappedErrorStillMapped(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	// errors.Is walks wrap chains, so context added with %w is fine.
	wrapped := errors.Join(errors.New("loading audio"), domain.ErrAudioNotFound)
	fail(c, wrapped)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
