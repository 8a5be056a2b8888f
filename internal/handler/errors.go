package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/resume"
	"github.com/echoplay/server/internal/storage"
	"github.com/echoplay/server/pkg/apperrors"
	"github.com/echoplay/server/pkg/httputil"
)

// fail maps domain errors onto coded HTTP responses. Sentinels the
// switch does not recognize fall through as internal errors.
func fail(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		httputil.Fail(c, appErr)
		return
	}

	switch {
	// 404 Not Found
	case errors.Is(err, domain.ErrUserNotFound):
		httputil.Fail(c, apperrors.New(apperrors.CodeUserNotFound, err.Error(), http.StatusNotFound))
	case errors.Is(err, domain.ErrAudioNotFound):
		httputil.Fail(c, apperrors.New(apperrors.CodeAudioNotFound, err.Error(), http.StatusNotFound))
	case errors.Is(err, domain.ErrPlaylistNotFound):
		httputil.Fail(c, apperrors.New(apperrors.CodePlaylistNotFound, err.Error(), http.StatusNotFound))
	case errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrAudioNotInPlaylist),
		errors.Is(err, resume.ErrNoState),
		errors.Is(err, storage.ErrBlobNotFound):
		httputil.Fail(c, apperrors.New(apperrors.CodeNotFound, err.Error(), http.StatusNotFound))

	// 409 Conflict
	case errors.Is(err, domain.ErrEmailTaken):
		httputil.Fail(c, apperrors.New(apperrors.CodeEmailTaken, err.Error(), http.StatusConflict))
	case errors.Is(err, domain.ErrAlreadyFollowing),
		errors.Is(err, domain.ErrAlreadyFollowingUser),
		errors.Is(err, domain.ErrAudioAlreadyInPlaylist):
		httputil.Fail(c, apperrors.New(apperrors.CodeAlreadyFollowing, err.Error(), http.StatusConflict))
	case errors.Is(err, domain.ErrNotFollowing),
		errors.Is(err, domain.ErrNotFollowingUser):
		httputil.Fail(c, apperrors.New(apperrors.CodeNotFollowing, err.Error(), http.StatusConflict))
	case errors.Is(err, domain.ErrOwnersEmpty):
		httputil.Fail(c, apperrors.New(apperrors.CodeOwnersEmpty, err.Error(), http.StatusConflict))
	case errors.Is(err, domain.ErrFavoritesImmutable):
		httputil.Fail(c, apperrors.New(apperrors.CodeConflict, err.Error(), http.StatusConflict))

	// 400 Bad Request
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidTitle),
		errors.Is(err, domain.ErrTitleTooLong),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrSelfFollow),
		errors.Is(err, storage.ErrUnsupportedMedia):
		httputil.Fail(c, apperrors.New(apperrors.CodeBadRequest, err.Error(), http.StatusBadRequest))
	case errors.Is(err, domain.ErrInvalidTag):
		httputil.Fail(c, apperrors.New(apperrors.CodeInvalidTag, err.Error(), http.StatusBadRequest))

	// 401 / 403
	case errors.Is(err, domain.ErrInvalidCredentials):
		httputil.Fail(c, apperrors.ErrInvalidCredentials)
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.Fail(c, apperrors.ErrUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		httputil.Fail(c, apperrors.ErrForbidden)

	default:
		httputil.Fail(c, apperrors.ErrInternal.WithError(err))
	}
}

// badRequest reports a binding or parsing failure.
func badRequest(c *gin.Context, err error) {
	httputil.Fail(c, apperrors.ErrBadRequest.WithDetails(err.Error()))
}
