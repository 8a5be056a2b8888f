package domain

import "errors"

var (
	// Validation errors
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrInvalidAudioID     = errors.New("invalid audio id")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidTitle       = errors.New("invalid title")
	ErrTitleTooLong       = errors.New("title too long")
	ErrInvalidName        = errors.New("invalid name")
	ErrNameTooLong        = errors.New("name too long")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrInvalidCount       = errors.New("count must be positive")
	ErrEmptyQuery         = errors.New("empty search query")
	ErrPasswordTooShort   = errors.New("password too short")

	// Not-found errors
	ErrUserNotFound       = errors.New("user not found")
	ErrAudioNotFound      = errors.New("audio not found")
	ErrPlaylistNotFound   = errors.New("playlist not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrAudioNotInPlaylist = errors.New("audio not in playlist")

	// Conflict errors
	ErrEmailTaken             = errors.New("email already registered")
	ErrAlreadyFollowing       = errors.New("already following")
	ErrNotFollowing           = errors.New("not following")
	ErrAlreadyFollowingUser   = errors.New("already following user")
	ErrNotFollowingUser       = errors.New("not following user")
	ErrOwnersEmpty            = errors.New("owner set cannot be empty")
	ErrAudioAlreadyInPlaylist = errors.New("audio already in playlist")
	ErrFavoritesImmutable     = errors.New("favorites playlist cannot be deleted")
	ErrSelfFollow             = errors.New("cannot follow yourself")

	// Tag errors
	ErrInvalidTag = errors.New("tag does not exist in the required namespace")

	// Authorization errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
