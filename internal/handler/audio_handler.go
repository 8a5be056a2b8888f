package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/internal/middleware"
	"github.com/echoplay/server/internal/service"
	"github.com/echoplay/server/pkg/apperrors"
	"github.com/echoplay/server/pkg/httputil"
)

// AudioHandler serves the audio lifecycle and streaming.
type AudioHandler struct {
	audios  *service.AudioService
	listens *service.ListenService
}

// NewAudioHandler creates the audio handler.
func NewAudioHandler(audios *service.AudioService, listens *service.ListenService) *AudioHandler {
	return &AudioHandler{audios: audios, listens: listens}
}

// Create handles POST /audios. The request is multipart form data with
// the media blob in the "file" field and metadata alongside.
func (h *AudioHandler) Create(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.Fail(c, apperrors.ErrBadRequest.WithDetails("missing file field"))
		return
	}

	duration, err := strconv.Atoi(c.DefaultPostForm("duration_sec", "0"))
	if err != nil {
		badRequest(c, err)
		return
	}

	in := service.CreateAudioInput{
		Title:       c.PostForm("title"),
		DurationSec: duration,
		IsPrivate:   c.PostForm("is_private") == "true",
		IsPodcast:   c.PostForm("is_podcast") == "true",
		ImageURL:    c.PostForm("image_url"),
		OwnerIDs:    c.PostFormArray("owner_ids"),
	}
	if rd := c.PostForm("release_date"); rd != "" {
		t, err := time.Parse(time.RFC3339, rd)
		if err != nil {
			badRequest(c, err)
			return
		}
		in.ReleaseDate = t
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, err)
		return
	}
	defer file.Close()

	audio, err := h.audios.Create(c.Request.Context(), middleware.Principal(c), in, file, fileHeader.Filename)
	if err != nil {
		fail(c, err)
		return
	}
	httputil.Created(c, audio)
}

// Get handles GET /audios/:id.
func (h *AudioHandler) Get(c *gin.Context) {
	audio, err := h.audios.Get(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, audio)
}

// Stream handles GET /audios/:id/stream. The file is served with range
// support so clients can seek.
func (h *AudioHandler) Stream(c *gin.Context) {
	f, path, err := h.audios.Stream(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	f.Close()

	c.File(path)
}

// Update handles PATCH /audios/:id.
func (h *AudioHandler) Update(c *gin.Context) {
	var req struct {
		Title       *string    `json:"title"`
		DurationSec *int       `json:"duration_sec"`
		ReleaseDate *time.Time `json:"release_date"`
		IsPrivate   *bool      `json:"is_private"`
		ImageURL    *string    `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	audio, err := h.audios.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), service.UpdateAudioInput{
		Title:       req.Title,
		DurationSec: req.DurationSec,
		ReleaseDate: req.ReleaseDate,
		IsPrivate:   req.IsPrivate,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, audio)
}

// Delete handles DELETE /audios/:id.
func (h *AudioHandler) Delete(c *gin.Context) {
	if err := h.audios.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}

// ReplaceOwners handles PUT /audios/:id/owners.
func (h *AudioHandler) ReplaceOwners(c *gin.Context) {
	var req struct {
		OwnerIDs []string `json:"owner_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	audio, err := h.audios.ReplaceOwners(c.Request.Context(), middleware.Principal(c), c.Param("id"), req.OwnerIDs)
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, audio)
}

// PlayCount handles GET /audios/:id/plays.
func (h *AudioHandler) PlayCount(c *gin.Context) {
	count, err := h.listens.PlayCount(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"play_count": count})
}
