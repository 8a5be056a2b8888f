package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/middleware"
	"github.com/echoplay/server/internal/service"
	"github.com/echoplay/server/pkg/httputil"
)

// PlaylistHandler serves playlist lifecycle, membership, ownership, and
// follows.
type PlaylistHandler struct {
	playlists *service.PlaylistService
}

// NewPlaylistHandler creates the playlist handler.
func NewPlaylistHandler(playlists *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

// Create handles POST /playlists.
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"is_private"`
		IsAlbum     bool   `json:"is_album"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	playlist, err := h.playlists.Create(c.Request.Context(), middleware.Principal(c), service.CreatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		IsAlbum:     req.IsAlbum,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	httputil.Created(c, playlist)
}

// Get handles GET /playlists/:id?extras=true. With extras (the default)
// member audios are included, filtered to what the viewer may see;
// extras=false returns the bare playlist.
func (h *PlaylistHandler) Get(c *gin.Context) {
	extras, err := strconv.ParseBool(c.DefaultQuery("extras", "true"))
	if err != nil {
		badRequest(c, err)
		return
	}

	var playlist *domain.Playlist
	if extras {
		playlist, err = h.playlists.GetWithAudios(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	} else {
		playlist, err = h.playlists.Get(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	}
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, playlist)
}

// Update handles PATCH /playlists/:id.
func (h *PlaylistHandler) Update(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPrivate   *bool   `json:"is_private"`
		IsAlbum     *bool   `json:"is_album"`
		ImageURL    *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	playlist, err := h.playlists.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), service.UpdatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		IsAlbum:     req.IsAlbum,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, playlist)
}

// Delete handles DELETE /playlists/:id.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	if err := h.playlists.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}

// AddAudio handles PUT /playlists/:id/audios/:audioID.
func (h *PlaylistHandler) AddAudio(c *gin.Context) {
	if err := h.playlists.AddAudio(c.Request.Context(), middleware.Principal(c), c.Param("id"), c.Param("audioID")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"added": true})
}

// RemoveAudio handles DELETE /playlists/:id/audios/:audioID.
func (h *PlaylistHandler) RemoveAudio(c *gin.Context) {
	if err := h.playlists.RemoveAudio(c.Request.Context(), middleware.Principal(c), c.Param("id"), c.Param("audioID")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"removed": true})
}

// ReplaceOwners handles PUT /playlists/:id/owners.
func (h *PlaylistHandler) ReplaceOwners(c *gin.Context) {
	var req struct {
		OwnerIDs []string `json:"owner_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	playlist, err := h.playlists.ReplaceOwners(c.Request.Context(), middleware.Principal(c), c.Param("id"), req.OwnerIDs)
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, playlist)
}

// AddOwner handles PUT /playlists/:id/owners/:userID.
func (h *PlaylistHandler) AddOwner(c *gin.Context) {
	playlist, err := h.playlists.AddOwner(c.Request.Context(), middleware.Principal(c), c.Param("id"), c.Param("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, playlist)
}

// RemoveOwner handles DELETE /playlists/:id/owners/:userID.
func (h *PlaylistHandler) RemoveOwner(c *gin.Context) {
	playlist, err := h.playlists.RemoveOwner(c.Request.Context(), middleware.Principal(c), c.Param("id"), c.Param("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, playlist)
}

// Follow handles POST /playlists/:id/follow.
func (h *PlaylistHandler) Follow(c *gin.Context) {
	if err := h.playlists.Follow(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"following": true})
}

// Unfollow handles DELETE /playlists/:id/follow.
func (h *PlaylistHandler) Unfollow(c *gin.Context) {
	if err := h.playlists.Unfollow(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"following": false})
}

// Followed handles GET /me/playlists/followed.
func (h *PlaylistHandler) Followed(c *gin.Context) {
	playlists, err := h.playlists.ListFollowed(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, playlists)
}
