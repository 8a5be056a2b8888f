package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/internal/middleware"
	"github.com/echoplay/server/internal/service"
	"github.com/echoplay/server/pkg/httputil"
)

// UserHandler serves profiles and the user-follow graph.
type UserHandler struct {
	users     *service.UserService
	audios    *service.AudioService
	playlists *service.PlaylistService
}

// NewUserHandler creates the user handler.
func NewUserHandler(users *service.UserService, audios *service.AudioService, playlists *service.PlaylistService) *UserHandler {
	return &UserHandler{users: users, audios: audios, playlists: playlists}
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, user)
}

// Update handles PATCH /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req struct {
		DisplayName *string `json:"display_name"`
		ImageURL    *string `json:"image_url"`
		Password    *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), service.UpdateUserInput{
		DisplayName: req.DisplayName,
		ImageURL:    req.ImageURL,
		Password:    req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, user)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"deleted": true})
}

// Follow handles POST /users/:id/follow.
func (h *UserHandler) Follow(c *gin.Context) {
	if err := h.users.Follow(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"following": true})
}

// Unfollow handles DELETE /users/:id/follow.
func (h *UserHandler) Unfollow(c *gin.Context) {
	if err := h.users.Unfollow(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"following": false})
}

// Following handles GET /users/:id/following.
func (h *UserHandler) Following(c *gin.Context) {
	users, err := h.users.ListFollowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, users)
}

// Followers handles GET /users/:id/followers.
func (h *UserHandler) Followers(c *gin.Context) {
	users, err := h.users.ListFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, users)
}

// Audios handles GET /users/:id/audios.
func (h *UserHandler) Audios(c *gin.Context) {
	audios, err := h.audios.ListByOwner(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, audios)
}

// Playlists handles GET /users/:id/playlists.
func (h *UserHandler) Playlists(c *gin.Context) {
	playlists, err := h.playlists.ListOwned(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, playlists)
}
