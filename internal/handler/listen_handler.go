package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/internal/middleware"
	"github.com/echoplay/server/internal/service"
	"github.com/echoplay/server/pkg/httputil"
)

// ListenHandler serves the listen log and the resume pointer.
type ListenHandler struct {
	listens *service.ListenService
}

// NewListenHandler creates the listen handler.
func NewListenHandler(listens *service.ListenService) *ListenHandler {
	return &ListenHandler{listens: listens}
}

// Record handles POST /me/listens.
func (h *ListenHandler) Record(c *gin.Context) {
	var req struct {
		AudioID    string `json:"audio_id" binding:"required"`
		OffsetSecs int    `json:"offset_secs"`
		PlaylistID string `json:"playlist_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.listens.RecordListen(c.Request.Context(), middleware.Principal(c), service.RecordListenInput{
		AudioID:    req.AudioID,
		OffsetSecs: req.OffsetSecs,
		PlaylistID: req.PlaylistID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	httputil.Created(c, gin.H{"recorded": true})
}

// Count handles GET /me/listens/count.
func (h *ListenHandler) Count(c *gin.Context) {
	p := middleware.Principal(c)
	count, err := h.listens.ListenCount(c.Request.Context(), p, p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"count": count})
}

// Resume handles GET /me/resume.
func (h *ListenHandler) Resume(c *gin.Context) {
	state, err := h.listens.Resume(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, state)
}

// UpdateResume handles PUT /me/resume, for mid-playback progress saves.
func (h *ListenHandler) UpdateResume(c *gin.Context) {
	var req struct {
		AudioID    string `json:"audio_id" binding:"required"`
		OffsetSecs int    `json:"offset_secs"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.listens.UpdateResume(c.Request.Context(), middleware.Principal(c), req.AudioID, req.OffsetSecs); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"saved": true})
}
