package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/internal/middleware"
	"github.com/echoplay/server/internal/service"
	"github.com/echoplay/server/pkg/apperrors"
	"github.com/echoplay/server/pkg/httputil"
)

// TagHandler serves the tag vocabulary and the audio-tag edges.
type TagHandler struct {
	tags *service.TagService
}

// NewTagHandler creates the tag handler.
func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// List handles GET /tags. An optional "namespace" query narrows to one
// namespace.
func (h *TagHandler) List(c *gin.Context) {
	switch ns := c.Query("namespace"); ns {
	case "":
		tags, err := h.tags.ListAll(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		httputil.OK(c, tags)
	case string(domain.NamespaceSong), string(domain.NamespacePodcast):
		tags, err := h.tags.ListByNamespace(c.Request.Context(), domain.TagNamespace(ns))
		if err != nil {
			fail(c, err)
			return
		}
		httputil.OK(c, tags)
	default:
		httputil.Fail(c, apperrors.ErrBadRequest.WithDetails("unknown namespace"))
	}
}

// OfAudio handles GET /audios/:id/tags.
func (h *TagHandler) OfAudio(c *gin.Context) {
	tags, err := h.tags.TagsOfAudio(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, tags)
}

// OfAudios handles GET /tags/of-audios?ids=a1,a2. The response maps
// audio id to tags; hidden and unknown ids are simply absent.
func (h *TagHandler) OfAudios(c *gin.Context) {
	raw := strings.Split(c.Query("ids"), ",")
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		httputil.Fail(c, apperrors.ErrBadRequest.WithDetails("ids parameter required"))
		return
	}

	tags, err := h.tags.TagsOfAudios(c.Request.Context(), middleware.Principal(c), ids)
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, tags)
}

// Link handles PUT /audios/:id/tags/:tagID.
func (h *TagHandler) Link(c *gin.Context) {
	if err := h.tags.Link(c.Request.Context(), middleware.Principal(c), c.Param("id"), c.Param("tagID")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"linked": true})
}

// Unlink handles DELETE /audios/:id/tags/:tagID.
func (h *TagHandler) Unlink(c *gin.Context) {
	if err := h.tags.Unlink(c.Request.Context(), middleware.Principal(c), c.Param("id"), c.Param("tagID")); err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, gin.H{"linked": false})
}
