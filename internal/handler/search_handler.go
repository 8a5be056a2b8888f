package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/internal/middleware"
	"github.com/echoplay/server/internal/service"
	"github.com/echoplay/server/pkg/httputil"
)

// SearchHandler serves full-catalog search and discovery.
type SearchHandler struct {
	search    *service.SearchService
	discovery *service.DiscoveryService
}

// NewSearchHandler creates the search handler.
func NewSearchHandler(search *service.SearchService, discovery *service.DiscoveryService) *SearchHandler {
	return &SearchHandler{search: search, discovery: discovery}
}

// Search handles GET /search?q=...&users=true&songs=true...
// With no category flag the search spans every category.
func (h *SearchHandler) Search(c *gin.Context) {
	filter := service.SearchFilter{
		Users:     c.Query("users") == "true",
		Playlists: c.Query("playlists") == "true",
		Albums:    c.Query("albums") == "true",
		Songs:     c.Query("songs") == "true",
		Podcasts:  c.Query("podcasts") == "true",
	}

	result, err := h.search.Search(c.Request.Context(), middleware.Principal(c), c.Query("q"), filter)
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, result)
}

// RecentTags handles GET /me/tags/recent?n=20.
func (h *SearchHandler) RecentTags(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "20"))
	if err != nil {
		badRequest(c, err)
		return
	}

	tags, err := h.discovery.RecentTags(c.Request.Context(), middleware.Principal(c), n)
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, tags)
}

// Recommend handles GET /me/recommendations?n=20&recent=50. "n" caps the
// result, "recent" is how many recent listens feed the taste signal.
func (h *SearchHandler) Recommend(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "20"))
	if err != nil {
		badRequest(c, err)
		return
	}
	recent, err := strconv.Atoi(c.DefaultQuery("recent", "50"))
	if err != nil {
		badRequest(c, err)
		return
	}

	audios, err := h.discovery.Recommend(c.Request.Context(), middleware.Principal(c), n, recent)
	if err != nil {
		fail(c, err)
		return
	}
	httputil.OK(c, audios)
}
