package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/internal/middleware"
	"github.com/echoplay/server/internal/service"
	"github.com/echoplay/server/pkg/auth"
	"github.com/echoplay/server/pkg/logger"
)

// Services groups the service layer for route registration.
type Services struct {
	Users     *service.UserService
	Audios    *service.AudioService
	Playlists *service.PlaylistService
	Tags      *service.TagService
	Search    *service.SearchService
	Discovery *service.DiscoveryService
	Listens   *service.ListenService
}

// NewRouter builds the gin engine with all routes and middleware wired.
//
// Read routes take optional authentication: an anonymous request sees
// only public content. Mutations require a token.
func NewRouter(svcs Services, tokens *auth.Manager, log logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(log))
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(svcs.Users)
	userHandler := NewUserHandler(svcs.Users, svcs.Audios, svcs.Playlists)
	audioHandler := NewAudioHandler(svcs.Audios, svcs.Listens)
	playlistHandler := NewPlaylistHandler(svcs.Playlists)
	tagHandler := NewTagHandler(svcs.Tags)
	searchHandler := NewSearchHandler(svcs.Search, svcs.Discovery)
	listenHandler := NewListenHandler(svcs.Listens)

	api := router.Group("/api/v1")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Public reads; an optional token widens visibility to owned
	// private content.
	public := api.Group("")
	public.Use(middleware.OptionalAuth(tokens))
	{
		public.GET("/users/:id", userHandler.Get)
		public.GET("/users/:id/following", userHandler.Following)
		public.GET("/users/:id/followers", userHandler.Followers)
		public.GET("/users/:id/audios", userHandler.Audios)
		public.GET("/users/:id/playlists", userHandler.Playlists)

		public.GET("/audios/:id", audioHandler.Get)
		public.GET("/audios/:id/stream", audioHandler.Stream)
		public.GET("/audios/:id/plays", audioHandler.PlayCount)
		public.GET("/audios/:id/tags", tagHandler.OfAudio)

		public.GET("/playlists/:id", playlistHandler.Get)

		public.GET("/tags", tagHandler.List)
		public.GET("/tags/of-audios", tagHandler.OfAudios)
		public.GET("/search", searchHandler.Search)
	}

	// Authenticated mutations and per-user views.
	authed := api.Group("")
	authed.Use(middleware.Auth(tokens, log))
	{
		authed.PATCH("/users/:id", userHandler.Update)
		authed.DELETE("/users/:id", userHandler.Delete)
		authed.POST("/users/:id/follow", userHandler.Follow)
		authed.DELETE("/users/:id/follow", userHandler.Unfollow)

		authed.POST("/audios", audioHandler.Create)
		authed.PATCH("/audios/:id", audioHandler.Update)
		authed.DELETE("/audios/:id", audioHandler.Delete)
		authed.PUT("/audios/:id/owners", audioHandler.ReplaceOwners)
		authed.PUT("/audios/:id/tags/:tagID", tagHandler.Link)
		authed.DELETE("/audios/:id/tags/:tagID", tagHandler.Unlink)

		authed.POST("/playlists", playlistHandler.Create)
		authed.PATCH("/playlists/:id", playlistHandler.Update)
		authed.DELETE("/playlists/:id", playlistHandler.Delete)
		authed.PUT("/playlists/:id/audios/:audioID", playlistHandler.AddAudio)
		authed.DELETE("/playlists/:id/audios/:audioID", playlistHandler.RemoveAudio)
		authed.PUT("/playlists/:id/owners", playlistHandler.ReplaceOwners)
		authed.PUT("/playlists/:id/owners/:userID", playlistHandler.AddOwner)
		authed.DELETE("/playlists/:id/owners/:userID", playlistHandler.RemoveOwner)
		authed.POST("/playlists/:id/follow", playlistHandler.Follow)
		authed.DELETE("/playlists/:id/follow", playlistHandler.Unfollow)

		authed.GET("/me/playlists/followed", playlistHandler.Followed)
		authed.GET("/me/tags/recent", searchHandler.RecentTags)
		authed.GET("/me/recommendations", searchHandler.Recommend)
		authed.POST("/me/listens", listenHandler.Record)
		authed.GET("/me/listens/count", listenHandler.Count)
		authed.GET("/me/resume", listenHandler.Resume)
		authed.PUT("/me/resume", listenHandler.UpdateResume)
	}

	return router
}
