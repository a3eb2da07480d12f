package router

import (
	"vidtube/internal/config"
	"vidtube/internal/handler"
	"vidtube/internal/middleware"
	"vidtube/internal/repository"

	"github.com/gin-gonic/gin"
)

// Handlers 路由装配需要的全部handler
type Handlers struct {
	Healthcheck  handler.HealthcheckHandler
	User         handler.UserHandler
	Video        handler.VideoHandler
	Comment      handler.CommentHandler
	Like         handler.LikeHandler
	Subscription handler.SubscriptionHandler
	Tweet        handler.TweetHandler
	Playlist     handler.PlaylistHandler
	Dashboard    handler.DashboardHandler
}

// SetupRouter 装配/api/v1下的全部路由
// 写接口统一挂请求守卫；公开读接口挂可选守卫，用来识别已登录的访问者
func SetupRouter(cfg *config.Config, userRepo repository.UserRepository, h Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.ErrorHandler(cfg.IsProduction()))

	auth := middleware.AuthMiddleware(cfg, userRepo)
	optionalAuth := middleware.OptionalAuth(cfg, userRepo)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/healthcheck", h.Healthcheck.Check)

		users := v1.Group("/users")
		{
			users.POST("/register", h.User.Register)
			users.POST("/login", h.User.Login)
			users.POST("/refresh-token", h.User.RefreshToken)
			users.GET("/channel/:username", optionalAuth, h.User.GetChannelProfile)

			users.POST("/logout", auth, h.User.Logout)
			users.GET("/me", auth, h.User.GetMe)
			users.POST("/change-password", auth, h.User.ChangePassword)
			users.PATCH("/update-account", auth, h.User.UpdateAccount)
			users.PATCH("/avatar", auth, h.User.UpdateAvatar)
			users.PATCH("/cover", auth, h.User.UpdateCover)
			users.GET("/history", auth, h.User.GetWatchHistory)
		}

		videos := v1.Group("/videos")
		{
			videos.GET("", optionalAuth, h.Video.List)
			videos.GET("/:videoId", optionalAuth, h.Video.GetByID)

			videos.POST("", auth, h.Video.Publish)
			videos.PATCH("/:videoId", auth, h.Video.Update)
			videos.DELETE("/:videoId", auth, h.Video.Delete)
			videos.PATCH("/:videoId/toggle-publish", auth, h.Video.TogglePublish)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("/video/:videoId", h.Comment.ListByVideo)

			comments.POST("/video/:videoId", auth, h.Comment.Add)
			comments.PATCH("/:commentId", auth, h.Comment.Update)
			comments.DELETE("/:commentId", auth, h.Comment.Delete)
		}

		likes := v1.Group("/likes", auth)
		{
			likes.POST("/video/:videoId", h.Like.ToggleVideoLike)
			likes.POST("/comment/:commentId", h.Like.ToggleCommentLike)
			likes.POST("/tweet/:tweetId", h.Like.ToggleTweetLike)
			likes.GET("/videos", h.Like.GetLikedVideos)
		}

		subscriptions := v1.Group("/subscriptions", auth)
		{
			subscriptions.POST("/channel/:channelId/toggle", h.Subscription.Toggle)
			subscriptions.GET("/channel/:channelId/subscribers", h.Subscription.GetSubscribers)
			subscriptions.GET("/user/:subscriberId/channels", h.Subscription.GetSubscribedChannels)
		}

		tweets := v1.Group("/tweets")
		{
			tweets.GET("/all-tweets", h.Tweet.GetAll)
			tweets.GET("/user/:userId", h.Tweet.GetByUser)

			tweets.POST("", auth, h.Tweet.Create)
			tweets.PATCH("/:tweetId", auth, h.Tweet.Update)
			tweets.DELETE("/:tweetId", auth, h.Tweet.Delete)
		}

		playlists := v1.Group("/playlists", auth)
		{
			playlists.POST("", h.Playlist.Create)
			playlists.GET("/user/:userId", h.Playlist.GetByUser)
			playlists.GET("/:playlistId", h.Playlist.GetByID)
			playlists.PATCH("/:playlistId", h.Playlist.Update)
			playlists.DELETE("/:playlistId", h.Playlist.Delete)
			playlists.PATCH("/add/:videoId/:playlistId", h.Playlist.AddVideo)
			playlists.PATCH("/:playlistId/videos/:videoId/remove", h.Playlist.RemoveVideo)
		}

		dashboard := v1.Group("/dashboard", auth)
		{
			dashboard.GET("/stats/:channelId", h.Dashboard.GetChannelStats)
			dashboard.GET("/videos/:channelId", h.Dashboard.GetChannelVideos)
		}
	}

	return r
}
