package api

import (
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.GET("/:username", group.UserHandler.GetProfile)
			userGroup.GET("/:username/followers", group.UserFollowHandler.ListFollowers)
			userGroup.GET("/:username/following", group.UserFollowHandler.ListFollowing)

			authOptGroup := userGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:username/posts", group.PostHandler.ListUserPosts)
			}

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
			}
		}

		userFollowGroup := apiGroup.Group("/user-relation")
		{
			userFollowGroup.Use(middleware.AuthMiddleware())
			{
				userFollowGroup.POST("/follow/:username", group.UserFollowHandler.Follow)
				userFollowGroup.DELETE("/follow/:username", group.UserFollowHandler.Unfollow)
				userFollowGroup.GET("/isfollow/:username", group.UserFollowHandler.IsFollowing)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.GET("/search", group.PostHandler.SearchPosts)
				authOptGroup.GET("/:slug", group.PostHandler.GetPost)
				authOptGroup.GET("/:slug/comments", group.CommentHandler.ListComments)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:slug", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:slug", group.PostHandler.DeletePost)
				authGroup.POST("/:slug/comments", group.CommentHandler.CreateComment)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.Use(middleware.AuthMiddleware())
			{
				commentGroup.PUT("/:comment_id", group.CommentHandler.UpdateComment)
				commentGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
			}
		}

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("/list", group.NotificationHandler.ListNotifications)
			notificationGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notificationGroup.POST("/read/:notification_id", group.NotificationHandler.MarkAsRead)
			notificationGroup.POST("/read-all", group.NotificationHandler.MarkAllAsRead)
		}

		chatGroup := apiGroup.Group("/chat")
		{
			chatGroup.GET("/ws", group.WsHandler.Connect)

			authGroup := chatGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/send", group.ChatHandler.SendMessage)
				authGroup.GET("/history", group.ChatHandler.GetHistory)
			}
		}
	}

	return r
}
