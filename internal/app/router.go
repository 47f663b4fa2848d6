package app

import (
	"treasure_hunt_backend/docs"
	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/middleware"
	"treasure_hunt_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, repos)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerAuthorizedRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// 列表类：可选认证，允许游客访问，登录用户可看私有内容
		public.GET("/hunts", middleware.TryAuthMiddleware(a.Config), c.hunt.ListHunts)
		public.GET("/hunts/:id", middleware.TryAuthMiddleware(a.Config), c.hunt.GetHunt)

		leaderboard := public.Group("/leaderboard")
		{
			leaderboard.GET("/hunt/:huntId", c.leaderboard.HuntLeaderboard)
			leaderboard.GET("/global", c.leaderboard.GlobalLeaderboard)
			leaderboard.GET("/user/stats/:userId", c.leaderboard.UserStats)
		}
	}
}

func (a *App) registerAuthorizedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/profile", c.auth.GetProfile)

	hunts := rg.Group("/hunts")
	{
		hunts.POST("", c.hunt.CreateHunt)
		hunts.GET("/my", c.hunt.ListMyHunts)
		hunts.DELETE("/:id", c.hunt.DeleteHunt)
	}

	game := rg.Group("/game")
	{
		game.POST("/start/:huntId", c.game.StartGame)
		game.GET("/:sessionId/clue", c.game.GetCurrentClue)
		game.POST("/:sessionId/answer", c.game.SubmitAnswer)
		game.POST("/:sessionId/hint", c.game.UseHint)
		game.POST("/:sessionId/abandon", c.game.AbandonGame)
	}

	leaderboard := rg.Group("/leaderboard")
	{
		leaderboard.GET("/user/stats", c.leaderboard.UserStats)
		leaderboard.POST("/refresh", c.leaderboard.RefreshLeaderboard)
	}

	upload := rg.Group("/upload")
	{
		upload.POST("", c.upload.UploadFile)
		upload.GET("/:id", c.upload.GetFileInfo)
		upload.DELETE("/:id", c.upload.DeleteFile)
	}
}
