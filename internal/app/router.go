package app

import (
	"brainbox_backend/docs"
	"brainbox_backend/internal/config"
	"brainbox_backend/internal/middleware"
	"brainbox_backend/internal/model"
	"brainbox_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)

		// 3. 管理员路由
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("/affirmations", c.affirmation.Create)
		}
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/affirmation", c.affirmation.Today)

		// 密码重置
		auth := public.Group("/auth")
		{
			auth.POST("/forgot-password", c.auth.ForgotPassword)
			auth.POST("/reset-password", c.auth.ResetPassword)
		}
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// 心情打卡
	rg.POST("/mood", c.mood.LogMood)
	rg.GET("/mood/history", c.mood.History)
	rg.GET("/mood/stats", c.mood.WeeklyStats)

	// 陪伴聊天
	rg.POST("/chat", c.chat.Chat)
	rg.GET("/chat/history", c.chat.History)
	rg.DELETE("/chat/history", c.chat.ClearHistory)

	// 自评评估
	assessment := rg.Group("/assessment")
	{
		assessment.GET("/progress", c.assessment.GetProgress)
		assessment.POST("/progress", c.assessment.SaveModule)
		assessment.DELETE("/progress", c.assessment.ClearProgress)
		assessment.POST("/analyze", c.assessment.Analyze)
		assessment.POST("/submit", c.assessment.Submit)
		assessment.GET("/reports", c.assessment.ListReports)
		assessment.GET("/reports/:id", c.assessment.GetReport)
		assessment.POST("/reports/:id/email", c.assessment.EmailReport)
	}
}
