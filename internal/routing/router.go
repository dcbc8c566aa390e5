package routing

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"skillswap-web/internal/config"
	"skillswap-web/internal/handlers"
	"skillswap-web/internal/middleware"
	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

func InitRouter(cfg config.Config, sessions handlers.SessionProvider) *gin.Engine {
	// Initialize router with logging and recovery middleware
	router := gin.New()
	// Initialize middleware
	setupCommonMiddleware(router, cfg)
	// Setup routes
	setupRoutes(router, cfg, sessions)

	return router
}

func setupCommonMiddleware(router *gin.Engine, cfg config.Config) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "PATCH", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", "Origin", "X-Trace-Id", utils.BrowserSessionHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Trace-Id", utils.BrowserSessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
	})
	router.Use(middleware.SanitizePath())
	router.Use(middleware.BrowserSession(false))
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, cfg config.Config, sessions handlers.SessionProvider) {
	// Set up version route
	router.GET("/", func(c *gin.Context) {
		apiVersion := cfg.PRNumber
		var pullRequest string

		if apiVersion == "" {
			apiVersion = "main:latest"
		} else {
			pullRequest = "https://github.com/skillswap/skillswap-web/pull/" + apiVersion
			apiVersion = "PR-" + apiVersion
		}
		metadata := &schemas.MetadataDTO{
			ApiVersion:  apiVersion,
			ApiName:     "SkillSwap Web",
			PullRequest: pullRequest,
		}
		utils.WriteAndLogResponse(c, metadata, http.StatusOK)
	})

	// Set up health route
	router.GET("/health", func(c *gin.Context) {
		// Ping the session storage
		if err := sessions.Ping(c.Request.Context()); err != nil {
			utils.LogMessageWithFieldsAndError(c, "error", "Session storage not responding", err)
			c.String(http.StatusInternalServerError, "Session storage not responding")
			return
		}
		c.Status(http.StatusOK)
	})

	// Set up UI routes
	uiRouter := router.Group("/ui")
	{
		viewRoutes(uiRouter, handlers.NewViewHandler(sessions))
		userRoutes(uiRouter, handlers.NewUserHandler(sessions))

		swapRouter := uiRouter.Group("/swaps")
		swapRoutes(swapRouter, handlers.NewSwapHandler(sessions))

		notificationRouter := uiRouter.Group("/notifications")
		notificationRoutes(notificationRouter, handlers.NewNotificationHandler(sessions))

		adminRouter := uiRouter.Group("/admin")
		adminRoutes(adminRouter, handlers.NewAdminHandler(sessions))
	}
}

func viewRoutes(uiRouter *gin.RouterGroup, viewHdl handlers.ViewHdl) {
	uiRouter.GET("/view", viewHdl.GetView)
	uiRouter.POST("/navigate", middleware.ValidateAndSanitizeStruct[schemas.NavigateRequest](), viewHdl.Navigate)
	uiRouter.POST("/filters", middleware.ValidateAndSanitizeStruct[schemas.FilterRequest](), viewHdl.SetFilters)
	uiRouter.POST("/dark-mode", viewHdl.ToggleDarkMode)
}

func userRoutes(uiRouter *gin.RouterGroup, userHdl handlers.UserHdl) {
	uiRouter.POST("/login", middleware.ValidateAndSanitizeStruct[schemas.LoginRequest](), userHdl.Login)
	uiRouter.POST("/register", middleware.ValidateAndSanitizeStruct[schemas.RegistrationRequest](), userHdl.Register)
	uiRouter.POST("/logout", userHdl.Logout)
	uiRouter.PATCH("/profile", middleware.ValidateAndSanitizeStruct[schemas.ProfileUpdateRequest](), userHdl.UpdateProfile)
	uiRouter.POST("/profile/:"+utils.UserIdKey+"/view", userHdl.ViewProfile)
}

func swapRoutes(swapRouter *gin.RouterGroup, swapHdl handlers.SwapHdl) {
	swapRouter.POST("", middleware.ValidateAndSanitizeStruct[schemas.SwapRequestForm](), swapHdl.RequestSwap)
	swapRouter.POST("/:"+utils.SwapIdKey+"/accept", swapHdl.AcceptRequest)
	swapRouter.POST("/:"+utils.SwapIdKey+"/reject", swapHdl.RejectRequest)
	swapRouter.POST("/:"+utils.SwapIdKey+"/complete", swapHdl.CompleteRequest)
	swapRouter.POST("/:"+utils.SwapIdKey+"/cancel", swapHdl.CancelRequest)
	swapRouter.POST("/:"+utils.SwapIdKey+"/rating", middleware.ValidateAndSanitizeStruct[schemas.RatingRequest](), swapHdl.SubmitRating)
}

func notificationRoutes(notificationRouter *gin.RouterGroup, notificationHdl handlers.NotificationHdl) {
	notificationRouter.POST("/read", notificationHdl.MarkAllRead)
	notificationRouter.POST("/:"+utils.NotificationIdKey+"/read", notificationHdl.MarkRead)
}

func adminRoutes(adminRouter *gin.RouterGroup, adminHdl handlers.AdminHdl) {
	adminRouter.POST("/users/:"+utils.UserIdKey+"/deactivate", adminHdl.DeactivateUser)
	adminRouter.POST("/users/:"+utils.UserIdKey+"/ban", adminHdl.BanUser)
	adminRouter.POST("/users/:"+utils.UserIdKey+"/unban", adminHdl.UnbanUser)
	adminRouter.POST("/users/:"+utils.UserIdKey+"/visibility", adminHdl.ToggleVisibility)
	adminRouter.POST("/skills/:"+utils.SkillIdKey+"/reject", adminHdl.RejectSkill)
	adminRouter.POST("/broadcast", middleware.ValidateAndSanitizeStruct[schemas.BroadcastRequest](), adminHdl.Broadcast)
	adminRouter.GET("/reports/:"+utils.ReportTypeKey, adminHdl.DownloadReport)
	adminRouter.POST("/refresh", adminHdl.Refresh)
}
