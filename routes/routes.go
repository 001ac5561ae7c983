package routes

import (
	"net/http"

	"github.com/calo-work-stack/Calo-sub001/config"
	"github.com/calo-work-stack/Calo-sub001/controllers"
	"github.com/calo-work-stack/Calo-sub001/metrics"
	"github.com/calo-work-stack/Calo-sub001/middlewares"

	"github.com/gin-gonic/gin"
)

// Deps carries the controllers that need constructed services.
type Deps struct {
	Meals         *controllers.MealController
	Menus         *controllers.MenuController
	Questionnaire *controllers.QuestionnaireController
	Statistics    *controllers.StatisticsController
	Devices       *controllers.DeviceController
	Realtime      *controllers.RealtimeController
	Dev           *controllers.DevController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := config.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.DELETE("/profile", controllers.DeleteAccount)

		user.POST("/questionnaire", d.Questionnaire.Submit)
		user.GET("/questionnaire", d.Questionnaire.Get)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", d.Meals.LogMeal)
		meals.POST("/analyze-text", d.Meals.LogMealFromText)
		meals.POST("/analyze-photo", d.Meals.LogMealFromPhoto)
		meals.GET("", d.Meals.ListMeals)
		meals.GET("/recent-items", d.Meals.RecentItems)
		meals.GET("/:id", d.Meals.GetMeal)
		meals.PUT("/:id", d.Meals.UpdateMeal)
		meals.DELETE("/:id", d.Meals.DeleteMeal)
	}

	goals := r.Group("/goals")
	goals.Use(middlewares.AuthMiddleware())
	{
		goals.GET("", controllers.GetDailyGoals)
		goals.PUT("", controllers.SetDailyGoals)
		goals.GET("/history", controllers.GetProgressHistory)
	}

	menus := r.Group("/menus")
	menus.Use(middlewares.AuthMiddleware())
	{
		menus.POST("/generate", d.Menus.Generate)
		menus.GET("", d.Menus.List)
		menus.GET("/:id", d.Menus.Get)
		menus.DELETE("/:id", d.Menus.Delete)
		menus.POST("/:id/meals/:mealId/regenerate", d.Menus.RegenerateMeal)
		menus.GET("/:id/shopping-list", d.Menus.ShoppingList)

		menus.POST("/:id/meals/:mealId/complete", controllers.CompleteMeal)
		menus.DELETE("/:id/meals/:mealId/complete", controllers.UncompleteMeal)
	}

	plans := r.Group("/meal-plans")
	plans.Use(middlewares.AuthMiddleware())
	{
		plans.POST("", controllers.CreateMealPlan)
		plans.GET("", controllers.ListMealPlans)
		plans.GET("/today", controllers.TodayMealPlan)
		plans.POST("/:id/activate", controllers.ActivateMealPlan)
		plans.DELETE("/:id", controllers.DeleteMealPlan)
	}

	gamification := r.Group("/gamification")
	gamification.Use(middlewares.AuthMiddleware())
	{
		gamification.GET("", controllers.GetGamification)
	}

	notifications := r.Group("/notifications")
	notifications.Use(middlewares.AuthMiddleware())
	{
		notifications.GET("/preferences", controllers.GetNotificationPrefs)
		notifications.PUT("/preferences", controllers.UpdateNotificationPrefs)
		notifications.POST("/devices/toggle", controllers.ToggleDevices)
		notifications.POST("/devices", d.Devices.Register)
	}

	stats := r.Group("/statistics")
	stats.Use(middlewares.AuthMiddleware())
	{
		stats.GET("/summary", d.Statistics.GetSummary)
		stats.GET("/completions", d.Statistics.GetCompletions)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/events", d.Realtime.EventsWS)
	}

	dev := r.Group("/dev")
	dev.Use(middlewares.AuthMiddleware())
	{
		dev.POST("/push-test", d.Dev.PushTest)
		dev.POST("/upload-test", d.Dev.UploadTest)
	}

	return r
}
