package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rajivijay0509/nutrition-tracker-web/controllers"
	"github.com/rajivijay0509/nutrition-tracker-web/middlewares"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Handlers bundles what the router mounts.
type Handlers struct {
	Auth      *controllers.AuthController
	Meals     *controllers.MealController
	Foods     *controllers.FoodController
	Wellness  *controllers.WellnessController
	Goals     *controllers.GoalController
	Profile   *controllers.ProfileController
	Recipes   *controllers.RecipeController
	Community *controllers.CommunityController
	Dashboard *controllers.DashboardController
	Devices   *controllers.DeviceController
	Realtime  *controllers.RealtimeController
	Views     *controllers.ViewController
}

type Options struct {
	JWTSecret []byte
	Log       *logrus.Logger
	Gatherer  prometheus.Gatherer
	// AuthRate limits sign-in attempts per client IP; zero disables the limit.
	AuthRate  rate.Limit
	AuthBurst int
}

func SetupRouter(h Handlers, opt Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(opt.Log), middlewares.Metrics())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opt.Gatherer, promhttp.HandlerOpts{})))

	// Public auth routes
	public := r.Group("/")
	if opt.AuthRate > 0 {
		public.Use(middlewares.RateLimit(middlewares.NewIPRateLimiter(opt.AuthRate, opt.AuthBurst)))
	}
	{
		public.GET("/login", h.Auth.LoginPage)
		public.POST("/login", h.Auth.Login)
		public.GET("/register", h.Auth.RegisterPage)
		public.POST("/register", h.Auth.Register)
		public.GET("/auth/oauth/:provider", h.Auth.OAuth)
		public.GET("/auth/callback", h.Auth.Callback)
		public.POST("/auth/confirm", h.Auth.Confirm)
	}

	// Protected pages
	views := r.Group("/")
	views.Use(middlewares.ViewAuthMiddleware(opt.JWTSecret))
	{
		views.GET("/", h.Views.DashboardPage)
		views.GET("/dashboard", h.Views.DashboardPage)
		views.GET("/food-logging", h.Views.FoodLoggingPage)
		views.GET("/history", h.Views.HistoryPage)
		views.GET("/wellness", h.Views.WellnessPage)
		views.GET("/recipes", h.Views.RecipesPage)
		views.GET("/goals", h.Views.GoalsPage)
		views.GET("/community", h.Views.CommunityPage)
		views.GET("/profile", h.Views.ProfilePage)
	}

	// Protected API
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(opt.JWTSecret))
	{
		api.GET("/session", h.Auth.Session)
		api.PUT("/session/metadata", h.Auth.UpdateMetadata)
		api.POST("/logout", h.Auth.Logout)

		api.GET("/dashboard", h.Dashboard.GetDashboard)
		api.GET("/history", h.Dashboard.GetHistory)

		api.GET("/meals", h.Meals.ListMeals)
		api.POST("/meals", h.Meals.LogMeal)
		api.DELETE("/meals/:id", h.Meals.DeleteMeal)
		api.POST("/meals/:id/photo", h.Meals.UploadPhoto)

		api.GET("/foods", h.Foods.Search)
		api.GET("/foods/categories", h.Foods.Categories)
		api.GET("/foods/cost", h.Foods.Cost)
		api.POST("/foods/recognize", h.Foods.Recognize)
		api.GET("/phases", h.Foods.Phases)

		api.GET("/wellness", h.Wellness.GetWellness)
		api.PUT("/wellness", h.Wellness.LogWellness)
		api.GET("/wellness/range", h.Wellness.GetRange)
		api.GET("/wellness/options", h.Wellness.Options)
		api.GET("/symptoms", h.Wellness.ListSymptoms)
		api.POST("/symptoms", h.Wellness.LogSymptom)
		api.DELETE("/symptoms/:id", h.Wellness.DeleteSymptom)

		api.GET("/goals", h.Goals.GetGoals)
		api.POST("/goals", h.Goals.AddGoal)
		api.PATCH("/goals/:id", h.Goals.UpdateGoal)
		api.DELETE("/goals/:id", h.Goals.DeleteGoal)

		api.GET("/profile", h.Profile.GetProfile)
		api.PUT("/profile", h.Profile.UpdateProfile)
		api.POST("/profile/avatar", h.Profile.UploadAvatar)
		api.GET("/profile/bmi", h.Profile.BMI)
		api.POST("/profile/password", h.Auth.ChangePassword)

		api.GET("/recipes", h.Recipes.List)
		api.POST("/recipes", h.Recipes.Add)
		api.GET("/recipes/:id", h.Recipes.Get)
		api.POST("/recipes/:id/rate", h.Recipes.Rate)
		api.POST("/recipes/:id/like", h.Recipes.Like)
		api.POST("/recipes/:id/save", h.Recipes.Save)

		api.GET("/community", h.Community.List)
		api.POST("/community", h.Community.Publish)
		api.GET("/community/search", h.Community.Search)
		api.GET("/community/trending", h.Community.Trending)
		api.GET("/community/top-rated", h.Community.TopRated)
		api.GET("/community/:id", h.Community.Get)
		api.POST("/community/:id/share", h.Community.Share)
		api.POST("/community/:id/like", h.Community.Like)
		api.POST("/community/:id/rate", h.Community.Rate)
		api.POST("/community/:id/comments", h.Community.Comment)
		api.POST("/community/:id/save", h.Community.Save)

		api.POST("/devices", h.Devices.Register)
		api.POST("/devices/test", h.Devices.PushTest)
		api.POST("/notifications/toggle", h.Devices.ToggleNotifications)

		api.GET("/realtime", h.Realtime.EventsWS)
	}

	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/")
	})
	return r
}
