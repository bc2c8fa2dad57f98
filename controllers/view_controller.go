package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

// ViewController serves the data model behind each authenticated page.
type ViewController struct {
	Dashboard *services.DashboardService
	History   *services.HistoryService
	Foods     *services.FoodService
	Meals     *services.MealService
	Wellness  *services.WellnessService
	Goals     *services.GoalService
	Recipes   *services.RecipeService
	Community *services.CommunityService
	Profiles  *services.ProfileService
}

func view(c *gin.Context, name string, data gin.H) {
	data["view"] = name
	data["user"] = authUserFromCtx(c)
	c.JSON(http.StatusOK, data)
}

// GET / and /dashboard
func (vc *ViewController) DashboardPage(c *gin.Context) {
	out, err := vc.Dashboard.Dashboard(c.Request.Context(), authUserFromCtx(c), c.DefaultQuery("date", today()), c.Query("phase"))
	if err != nil {
		respondError(c, err)
		return
	}
	view(c, "dashboard", gin.H{"dashboard": out})
}

// GET /food-logging?phase=v2&slot=10:00 AM
func (vc *ViewController) FoodLoggingPage(c *gin.Context) {
	sel := vc.Foods.Selection()
	if phase := c.Query("phase"); phase != "" {
		if err := sel.SelectPhase(phase); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown phase " + phase})
			return
		}
	}
	if slot := c.Query("slot"); slot != "" {
		if err := sel.SelectSlot(slot); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	uid, _ := userIDFromCtx(c)
	date := c.DefaultQuery("date", today())
	meals, err := vc.Meals.GetDailyMeals(c.Request.Context(), uid, date)
	if err != nil {
		respondError(c, err)
		return
	}
	view(c, "food-logging", gin.H{
		"date":          date,
		"categories":    vc.Foods.Categories(),
		"phases":        vc.Foods.Phases(),
		"defaultPhase":  vc.Foods.Catalog().DefaultPhase().Key,
		"selectedPhase": sel.Phase(),
		"selectedSlot":  sel.Slot(),
		"slots":         sel.Slots(),
		"meals":         meals,
	})
}

// GET /history
func (vc *ViewController) HistoryPage(c *gin.Context) {
	uid, _ := userIDFromCtx(c)
	from, to := historyRange(c)
	out, err := vc.History.History(c.Request.Context(), uid, from, to, c.Query("filter"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	view(c, "history", gin.H{"history": out})
}

// GET /wellness
func (vc *ViewController) WellnessPage(c *gin.Context) {
	uid, _ := userIDFromCtx(c)
	date := c.DefaultQuery("date", today())
	data := gin.H{"date": date, "options": vc.Wellness.Options(), "wellness": nil}

	rec, err := vc.Wellness.GetWellness(c.Request.Context(), uid, date)
	switch {
	case err == nil:
		data["wellness"] = rec
	case !errors.Is(err, repositories.ErrNotFound):
		respondError(c, err)
		return
	}
	symptoms, err := vc.Wellness.GetSymptoms(c.Request.Context(), uid, date, date)
	if err != nil {
		respondError(c, err)
		return
	}
	data["symptoms"] = symptoms
	view(c, "wellness", data)
}

// GET /recipes
func (vc *ViewController) RecipesPage(c *gin.Context) {
	uid, _ := userIDFromCtx(c)
	var q services.RecipeQuery
	_ = c.ShouldBindQuery(&q)
	list, err := vc.Recipes.Query(c.Request.Context(), uid, q)
	if err != nil {
		respondError(c, err)
		return
	}
	view(c, "recipes", gin.H{"recipes": list, "query": q})
}

// GET /goals
func (vc *ViewController) GoalsPage(c *gin.Context) {
	uid, _ := userIDFromCtx(c)
	var q services.GoalQuery
	_ = c.ShouldBindQuery(&q)
	goals, err := vc.Goals.GetGoals(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	view(c, "goals", gin.H{
		"goals": goalViews(services.QueryGoals(goals, q)),
		"stats": services.ComputeGoalStats(goals),
		"query": q,
	})
}

// GET /community
func (vc *ViewController) CommunityPage(c *gin.Context) {
	uid, _ := userIDFromCtx(c)
	ctx := c.Request.Context()
	var q services.RecipeQuery
	_ = c.ShouldBindQuery(&q)

	list, err := vc.Community.Query(ctx, uid, q)
	if err != nil {
		respondError(c, err)
		return
	}
	trending, err := vc.Community.Trending(ctx, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	top, err := vc.Community.TopRated(ctx, uid)
	if err != nil {
		respondError(c, err)
		return
	}
	view(c, "community", gin.H{"recipes": list, "trending": trending, "topRated": top, "query": q})
}

// GET /profile
func (vc *ViewController) ProfilePage(c *gin.Context) {
	user := authUserFromCtx(c)
	p, err := vc.Profiles.GetProfile(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	data := gin.H{"profile": p, "bmi": nil}
	if report, err := vc.Profiles.BMI(c.Request.Context(), user, time.Now()); err == nil {
		data["bmi"] = report
	}
	view(c, "profile", data)
}
