package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

type MealController struct {
	Meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{Meals: meals}
}

type photoReq struct {
	Photo string `json:"photo" binding:"required"`
}

// POST /api/meals
func (mc *MealController) LogMeal(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var body services.LogMealInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := mc.Meals.LogMeal(c.Request.Context(), uid, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// GET /api/meals?date=YYYY-MM-DD or ?from=...&to=...
func (mc *MealController) ListMeals(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	if from, to := c.Query("from"), c.Query("to"); from != "" || to != "" {
		if to == "" {
			to = today()
		}
		meals, err := mc.Meals.GetMealsRange(c.Request.Context(), uid, from, to)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "meals": meals})
		return
	}

	date := c.DefaultQuery("date", today())
	meals, err := mc.Meals.GetDailyMeals(c.Request.Context(), uid, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "meals": meals})
}

// DELETE /api/meals/:id
func (mc *MealController) DeleteMeal(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	if err := mc.Meals.DeleteMeal(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/meals/:id/photo  {"photo": "data:image/jpeg;base64,..."}
func (mc *MealController) UploadPhoto(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req photoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	url, err := mc.Meals.AttachPhoto(c.Request.Context(), uid, c.Param("id"), req.Photo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
