package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/catalog"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

type FoodController struct {
	Foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{Foods: foods}
}

// GET /api/foods/categories
func (fc *FoodController) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, fc.Foods.Categories())
}

// GET /api/foods?category=fruits&q=app
func (fc *FoodController) Search(c *gin.Context) {
	category := c.DefaultQuery("category", catalog.CategoryAll)
	c.JSON(http.StatusOK, fc.Foods.Search(category, c.Query("q")))
}

// GET /api/foods/cost?name=Apple&quantity=250&unit=g
// quantity and unit default to the food's reference values.
func (fc *FoodController) Cost(c *gin.Context) {
	name, unit := c.Query("name"), c.Query("unit")
	var qty float64
	if raw := c.Query("quantity"); raw != "" {
		q, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a number"})
			return
		}
		qty = q
	} else {
		q, u, err := fc.Foods.Prefill(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		qty = q
		if unit == "" {
			unit = u
		}
	}
	item, err := fc.Foods.Cost(name, qty, unit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// GET /api/phases
func (fc *FoodController) Phases(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"phases":  fc.Foods.Phases(),
		"default": fc.Foods.Catalog().DefaultPhase().Key,
	})
}

// POST /api/foods/recognize  {"image": "data:..."}
func (fc *FoodController) Recognize(c *gin.Context) {
	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	labels, matches, err := fc.Foods.Suggest(c.Request.Context(), req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels, "suggestions": matches})
}
