package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

type RecipeController struct {
	Recipes *services.RecipeService
}

func NewRecipeController(r *services.RecipeService) *RecipeController {
	return &RecipeController{Recipes: r}
}

type rateReq struct {
	Score   int    `json:"score" binding:"required"`
	Comment string `json:"comment"`
}

// GET /api/recipes?q=&dietType=&sort=
func (rc *RecipeController) List(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var q services.RecipeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := rc.Recipes.Query(c.Request.Context(), uid, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/recipes/:id
func (rc *RecipeController) Get(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	r, err := rc.Recipes.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /api/recipes
func (rc *RecipeController) Add(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var input models.Recipe
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := rc.Recipes.Add(c.Request.Context(), uid, displayName(authUserFromCtx(c)), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// POST /api/recipes/:id/rate
func (rc *RecipeController) Rate(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a rating"})
		return
	}
	r, err := rc.Recipes.Rate(c.Request.Context(), uid, c.Param("id"), displayName(authUserFromCtx(c)), req.Score, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /api/recipes/:id/like
func (rc *RecipeController) Like(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	r, err := rc.Recipes.Like(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /api/recipes/:id/save
func (rc *RecipeController) Save(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	r, err := rc.Recipes.Save(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
