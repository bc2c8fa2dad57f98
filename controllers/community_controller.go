package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

type CommunityController struct {
	Community *services.CommunityService
}

func NewCommunityController(cs *services.CommunityService) *CommunityController {
	return &CommunityController{Community: cs}
}

// GET /api/community?q=&dietType=&sort=
func (cc *CommunityController) List(c *gin.Context) {
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
	list, err := cc.Community.Query(c.Request.Context(), uid, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/community/search?q=
func (cc *CommunityController) Search(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	list, err := cc.Community.Search(c.Request.Context(), uid, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/community/trending
func (cc *CommunityController) Trending(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	list, err := cc.Community.Trending(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/community/top-rated
func (cc *CommunityController) TopRated(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	list, err := cc.Community.TopRated(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/community/:id
func (cc *CommunityController) Get(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	r, err := cc.Community.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /api/community  {"recipeId": "..."} publishes a personal recipe
func (cc *CommunityController) Publish(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req struct {
		RecipeID string `json:"recipeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId is required"})
		return
	}
	r, err := cc.Community.Publish(c.Request.Context(), uid, req.RecipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// POST /api/community/:id/share
func (cc *CommunityController) Share(c *gin.Context) {
	r, err := cc.Community.Share(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /api/community/:id/like
func (cc *CommunityController) Like(c *gin.Context) {
	r, err := cc.Community.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /api/community/:id/rate
func (cc *CommunityController) Rate(c *gin.Context) {
	var req rateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a rating"})
		return
	}
	r, err := cc.Community.Rate(c.Request.Context(), c.Param("id"), displayName(authUserFromCtx(c)), req.Score, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// POST /api/community/:id/comments
func (cc *CommunityController) Comment(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	r, err := cc.Community.Comment(c.Request.Context(), c.Param("id"), displayName(authUserFromCtx(c)), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// POST /api/community/:id/save
func (cc *CommunityController) Save(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	if err := cc.Community.Save(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe saved to your collection", "saved": true})
}
