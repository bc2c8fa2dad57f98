package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

type GoalController struct {
	Goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{Goals: goals}
}

func goalViews(goals []models.Goal) []services.GoalView {
	out := make([]services.GoalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, services.NewGoalView(g))
	}
	return out
}

// GET /api/goals?q=&goalType=&category=&status=&sort=
func (gc *GoalController) GetGoals(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var q services.GoalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	goals, err := gc.Goals.GetGoals(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"goals": goalViews(services.QueryGoals(goals, q)),
		"stats": services.ComputeGoalStats(goals),
	})
}

// POST /api/goals
func (gc *GoalController) AddGoal(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var req models.Goal
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := gc.Goals.AddGoal(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, services.NewGoalView(g))
}

// PATCH /api/goals/:id
func (gc *GoalController) UpdateGoal(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var patch models.GoalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	g, err := gc.Goals.UpdateGoal(c.Request.Context(), uid, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.NewGoalView(g))
}

// DELETE /api/goals/:id
func (gc *GoalController) DeleteGoal(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	if err := gc.Goals.DeleteGoal(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
