package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

type WellnessController struct {
	Wellness *services.WellnessService
}

func NewWellnessController(w *services.WellnessService) *WellnessController {
	return &WellnessController{Wellness: w}
}

// GET /api/wellness/options
func (wc *WellnessController) Options(c *gin.Context) {
	c.JSON(http.StatusOK, wc.Wellness.Options())
}

// PUT /api/wellness  (one record per user and date; replaces the day's record)
func (wc *WellnessController) LogWellness(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var rec models.WellnessRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rec.Date == "" {
		rec.Date = today()
	}
	saved, err := wc.Wellness.LogWellness(c.Request.Context(), uid, rec)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GET /api/wellness?date=YYYY-MM-DD
func (wc *WellnessController) GetWellness(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	date := c.DefaultQuery("date", today())
	rec, err := wc.Wellness.GetWellness(c.Request.Context(), uid, date)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusOK, gin.H{"date": date, "wellness": nil})
	case err != nil:
		respondError(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"date": date, "wellness": rec})
	}
}

// GET /api/wellness/range?from=...&to=...
func (wc *WellnessController) GetRange(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	from, to := c.Query("from"), c.DefaultQuery("to", today())
	recs, err := wc.Wellness.GetWellnessRange(c.Request.Context(), uid, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "records": recs})
}

// POST /api/symptoms
func (wc *WellnessController) LogSymptom(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	var sym models.Symptom
	if err := c.ShouldBindJSON(&sym); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if sym.Date == "" {
		sym.Date = today()
	}
	saved, err := wc.Wellness.LogSymptom(c.Request.Context(), uid, sym)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// GET /api/symptoms?from=...&to=...
func (wc *WellnessController) ListSymptoms(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	to := c.DefaultQuery("to", today())
	from := c.DefaultQuery("from", to)
	list, err := wc.Wellness.GetSymptoms(c.Request.Context(), uid, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "symptoms": list})
}

// DELETE /api/symptoms/:id
func (wc *WellnessController) DeleteSymptom(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	if err := wc.Wellness.DeleteSymptom(c.Request.Context(), uid, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
