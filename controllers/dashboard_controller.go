package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

// historyDefaultDays is the window shown when no range is given.
const historyDefaultDays = 7

type DashboardController struct {
	Dashboard *services.DashboardService
	History   *services.HistoryService
}

func NewDashboardController(d *services.DashboardService, h *services.HistoryService) *DashboardController {
	return &DashboardController{Dashboard: d, History: h}
}

// GET /api/dashboard?date=YYYY-MM-DD&phase=v5
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	out, err := dc.Dashboard.Dashboard(c.Request.Context(), authUserFromCtx(c), c.DefaultQuery("date", today()), c.Query("phase"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func historyRange(c *gin.Context) (string, string) {
	to := c.DefaultQuery("to", today())
	from := c.Query("from")
	if from == "" {
		if end, err := time.Parse(dateLayout, to); err == nil {
			from = end.AddDate(0, 0, -(historyDefaultDays - 1)).Format(dateLayout)
		}
	}
	return from, to
}

// GET /api/history?from=&to=&filter=all|food|wellness&q=
func (dc *DashboardController) GetHistory(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	from, to := historyRange(c)
	out, err := dc.History.History(c.Request.Context(), uid, from, to, c.Query("filter"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
