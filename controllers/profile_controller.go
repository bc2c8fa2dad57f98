package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

type ProfileController struct {
	Profiles *services.ProfileService
}

func NewProfileController(p *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: p}
}

// GET /api/profile
func (pc *ProfileController) GetProfile(c *gin.Context) {
	p, err := pc.Profiles.GetProfile(c.Request.Context(), authUserFromCtx(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/profile
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var input models.Profile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := pc.Profiles.UpdateProfile(c.Request.Context(), authUserFromCtx(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "profile": p})
}

// POST /api/profile/avatar  {"photo": "data:image/png;base64,..."}
func (pc *ProfileController) UploadAvatar(c *gin.Context) {
	var req photoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	p, err := pc.Profiles.UpdateAvatar(c.Request.Context(), authUserFromCtx(c), req.Photo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": p.AvatarURL, "profile": p})
}

// GET /api/profile/bmi
func (pc *ProfileController) BMI(c *gin.Context) {
	report, err := pc.Profiles.BMI(c.Request.Context(), authUserFromCtx(c), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
