package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
)

type DeviceController struct {
	Push *services.PushService // nil when push is not configured
}

// constructor
func NewDeviceController(ps *services.PushService) *DeviceController {
	return &DeviceController{Push: ps}
}

func (dc *DeviceController) available(c *gin.Context) bool {
	if dc.Push == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "push notifications are not configured"})
		return false
	}
	return true
}

// POST /api/devices
func (dc *DeviceController) Register(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	if !dc.available(c) {
		return
	}
	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dev, err := dc.Push.RegisterDevice(c.Request.Context(), uid, req.Platform, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"endpoint_arn": dev.EndpointARN})
}

// POST /api/notifications/toggle
func (dc *DeviceController) ToggleNotifications(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	if !dc.available(c) {
		return
	}
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	n, err := dc.Push.SetNotifications(c.Request.Context(), uid, req.Enabled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
		"devices": n,
	})
}

// POST /api/devices/test
func (dc *DeviceController) PushTest(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		unauthorized(c)
		return
	}
	if !dc.available(c) {
		return
	}
	var req struct {
		Title string            `json:"title"`
		Body  string            `json:"body"`
		Data  map[string]string `json:"data"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		req.Title = "Test notification"
	}
	if req.Body == "" {
		req.Body = "Notifications are working."
	}
	if req.Data == nil {
		req.Data = map[string]string{"type": "test"}
	}
	dc.Push.PushToUser(c.Request.Context(), uid, req.Title, req.Body, req.Data)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
