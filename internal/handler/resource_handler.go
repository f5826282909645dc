package handler

import (
	"net/http"
	"strconv"
	"time"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	resourceService *service.ResourceService
}

func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

type RegisterResourceRequest struct {
	ResourceType string `json:"resource_type" binding:"required,oneof=bed operation_theatre machine staff_slot"`
	Identifier   string `json:"identifier" binding:"required,max=50"`
	Location     string `json:"location" binding:"omitempty,max=100"`
	Status       string `json:"status" binding:"omitempty,oneof=available maintenance cleaning"`
}

// RegisterResource adds a resource to the catalog (admin only)
func (h *ResourceHandler) RegisterResource(c *gin.Context) {
	var req RegisterResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	resource := &models.Resource{
		ResourceType: models.ResourceType(req.ResourceType),
		Identifier:   req.Identifier,
		Location:     req.Location,
		Status:       models.ResourceStatus(req.Status),
	}

	if err := h.resourceService.RegisterResource(resource, userID.(uint)); err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Resource registered successfully",
		"resource": resource,
	})
}

// ListResources retrieves resources filtered by optional type and status
func (h *ResourceHandler) ListResources(c *gin.Context) {
	resourceType := models.ResourceType(c.Query("type"))
	status := models.ResourceStatus(c.Query("status"))

	resources, err := h.resourceService.ListResources(resourceType, status)
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"resources": resources,
		"count":     len(resources),
	})
}

// ListAvailable retrieves resources of a type allocatable for a time window
func (h *ResourceHandler) ListAvailable(c *gin.Context) {
	resourceType := models.ResourceType(c.Query("type"))

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "start must be an RFC3339 timestamp")
		return
	}
	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil || duration <= 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "duration must be a positive number of minutes")
		return
	}

	resources, err := h.resourceService.ListAvailable(resourceType, service.ParseWindow(start, duration))
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"resources": resources,
		"count":     len(resources),
	})
}

// GetResource retrieves a single resource
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resource ID")
		return
	}

	resource, err := h.resourceService.GetResource(uint(id))
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, resource)
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available booked maintenance cleaning"`
}

// SetStatus applies an administrative status override (admin only)
func (h *ResourceHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resource ID")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	if err := h.resourceService.SetStatus(uint(id), models.ResourceStatus(req.Status), userID.(uint)); err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.MessageResponse(c, "Resource status updated successfully")
}

// DeleteResource soft deletes a resource (admin only)
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resource ID")
		return
	}

	userID, _ := c.Get("userID")

	if err := h.resourceService.DeleteResource(uint(id), userID.(uint)); err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.MessageResponse(c, "Resource deleted successfully")
}
