package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainUser "fleet-manager/internal/domain/user"
	"fleet-manager/internal/usecase/notification"
	"fleet-manager/pkg/utils"
)

type NotificationHandler struct {
	service *notification.Service
}

func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// RegisterRoutes wires the endpoints every signed-in user gets.
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.PATCH("/:notification_id/read", h.MarkRead)
	}
}

// RegisterAdminRoutes wires the administrative endpoints.
func (h *NotificationHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.POST("", h.Create)
		notifications.DELETE("/:notification_id", h.Delete)
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	role, _ := c.Get("role")
	roleStr, _ := role.(string)

	notifications, err := h.service.List(c.Request.Context(), userID, domainUser.Role(roleStr))
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req notification.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Notification created successfully", created)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("notification_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	userID, ok := callerID(c)
	if !ok {
		return
	}

	updated, err := h.service.MarkRead(c.Request.Context(), notificationID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", updated)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("notification_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), notificationID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification deleted successfully", nil)
}
