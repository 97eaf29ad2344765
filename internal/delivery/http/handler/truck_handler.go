package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-manager/internal/usecase/truck"
	"fleet-manager/pkg/utils"
)

type TruckHandler struct {
	service *truck.Service
}

func NewTruckHandler(service *truck.Service) *TruckHandler {
	return &TruckHandler{service: service}
}

// RegisterRoutes wires the read endpoints every signed-in user gets.
func (h *TruckHandler) RegisterRoutes(router *gin.RouterGroup) {
	trucks := router.Group("/trucks")
	{
		trucks.GET("", h.GetAllTrucks)
		trucks.GET("/my", h.GetMyTrucks)
		trucks.GET("/:truck_id", h.GetTruck)
	}
}

// RegisterManagementRoutes wires the endpoints that change the fleet.
func (h *TruckHandler) RegisterManagementRoutes(router *gin.RouterGroup) {
	trucks := router.Group("/trucks")
	{
		trucks.POST("", h.CreateTruck)
		trucks.PUT("/:truck_id", h.UpdateTruck)
		trucks.DELETE("/:truck_id", h.DeleteTruck)
		trucks.PATCH("/:truck_id/status", h.SetStatus)
		trucks.POST("/:truck_id/unlock", h.Unlock)
	}
}

func (h *TruckHandler) GetAllTrucks(c *gin.Context) {
	trucks, err := h.service.GetAllTrucks(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trucks retrieved successfully", trucks)
}

func (h *TruckHandler) GetMyTrucks(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	trucks, err := h.service.GetMyTrucks(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Trucks retrieved successfully", trucks)
}

func (h *TruckHandler) GetTruck(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("truck_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	t, err := h.service.GetTruck(c.Request.Context(), truckID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Truck retrieved successfully", t)
}

func (h *TruckHandler) CreateTruck(c *gin.Context) {
	var req truck.CreateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateTruck(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Truck created successfully", created)
}

func (h *TruckHandler) UpdateTruck(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("truck_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	var req truck.UpdateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateTruck(c.Request.Context(), truckID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Truck updated successfully", updated)
}

func (h *TruckHandler) DeleteTruck(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("truck_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	if err := h.service.DeleteTruck(c.Request.Context(), truckID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Truck deleted successfully", nil)
}

func (h *TruckHandler) SetStatus(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("truck_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	var req truck.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.SetStatus(c.Request.Context(), truckID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Truck status updated successfully", updated)
}

func (h *TruckHandler) Unlock(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("truck_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	updated, err := h.service.Unlock(c.Request.Context(), truckID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Truck unlocked successfully", updated)
}
