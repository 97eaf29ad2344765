package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet-manager/internal/usecase/maintenance"
	"fleet-manager/pkg/utils"
)

type MaintenanceHandler struct {
	service *maintenance.Service
}

func NewMaintenanceHandler(service *maintenance.Service) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// RegisterRoutes wires the maintenance history read endpoints.
func (h *MaintenanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	records := router.Group("/maintenance")
	{
		records.GET("", h.GetAllRecords)
		records.GET("/:record_id", h.GetRecord)
	}
	router.GET("/trucks/:truck_id/maintenance", h.GetRecordsByTruck)
}

// RegisterManagementRoutes wires the endpoints that edit the history.
func (h *MaintenanceHandler) RegisterManagementRoutes(router *gin.RouterGroup) {
	records := router.Group("/maintenance")
	{
		records.POST("", h.CreateRecord)
		records.PUT("/:record_id", h.UpdateRecord)
		records.DELETE("/:record_id", h.DeleteRecord)
	}
}

func (h *MaintenanceHandler) GetAllRecords(c *gin.Context) {
	records, err := h.service.GetAllRecords(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance records retrieved successfully", records)
}

func (h *MaintenanceHandler) GetRecordsByTruck(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("truck_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid truck ID")
		return
	}

	records, err := h.service.GetRecordsByTruck(c.Request.Context(), truckID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance records retrieved successfully", records)
}

func (h *MaintenanceHandler) GetRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("record_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	record, err := h.service.GetRecord(c.Request.Context(), recordID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance record retrieved successfully", record)
}

func (h *MaintenanceHandler) CreateRecord(c *gin.Context) {
	var req maintenance.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.CreateRecord(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Maintenance record created successfully", created)
}

func (h *MaintenanceHandler) UpdateRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("record_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req maintenance.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateRecord(c.Request.Context(), recordID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance record updated successfully", updated)
}

func (h *MaintenanceHandler) DeleteRecord(c *gin.Context) {
	recordID, err := uuid.Parse(c.Param("record_id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid record ID")
		return
	}

	if err := h.service.DeleteRecord(c.Request.Context(), recordID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Maintenance record deleted successfully", nil)
}
