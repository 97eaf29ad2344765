package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainDriver "fleet-manager/internal/domain/driver"
	domainMaintenance "fleet-manager/internal/domain/maintenance"
	domainNotification "fleet-manager/internal/domain/notification"
	domainTruck "fleet-manager/internal/domain/truck"
	domainUser "fleet-manager/internal/domain/user"
	"fleet-manager/internal/logger"
	"fleet-manager/internal/middleware"
	appErrors "fleet-manager/pkg/errors"
	"fleet-manager/pkg/utils"
)

// respondWithError maps domain and application errors onto HTTP statuses.
// Anything unrecognized is logged with the request id and reported as a
// plain 500 so internals never leak to clients.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domainUser.ErrEmailTaken),
		errors.Is(err, domainUser.ErrUserAlreadyExists),
		errors.Is(err, domainTruck.ErrPlateTaken),
		errors.Is(err, domainTruck.ErrTruckAlreadyExists),
		errors.Is(err, domainDriver.ErrLicenseTaken):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())

	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, appErrors.ErrUserInactive),
		errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())

	case errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, domainTruck.ErrTruckNotFound),
		errors.Is(err, domainTruck.ErrNotBlocked),
		errors.Is(err, domainDriver.ErrDriverNotFound),
		errors.Is(err, domainDriver.ErrAssignmentNotFound),
		errors.Is(err, domainMaintenance.ErrRecordNotFound),
		errors.Is(err, domainNotification.ErrNotificationNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())

	case errors.Is(err, domainDriver.ErrLicenseRequired),
		errors.Is(err, domainMaintenance.ErrDateRequired),
		errors.Is(err, domainMaintenance.ErrTruckRequired),
		errors.Is(err, domainTruck.ErrInvalidStatus),
		errors.Is(err, domainUser.ErrInvalidUserRole),
		errors.Is(err, domainNotification.ErrInvalidKind):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, appErrors.ErrEmailNotConfigured):
		// Deliberately distinguishable so operators can tell a missing
		// API key from a transport outage.
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())

	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// callerID pulls the authenticated user's id out of the gin context.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}

	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Invalid user identifier")
		return uuid.Nil, false
	}

	return userUUID, true
}
