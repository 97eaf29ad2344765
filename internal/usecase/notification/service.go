package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleet-manager/internal/alerts"
	domainDriver "fleet-manager/internal/domain/driver"
	domainNotification "fleet-manager/internal/domain/notification"
	domainUser "fleet-manager/internal/domain/user"
	"fleet-manager/internal/logger"
	appErrors "fleet-manager/pkg/errors"
	"fleet-manager/pkg/utils"
)

// Service implements notification use cases
type Service struct {
	notifRepo  domainNotification.Repository
	driverRepo domainDriver.Repository
	engine     *alerts.Engine
}

// NewService creates a new notification service
func NewService(
	notifRepo domainNotification.Repository,
	driverRepo domainDriver.Repository,
	engine *alerts.Engine,
) *Service {
	return &Service{
		notifRepo:  notifRepo,
		driverRepo: driverRepo,
		engine:     engine,
	}
}

// List reconciles the maintenance schedule and returns notifications the
// caller may see. Drivers see their own plus anything scoped to a truck
// they are or were assigned to; every other role sees the whole feed.
func (s *Service) List(ctx context.Context, callerID uuid.UUID, role domainUser.Role) ([]*NotificationResponse, error) {
	if err := s.engine.Reconcile(ctx); err != nil {
		return nil, fmt.Errorf("failed to reconcile maintenance status: %w", err)
	}

	scope := domainNotification.All()
	if role == domainUser.RoleDriver {
		scope = domainNotification.ForDriver(callerID, s.truckIDsForUser(ctx, callerID))
	}

	notifications, err := s.notifRepo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	responses := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, ToNotificationResponse(n))
	}

	return responses, nil
}

// Create persists an administrative notification outside the alert engine.
func (s *Service) Create(ctx context.Context, req *CreateNotificationRequest) (*NotificationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	n := &domainNotification.Notification{
		UserID:  req.UserID,
		TruckID: req.TruckID,
		Title:   utils.SanitizeString(req.Title),
		Message: utils.SanitizeText(req.Message),
		Kind:    domainNotification.Kind(req.Kind),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	logger.Info("Notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("kind", string(n.Kind)),
		zap.String("event", "notification_created"),
	)

	return ToNotificationResponse(n), nil
}

// MarkRead acknowledges a notification. Only the recipient can do it;
// reading is what re-arms the duplicate check for the next occurrence of
// the same event.
func (s *Service) MarkRead(ctx context.Context, notificationID, callerID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if n.UserID != nil && *n.UserID != callerID {
		return nil, appErrors.ErrInsufficientPermissions
	}

	if err := s.notifRepo.MarkRead(ctx, notificationID); err != nil {
		return nil, err
	}
	n.Read = true

	return ToNotificationResponse(n), nil
}

func (s *Service) Delete(ctx context.Context, notificationID uuid.UUID) error {
	return s.notifRepo.Delete(ctx, notificationID)
}

// truckIDsForUser collects the trucks a driver account is or was linked
// to. Best effort: lookup failures shrink the scope to the user's own
// notifications instead of failing the listing.
func (s *Service) truckIDsForUser(ctx context.Context, userID uuid.UUID) []uuid.UUID {
	d, err := s.driverRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domainDriver.ErrDriverNotFound) {
			logger.Error("Failed to load driver for notification scope",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
		return nil
	}

	assignments, err := s.driverRepo.AssignmentsForDriver(ctx, d.ID)
	if err != nil {
		logger.Error("Failed to load assignments for notification scope",
			zap.String("driver_id", d.ID.String()),
			zap.Error(err))
		assignments = nil
	}

	seen := make(map[uuid.UUID]bool)
	var truckIDs []uuid.UUID
	for _, a := range assignments {
		if !seen[a.TruckID] {
			seen[a.TruckID] = true
			truckIDs = append(truckIDs, a.TruckID)
		}
	}
	if d.CurrentTruckID != nil && !seen[*d.CurrentTruckID] {
		truckIDs = append(truckIDs, *d.CurrentTruckID)
	}

	return truckIDs
}
