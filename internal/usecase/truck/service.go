package truck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleet-manager/internal/alerts"
	domainDriver "fleet-manager/internal/domain/driver"
	domainMaintenance "fleet-manager/internal/domain/maintenance"
	domainTruck "fleet-manager/internal/domain/truck"
	"fleet-manager/internal/logger"
	appErrors "fleet-manager/pkg/errors"
	"fleet-manager/pkg/utils"
)

// Service implements fleet management use cases
type Service struct {
	truckRepo  domainTruck.Repository
	maintRepo  domainMaintenance.Repository
	driverRepo domainDriver.Repository
	engine     *alerts.Engine
}

// NewService creates a new truck service
func NewService(
	truckRepo domainTruck.Repository,
	maintRepo domainMaintenance.Repository,
	driverRepo domainDriver.Repository,
	engine *alerts.Engine,
) *Service {
	return &Service{
		truckRepo:  truckRepo,
		maintRepo:  maintRepo,
		driverRepo: driverRepo,
		engine:     engine,
	}
}

// GetAllTrucks reconciles the maintenance schedule first so the listing
// reflects today's date, then returns the fleet.
func (s *Service) GetAllTrucks(ctx context.Context) ([]*TruckResponse, error) {
	if err := s.engine.Reconcile(ctx); err != nil {
		return nil, fmt.Errorf("failed to reconcile maintenance status: %w", err)
	}

	trucks, err := s.truckRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*TruckResponse, 0, len(trucks))
	for _, t := range trucks {
		responses = append(responses, ToTruckResponse(t))
	}

	return responses, nil
}

func (s *Service) GetTruck(ctx context.Context, truckID uuid.UUID) (*TruckResponse, error) {
	t, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return nil, err
	}

	return ToTruckResponse(t), nil
}

func (s *Service) CreateTruck(ctx context.Context, req *CreateTruckRequest) (*TruckResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	t := &domainTruck.Truck{
		Plate:             utils.SanitizeString(req.Plate),
		Model:             utils.SanitizeString(req.Model),
		CurrentMileage:    req.CurrentMileage,
		Status:            domainTruck.Status(req.Status),
		LastMaintenanceAt: parseDate(req.LastMaintenanceAt),
		NextMaintenanceAt: parseDate(req.NextMaintenanceAt),
	}
	if err := s.truckRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	logger.Info("Truck created",
		zap.String("truck_id", t.ID.String()),
		zap.String("plate", t.Plate),
		zap.String("event", "truck_created"),
	)

	return ToTruckResponse(t), nil
}

// UpdateTruck edits a truck's descriptive fields and maintenance dates.
// Pushing the next maintenance date to a future day releases a blocked
// truck and appends a system-adjusted maintenance record, so the change is
// visible in the truck's history.
func (s *Service) UpdateTruck(ctx context.Context, truckID uuid.UUID, req *UpdateTruckRequest) (*TruckResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	t, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return nil, err
	}

	if req.Plate != nil {
		t.Plate = utils.SanitizeString(*req.Plate)
	}
	if req.Model != nil {
		t.Model = utils.SanitizeString(*req.Model)
	}
	if req.CurrentMileage != nil {
		t.CurrentMileage = *req.CurrentMileage
	}
	if req.LastMaintenanceAt != nil {
		t.LastMaintenanceAt = parseDate(*req.LastMaintenanceAt)
	}

	nextChanged := false
	if req.NextMaintenanceAt != nil {
		newNext := parseDate(*req.NextMaintenanceAt)
		nextChanged = !sameDate(t.NextMaintenanceAt, newNext)
		t.NextMaintenanceAt = newNext
	}

	scheduleAdjusted := nextChanged && t.NextMaintenanceAt != nil && t.NextMaintenanceAt.After(time.Now())
	if scheduleAdjusted && t.Status == domainTruck.StatusBlocked {
		t.Status = domainTruck.StatusReleased
		logger.Info("Blocked truck released by schedule change",
			zap.String("truck_id", t.ID.String()),
			zap.String("plate", t.Plate),
			zap.String("event", "truck_auto_released"),
		)
	}

	if err := s.truckRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if scheduleAdjusted {
		record := &domainMaintenance.Record{
			TruckID:      t.ID,
			Date:         time.Now(),
			Kind:         domainMaintenance.KindPreventive,
			Description:  fmt.Sprintf("Next maintenance date adjusted to %s", t.NextMaintenanceAt.Format(dateLayout)),
			MechanicName: "System",
		}
		if err := s.maintRepo.Create(ctx, record); err != nil {
			logger.Error("Failed to record schedule adjustment",
				zap.String("truck_id", t.ID.String()),
				zap.Error(err))
		}
	}

	return ToTruckResponse(t), nil
}

func (s *Service) DeleteTruck(ctx context.Context, truckID uuid.UUID) error {
	if _, err := s.truckRepo.GetByID(ctx, truckID); err != nil {
		return err
	}

	if err := s.maintRepo.DeleteByTruck(ctx, truckID); err != nil {
		return err
	}

	if err := s.truckRepo.Delete(ctx, truckID); err != nil {
		return err
	}

	logger.Info("Truck deleted",
		zap.String("truck_id", truckID.String()),
		zap.String("event", "truck_deleted"),
	)

	return nil
}

// SetStatus applies a manual status change and notifies the people who
// care about it. A manual pending flag goes to staff only, without truck
// scoping, so it never collides with the schedule-driven pending alerts.
func (s *Service) SetStatus(ctx context.Context, truckID uuid.UUID, req *SetStatusRequest) (*TruckResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	t, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return nil, err
	}

	status := domainTruck.Status(req.Status)
	if err := s.truckRepo.UpdateStatus(ctx, truckID, status); err != nil {
		return nil, err
	}
	t.Status = status

	var intent *alerts.Intent
	scoped := t
	switch status {
	case domainTruck.StatusBlocked:
		intent = alerts.ManualBlockIntent(t.Plate)
	case domainTruck.StatusReleased:
		intent = alerts.ManualReleaseIntent(t.Plate)
	case domainTruck.StatusPending:
		intent = alerts.ManualPendingIntent(t.Plate)
		scoped = nil
	}

	if err := s.engine.DispatchManual(ctx, intent, scoped); err != nil {
		logger.Error("Failed to dispatch manual status notification",
			zap.String("truck_id", t.ID.String()),
			zap.String("status", string(status)),
			zap.Error(err))
	}

	logger.Info("Truck status changed manually",
		zap.String("truck_id", t.ID.String()),
		zap.String("plate", t.Plate),
		zap.String("status", string(status)),
		zap.String("event", "truck_status_manual"),
	)

	return ToTruckResponse(t), nil
}

// Unlock releases a blocked truck and tells its recent drivers.
func (s *Service) Unlock(ctx context.Context, truckID uuid.UUID) (*TruckResponse, error) {
	t, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return nil, err
	}

	if t.Status != domainTruck.StatusBlocked {
		return nil, domainTruck.ErrNotBlocked
	}

	if err := s.truckRepo.UpdateStatus(ctx, truckID, domainTruck.StatusReleased); err != nil {
		return nil, err
	}
	t.Status = domainTruck.StatusReleased

	s.engine.NotifyUnlock(ctx, t)

	logger.Info("Truck unlocked",
		zap.String("truck_id", t.ID.String()),
		zap.String("plate", t.Plate),
		zap.String("event", "truck_unlocked"),
	)

	return ToTruckResponse(t), nil
}

// GetMyTrucks lists the trucks linked to the caller's driver row through
// assignment history, active links first. Users without a driver row get
// an empty list. Drivers from before assignment history fall back to the
// direct truck pointer.
func (s *Service) GetMyTrucks(ctx context.Context, userID uuid.UUID) ([]*MyTruckResponse, error) {
	d, err := s.driverRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainDriver.ErrDriverNotFound) {
			return []*MyTruckResponse{}, nil
		}
		return nil, err
	}

	assignments, err := s.driverRepo.AssignmentsForDriver(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	responses := make([]*MyTruckResponse, 0, len(assignments))
	for _, a := range assignments {
		if seen[a.TruckID] {
			continue
		}
		seen[a.TruckID] = true

		t, err := s.truckRepo.GetByID(ctx, a.TruckID)
		if err != nil {
			if errors.Is(err, domainTruck.ErrTruckNotFound) {
				continue
			}
			return nil, err
		}

		start := a.StartDate
		responses = append(responses, &MyTruckResponse{
			Truck:     ToTruckResponse(t),
			Active:    a.Active,
			StartDate: formatDate(&start),
			EndDate:   formatDate(a.EndDate),
		})
	}

	if len(responses) == 0 && d.CurrentTruckID != nil {
		t, err := s.truckRepo.GetByID(ctx, *d.CurrentTruckID)
		if err == nil {
			responses = append(responses, &MyTruckResponse{
				Truck:  ToTruckResponse(t),
				Active: true,
			})
		}
	}

	return responses, nil
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
