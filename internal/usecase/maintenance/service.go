package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleet-manager/internal/alerts"
	domainMaintenance "fleet-manager/internal/domain/maintenance"
	domainTruck "fleet-manager/internal/domain/truck"
	"fleet-manager/internal/logger"
	appErrors "fleet-manager/pkg/errors"
	"fleet-manager/pkg/utils"
)

// Service implements maintenance record use cases
type Service struct {
	maintRepo domainMaintenance.Repository
	truckRepo domainTruck.Repository
	engine    *alerts.Engine
}

// NewService creates a new maintenance service
func NewService(
	maintRepo domainMaintenance.Repository,
	truckRepo domainTruck.Repository,
	engine *alerts.Engine,
) *Service {
	return &Service{
		maintRepo: maintRepo,
		truckRepo: truckRepo,
		engine:    engine,
	}
}

func (s *Service) GetAllRecords(ctx context.Context) ([]*RecordResponse, error) {
	records, err := s.maintRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return toResponses(records), nil
}

func (s *Service) GetRecordsByTruck(ctx context.Context, truckID uuid.UUID) ([]*RecordResponse, error) {
	if _, err := s.truckRepo.GetByID(ctx, truckID); err != nil {
		return nil, err
	}

	records, err := s.maintRepo.GetByTruck(ctx, truckID)
	if err != nil {
		return nil, err
	}

	return toResponses(records), nil
}

func (s *Service) GetRecord(ctx context.Context, recordID uuid.UUID) (*RecordResponse, error) {
	record, err := s.maintRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	return ToRecordResponse(record), nil
}

// CreateRecord logs a maintenance event and schedules the truck from it:
// the record's date becomes the truck's next maintenance date, so logging
// an event is how the next service gets on the calendar. The alert engine
// runs right after so a past date blocks the truck in the same request.
func (s *Service) CreateRecord(ctx context.Context, req *CreateRecordRequest) (*RecordResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	t, err := s.truckRepo.GetByID(ctx, req.TruckID)
	if err != nil {
		return nil, err
	}

	date := parseDate(req.Date)
	if date == nil {
		return nil, domainMaintenance.ErrDateRequired
	}

	kind := domainMaintenance.Kind(req.Kind)
	if req.Kind == "" {
		kind = domainMaintenance.KindPreventive
	}

	record := &domainMaintenance.Record{
		TruckID:      t.ID,
		Date:         *date,
		Kind:         kind,
		Mileage:      req.Mileage,
		Description:  utils.SanitizeText(req.Description),
		MechanicName: utils.SanitizeString(req.MechanicName),
	}
	if err := s.maintRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	if req.Mileage != nil {
		t.CurrentMileage = *req.Mileage
	}
	t.NextMaintenanceAt = date
	if err := s.truckRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err := s.engine.Reconcile(ctx); err != nil {
		logger.Error("Reconciliation after maintenance record failed",
			zap.String("truck_id", t.ID.String()),
			zap.Error(err))
	}

	logger.Info("Maintenance record created",
		zap.String("record_id", record.ID.String()),
		zap.String("truck_id", t.ID.String()),
		zap.String("kind", string(record.Kind)),
		zap.String("event", "maintenance_record_created"),
	)

	return ToRecordResponse(record), nil
}

// UpdateRecord edits a maintenance event. A past date updates the truck's
// last maintenance date; a future date updates the next one, backfilling
// the last date when the truck never had one.
func (s *Service) UpdateRecord(ctx context.Context, recordID uuid.UUID, req *UpdateRecordRequest) (*RecordResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	record, err := s.maintRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	t, err := s.truckRepo.GetByID(ctx, record.TruckID)
	if err != nil {
		return nil, err
	}

	truckChanged := false

	if req.Date != nil {
		if date := parseDate(*req.Date); date != nil {
			record.Date = *date
			if date.Before(startOfToday()) {
				t.LastMaintenanceAt = date
			} else {
				t.NextMaintenanceAt = date
				if t.LastMaintenanceAt == nil {
					t.LastMaintenanceAt = date
				}
			}
			truckChanged = true
		}
	}
	if req.Kind != nil {
		record.Kind = domainMaintenance.Kind(*req.Kind)
	}
	if req.Mileage != nil {
		record.Mileage = req.Mileage
		t.CurrentMileage = *req.Mileage
		truckChanged = true
	}
	if req.Description != nil {
		record.Description = utils.SanitizeText(*req.Description)
	}
	if req.MechanicName != nil {
		record.MechanicName = utils.SanitizeString(*req.MechanicName)
	}

	if err := s.maintRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	if truckChanged {
		if err := s.truckRepo.Update(ctx, t); err != nil {
			return nil, err
		}
	}

	logger.Info("Maintenance record updated",
		zap.String("record_id", record.ID.String()),
		zap.String("truck_id", t.ID.String()),
		zap.String("event", "maintenance_record_updated"),
	)

	return ToRecordResponse(record), nil
}

func (s *Service) DeleteRecord(ctx context.Context, recordID uuid.UUID) error {
	if err := s.maintRepo.Delete(ctx, recordID); err != nil {
		return err
	}

	logger.Info("Maintenance record deleted",
		zap.String("record_id", recordID.String()),
		zap.String("event", "maintenance_record_deleted"),
	)

	return nil
}

func toResponses(records []*domainMaintenance.Record) []*RecordResponse {
	responses := make([]*RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, ToRecordResponse(r))
	}
	return responses
}

func startOfToday() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
