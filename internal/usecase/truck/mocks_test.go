package truck

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"fleet-manager/internal/alerts"
	domainDriver "fleet-manager/internal/domain/driver"
	domainMaintenance "fleet-manager/internal/domain/maintenance"
	domainNotification "fleet-manager/internal/domain/notification"
	domainTruck "fleet-manager/internal/domain/truck"
	domainUser "fleet-manager/internal/domain/user"
	"fleet-manager/internal/logger"
)

func init() {
	logger.Logger = zap.NewNop()
}

type mockTruckRepository struct {
	mock.Mock
}

func (m *mockTruckRepository) Create(ctx context.Context, t *domainTruck.Truck) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTruckRepository) GetByID(ctx context.Context, truckID uuid.UUID) (*domainTruck.Truck, error) {
	args := m.Called(ctx, truckID)
	if v := args.Get(0); v != nil {
		return v.(*domainTruck.Truck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTruckRepository) GetAll(ctx context.Context) ([]*domainTruck.Truck, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domainTruck.Truck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTruckRepository) GetScheduled(ctx context.Context) ([]*domainTruck.Truck, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domainTruck.Truck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTruckRepository) Update(ctx context.Context, t *domainTruck.Truck) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTruckRepository) UpdateStatus(ctx context.Context, truckID uuid.UUID, status domainTruck.Status) error {
	return m.Called(ctx, truckID, status).Error(0)
}

func (m *mockTruckRepository) Delete(ctx context.Context, truckID uuid.UUID) error {
	return m.Called(ctx, truckID).Error(0)
}

type mockMaintenanceRepository struct {
	mock.Mock
}

func (m *mockMaintenanceRepository) Create(ctx context.Context, r *domainMaintenance.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockMaintenanceRepository) GetByID(ctx context.Context, recordID uuid.UUID) (*domainMaintenance.Record, error) {
	args := m.Called(ctx, recordID)
	if v := args.Get(0); v != nil {
		return v.(*domainMaintenance.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMaintenanceRepository) GetAll(ctx context.Context) ([]*domainMaintenance.Record, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domainMaintenance.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMaintenanceRepository) GetByTruck(ctx context.Context, truckID uuid.UUID) ([]*domainMaintenance.Record, error) {
	args := m.Called(ctx, truckID)
	if v := args.Get(0); v != nil {
		return v.([]*domainMaintenance.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMaintenanceRepository) Update(ctx context.Context, r *domainMaintenance.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockMaintenanceRepository) Delete(ctx context.Context, recordID uuid.UUID) error {
	return m.Called(ctx, recordID).Error(0)
}

func (m *mockMaintenanceRepository) DeleteByTruck(ctx context.Context, truckID uuid.UUID) error {
	return m.Called(ctx, truckID).Error(0)
}

type mockDriverRepository struct {
	mock.Mock
}

func (m *mockDriverRepository) Create(ctx context.Context, d *domainDriver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDriverRepository) GetByID(ctx context.Context, driverID uuid.UUID) (*domainDriver.Driver, error) {
	args := m.Called(ctx, driverID)
	if v := args.Get(0); v != nil {
		return v.(*domainDriver.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDriverRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domainDriver.Driver, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*domainDriver.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDriverRepository) GetByCurrentTruck(ctx context.Context, truckID uuid.UUID) (*domainDriver.Driver, error) {
	args := m.Called(ctx, truckID)
	if v := args.Get(0); v != nil {
		return v.(*domainDriver.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDriverRepository) Update(ctx context.Context, d *domainDriver.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *mockDriverRepository) Delete(ctx context.Context, driverID uuid.UUID) error {
	return m.Called(ctx, driverID).Error(0)
}

func (m *mockDriverRepository) AssignmentsForTruck(ctx context.Context, truckID uuid.UUID, cutoff time.Time) ([]*domainDriver.Assignment, error) {
	args := m.Called(ctx, truckID, cutoff)
	if v := args.Get(0); v != nil {
		return v.([]*domainDriver.Assignment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDriverRepository) AssignmentsForDriver(ctx context.Context, driverID uuid.UUID) ([]*domainDriver.Assignment, error) {
	args := m.Called(ctx, driverID)
	if v := args.Get(0); v != nil {
		return v.([]*domainDriver.Assignment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDriverRepository) GetAssignment(ctx context.Context, driverID, truckID uuid.UUID) (*domainDriver.Assignment, error) {
	args := m.Called(ctx, driverID, truckID)
	if v := args.Get(0); v != nil {
		return v.(*domainDriver.Assignment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDriverRepository) CreateAssignment(ctx context.Context, a *domainDriver.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockDriverRepository) UpdateAssignment(ctx context.Context, a *domainDriver.Assignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockDriverRepository) CloseActiveAssignment(ctx context.Context, driverID, truckID uuid.UUID, end time.Time) error {
	return m.Called(ctx, driverID, truckID, end).Error(0)
}

func (m *mockDriverRepository) DeleteAssignmentsByDriver(ctx context.Context, driverID uuid.UUID) error {
	return m.Called(ctx, driverID).Error(0)
}

// stubAlertStore backs a real alert engine with canned data, so service
// tests can observe what the engine delivered without a database.
type stubAlertStore struct {
	staff       []*domainUser.User
	assignments []*domainDriver.Assignment
	scanErr     error
	created     []*domainNotification.Notification
}

func (s *stubAlertStore) ScheduledTrucks(ctx context.Context) ([]*domainTruck.Truck, error) {
	return nil, s.scanErr
}

func (s *stubAlertStore) UpdateTruckStatus(ctx context.Context, truckID uuid.UUID, status domainTruck.Status) error {
	return nil
}

func (s *stubAlertStore) UsersByRole(ctx context.Context, roles ...domainUser.Role) ([]*domainUser.User, error) {
	return s.staff, nil
}

func (s *stubAlertStore) AssignmentsForTruck(ctx context.Context, truckID uuid.UUID, cutoff time.Time) ([]*domainDriver.Assignment, error) {
	return s.assignments, nil
}

func (s *stubAlertStore) LegacyDriverForTruck(ctx context.Context, truckID uuid.UUID) (*domainDriver.Driver, error) {
	return nil, domainDriver.ErrDriverNotFound
}

func (s *stubAlertStore) UnreadNotificationExists(ctx context.Context, userID uuid.UUID, truckID *uuid.UUID, kind domainNotification.Kind, title string) (bool, error) {
	return false, nil
}

func (s *stubAlertStore) CreateNotification(ctx context.Context, n *domainNotification.Notification) error {
	s.created = append(s.created, n)
	return nil
}

func (s *stubAlertStore) InTx(ctx context.Context, fn func(alerts.Store) error) error {
	return fn(s)
}
