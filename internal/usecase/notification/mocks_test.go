package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"fleet-manager/internal/alerts"
	domainDriver "fleet-manager/internal/domain/driver"
	domainNotification "fleet-manager/internal/domain/notification"
	domainTruck "fleet-manager/internal/domain/truck"
	domainUser "fleet-manager/internal/domain/user"
	"fleet-manager/internal/logger"
)

func init() {
	logger.Logger = zap.NewNop()
}

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *domainNotification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationRepository) GetByID(ctx context.Context, notificationID uuid.UUID) (*domainNotification.Notification, error) {
	args := m.Called(ctx, notificationID)
	if v := args.Get(0); v != nil {
		return v.(*domainNotification.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepository) List(ctx context.Context, scope *domainNotification.Scope) ([]*domainNotification.Notification, error) {
	args := m.Called(ctx, scope)
	if v := args.Get(0); v != nil {
		return v.([]*domainNotification.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationRepository) UnreadExists(ctx context.Context, userID uuid.UUID, truckID *uuid.UUID, kind domainNotification.Kind, title string) (bool, error) {
	args := m.Called(ctx, userID, truckID, kind, title)
	return args.Bool(0), args.Error(1)
}

func (m *mockNotificationRepository) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	return m.Called(ctx, notificationID).Error(0)
}

func (m *mockNotificationRepository) Delete(ctx context.Context, notificationID uuid.UUID) error {
	return m.Called(ctx, notificationID).Error(0)
}

func (m *mockNotificationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
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

// stubAlertStore keeps the engine's reconciliation pass inert.
type stubAlertStore struct {
	scanErr error
}

func (s *stubAlertStore) ScheduledTrucks(ctx context.Context) ([]*domainTruck.Truck, error) {
	return nil, s.scanErr
}

func (s *stubAlertStore) UpdateTruckStatus(ctx context.Context, truckID uuid.UUID, status domainTruck.Status) error {
	return nil
}

func (s *stubAlertStore) UsersByRole(ctx context.Context, roles ...domainUser.Role) ([]*domainUser.User, error) {
	return nil, nil
}

func (s *stubAlertStore) AssignmentsForTruck(ctx context.Context, truckID uuid.UUID, cutoff time.Time) ([]*domainDriver.Assignment, error) {
	return nil, nil
}

func (s *stubAlertStore) LegacyDriverForTruck(ctx context.Context, truckID uuid.UUID) (*domainDriver.Driver, error) {
	return nil, domainDriver.ErrDriverNotFound
}

func (s *stubAlertStore) UnreadNotificationExists(ctx context.Context, userID uuid.UUID, truckID *uuid.UUID, kind domainNotification.Kind, title string) (bool, error) {
	return false, nil
}

func (s *stubAlertStore) CreateNotification(ctx context.Context, n *domainNotification.Notification) error {
	return nil
}

func (s *stubAlertStore) InTx(ctx context.Context, fn func(alerts.Store) error) error {
	return fn(s)
}
