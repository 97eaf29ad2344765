package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"fleet-manager/internal/domain/driver"
	"fleet-manager/internal/domain/notification"
	"fleet-manager/internal/domain/truck"
	"fleet-manager/internal/domain/user"
	"fleet-manager/internal/logger"
)

func init() {
	logger.Logger = zap.NewNop()
}

// mockStore is a testify mock of Store. InTx is not recorded: it hands the
// callback the same mock, with an optional forced error, so transactional
// calls land on the same expectations.
type mockStore struct {
	mock.Mock
	txErr error
}

func (m *mockStore) ScheduledTrucks(ctx context.Context) ([]*truck.Truck, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*truck.Truck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) UpdateTruckStatus(ctx context.Context, truckID uuid.UUID, status truck.Status) error {
	args := m.Called(ctx, truckID, status)
	return args.Error(0)
}

func (m *mockStore) UsersByRole(ctx context.Context, roles ...user.Role) ([]*user.User, error) {
	args := m.Called(ctx, roles)
	if v := args.Get(0); v != nil {
		return v.([]*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) AssignmentsForTruck(ctx context.Context, truckID uuid.UUID, cutoff time.Time) ([]*driver.Assignment, error) {
	args := m.Called(ctx, truckID, cutoff)
	if v := args.Get(0); v != nil {
		return v.([]*driver.Assignment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) LegacyDriverForTruck(ctx context.Context, truckID uuid.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, truckID)
	if v := args.Get(0); v != nil {
		return v.(*driver.Driver), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) UnreadNotificationExists(ctx context.Context, userID uuid.UUID, truckID *uuid.UUID, kind notification.Kind, title string) (bool, error) {
	args := m.Called(ctx, userID, truckID, kind, title)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) CreateNotification(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockStore) InTx(ctx context.Context, fn func(Store) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	return fn(m)
}
