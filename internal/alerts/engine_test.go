package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleet-manager/internal/config"
	"fleet-manager/internal/domain/driver"
	"fleet-manager/internal/domain/notification"
	"fleet-manager/internal/domain/truck"
	"fleet-manager/internal/domain/user"
)

var testToday = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

func newTestEngine(store Store, cfg config.AlertsConfig) *Engine {
	e := NewEngine(store, cfg)
	e.now = func() time.Time { return testToday }
	return e
}

func defaultAlertsConfig() config.AlertsConfig {
	return config.AlertsConfig{DefaultWindowDays: 30, UnlockWindowDays: 90}
}

func staffFixture() (*user.User, *user.User) {
	admin := &user.User{ID: uuid.New(), Name: "Admin", Role: user.RoleAdministrator, IsActive: true}
	mechanic := &user.User{ID: uuid.New(), Name: "Mechanic", Role: user.RoleMechanic, IsActive: true}
	return admin, mechanic
}

func assignmentFixture(truckID uuid.UUID, u *user.User) *driver.Assignment {
	userID := u.ID
	return &driver.Assignment{
		ID:       uuid.New(),
		TruckID:  truckID,
		DriverID: uuid.New(),
		Active:   true,
		Driver:   &driver.Driver{ID: uuid.New(), UserID: &userID, User: u},
	}
}

func captureNotifications(store *mockStore) *[]*notification.Notification {
	var created []*notification.Notification
	store.On("CreateNotification", mock.Anything, mock.AnythingOfType("*notification.Notification")).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*notification.Notification))
		}).
		Return(nil)
	return &created
}

func TestReconcileUpcomingNotifiesStaffAndDriver(t *testing.T) {
	store := new(mockStore)
	admin, mechanic := staffFixture()
	driverUser := &user.User{ID: uuid.New(), Name: "Driver", Role: user.RoleDriver, IsActive: true}

	next := testToday.AddDate(0, 0, 2)
	tr := &truck.Truck{ID: uuid.New(), Plate: "ABC-1234", Status: truck.StatusReleased, NextMaintenanceAt: &next}

	store.On("ScheduledTrucks", mock.Anything).Return([]*truck.Truck{tr}, nil)
	store.On("UsersByRole", mock.Anything, staffRoles).Return([]*user.User{admin, mechanic}, nil)
	store.On("AssignmentsForTruck", mock.Anything, tr.ID, mock.Anything).
		Return([]*driver.Assignment{assignmentFixture(tr.ID, driverUser)}, nil)
	store.On("UpdateTruckStatus", mock.Anything, tr.ID, truck.StatusPending).Return(nil)
	store.On("UnreadNotificationExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, nil)
	created := captureNotifications(store)

	e := newTestEngine(store, defaultAlertsConfig())
	require.NoError(t, e.Reconcile(context.Background()))

	require.Len(t, *created, 3)
	recipients := map[uuid.UUID]bool{}
	for _, n := range *created {
		require.NotNil(t, n.UserID)
		recipients[*n.UserID] = true
		require.NotNil(t, n.TruckID)
		assert.Equal(t, tr.ID, *n.TruckID)
		assert.Equal(t, notification.KindAlert, n.Kind)
		assert.Contains(t, n.Title, "ABC-1234")
	}
	assert.True(t, recipients[admin.ID])
	assert.True(t, recipients[mechanic.ID])
	assert.True(t, recipients[driverUser.ID])
	store.AssertExpectations(t)
}

func TestReconcileSkipsRecipientsWithUnreadCopy(t *testing.T) {
	store := new(mockStore)
	admin, mechanic := staffFixture()

	next := testToday
	tr := &truck.Truck{ID: uuid.New(), Plate: "DUE-1", Status: truck.StatusPending, NextMaintenanceAt: &next}

	store.On("ScheduledTrucks", mock.Anything).Return([]*truck.Truck{tr}, nil)
	store.On("UsersByRole", mock.Anything, staffRoles).Return([]*user.User{admin, mechanic}, nil)
	store.On("AssignmentsForTruck", mock.Anything, tr.ID, mock.Anything).Return(nil, nil)
	store.On("LegacyDriverForTruck", mock.Anything, tr.ID).Return(nil, driver.ErrDriverNotFound)
	store.On("UnreadNotificationExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(true, nil)

	e := newTestEngine(store, defaultAlertsConfig())
	require.NoError(t, e.Reconcile(context.Background()))

	store.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	// Status is unchanged (pending stays pending on the due day), so no
	// write happens either.
	store.AssertNotCalled(t, "UpdateTruckStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileReleasesPendingSilently(t *testing.T) {
	store := new(mockStore)
	admin, mechanic := staffFixture()

	next := testToday.AddDate(0, 0, 5)
	tr := &truck.Truck{ID: uuid.New(), Plate: "FAR-1", Status: truck.StatusPending, NextMaintenanceAt: &next}

	store.On("ScheduledTrucks", mock.Anything).Return([]*truck.Truck{tr}, nil)
	store.On("UsersByRole", mock.Anything, staffRoles).Return([]*user.User{admin, mechanic}, nil)
	store.On("UpdateTruckStatus", mock.Anything, tr.ID, truck.StatusReleased).Return(nil)

	e := newTestEngine(store, defaultAlertsConfig())
	require.NoError(t, e.Reconcile(context.Background()))

	store.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "AssignmentsForTruck", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestReconcileLeavesSettledTrucksAlone(t *testing.T) {
	store := new(mockStore)
	admin, mechanic := staffFixture()

	next := testToday.AddDate(0, 0, 5)
	tr := &truck.Truck{ID: uuid.New(), Plate: "OK-1", Status: truck.StatusReleased, NextMaintenanceAt: &next}

	store.On("ScheduledTrucks", mock.Anything).Return([]*truck.Truck{tr}, nil)
	store.On("UsersByRole", mock.Anything, staffRoles).Return([]*user.User{admin, mechanic}, nil)

	e := newTestEngine(store, defaultAlertsConfig())
	require.NoError(t, e.Reconcile(context.Background()))

	store.AssertNotCalled(t, "UpdateTruckStatus", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
}

func TestReconcileOverdueBlocksTruck(t *testing.T) {
	store := new(mockStore)
	admin, mechanic := staffFixture()

	next := testToday.AddDate(0, 0, -1)
	tr := &truck.Truck{ID: uuid.New(), Plate: "LATE-1", Status: truck.StatusPending, NextMaintenanceAt: &next}

	store.On("ScheduledTrucks", mock.Anything).Return([]*truck.Truck{tr}, nil)
	store.On("UsersByRole", mock.Anything, staffRoles).Return([]*user.User{admin, mechanic}, nil)
	store.On("AssignmentsForTruck", mock.Anything, tr.ID, mock.Anything).Return(nil, nil)
	store.On("LegacyDriverForTruck", mock.Anything, tr.ID).Return(nil, driver.ErrDriverNotFound)
	store.On("UpdateTruckStatus", mock.Anything, tr.ID, truck.StatusBlocked).Return(nil)
	store.On("UnreadNotificationExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, nil)
	created := captureNotifications(store)

	e := newTestEngine(store, defaultAlertsConfig())
	require.NoError(t, e.Reconcile(context.Background()))

	require.Len(t, *created, 2)
	assert.Equal(t, notification.KindMaintenance, (*created)[0].Kind)
	store.AssertExpectations(t)
}

func TestReconcileIsolatesPerTruckFailures(t *testing.T) {
	store := new(mockStore)
	admin, mechanic := staffFixture()

	nextA := testToday.AddDate(0, 0, 3)
	nextB := testToday.AddDate(0, 0, 4)
	broken := &truck.Truck{ID: uuid.New(), Plate: "BAD-1", Status: truck.StatusPending, NextMaintenanceAt: &nextA}
	healthy := &truck.Truck{ID: uuid.New(), Plate: "OK-2", Status: truck.StatusPending, NextMaintenanceAt: &nextB}

	store.On("ScheduledTrucks", mock.Anything).Return([]*truck.Truck{broken, healthy}, nil)
	store.On("UsersByRole", mock.Anything, staffRoles).Return([]*user.User{admin, mechanic}, nil)
	store.On("UpdateTruckStatus", mock.Anything, broken.ID, truck.StatusReleased).Return(errors.New("write failed"))
	store.On("UpdateTruckStatus", mock.Anything, healthy.ID, truck.StatusReleased).Return(nil)

	e := newTestEngine(store, defaultAlertsConfig())
	require.NoError(t, e.Reconcile(context.Background()))

	store.AssertExpectations(t)
}

func TestDeliverDuplicateCheckFailure(t *testing.T) {
	admin, _ := staffFixture()
	next := testToday
	tr := &truck.Truck{ID: uuid.New(), Plate: "DUP-1", Status: truck.StatusPending, NextMaintenanceAt: &next}

	setup := func(store *mockStore) {
		store.On("ScheduledTrucks", mock.Anything).Return([]*truck.Truck{tr}, nil)
		store.On("UsersByRole", mock.Anything, staffRoles).Return([]*user.User{admin}, nil)
		store.On("AssignmentsForTruck", mock.Anything, tr.ID, mock.Anything).Return(nil, nil)
		store.On("LegacyDriverForTruck", mock.Anything, tr.ID).Return(nil, driver.ErrDriverNotFound)
		store.On("UnreadNotificationExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(false, errors.New("query timeout"))
	}

	t.Run("fail open delivers anyway", func(t *testing.T) {
		store := new(mockStore)
		setup(store)
		created := captureNotifications(store)

		cfg := defaultAlertsConfig()
		cfg.DedupFailOpen = true
		e := newTestEngine(store, cfg)
		require.NoError(t, e.Reconcile(context.Background()))

		assert.Len(t, *created, 1)
	})

	t.Run("fail closed skips the recipient", func(t *testing.T) {
		store := new(mockStore)
		setup(store)

		e := newTestEngine(store, defaultAlertsConfig())
		require.NoError(t, e.Reconcile(context.Background()))

		store.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
	})
}

func TestReconcilePropagatesScanErrors(t *testing.T) {
	store := new(mockStore)
	store.On("ScheduledTrucks", mock.Anything).Return(nil, errors.New("db down"))

	e := newTestEngine(store, defaultAlertsConfig())
	assert.Error(t, e.Reconcile(context.Background()))
}

func TestDispatchManualWithoutTruckReachesStaffOnly(t *testing.T) {
	store := new(mockStore)
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdministrator}
	manager := &user.User{ID: uuid.New(), Role: user.RoleManager}

	store.On("UsersByRole", mock.Anything, manualRoles).Return([]*user.User{admin, manager}, nil)
	store.On("UnreadNotificationExists", mock.Anything, mock.Anything, (*uuid.UUID)(nil), mock.Anything, mock.Anything).
		Return(false, nil)
	created := captureNotifications(store)

	e := newTestEngine(store, defaultAlertsConfig())
	require.NoError(t, e.DispatchManual(context.Background(), ManualPendingIntent("PND-1"), nil))

	require.Len(t, *created, 2)
	for _, n := range *created {
		assert.Nil(t, n.TruckID)
		assert.Equal(t, notification.KindAlert, n.Kind)
	}
	store.AssertNotCalled(t, "AssignmentsForTruck", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchManualIncludesRecentDrivers(t *testing.T) {
	store := new(mockStore)
	admin := &user.User{ID: uuid.New(), Role: user.RoleAdministrator}
	driverUser := &user.User{ID: uuid.New(), Role: user.RoleDriver}
	tr := &truck.Truck{ID: uuid.New(), Plate: "BLK-1", Status: truck.StatusBlocked}

	wantCutoff := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -90)
	store.On("UsersByRole", mock.Anything, manualRoles).Return([]*user.User{admin}, nil)
	store.On("AssignmentsForTruck", mock.Anything, tr.ID, mock.MatchedBy(func(c time.Time) bool {
		return c.Equal(wantCutoff)
	})).Return([]*driver.Assignment{assignmentFixture(tr.ID, driverUser)}, nil)
	store.On("UnreadNotificationExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, nil)
	created := captureNotifications(store)

	e := newTestEngine(store, defaultAlertsConfig())
	require.NoError(t, e.DispatchManual(context.Background(), ManualBlockIntent(tr.Plate), tr))

	require.Len(t, *created, 2)
	store.AssertExpectations(t)
}

func TestNotifyUnlockSkipsDuplicateCheck(t *testing.T) {
	store := new(mockStore)
	driverUser := &user.User{ID: uuid.New(), Role: user.RoleDriver}
	tr := &truck.Truck{ID: uuid.New(), Plate: "UNL-1", Status: truck.StatusReleased}

	store.On("AssignmentsForTruck", mock.Anything, tr.ID, mock.Anything).
		Return([]*driver.Assignment{assignmentFixture(tr.ID, driverUser)}, nil)
	created := captureNotifications(store)

	e := newTestEngine(store, defaultAlertsConfig())
	e.NotifyUnlock(context.Background(), tr)

	require.Len(t, *created, 1)
	assert.Equal(t, driverUser.ID, *(*created)[0].UserID)
	assert.Contains(t, (*created)[0].Title, "UNL-1")
	store.AssertNotCalled(t, "UnreadNotificationExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMergeRecipientsDeduplicates(t *testing.T) {
	shared := &user.User{ID: uuid.New()}
	other := &user.User{ID: uuid.New()}

	merged := mergeRecipients([]*user.User{shared}, []*user.User{shared, other})

	require.Len(t, merged, 2)
	assert.Equal(t, shared.ID, merged[0].ID)
	assert.Equal(t, other.ID, merged[1].ID)
}
