package alerts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleet-manager/internal/domain/driver"
	"fleet-manager/internal/domain/user"
	"fleet-manager/internal/logger"
)

// ResolveDrivers returns the accounts of drivers who operated the truck
// recently: anyone with an active or open-ended assignment, or one that
// ended within the last windowDays. Drivers without a linked account are
// dropped. Resolution never fails; on lookup errors it logs and returns
// an empty set so notification delivery degrades to staff only.
func (e *Engine) ResolveDrivers(ctx context.Context, truckID uuid.UUID, windowDays int) []*user.User {
	cutoff := truncateToDay(e.now()).AddDate(0, 0, -windowDays)

	assignments, err := e.store.AssignmentsForTruck(ctx, truckID, cutoff)
	if err != nil {
		logger.Error("Failed to load assignments for truck",
			zap.String("truck_id", truckID.String()),
			zap.Error(err))
		return nil
	}

	seen := make(map[uuid.UUID]bool)
	var users []*user.User
	for _, a := range assignments {
		if a.Driver == nil || a.Driver.User == nil {
			continue
		}
		u := a.Driver.User
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		users = append(users, u)
	}
	if len(users) > 0 {
		return users
	}

	// Trucks registered before assignment history existed carry only the
	// driver's direct truck pointer.
	d, err := e.store.LegacyDriverForTruck(ctx, truckID)
	if err != nil {
		if !errors.Is(err, driver.ErrDriverNotFound) {
			logger.Error("Failed legacy driver lookup for truck",
				zap.String("truck_id", truckID.String()),
				zap.Error(err))
		}
		return nil
	}
	if d != nil && d.User != nil {
		users = append(users, d.User)
	}
	return users
}
