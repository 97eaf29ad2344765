package alerts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleet-manager/internal/config"
	"fleet-manager/internal/domain/notification"
	"fleet-manager/internal/domain/truck"
	"fleet-manager/internal/domain/user"
	"fleet-manager/internal/logger"
)

// staffRoles receive every schedule-driven notification regardless of
// which truck it concerns.
var staffRoles = []user.Role{user.RoleAdministrator, user.RoleMechanic}

// manualRoles receive notifications about manual status changes. Managers
// are included because they can perform those changes themselves.
var manualRoles = []user.Role{user.RoleAdministrator, user.RoleManager, user.RoleMechanic}

// Engine walks the fleet's maintenance schedule, transitions truck
// statuses and fans notifications out to the affected users. A full pass
// runs before every read of trucks or notifications so clients always see
// a state consistent with the calendar.
type Engine struct {
	store Store
	cfg   config.AlertsConfig
	now   func() time.Time
}

func NewEngine(store Store, cfg config.AlertsConfig) *Engine {
	return &Engine{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Reconcile evaluates every scheduled truck against today's date. Each
// truck's status update and notification batch commit in one transaction;
// a failure on one truck is logged and does not stop the pass.
func (e *Engine) Reconcile(ctx context.Context) error {
	today := truncateToDay(e.now())

	trucks, err := e.store.ScheduledTrucks(ctx)
	if err != nil {
		return err
	}
	if len(trucks) == 0 {
		return nil
	}

	staff, err := e.store.UsersByRole(ctx, staffRoles...)
	if err != nil {
		return err
	}

	for _, t := range trucks {
		tr := Evaluate(t, today)
		if tr.Skip {
			continue
		}
		if tr.Status == t.Status && tr.Intent == nil {
			continue
		}

		recipients := staff
		if tr.Intent != nil {
			drivers := e.ResolveDrivers(ctx, t.ID, e.cfg.DefaultWindowDays)
			recipients = mergeRecipients(staff, drivers)
		}

		truckID := t.ID
		err := e.store.InTx(ctx, func(tx Store) error {
			if tr.Status != t.Status {
				if err := tx.UpdateTruckStatus(ctx, truckID, tr.Status); err != nil {
					return err
				}
			}
			if tr.Intent != nil {
				e.deliver(ctx, tx, tr.Intent, &truckID, recipients)
			}
			return nil
		})
		if err != nil {
			logger.Error("Maintenance reconciliation failed for truck",
				zap.String("truck_id", truckID.String()),
				zap.String("plate", t.Plate),
				zap.Error(err))
			continue
		}
		if tr.Status != t.Status {
			logger.Info("Truck status transitioned",
				zap.String("plate", t.Plate),
				zap.String("from", string(t.Status)),
				zap.String("to", string(tr.Status)))
		}
	}

	return nil
}

// DispatchManual fans a notification about a manual status change out to
// administrators, managers and mechanics, plus the truck's drivers over
// the wide recall window. A nil truck sends an unscoped notification to
// staff only.
func (e *Engine) DispatchManual(ctx context.Context, intent *Intent, t *truck.Truck) error {
	staff, err := e.store.UsersByRole(ctx, manualRoles...)
	if err != nil {
		return err
	}

	recipients := staff
	var truckID *uuid.UUID
	if t != nil {
		id := t.ID
		truckID = &id
		drivers := e.ResolveDrivers(ctx, t.ID, e.cfg.UnlockWindowDays)
		recipients = mergeRecipients(staff, drivers)
	}

	return e.store.InTx(ctx, func(tx Store) error {
		e.deliver(ctx, tx, intent, truckID, recipients)
		return nil
	})
}

// NotifyUnlock tells a released truck's recent drivers that it is back in
// operation. Delivery is best effort and skips the duplicate check, since
// every release is news.
func (e *Engine) NotifyUnlock(ctx context.Context, t *truck.Truck) {
	drivers := e.ResolveDrivers(ctx, t.ID, e.cfg.UnlockWindowDays)
	if len(drivers) == 0 {
		return
	}

	intent := UnlockIntent(t)
	truckID := t.ID
	for _, u := range drivers {
		userID := u.ID
		n := &notification.Notification{
			UserID:  &userID,
			TruckID: &truckID,
			Title:   intent.Title,
			Message: intent.Message,
			Kind:    intent.Kind,
		}
		if err := e.store.CreateNotification(ctx, n); err != nil {
			logger.Error("Failed to create unlock notification",
				zap.String("user_id", userID.String()),
				zap.String("plate", t.Plate),
				zap.Error(err))
		}
	}
}

// deliver writes one notification per recipient, skipping recipients who
// already hold an unread copy with the same kind and title for the same
// truck. Per-recipient failures are logged and do not abort the batch.
func (e *Engine) deliver(ctx context.Context, tx Store, intent *Intent, truckID *uuid.UUID, recipients []*user.User) {
	for _, u := range recipients {
		userID := u.ID

		exists, err := tx.UnreadNotificationExists(ctx, userID, truckID, intent.Kind, intent.Title)
		if err != nil {
			if !e.cfg.DedupFailOpen {
				logger.Warn("Duplicate check failed, skipping recipient",
					zap.String("user_id", userID.String()),
					zap.String("title", intent.Title),
					zap.Error(err))
				continue
			}
			logger.Warn("Duplicate check failed, delivering anyway",
				zap.String("user_id", userID.String()),
				zap.String("title", intent.Title),
				zap.Error(err))
		} else if exists {
			continue
		}

		n := &notification.Notification{
			UserID:  &userID,
			TruckID: truckID,
			Title:   intent.Title,
			Message: intent.Message,
			Kind:    intent.Kind,
		}
		if err := tx.CreateNotification(ctx, n); err != nil {
			logger.Error("Failed to create notification",
				zap.String("user_id", userID.String()),
				zap.String("title", intent.Title),
				zap.Error(err))
		}
	}
}

// mergeRecipients appends drivers to the staff list, keeping the first
// occurrence of each user so nobody is notified twice.
func mergeRecipients(staff, drivers []*user.User) []*user.User {
	seen := make(map[uuid.UUID]bool, len(staff)+len(drivers))
	merged := make([]*user.User, 0, len(staff)+len(drivers))
	for _, u := range staff {
		if !seen[u.ID] {
			seen[u.ID] = true
			merged = append(merged, u)
		}
	}
	for _, u := range drivers {
		if !seen[u.ID] {
			seen[u.ID] = true
			merged = append(merged, u)
		}
	}
	return merged
}
