package alerts

import (
	"fmt"
	"time"

	"fleet-manager/internal/domain/notification"
	"fleet-manager/internal/domain/truck"
)

const dateLayout = "02/01/2006"

// Intent describes a notification the engine wants delivered to a set of
// recipients. Title participates in the unread-duplicate check, so two
// intents with the same title for the same truck collapse into one.
type Intent struct {
	Kind    notification.Kind
	Title   string
	Message string
}

// Transition is the outcome of evaluating one truck against today's date.
type Transition struct {
	// Skip means the truck is left untouched: either it has no schedule
	// or it is blocked and waiting for a manual release.
	Skip bool
	// Status is the status the truck should hold after this pass.
	Status truck.Status
	// Intent is the notification to dispatch, nil when the pass is silent.
	Intent *Intent
}

// Evaluate computes the status transition and notification intent for a
// truck given the current date. It is a pure function of its inputs.
//
// The schedule is ranked by how many days remain until the next
// maintenance date: more than two days out releases a pending truck, two
// days out raises an early warning, the due day itself raises a same-day
// notice, and an overdue date blocks the truck. Exactly one day out falls
// between the warning thresholds and produces no change, so a truck warned
// at two days is not re-notified the day before it is due.
func Evaluate(t *truck.Truck, today time.Time) Transition {
	if t.NextMaintenanceAt == nil {
		return Transition{Skip: true, Status: t.Status}
	}

	diff := daysUntil(*t.NextMaintenanceAt, today)

	// A blocked truck with a present or future schedule stays blocked
	// until someone releases it manually.
	if t.Status == truck.StatusBlocked && diff >= 0 {
		return Transition{Skip: true, Status: t.Status}
	}

	switch {
	case diff > 2:
		status := t.Status
		if status == truck.StatusPending {
			status = truck.StatusReleased
		}
		return Transition{Status: status}
	case diff == 2:
		return Transition{
			Status: truck.StatusPending,
			Intent: upcomingIntent(t),
		}
	case diff == 0:
		return Transition{
			Status: truck.StatusPending,
			Intent: dueTodayIntent(t),
		}
	case diff < 0:
		return Transition{
			Status: truck.StatusBlocked,
			Intent: overdueIntent(t),
		}
	default: // diff == 1
		return Transition{Status: t.Status}
	}
}

// daysUntil returns the whole-day distance from today to the target date.
// Both sides are truncated to midnight so time-of-day never shifts the
// bucket a truck lands in.
func daysUntil(target, today time.Time) int {
	target = truncateToDay(target)
	today = truncateToDay(today)
	return int(target.Sub(today).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func upcomingIntent(t *truck.Truck) *Intent {
	return &Intent{
		Kind:    notification.KindAlert,
		Title:   fmt.Sprintf("Upcoming maintenance - Truck %s", t.Plate),
		Message: fmt.Sprintf("Attention: maintenance for truck %s is scheduled for %s.", t.Plate, t.NextMaintenanceAt.Format(dateLayout)),
	}
}

func dueTodayIntent(t *truck.Truck) *Intent {
	return &Intent{
		Kind:    notification.KindInfo,
		Title:   fmt.Sprintf("Maintenance due today - Truck %s", t.Plate),
		Message: fmt.Sprintf("Today is the scheduled maintenance day for truck %s (%s).", t.Plate, t.NextMaintenanceAt.Format(dateLayout)),
	}
}

func overdueIntent(t *truck.Truck) *Intent {
	return &Intent{
		Kind:    notification.KindMaintenance,
		Title:   fmt.Sprintf("Truck blocked - %s", t.Plate),
		Message: fmt.Sprintf("Truck %s was blocked because its maintenance was due on %s.", t.Plate, t.NextMaintenanceAt.Format(dateLayout)),
	}
}

// UnlockIntent announces a manual release to the truck's recent drivers.
func UnlockIntent(t *truck.Truck) *Intent {
	return &Intent{
		Kind:    notification.KindInfo,
		Title:   fmt.Sprintf("Truck %s unlocked", t.Plate),
		Message: fmt.Sprintf("Truck %s has been released and is available for operation again.", t.Plate),
	}
}

// ManualBlockIntent reports an operator blocking a truck by hand.
func ManualBlockIntent(plate string) *Intent {
	return &Intent{
		Kind:    notification.KindMaintenance,
		Title:   fmt.Sprintf("Manual block: %s", plate),
		Message: fmt.Sprintf("Truck %s was manually blocked by an operator.", plate),
	}
}

// ManualReleaseIntent reports an operator releasing a truck by hand.
func ManualReleaseIntent(plate string) *Intent {
	return &Intent{
		Kind:    notification.KindInfo,
		Title:   fmt.Sprintf("Manual release: %s", plate),
		Message: fmt.Sprintf("Truck %s was manually released by an operator.", plate),
	}
}

// ManualPendingIntent reports an operator flagging a truck as pending.
// It is dispatched without truck scoping so it reaches staff only.
func ManualPendingIntent(plate string) *Intent {
	return &Intent{
		Kind:    notification.KindAlert,
		Title:   fmt.Sprintf("Status pending: %s", plate),
		Message: fmt.Sprintf("Truck %s was marked as pending maintenance by an operator.", plate),
	}
}
