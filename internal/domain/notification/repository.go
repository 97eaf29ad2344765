package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for notification operations
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByID(ctx context.Context, notificationID uuid.UUID) (*Notification, error)
	// List returns notifications visible under the scope, newest first.
	List(ctx context.Context, scope *Scope) ([]*Notification, error)
	// UnreadExists reports whether an unread notification already matches
	// the (recipient, truck, kind, title) dedup tuple.
	UnreadExists(ctx context.Context, userID uuid.UUID, truckID *uuid.UUID, kind Kind, title string) (bool, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	Delete(ctx context.Context, notificationID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
