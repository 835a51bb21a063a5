package repository

import (
	"context"
	"errors"
	"time"

	"github.com/staffdesk/staffdesk-backend/internal/leave"
)

var (
	ErrNotFound = errors.New("leave request not found")
	// ErrStatusConflict is returned by TransitionFromPending when the
	// request exists but is no longer PENDING. The current record is
	// returned alongside so callers can distinguish an idempotent
	// re-application from an illegal transition.
	ErrStatusConflict = errors.New("leave request already resolved")
)

// Repository defines persistence operations for leave requests.
type Repository interface {
	Create(ctx context.Context, lr *leave.LeaveRequest) error
	Get(ctx context.Context, id string) (*leave.LeaveRequest, error)
	// ListByUser returns the user's requests ordered by createdAt
	// descending, ties broken by id descending.
	ListByUser(ctx context.Context, userID string) ([]*leave.LeaveRequest, error)
	// TransitionFromPending atomically moves a PENDING request to the
	// given status. The write is conditional on the current status so
	// concurrent reviewers cannot overwrite each other: the loser
	// observes ErrStatusConflict, never a silent last-writer-wins.
	TransitionFromPending(ctx context.Context, id string, to leave.Status, at time.Time) (*leave.LeaveRequest, error)
}
