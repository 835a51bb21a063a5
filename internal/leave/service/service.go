package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/staffdesk-backend/internal/apperr"
	"github.com/staffdesk/staffdesk-backend/internal/identity"
	"github.com/staffdesk/staffdesk-backend/internal/leave"
	"github.com/staffdesk/staffdesk-backend/internal/leave/repository"
	"github.com/staffdesk/staffdesk-backend/pkg/metrics"
)

// Notifier receives workflow events after the record write committed.
// Implementations must never block: the dispatcher enqueues and returns.
type Notifier interface {
	LeaveSubmitted(lr *leave.LeaveRequest)
	LeaveResolved(lr *leave.LeaveRequest)
}

// Service implements the leave request workflow: validation, the
// status state machine and owner-scoped access.
type Service struct {
	repo     repository.Repository
	notifier Notifier
	now      func() time.Time
}

// New constructs the service. notifier may be nil, in which case
// workflow events are silently skipped.
func New(repo repository.Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// SubmitInput carries the submission arguments. Dates use the
// YYYY-MM-DD calendar layout.
type SubmitInput struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// Submit validates and persists a new PENDING request owned by the
// caller, then hands it to the notifier. Repeated calls create
// distinct requests by design.
func (s *Service) Submit(ctx context.Context, ident identity.Identity, in SubmitInput) (*leave.LeaveRequest, error) {
	if !ident.Authenticated() {
		return nil, apperr.ErrUnauthenticated
	}
	start, err := time.Parse(leave.DateFormat, in.StartDate)
	if err != nil {
		return nil, apperr.E(apperr.ErrInvalidInput, "startDate %q is not a calendar date", in.StartDate)
	}
	end, err := time.Parse(leave.DateFormat, in.EndDate)
	if err != nil {
		return nil, apperr.E(apperr.ErrInvalidInput, "endDate %q is not a calendar date", in.EndDate)
	}
	if start.After(end) {
		return nil, apperr.E(apperr.ErrInvalidInput, "startDate must not be after endDate")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, apperr.E(apperr.ErrInvalidInput, "reason must not be empty")
	}

	now := s.now().UTC()
	lr := &leave.LeaveRequest{
		ID:        uuid.NewString(),
		UserID:    ident.Subject,
		StartDate: start,
		EndDate:   end,
		Reason:    in.Reason,
		Status:    leave.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, lr); err != nil {
		return nil, apperr.Wrap(err)
	}
	metrics.LeaveSubmitted.Inc()

	// write-then-notify: delivery runs detached and never fails the call
	if s.notifier != nil {
		s.notifier.LeaveSubmitted(lr)
	}
	return lr, nil
}

// Transition moves a PENDING request into a terminal status. The write
// is conditional on the current status; racing reviewers produce
// exactly one winner. Re-applying the status a request already holds
// returns the record unchanged.
func (s *Service) Transition(ctx context.Context, ident identity.Identity, requestID, newStatus string) (*leave.LeaveRequest, error) {
	if !ident.Authenticated() {
		return nil, apperr.ErrUnauthenticated
	}
	if !ident.IsReviewer() {
		return nil, apperr.E(apperr.ErrForbidden, "transition requires the reviewer role")
	}
	target, ok := leave.ParseStatus(newStatus)
	if !ok || !target.Terminal() {
		return nil, apperr.E(apperr.ErrInvalidInput, "newStatus must be APPROVED or REJECTED, got %q", newStatus)
	}

	updated, err := s.repo.TransitionFromPending(ctx, requestID, target, s.now().UTC())
	switch {
	case err == nil:
		metrics.LeaveTransitions.WithLabelValues(string(target)).Inc()
		if s.notifier != nil {
			s.notifier.LeaveResolved(updated)
		}
		return updated, nil
	case errors.Is(err, repository.ErrStatusConflict):
		if updated != nil && updated.Status == target {
			// idempotent re-application of the same terminal state
			return updated, nil
		}
		cur := leave.Status("")
		if updated != nil {
			cur = updated.Status
		}
		return nil, apperr.E(apperr.ErrInvalidTransition, "request %s is %s, only PENDING requests can transition", requestID, cur)
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperr.E(apperr.ErrNotFound, "leave request %s", requestID)
	default:
		return nil, apperr.Wrap(err)
	}
}

// ListForOwner returns a user's requests newest-first. Callers may list
// their own requests; the reviewer role may list anyone's.
func (s *Service) ListForOwner(ctx context.Context, ident identity.Identity, userID string) ([]*leave.LeaveRequest, error) {
	if !ident.Authenticated() {
		return nil, apperr.ErrUnauthenticated
	}
	if userID == "" {
		userID = ident.Subject
	}
	if ident.Subject != userID && !ident.IsReviewer() {
		return nil, apperr.E(apperr.ErrForbidden, "cannot list another user's leave requests")
	}
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return out, nil
}
