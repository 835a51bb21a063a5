package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/staffdesk/staffdesk-backend/internal/config"
	"github.com/staffdesk/staffdesk-backend/internal/leave"
	"github.com/staffdesk/staffdesk-backend/internal/models"
	"github.com/staffdesk/staffdesk-backend/pkg/logger"
	"github.com/staffdesk/staffdesk-backend/pkg/metrics"
)

// Event kinds the dispatcher understands.
const (
	kindSubmission   = "submission"
	kindStatusChange = "status_change"
)

// OwnerLookup resolves the owner of a leave request. Satisfied by the
// users repository.
type OwnerLookup interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

type event struct {
	kind    string
	request *leave.LeaveRequest
}

// Dispatcher decouples notification delivery from the write path: the
// request handler enqueues and returns, a single worker drains the
// queue. Delivery failures are logged and never propagate.
type Dispatcher struct {
	sender       Sender
	owners       OwnerLookup
	reviewerAddr string
	timeout      time.Duration

	ch   chan event
	done chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender Sender, owners OwnerLookup, cfg config.NotifyConfig) *Dispatcher {
	size := cfg.QueueSize
	if size <= 0 {
		size = 128
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{
		sender:       sender,
		owners:       owners,
		reviewerAddr: cfg.ReviewerAddr,
		timeout:      timeout,
		ch:           make(chan event, size),
		done:         make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (d *Dispatcher) Start() {
	go func() {
		defer close(d.done)
		for ev := range d.ch {
			d.handle(ev)
		}
	}()
}

// Close stops accepting events, drains the queue and waits for the
// worker to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.ch)
	d.mu.Unlock()
	<-d.done
}

// LeaveSubmitted enqueues a submission notification addressed to the
// fixed reviewer destination. Never blocks.
func (d *Dispatcher) LeaveSubmitted(lr *leave.LeaveRequest) {
	d.enqueue(event{kind: kindSubmission, request: lr})
}

// LeaveResolved enqueues a status-change notification addressed to the
// request owner. Never blocks.
func (d *Dispatcher) LeaveResolved(lr *leave.LeaveRequest) {
	d.enqueue(event{kind: kindStatusChange, request: lr})
}

func (d *Dispatcher) enqueue(ev event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logger.Warnf("notification dropped, dispatcher closed: %s %s", ev.kind, ev.request.ID)
		metrics.NotificationsDropped.Inc()
		return
	}
	select {
	case d.ch <- ev:
	default:
		logger.Warnf("notification dropped, queue full: %s %s", ev.kind, ev.request.ID)
		metrics.NotificationsDropped.Inc()
	}
}

func (d *Dispatcher) handle(ev event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	owner := d.resolveOwner(ctx, ev.request.UserID)

	var msg Message
	switch ev.kind {
	case kindSubmission:
		msg = Message{
			To:      d.reviewerAddr,
			Subject: fmt.Sprintf("Leave request from %s", owner.Name),
			Body: fmt.Sprintf("%s (%s) requests leave from %s to %s. Reason: %s",
				owner.Name, owner.Email,
				ev.request.StartDate.Format(leave.DateFormat),
				ev.request.EndDate.Format(leave.DateFormat),
				ev.request.Reason),
		}
	case kindStatusChange:
		if owner.Email == "" {
			logger.Warnf("status-change notification skipped, no email for user %s", ev.request.UserID)
			return
		}
		msg = Message{
			To:      owner.Email,
			Subject: fmt.Sprintf("Your leave request was %s", ev.request.Status),
			Body: fmt.Sprintf("Your leave request for %s to %s is now %s.",
				ev.request.StartDate.Format(leave.DateFormat),
				ev.request.EndDate.Format(leave.DateFormat),
				ev.request.Status),
		}
	default:
		return
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		logger.Warnf("notification delivery failed (%s, request %s): %v", ev.kind, ev.request.ID, err)
		metrics.NotificationsFailed.WithLabelValues(ev.kind).Inc()
		return
	}
	metrics.NotificationsSent.WithLabelValues(ev.kind).Inc()
}

// resolveOwner reads the owner profile from the record store, falling
// back to the bare subject id when the profile does not exist yet.
func (d *Dispatcher) resolveOwner(ctx context.Context, userID string) *models.User {
	if d.owners != nil {
		if u, err := d.owners.Get(ctx, userID); err == nil && u != nil {
			return u
		}
	}
	return &models.User{ID: userID, Name: userID}
}
