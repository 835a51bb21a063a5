package leave

import "time"

// Status is the leave request workflow state. The state machine is
// PENDING -> APPROVED | REJECTED; terminal states never transition.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus maps a wire value onto a known Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// LeaveRequest is a time-off submission. UserID is immutable after
// creation; Status is mutated only through the reviewer transition.
// Requests are never deleted.
type LeaveRequest struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`
	Reason    string    `bson:"reason" json:"reason"`
	Status    Status    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DateFormat is the calendar date layout accepted on submission.
const DateFormat = "2006-01-02"
