package repository

import (
	"context"
	"testing"
	"time"

	"github.com/staffdesk/staffdesk-backend/internal/leave"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCreateGetList(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"a", "b", "c"} {
		lr := &leave.LeaveRequest{
			ID:        id,
			UserID:    "u1",
			Status:    leave.StatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			UpdatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, r.Create(ctx, lr))
	}

	got, err := r.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)

	_, err = r.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	list, err := r.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	// newest first
	require.Equal(t, "c", list[0].ID)
	require.Equal(t, "b", list[1].ID)
	require.Equal(t, "a", list[2].ID)

	other, err := r.ListByUser(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestMemoryRepoListTieBreak(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	at := time.Now().UTC()
	for _, id := range []string{"x1", "x3", "x2"} {
		require.NoError(t, r.Create(ctx, &leave.LeaveRequest{ID: id, UserID: "u", CreatedAt: at, UpdatedAt: at}))
	}
	list, err := r.ListByUser(ctx, "u")
	require.NoError(t, err)
	require.Equal(t, []string{"x3", "x2", "x1"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestMemoryRepoConditionalTransition(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, r.Create(ctx, &leave.LeaveRequest{ID: "lr1", UserID: "u1", Status: leave.StatusPending, CreatedAt: now, UpdatedAt: now}))

	updated, err := r.TransitionFromPending(ctx, "lr1", leave.StatusApproved, now.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, leave.StatusApproved, updated.Status)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	// second transition loses the condition and sees the current record
	current, err := r.TransitionFromPending(ctx, "lr1", leave.StatusRejected, now.Add(2*time.Second))
	require.ErrorIs(t, err, ErrStatusConflict)
	require.Equal(t, leave.StatusApproved, current.Status)

	_, err = r.TransitionFromPending(ctx, "missing", leave.StatusApproved, now)
	require.ErrorIs(t, err, ErrNotFound)
}
