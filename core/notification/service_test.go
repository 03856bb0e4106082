package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/classtrack/core/notification"
	"github.com/trezcool/classtrack/tests"
)

func TestService_GetAll(t *testing.T) {
	env := testutil.NewEnv(t)

	notifs, err := env.Notifications.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, notifs, 5)
	for i := 1; i < len(notifs); i++ {
		assert.False(t, notifs[i].Timestamp.After(notifs[i-1].Timestamp), "newest first")
	}
}

func TestService_Create(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	nn := NewNotification{Type: TypeLateSubmission, AssignmentTitle: " Linked <u>List</u> Operations", StudentName: "Emily Chen"}
	require.NoError(t, nn.Validate(env.Validate))
	assert.Equal(t, "Linked List Operations", nn.AssignmentTitle)

	n, err := env.Notifications.Create(ctx, nn)
	require.NoError(t, err)
	assert.Equal(t, 6, n.ID)
	assert.Equal(t, env.Now(), n.Timestamp)
	assert.False(t, n.Read)

	unread, err := env.Notifications.GetUnread(ctx)
	require.NoError(t, err)
	assert.Len(t, unread, 4)

	bad := NewNotification{Type: "reminder", AssignmentTitle: "x", StudentName: "y"}
	assert.Error(t, bad.Validate(env.Validate))
}

func TestService_MarkAsRead(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	n, err := env.Notifications.MarkAsRead(ctx, 2)
	require.NoError(t, err)
	assert.True(t, n.Read)

	// already read
	n, err = env.Notifications.MarkAsRead(ctx, 2)
	require.NoError(t, err)
	assert.True(t, n.Read)

	count, err := env.Notifications.MarkAllAsRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = env.Notifications.MarkAllAsRead(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSortNewestFirst(t *testing.T) {
	t0 := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	notifs := []Notification{
		{ID: 1, Timestamp: t0},
		{ID: 2, Timestamp: t0.Add(time.Hour)},
		{ID: 3, Timestamp: t0},
	}
	SortNewestFirst(notifs)
	assert.Equal(t, []int{2, 1, 3}, []int{notifs[0].ID, notifs[1].ID, notifs[2].ID})
}

func TestService_Update(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	title := "  Vector <b>Fields</b> Worksheet"
	read := true
	un := UpdateNotification{AssignmentTitle: &title, Read: &read}
	require.NoError(t, un.Validate(env.Validate))

	n, err := env.Notifications.Update(ctx, 3, un)
	require.NoError(t, err)
	assert.Equal(t, "Vector Fields Worksheet", n.AssignmentTitle)
	assert.True(t, n.Read)
	assert.Equal(t, TypeLateSubmission, n.Type)
	assert.Equal(t, "Marcus Johnson", n.StudentName)

	bad := Type("reminder")
	assert.Error(t, (&UpdateNotification{Type: &bad}).Validate(env.Validate))

	_, err = env.Notifications.Update(ctx, 404, UpdateNotification{Read: &read})
	require.Error(t, err)
	assert.Equal(t, "notification with id 404 not found", err.Error())
}
