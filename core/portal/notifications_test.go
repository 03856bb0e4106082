package portal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/notification"
	. "github.com/trezcool/classtrack/core/portal"
	"github.com/trezcool/classtrack/tests"
)

func notificationIDs(items []NotificationItem) []int {
	ids := make([]int, 0, len(items))
	for _, n := range items {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestPortal_Notifications(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	tests := []struct {
		filter  string
		wantIDs []int
	}{
		{"", []int{3, 1, 2, 5, 4}},
		{"all", []int{3, 1, 2, 5, 4}},
		{"unread", []int{3, 1, 2}},
		{"read", []int{5, 4}},
	}
	for _, tt := range tests {
		t.Run("filter "+tt.filter, func(t *testing.T) {
			page, err := env.Portal.Notifications(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, notificationIDs(page.Notifications))
			assert.Equal(t, 3, page.UnreadCount)
			assert.Equal(t, "3 unread notifications", page.Summary)
			assert.Equal(t, map[notification.Type]int{
				notification.TypeNewSubmission:  2,
				notification.TypeLateSubmission: 1,
				notification.TypeGradePosted:    2,
			}, page.TypeCounts)
		})
	}
}

func TestPortal_Notifications_Items(t *testing.T) {
	env := testutil.NewEnv(t)

	page, err := env.Portal.Notifications(context.Background(), "all")
	require.NoError(t, err)
	require.Len(t, page.Notifications, 5)

	late := page.Notifications[0]
	assert.Equal(t, `Late submission from Marcus Johnson for "Projectile Motion Lab Report"`, late.Message)
	assert.Equal(t, "Late Submission", late.TypeLabel)
	assert.Equal(t, "AlertTriangle", late.Icon)
	assert.Equal(t, ColorRed, late.Color)
	assert.Equal(t, "4 days ago", late.Ago)

	submitted := page.Notifications[1]
	assert.Equal(t, `New submission received from John Smith for "SQL Query Optimization"`, submitted.Message)
	assert.Equal(t, "Upload", submitted.Icon)

	graded := page.Notifications[2]
	assert.Equal(t, `Grade posted for "Renaissance Art Analysis Essay"`, graded.Message)
	assert.Equal(t, "Award", graded.Icon)
	assert.Equal(t, ColorGreen, graded.Color)
}

func TestPortal_MarkNotificationsRead(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	item, err := env.Portal.MarkNotificationRead(ctx, 3)
	require.NoError(t, err)
	assert.True(t, item.Read)

	page, err := env.Portal.Notifications(ctx, "unread")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, notificationIDs(page.Notifications))
	assert.Equal(t, "2 unread notifications", page.Summary)

	n, err := env.Portal.MarkAllNotificationsRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	page, err = env.Portal.Notifications(ctx, "unread")
	require.NoError(t, err)
	assert.Empty(t, page.Notifications)
	assert.Equal(t, 0, page.UnreadCount)

	_, err = env.Portal.MarkNotificationRead(ctx, 42)
	assert.True(t, core.IsNotFound(err))
}
