package portal

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/deadline"
	"github.com/trezcool/classtrack/core/notification"
)

// Notification filters
const (
	FilterUnread = "unread"
	FilterRead   = "read"
)

type (
	NotificationItem struct {
		notification.Notification
		TypeLabel string `json:"type_label"`
		Message   string `json:"message"`
		Icon      string `json:"icon"`
		Color     string `json:"color"`
		Ago       string `json:"ago"`
	}

	NotificationsPage struct {
		Notifications []NotificationItem        `json:"notifications"`
		UnreadCount   int                       `json:"unread_count"`
		Summary       string                    `json:"summary"`
		TypeCounts    map[notification.Type]int `json:"type_counts"`
		Filters       []FilterOption            `json:"filters"`
	}
)

func TypeLabel(t notification.Type) string {
	switch t {
	case notification.TypeNewSubmission:
		return "New Submission"
	case notification.TypeLateSubmission:
		return "Late Submission"
	case notification.TypeGradePosted:
		return "Grade Posted"
	default:
		return "Notification"
	}
}

// Message describes the notification in one sentence.
func Message(n notification.Notification) string {
	switch n.Type {
	case notification.TypeNewSubmission:
		return fmt.Sprintf("New submission received from %s for %q", n.StudentName, n.AssignmentTitle)
	case notification.TypeLateSubmission:
		return fmt.Sprintf("Late submission from %s for %q", n.StudentName, n.AssignmentTitle)
	case notification.TypeGradePosted:
		return fmt.Sprintf("Grade posted for %q", n.AssignmentTitle)
	default:
		return "Notification"
	}
}

func notificationIcon(t notification.Type) (icon, color string) {
	switch t {
	case notification.TypeNewSubmission:
		return "Upload", "blue"
	case notification.TypeLateSubmission:
		return "AlertTriangle", ColorRed
	case notification.TypeGradePosted:
		return "Award", ColorGreen
	default:
		return "Bell", "slate"
	}
}

func (p *Portal) newNotificationItem(n notification.Notification) NotificationItem {
	icon, color := notificationIcon(n.Type)
	return NotificationItem{
		Notification: n,
		TypeLabel:    TypeLabel(n.Type),
		Message:      Message(n),
		Icon:         icon,
		Color:        color,
		Ago:          deadline.Distance(n.Timestamp, p.now()),
	}
}

// Notifications lists notifications newest first. filter is "all", "unread" or "read".
func (p *Portal) Notifications(ctx context.Context, filter string) (NotificationsPage, error) {
	all, err := p.opts.Notifications.GetAll(ctx)
	if err != nil {
		return NotificationsPage{}, errors.Wrap(err, "querying notifications")
	}

	page := NotificationsPage{
		Notifications: make([]NotificationItem, 0, len(all)),
		TypeCounts:    make(map[notification.Type]int, len(notification.Types)),
	}
	for _, t := range notification.Types {
		page.TypeCounts[t] = 0
	}
	for _, n := range all {
		page.TypeCounts[n.Type]++
		if !n.Read {
			page.UnreadCount++
		}

		switch {
		case filter == FilterUnread && n.Read, filter == FilterRead && !n.Read:
			continue
		}
		page.Notifications = append(page.Notifications, p.newNotificationItem(n))
	}

	page.Summary = Plural(page.UnreadCount, "unread notification")
	page.Filters = []FilterOption{
		{Key: filterAll, Label: "All Notifications"},
		countOption(FilterUnread, "Unread", page.UnreadCount),
		{Key: FilterRead, Label: "Read"},
	}
	return page, nil
}

func (p *Portal) MarkNotificationRead(ctx context.Context, id int) (NotificationItem, error) {
	n, err := p.opts.Notifications.MarkAsRead(ctx, id)
	if err != nil {
		return NotificationItem{}, errors.Wrap(err, "marking notification as read")
	}
	return p.newNotificationItem(n), nil
}

// MarkAllNotificationsRead returns how many notifications were unread.
func (p *Portal) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	n, err := p.opts.Notifications.MarkAllAsRead(ctx)
	return n, errors.Wrap(err, "marking all notifications as read")
}
