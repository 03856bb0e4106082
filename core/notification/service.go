package notification

import (
	"context"
	"sort"

	"github.com/trezcool/classtrack/core"
)

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]Notification, error)
		QueryUnread(ctx context.Context) ([]Notification, error)
		GetByID(ctx context.Context, id int) (Notification, error)
		// Create assigns the next identity and puts n at the head of the collection.
		Create(ctx context.Context, n Notification) (Notification, error)
		Update(ctx context.Context, id int, un UpdateNotification) (Notification, error)
		// MarkAllAsRead returns how many notifications changed.
		MarkAllAsRead(ctx context.Context) (int, error)
		Delete(ctx context.Context, id int) (Notification, error)
	}

	Service struct {
		repo  Repository
		clock core.Clock
	}
)

func NewService(repo Repository, clock core.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// GetAll returns every Notification, newest first.
func (svc *Service) GetAll(ctx context.Context) ([]Notification, error) {
	notifs, err := svc.repo.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(notifs)
	return notifs, nil
}

func (svc *Service) GetUnread(ctx context.Context) ([]Notification, error) {
	return svc.repo.QueryUnread(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Notification, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, un UpdateNotification) (Notification, error) {
	return svc.repo.Update(ctx, id, un)
}

func (svc *Service) MarkAsRead(ctx context.Context, id int) (Notification, error) {
	read := true
	return svc.repo.Update(ctx, id, UpdateNotification{Read: &read})
}

func (svc *Service) MarkAllAsRead(ctx context.Context) (int, error) {
	return svc.repo.MarkAllAsRead(ctx)
}

// Create records an unread Notification stamped with the current time.
func (svc *Service) Create(ctx context.Context, nn NewNotification) (Notification, error) {
	n := Notification{
		Type:            nn.Type,
		AssignmentTitle: nn.AssignmentTitle,
		StudentName:     nn.StudentName,
		Timestamp:       svc.clock.Now().UTC(),
		Read:            false,
	}
	return svc.repo.Create(ctx, n)
}

func (svc *Service) Delete(ctx context.Context, id int) (Notification, error) {
	return svc.repo.Delete(ctx, id)
}

func SortNewestFirst(notifs []Notification) {
	sort.SliceStable(notifs, func(i, j int) bool { return notifs[i].Timestamp.After(notifs[j].Timestamp) })
}
