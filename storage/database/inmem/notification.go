package inmemdb

import (
	"context"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/notification"
)

type notificationRepository struct {
	db      *notificationTable
	latency core.Latency
}

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db.notification, latency: db.latency}
}

func (repo *notificationRepository) index(id int) int {
	for i, n := range repo.db.rows {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (repo *notificationRepository) QueryAll(ctx context.Context) ([]notification.Notification, error) {
	if err := core.Wait(ctx, repo.latency.GetAll); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]notification.Notification(nil), repo.db.rows...), nil
}

func (repo *notificationRepository) QueryUnread(ctx context.Context) ([]notification.Notification, error) {
	if err := core.Wait(ctx, repo.latency.Query); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	unread := make([]notification.Notification, 0, len(repo.db.rows))
	for _, n := range repo.db.rows {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

func (repo *notificationRepository) GetByID(ctx context.Context, id int) (notification.Notification, error) {
	if err := core.Wait(ctx, repo.latency.GetByID); err != nil {
		return notification.Notification{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if i := repo.index(id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return notification.Notification{}, core.NewNotFoundError(notification.Resource, id)
}

func (repo *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	if err := core.Wait(ctx, repo.latency.Create); err != nil {
		return notification.Notification{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var maxID int
	for _, row := range repo.db.rows {
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	n.ID = maxID + 1
	repo.db.rows = append([]notification.Notification{n}, repo.db.rows...)
	return n, nil
}

func (repo *notificationRepository) Update(ctx context.Context, id int, un notification.UpdateNotification) (notification.Notification, error) {
	if err := core.Wait(ctx, repo.latency.Update); err != nil {
		return notification.Notification{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.index(id)
	if i < 0 {
		return notification.Notification{}, core.NewNotFoundError(notification.Resource, id)
	}
	// only save set fields
	un.Apply(&repo.db.rows[i])
	return repo.db.rows[i], nil
}

func (repo *notificationRepository) MarkAllAsRead(ctx context.Context) (int, error) {
	if err := core.Wait(ctx, repo.latency.Update); err != nil {
		return 0, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var changed int
	for i := range repo.db.rows {
		if !repo.db.rows[i].Read {
			repo.db.rows[i].Read = true
			changed++
		}
	}
	return changed, nil
}

func (repo *notificationRepository) Delete(ctx context.Context, id int) (notification.Notification, error) {
	if err := core.Wait(ctx, repo.latency.Delete); err != nil {
		return notification.Notification{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.index(id)
	if i < 0 {
		return notification.Notification{}, core.NewNotFoundError(notification.Resource, id)
	}
	removed := repo.db.rows[i]
	repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
	return removed, nil
}
