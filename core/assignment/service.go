package assignment

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
)

// UpcomingWindow is the default look-ahead of Service.GetUpcoming.
const UpcomingWindow = 7 * 24 * time.Hour

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]Assignment, error)
		QueryByStatus(ctx context.Context, status Status) ([]Assignment, error)
		GetByID(ctx context.Context, id int) (Assignment, error)
		// Create assigns the next identity (1 + current max) and appends a.
		Create(ctx context.Context, a Assignment) (Assignment, error)
		// Update merges the set fields of ua into the Assignment with the given id.
		Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error)
		Delete(ctx context.Context, id int) (Assignment, error)
	}

	Service struct {
		repo  Repository
		clock core.Clock
	}
)

func NewService(repo Repository, clock core.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (svc *Service) GetAll(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	a := Assignment{
		Title:            na.Title,
		CourseID:         na.CourseID,
		CourseName:       na.CourseName,
		Description:      na.Description,
		DueDate:          na.DueDate.UTC(),
		MaxPoints:        na.MaxPoints,
		AllowedFileTypes: na.AllowedFileTypes,
		MaxFileSize:      na.MaxFileSize,
		Status:           StatusPending,
	}
	return svc.repo.Create(ctx, a)
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	return svc.repo.Update(ctx, id, ua)
}

func (svc *Service) Delete(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.Delete(ctx, id)
}

func (svc *Service) GetPending(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryByStatus(ctx, StatusPending)
}

// GetUpcoming returns pending assignments due within (now, now+window], soonest first.
func (svc *Service) GetUpcoming(ctx context.Context, window time.Duration) ([]Assignment, error) {
	pending, err := svc.repo.QueryByStatus(ctx, StatusPending)
	if err != nil {
		return nil, errors.Wrap(err, "querying pending assignments")
	}

	now := svc.clock.Now()
	upcoming := make([]Assignment, 0, len(pending))
	for _, a := range pending {
		if left := a.DueDate.Sub(now); left > 0 && left <= window {
			upcoming = append(upcoming, a)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].DueDate.Before(upcoming[j].DueDate) })
	return upcoming, nil
}
