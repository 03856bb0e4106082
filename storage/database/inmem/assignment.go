package inmemdb

import (
	"context"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/assignment"
)

type assignmentRepository struct {
	db      *assignmentTable
	latency core.Latency
}

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment, latency: db.latency}
}

func cloneAssignment(a assignment.Assignment) assignment.Assignment {
	a.AllowedFileTypes = append([]string(nil), a.AllowedFileTypes...)
	return a
}

func (repo *assignmentRepository) query(keep func(assignment.Assignment) bool) []assignment.Assignment {
	rows := make([]assignment.Assignment, 0, len(repo.db.rows))
	for _, a := range repo.db.rows {
		if keep == nil || keep(a) {
			rows = append(rows, cloneAssignment(a))
		}
	}
	return rows
}

func (repo *assignmentRepository) index(id int) int {
	for i, a := range repo.db.rows {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (repo *assignmentRepository) QueryAll(ctx context.Context) ([]assignment.Assignment, error) {
	if err := core.Wait(ctx, repo.latency.GetAll); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(nil), nil
}

func (repo *assignmentRepository) QueryByStatus(ctx context.Context, status assignment.Status) ([]assignment.Assignment, error) {
	if err := core.Wait(ctx, repo.latency.Query); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(func(a assignment.Assignment) bool { return a.Status == status }), nil
}

func (repo *assignmentRepository) GetByID(ctx context.Context, id int) (assignment.Assignment, error) {
	if err := core.Wait(ctx, repo.latency.GetByID); err != nil {
		return assignment.Assignment{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if i := repo.index(id); i >= 0 {
		return cloneAssignment(repo.db.rows[i]), nil
	}
	return assignment.Assignment{}, core.NewNotFoundError(assignment.Resource, id)
}

func (repo *assignmentRepository) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	if err := core.Wait(ctx, repo.latency.Create); err != nil {
		return assignment.Assignment{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var maxID int
	for _, row := range repo.db.rows {
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	a.ID = maxID + 1
	a = cloneAssignment(a)
	repo.db.rows = append(repo.db.rows, a)
	return cloneAssignment(a), nil
}

func (repo *assignmentRepository) Update(ctx context.Context, id int, ua assignment.UpdateAssignment) (assignment.Assignment, error) {
	if err := core.Wait(ctx, repo.latency.Update); err != nil {
		return assignment.Assignment{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.index(id)
	if i < 0 {
		return assignment.Assignment{}, core.NewNotFoundError(assignment.Resource, id)
	}
	// only save set fields
	ua.Apply(&repo.db.rows[i])
	return cloneAssignment(repo.db.rows[i]), nil
}

func (repo *assignmentRepository) Delete(ctx context.Context, id int) (assignment.Assignment, error) {
	if err := core.Wait(ctx, repo.latency.Delete); err != nil {
		return assignment.Assignment{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.index(id)
	if i < 0 {
		return assignment.Assignment{}, core.NewNotFoundError(assignment.Resource, id)
	}
	removed := repo.db.rows[i]
	repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
	return removed, nil
}
