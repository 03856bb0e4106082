package inmemdb

import (
	"context"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/student"
)

type studentRepository struct {
	db      *studentTable
	latency core.Latency
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student, latency: db.latency}
}

func (repo *studentRepository) QueryAll(ctx context.Context) ([]student.Student, error) {
	if err := core.Wait(ctx, repo.latency.GetAll); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]student.Student(nil), repo.db.rows...), nil
}

func (repo *studentRepository) GetByID(ctx context.Context, id int) (student.Student, error) {
	if err := core.Wait(ctx, repo.latency.GetByID); err != nil {
		return student.Student{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if i := repo.index(id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return student.Student{}, core.NewNotFoundError(student.Resource, id)
}

func (repo *studentRepository) First(ctx context.Context) (student.Student, error) {
	if err := core.Wait(ctx, repo.latency.GetByID); err != nil {
		return student.Student{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if len(repo.db.rows) == 0 {
		return student.Student{}, core.NewNotFoundError(student.Resource, 0)
	}
	return repo.db.rows[0], nil
}

func (repo *studentRepository) index(id int) int {
	for i, s := range repo.db.rows {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (repo *studentRepository) Create(ctx context.Context, s student.Student) (student.Student, error) {
	if err := core.Wait(ctx, repo.latency.Create); err != nil {
		return student.Student{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var maxID int
	for _, row := range repo.db.rows {
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	s.ID = maxID + 1
	repo.db.rows = append(repo.db.rows, s)
	return s, nil
}

func (repo *studentRepository) Update(ctx context.Context, id int, us student.UpdateStudent) (student.Student, error) {
	if err := core.Wait(ctx, repo.latency.Update); err != nil {
		return student.Student{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.index(id)
	if i < 0 {
		return student.Student{}, core.NewNotFoundError(student.Resource, id)
	}
	// only save set fields
	us.Apply(&repo.db.rows[i])
	return repo.db.rows[i], nil
}

func (repo *studentRepository) Delete(ctx context.Context, id int) (student.Student, error) {
	if err := core.Wait(ctx, repo.latency.Delete); err != nil {
		return student.Student{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.index(id)
	if i < 0 {
		return student.Student{}, core.NewNotFoundError(student.Resource, id)
	}
	removed := repo.db.rows[i]
	repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
	return removed, nil
}
