package inmemdb

import (
	"context"
	"net/url"
	"path"

	"github.com/google/uuid"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/submission"
)

// UploadsPath prefixes the URL of every stored file.
const UploadsPath = "/uploads"

type submissionRepository struct {
	db      *submissionTable
	latency core.Latency
}

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db.submission, latency: db.latency}
}

func (repo *submissionRepository) query(keep func(submission.Submission) bool) []submission.Submission {
	rows := make([]submission.Submission, 0, len(repo.db.rows))
	for _, s := range repo.db.rows {
		if keep == nil || keep(s) {
			rows = append(rows, s)
		}
	}
	return rows
}

func (repo *submissionRepository) index(id int) int {
	for i, s := range repo.db.rows {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (repo *submissionRepository) filter(ctx context.Context, keep func(submission.Submission) bool) ([]submission.Submission, error) {
	if err := core.Wait(ctx, repo.latency.Query); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(keep), nil
}

func (repo *submissionRepository) QueryAll(ctx context.Context) ([]submission.Submission, error) {
	if err := core.Wait(ctx, repo.latency.GetAll); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(nil), nil
}

func (repo *submissionRepository) QueryByAssignmentID(ctx context.Context, assignmentID int) ([]submission.Submission, error) {
	return repo.filter(ctx, func(s submission.Submission) bool { return s.AssignmentID == assignmentID })
}

func (repo *submissionRepository) QueryByStudentID(ctx context.Context, studentID int) ([]submission.Submission, error) {
	return repo.filter(ctx, func(s submission.Submission) bool { return s.StudentID == studentID })
}

func (repo *submissionRepository) QueryGraded(ctx context.Context) ([]submission.Submission, error) {
	return repo.filter(ctx, submission.Submission.IsGraded)
}

func (repo *submissionRepository) GetByID(ctx context.Context, id int) (submission.Submission, error) {
	if err := core.Wait(ctx, repo.latency.GetByID); err != nil {
		return submission.Submission{}, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if i := repo.index(id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return submission.Submission{}, core.NewNotFoundError(submission.Resource, id)
}

func (repo *submissionRepository) Create(ctx context.Context, s submission.Submission) (submission.Submission, error) {
	if err := core.Wait(ctx, repo.latency.Create); err != nil {
		return submission.Submission{}, err
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

func (repo *submissionRepository) Update(ctx context.Context, id int, us submission.UpdateSubmission) (submission.Submission, error) {
	if err := core.Wait(ctx, repo.latency.Update); err != nil {
		return submission.Submission{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.index(id)
	if i < 0 {
		return submission.Submission{}, core.NewNotFoundError(submission.Resource, id)
	}
	us.Apply(&repo.db.rows[i])
	return repo.db.rows[i], nil
}

func (repo *submissionRepository) Delete(ctx context.Context, id int) (submission.Submission, error) {
	if err := core.Wait(ctx, repo.latency.Delete); err != nil {
		return submission.Submission{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	i := repo.index(id)
	if i < 0 {
		return submission.Submission{}, core.NewNotFoundError(submission.Resource, id)
	}
	removed := repo.db.rows[i]
	repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
	return removed, nil
}

// StoreFile only simulates the transfer: nothing is written, the URL points to a fresh key.
func (repo *submissionRepository) StoreFile(ctx context.Context, fileName string) (string, error) {
	if err := core.Wait(ctx, repo.latency.Upload); err != nil {
		return "", err
	}
	return path.Join(UploadsPath, uuid.NewString(), url.PathEscape(path.Base(fileName))), nil
}
