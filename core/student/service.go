package student

import "context"

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]Student, error)
		GetByID(ctx context.Context, id int) (Student, error)
		// First returns the first Student of the collection.
		First(ctx context.Context) (Student, error)
		Create(ctx context.Context, s Student) (Student, error)
		Update(ctx context.Context, id int, us UpdateStudent) (Student, error)
		Delete(ctx context.Context, id int) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) GetAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetByID(ctx, id)
}

// GetCurrent returns the Student the portal acts for.
func (svc *Service) GetCurrent(ctx context.Context) (Student, error) {
	return svc.repo.First(ctx)
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	return svc.repo.Create(ctx, Student{
		Name:           ns.Name,
		Email:          ns.Email,
		OverallGrade:   ns.OverallGrade,
		CompletionRate: ns.CompletionRate,
	})
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	return svc.repo.Update(ctx, id, us)
}

// UpdateProgress only modifies the progress figures of the Student.
func (svc *Service) UpdateProgress(ctx context.Context, id int, up UpdateProgress) (Student, error) {
	return svc.repo.Update(ctx, id, UpdateStudent{UpdateProgress: up})
}

// Delete removes the Student. Deleting the current Student makes the next one current.
func (svc *Service) Delete(ctx context.Context, id int) (Student, error) {
	return svc.repo.Delete(ctx, id)
}
