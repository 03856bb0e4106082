package portal

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/notification"
	"github.com/trezcool/classtrack/core/submission"
	"github.com/trezcool/classtrack/core/upload"
)

const receiptTemplate = "submission_receipt"

var (
	ErrAlreadySubmitted = errors.New("assignment already submitted")
	ErrDeadlinePassed   = errors.New("submission deadline has passed")
)

// workflowFor returns the upload workflow of the assignment, locked with reason if any.
// A settled workflow whose submission no longer exists starts over.
func (p *Portal) workflowFor(ac assignmentContext, reason string) *upload.Workflow {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := ac.assignment.ID
	w, ok := p.workflows[id]
	if ok && reason == "" && w.Snapshot().State == upload.StateSubmitted {
		w.Close()
		ok = false
	}
	if !ok {
		w = upload.NewWorkflow(upload.Options{
			Rules: upload.Rules{
				AllowedTypes: ac.assignment.AllowedFileTypes,
				MaxSize:      ac.assignment.MaxFileSize,
			},
			Submit:    p.submitter(id),
			Scheduler: p.opts.Scheduler,
			Progress:  p.opts.Upload,
		})
		p.workflows[id] = w
	}
	w.Lock(reason)
	return w
}

func (p *Portal) workflow(ctx context.Context, id int) (*upload.Workflow, error) {
	ac, err := p.loadAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.workflowFor(ac, lockReason(ac.assignment, ac.submissions, p.now())), nil
}

// submitter re-checks that the student may still submit, then records the submission,
// notifies about it and sends a receipt.
func (p *Portal) submitter(assignmentID int) upload.SubmitFunc {
	return func(ctx context.Context, f upload.File) error {
		ac, err := p.loadAssignment(ctx, assignmentID)
		if err != nil {
			return err
		}
		if len(ac.submissions) > 0 {
			return ErrAlreadySubmitted
		}
		if ac.assignment.IsPastDue(p.now()) {
			return ErrDeadlinePassed
		}

		sub, err := p.opts.Submissions.SubmitFile(ctx, submission.NewSubmission{
			AssignmentID: assignmentID,
			StudentID:    ac.student.ID,
			StudentName:  ac.student.Name,
			FileName:     f.Name,
			FileSize:     f.Size,
		})
		if err != nil {
			return errors.Wrap(err, "submitting file")
		}

		_, err = p.opts.Notifications.Create(ctx, notification.NewNotification{
			Type:            notification.TypeNewSubmission,
			AssignmentTitle: ac.assignment.Title,
			StudentName:     ac.student.Name,
		})
		if err != nil && p.opts.Logger != nil {
			p.opts.Logger.Warn(fmt.Sprintf("creating submission notification: %v", err), err, ac.student)
		}

		p.sendReceipt(ac, sub)
		return nil
	}
}

func (p *Portal) sendReceipt(ac assignmentContext, sub submission.Submission) {
	if p.opts.Mailer == nil || ac.student.Email == "" {
		return
	}
	p.opts.Mailer.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: ac.student.Name, Address: ac.student.Email}},
		Subject:      "Submission received: " + ac.assignment.Title,
		TemplateName: receiptTemplate,
		TemplateData: map[string]interface{}{
			"StudentName":     ac.student.FirstName(),
			"AssignmentTitle": ac.assignment.Title,
			"CourseName":      ac.assignment.CourseName,
			"FileName":        sub.FileName,
			"FileSize":        FormatMB(sub.FileSize, 2),
			"SubmittedAt":     sub.SubmittedAt.Format("Jan 02, 2006 at 3:04 PM"),
		},
	})
}

func (p *Portal) UploadStatus(ctx context.Context, id int) (upload.Snapshot, error) {
	w, err := p.workflow(ctx, id)
	if err != nil {
		return upload.Snapshot{}, err
	}
	return w.Snapshot(), nil
}

func (p *Portal) StageFile(ctx context.Context, id int, f upload.File) (upload.Snapshot, error) {
	w, err := p.workflow(ctx, id)
	if err != nil {
		return upload.Snapshot{}, err
	}
	return w.Select(f)
}

func (p *Portal) RemoveFile(ctx context.Context, id int) (upload.Snapshot, error) {
	w, err := p.workflow(ctx, id)
	if err != nil {
		return upload.Snapshot{}, err
	}
	return w.Remove()
}

func (p *Portal) RequestUpload(ctx context.Context, id int) (upload.Prompt, error) {
	w, err := p.workflow(ctx, id)
	if err != nil {
		return upload.Prompt{}, err
	}
	return w.RequestUpload()
}

func (p *Portal) CancelUpload(ctx context.Context, id int) (upload.Snapshot, error) {
	w, err := p.workflow(ctx, id)
	if err != nil {
		return upload.Snapshot{}, err
	}
	return w.Cancel()
}

// ConfirmUpload blocks until the submission resolves.
func (p *Portal) ConfirmUpload(ctx context.Context, id int) (upload.Snapshot, error) {
	w, err := p.workflow(ctx, id)
	if err != nil {
		return upload.Snapshot{}, err
	}
	return w.Confirm(ctx)
}

// StartUpload confirms the upload and returns as soon as it is under way.
// The outcome of the submission is sent on the returned channel.
func (p *Portal) StartUpload(ctx context.Context, id int) (upload.Snapshot, <-chan error, error) {
	w, err := p.workflow(ctx, id)
	if err != nil {
		return upload.Snapshot{}, nil, err
	}
	return w.ConfirmAsync(ctx)
}

func (p *Portal) ResetUpload(ctx context.Context, id int) (upload.Snapshot, error) {
	w, err := p.workflow(ctx, id)
	if err != nil {
		return upload.Snapshot{}, err
	}
	return w.Reset()
}
