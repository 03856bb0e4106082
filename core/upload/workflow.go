package upload

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/schedule"
)

type State string

// States
const (
	StateNoFile         State = "no_file"
	StateFileStaged     State = "file_staged"
	StateConfirmPending State = "confirm_pending"
	StateUploading      State = "uploading"
	StateSubmitted      State = "submitted"
	StateFailed         State = "failed"
)

// Lock reasons
const (
	ReasonDeadlinePassed   = "Submission deadline has passed"
	ReasonAlreadySubmitted = "Assignment already submitted"
)

var (
	ErrLocked            = errors.New("submission is locked")
	ErrInvalidTransition = errors.New("invalid transition")
)

// defaults, matching the configuration defaults
const (
	defaultProgressTick = 200 * time.Millisecond
	defaultProgressStep = 10
	defaultProgressCap  = 90
	defaultSettleDelay  = 500 * time.Millisecond
)

type (
	// SubmitFunc performs the actual submission of a confirmed file.
	SubmitFunc func(ctx context.Context, f File) error

	Options struct {
		Rules     Rules
		Submit    SubmitFunc
		Scheduler schedule.Scheduler
		Progress  core.UploadConfig
		// OnChange, if set, receives a Snapshot after every state change.
		OnChange func(Snapshot)
	}

	Snapshot struct {
		State      State    `json:"state"`
		File       *File    `json:"file,omitempty"`
		Progress   int      `json:"progress"`
		Error      string   `json:"error,omitempty"`
		Errors     []string `json:"errors,omitempty"`
		Locked     bool     `json:"locked"`
		LockReason string   `json:"lock_reason,omitempty"`
	}

	// Prompt is shown to the student before an upload is confirmed.
	Prompt struct {
		FileName string `json:"file_name"`
		SizeMB   string `json:"size_mb"`
		Message  string `json:"message"`
	}

	// Workflow drives the submission of one file for one assignment:
	// NoFile -> FileStaged -> ConfirmPending -> Uploading -> Submitted, or Failed.
	Workflow struct {
		opts Options

		mu         sync.Mutex
		state      State
		file       *File
		progress   int
		errs       []string
		lockReason string
		stopTicks  schedule.Cancel
		stopSettle schedule.Cancel
	}
)

const confirmMessage = "Are you sure you want to submit this file? This action cannot be undone."

func NewWorkflow(opts Options) *Workflow {
	if opts.Progress.ProgressTick <= 0 {
		opts.Progress.ProgressTick = defaultProgressTick
	}
	if opts.Progress.ProgressStep <= 0 {
		opts.Progress.ProgressStep = defaultProgressStep
	}
	if opts.Progress.ProgressCap <= 0 {
		opts.Progress.ProgressCap = defaultProgressCap
	}
	if opts.Progress.SettleDelay < 0 {
		opts.Progress.SettleDelay = defaultSettleDelay
	}
	return &Workflow{opts: opts, state: StateNoFile}
}

// Lock rejects every further transition with ErrLocked.
func (w *Workflow) Lock(reason string) {
	w.mu.Lock()
	w.lockReason = reason
	w.mu.Unlock()
}

func (w *Workflow) Locked() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lockReason != ""
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

func (w *Workflow) snapshot() Snapshot {
	s := Snapshot{
		State:      w.state,
		Progress:   w.progress,
		Locked:     w.lockReason != "",
		LockReason: w.lockReason,
	}
	if w.file != nil {
		f := *w.file
		s.File = &f
	}
	if len(w.errs) > 0 {
		s.Error = w.errs[0]
		s.Errors = append([]string(nil), w.errs...)
	}
	return s
}

// check is called with mu held.
func (w *Workflow) check(from ...State) error {
	if w.lockReason != "" {
		return errors.Wrap(ErrLocked, w.lockReason)
	}
	for _, s := range from {
		if w.state == s {
			return nil
		}
	}
	return errors.Wrapf(ErrInvalidTransition, "not allowed while %s", w.state)
}

// unlockAndNotify releases mu and hands the current Snapshot to the observer.
func (w *Workflow) unlockAndNotify() Snapshot {
	snap := w.snapshot()
	onChange := w.opts.OnChange
	w.mu.Unlock()
	if onChange != nil {
		onChange(snap)
	}
	return snap
}

// Select stages f if it passes the Rules. An invalid file leaves the state unchanged and records why.
func (w *Workflow) Select(f File) (Snapshot, error) {
	w.mu.Lock()
	if err := w.check(StateNoFile, StateFileStaged, StateFailed); err != nil {
		snap := w.snapshot()
		w.mu.Unlock()
		return snap, err
	}

	if err := Validate(f, w.opts.Rules); err != nil {
		w.errs = w.errs[:0]
		if verr, ok := err.(*core.ValidationError); ok {
			for _, fld := range verr.Fields {
				w.errs = append(w.errs, fld.Error)
			}
		}
		return w.unlockAndNotify(), err
	}

	w.file = &f
	w.errs = nil
	w.progress = 0
	w.state = StateFileStaged
	return w.unlockAndNotify(), nil
}

// Remove drops the staged file.
func (w *Workflow) Remove() (Snapshot, error) {
	w.mu.Lock()
	if err := w.check(StateFileStaged, StateFailed); err != nil {
		snap := w.snapshot()
		w.mu.Unlock()
		return snap, err
	}
	w.clear()
	return w.unlockAndNotify(), nil
}

// RequestUpload asks for confirmation of the staged file.
// After a failure the same file may be requested again.
func (w *Workflow) RequestUpload() (Prompt, error) {
	w.mu.Lock()
	if err := w.check(StateFileStaged, StateFailed); err != nil {
		w.mu.Unlock()
		return Prompt{}, err
	}
	if w.file == nil {
		w.mu.Unlock()
		return Prompt{}, errors.Wrap(ErrInvalidTransition, "no file staged")
	}

	prompt := Prompt{FileName: w.file.Name, SizeMB: w.file.SizeMB(), Message: confirmMessage}
	w.errs = nil
	w.state = StateConfirmPending
	w.unlockAndNotify()
	return prompt, nil
}

// Cancel dismisses the confirmation. The staged file is dropped.
func (w *Workflow) Cancel() (Snapshot, error) {
	w.mu.Lock()
	if err := w.check(StateConfirmPending); err != nil {
		snap := w.snapshot()
		w.mu.Unlock()
		return snap, err
	}
	w.clear()
	return w.unlockAndNotify(), nil
}

// Reset goes back to NoFile from any state but Uploading and Submitted.
func (w *Workflow) Reset() (Snapshot, error) {
	w.mu.Lock()
	if err := w.check(StateNoFile, StateFileStaged, StateConfirmPending, StateFailed); err != nil {
		snap := w.snapshot()
		w.mu.Unlock()
		return snap, err
	}
	w.clear()
	return w.unlockAndNotify(), nil
}

// clear is called with mu held.
func (w *Workflow) clear() {
	w.file = nil
	w.errs = nil
	w.progress = 0
	w.state = StateNoFile
}

// Confirm uploads the staged file and blocks until the submission resolves.
// Meanwhile progress advances on its own up to the cap. On success progress jumps to 100
// and the workflow settles into Submitted after the settle delay.
// On failure progress resets, the error is recorded and the workflow is Failed.
func (w *Workflow) Confirm(ctx context.Context) (Snapshot, error) {
	file, snap, err := w.begin()
	if err != nil {
		return snap, err
	}
	return w.finish(ctx, file)
}

// ConfirmAsync is Confirm without the wait: once the workflow is Uploading the submission
// runs in the background and its outcome is sent on the returned channel.
func (w *Workflow) ConfirmAsync(ctx context.Context) (Snapshot, <-chan error, error) {
	file, snap, err := w.begin()
	if err != nil {
		return snap, nil, err
	}
	done := make(chan error, 1)
	go func() {
		_, err := w.finish(ctx, file)
		done <- err
		close(done)
	}()
	return snap, done, nil
}

func (w *Workflow) begin() (File, Snapshot, error) {
	w.mu.Lock()
	if err := w.check(StateConfirmPending); err != nil {
		snap := w.snapshot()
		w.mu.Unlock()
		return File{}, snap, err
	}
	file := *w.file
	w.state = StateUploading
	w.progress = 0
	w.errs = nil
	w.stopTicks = w.opts.Scheduler.Every(w.opts.Progress.ProgressTick, w.tick)
	return file, w.unlockAndNotify(), nil
}

func (w *Workflow) finish(ctx context.Context, file File) (Snapshot, error) {
	var err error
	if w.opts.Submit == nil {
		err = errors.New("no submitter")
	} else {
		err = w.opts.Submit(ctx, file)
	}

	w.mu.Lock()
	w.stopTicking()
	if err != nil {
		w.progress = 0
		w.errs = []string{err.Error()}
		w.state = StateFailed
		snap := w.unlockAndNotify()
		return snap, core.NewUploadError(err)
	}

	w.progress = 100
	w.stopSettle = w.opts.Scheduler.After(w.opts.Progress.SettleDelay, w.settle)
	return w.unlockAndNotify(), nil
}

func (w *Workflow) tick() {
	w.mu.Lock()
	if w.state != StateUploading || w.stopTicks == nil {
		w.mu.Unlock()
		return
	}
	w.progress += w.opts.Progress.ProgressStep
	if w.progress >= w.opts.Progress.ProgressCap {
		w.progress = w.opts.Progress.ProgressCap
		w.stopTicking()
	}
	w.unlockAndNotify()
}

// stopTicking is called with mu held.
func (w *Workflow) stopTicking() {
	if w.stopTicks != nil {
		w.stopTicks()
		w.stopTicks = nil
	}
}

func (w *Workflow) settle() {
	w.mu.Lock()
	w.stopSettle = nil
	w.file = nil
	w.progress = 0
	w.state = StateSubmitted
	w.lockReason = ReasonAlreadySubmitted
	w.unlockAndNotify()
}

// Close cancels any pending scheduled job.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopTicking()
	if w.stopSettle != nil {
		w.stopSettle()
		w.stopSettle = nil
	}
}
