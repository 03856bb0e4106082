// Package testutil builds fixture-backed services for tests: no latency, a manual scheduler
// and a clock pinned at the instant the fixtures were authored against.
package testutil

import (
	"context"
	"io"
	"log"
	"net/mail"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/notification"
	"github.com/trezcool/classtrack/core/portal"
	"github.com/trezcool/classtrack/core/schedule"
	"github.com/trezcool/classtrack/core/student"
	"github.com/trezcool/classtrack/core/submission"
	appfs "github.com/trezcool/classtrack/fs"
	"github.com/trezcool/classtrack/services/email"
	"github.com/trezcool/classtrack/services/export"
	"github.com/trezcool/classtrack/services/logger"
	"github.com/trezcool/classtrack/storage/database/inmem"
)

// Upload timings used by tests, driven by Env.Sched.
var UploadConfig = core.UploadConfig{
	ProgressTick: 200 * time.Millisecond,
	ProgressStep: 10,
	ProgressCap:  90,
	SettleDelay:  500 * time.Millisecond,
}

type Env struct {
	Conf       *core.Config
	Logger     core.Logger
	Translator ut.Translator
	Validate   *validator.Validate
	Sched      *schedule.Manual
	DB         *inmemdb.DB
	Mailer     core.EmailService
	Portal     *portal.Portal

	AssignmentRepo   assignment.Repository
	SubmissionRepo   submission.Repository
	StudentRepo      student.Repository
	NotificationRepo notification.Repository

	Assignments   *assignment.Service
	Submissions   *submission.Service
	Students      *student.Service
	Notifications *notification.Service
}

func NewConfig() *core.Config {
	return &core.Config{
		AppName:          "ClassTrack",
		Env:              "TEST",
		Build:            "test",
		Debug:            true,
		TestMode:         true,
		DefaultFromEmail: mail.Address{Name: "ClassTrack", Address: "noreply@classtrack.test"},
		Upload:           UploadConfig,
		Deadline:         core.DeadlineConfig{PollInterval: time.Minute},
		Portal:           core.PortalConfig{UpcomingWindow: assignment.UpcomingWindow},
		Fixtures:         core.FixturesConfig{Anchor: core.FixturesAnchor},
	}
}

func NewLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
}

// OpenDB loads the fixtures as authored, without latency.
func OpenDB(t *testing.T) *inmemdb.DB {
	db, err := inmemdb.Open(appfs.FS, appfs.FixturesDir, inmemdb.Options{})
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

// NewEnv wires every service over fresh fixtures. Sent emails are recorded synchronously.
func NewEnv(t *testing.T) *Env {
	conf := NewConfig()
	logger := NewLogger(conf)
	core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, logger)
	emailsvc.ResetSentMessages()

	sched := schedule.NewManual(core.FixturesAnchor)
	db := OpenDB(t)
	translator := core.NewTranslator()

	env := &Env{
		Conf:       conf,
		Logger:     logger,
		Translator: translator,
		Validate:   core.NewValidator(translator),
		Sched:      sched,
		DB:         db,
		Mailer:     emailsvc.NewConsoleServiceMock(conf, logger),

		AssignmentRepo:   inmemdb.NewAssignmentRepository(db),
		SubmissionRepo:   inmemdb.NewSubmissionRepository(db),
		StudentRepo:      inmemdb.NewStudentRepository(db),
		NotificationRepo: inmemdb.NewNotificationRepository(db),
	}
	env.Assignments = assignment.NewService(env.AssignmentRepo, sched)
	env.Submissions = submission.NewService(env.SubmissionRepo, sched)
	env.Students = student.NewService(env.StudentRepo)
	env.Notifications = notification.NewService(env.NotificationRepo, sched)

	env.Portal = portal.NewPortal(portal.Options{
		Assignments:    env.Assignments,
		Submissions:    env.Submissions,
		Students:       env.Students,
		Notifications:  env.Notifications,
		Clock:          sched,
		Scheduler:      sched,
		Mailer:         env.Mailer,
		Exporter:       exportsvc.NewXLSXExporter(),
		Logger:         logger,
		Upload:         conf.Upload,
		UpcomingWindow: conf.Portal.UpcomingWindow,
	})
	t.Cleanup(env.Portal.Close)
	return env
}

// Now is the pinned current time of the Env.
func (env *Env) Now() time.Time {
	return env.Sched.Now()
}

func CreateAssignment(t *testing.T, svc *assignment.Service, na assignment.NewAssignment) assignment.Assignment {
	a, err := svc.Create(context.Background(), na)
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

func CreateSubmission(t *testing.T, svc *submission.Service, ns submission.NewSubmission) submission.Submission {
	s, err := svc.Create(context.Background(), ns)
	if err != nil {
		t.Fatalf("CreateSubmission() failed: %v", err)
	}
	return s
}
