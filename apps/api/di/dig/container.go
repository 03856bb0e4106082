package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/classtrack/apps/api/echo"
	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/notification"
	"github.com/trezcool/classtrack/core/portal"
	"github.com/trezcool/classtrack/core/schedule"
	"github.com/trezcool/classtrack/core/student"
	"github.com/trezcool/classtrack/core/submission"
	appfs "github.com/trezcool/classtrack/fs"
	emailsvc "github.com/trezcool/classtrack/services/email"
	exportsvc "github.com/trezcool/classtrack/services/export"
	logsvc "github.com/trezcool/classtrack/services/logger"
	inmemdb "github.com/trezcool/classtrack/storage/database/inmem"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type ServerParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	Validate      *validator.Validate
	Translator    ut.Translator
	Portal        *portal.Portal
	Assignments   *assignment.Service
	Submissions   *submission.Service
	Students      *student.Service
	Notifications *notification.Service
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

// newDB seeds the collections from the embedded fixtures, moved to the current time when rebasing.
func newDB(conf *core.Config, clock core.Clock, loggerParam DBLoggerParam) *inmemdb.DB {
	opts := inmemdb.Options{Latency: conf.Latency}
	if conf.Fixtures.Rebase {
		opts.Shift = inmemdb.RebaseShift(conf.Fixtures.Anchor, clock.Now())
	}

	db, err := inmemdb.Open(appfs.FS, appfs.FixturesDir, opts)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("loading fixtures: %v", err), err)
	}
	loggerParam.Logger.Info(fmt.Sprintf("fixtures loaded, shifted by %v", opts.Shift))
	return db
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newPortal(
	conf *core.Config,
	logger core.Logger,
	clock core.Clock,
	sched *schedule.CronScheduler,
	mailer core.EmailService,
	assignments *assignment.Service,
	submissions *submission.Service,
	students *student.Service,
	notifications *notification.Service,
) *portal.Portal {
	return portal.NewPortal(portal.Options{
		Assignments:    assignments,
		Submissions:    submissions,
		Students:       students,
		Notifications:  notifications,
		Clock:          clock,
		Scheduler:      sched,
		Mailer:         mailer,
		Exporter:       exportsvc.NewXLSXExporter(),
		Logger:         logger,
		Upload:         conf.Upload,
		UpcomingWindow: conf.Portal.UpcomingWindow,
	})
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.Options{
		Conf:          p.Conf,
		Logger:        p.Logger,
		Validate:      p.Validate,
		Translator:    p.Translator,
		Portal:        p.Portal,
		Assignments:   p.Assignments,
		Submissions:   p.Submissions,
		Students:      p.Students,
		Notifications: p.Notifications,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(core.SystemClock))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(inmemdb.NewAssignmentRepository))
	must(c.Provide(inmemdb.NewSubmissionRepository))
	must(c.Provide(inmemdb.NewStudentRepository))
	must(c.Provide(inmemdb.NewNotificationRepository))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(core.NewValidator))
	must(c.Provide(assignment.NewService))
	must(c.Provide(submission.NewService))
	must(c.Provide(student.NewService))
	must(c.Provide(notification.NewService))
	must(c.Provide(schedule.NewCronScheduler))
	must(c.Provide(newPortal))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
