package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

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

func main() {
	stdLogger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		stdLogger.Fatal(err)
	}
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)

	core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, logger)

	// set up DB
	clock := core.SystemClock()
	opts := inmemdb.Options{Latency: conf.Latency}
	if conf.Fixtures.Rebase {
		opts.Shift = inmemdb.RebaseShift(conf.Fixtures.Anchor, clock.Now())
	}
	db, err := inmemdb.Open(appfs.FS, appfs.FixturesDir, opts)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading fixtures: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	sched := schedule.NewCronScheduler()
	defer sched.Stop()

	p := portal.NewPortal(portal.Options{
		Assignments:    assignment.NewService(inmemdb.NewAssignmentRepository(db), clock),
		Submissions:    submission.NewService(inmemdb.NewSubmissionRepository(db), clock),
		Students:       student.NewService(inmemdb.NewStudentRepository(db)),
		Notifications:  notification.NewService(inmemdb.NewNotificationRepository(db), clock),
		Clock:          clock,
		Scheduler:      sched,
		Mailer:         mailSvc,
		Exporter:       exportsvc.NewXLSXExporter(),
		Logger:         logger,
		Upload:         conf.Upload,
		UpcomingWindow: conf.Portal.UpcomingWindow,
	})
	defer p.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	// start CLI
	cli := commandLine{
		conf:      conf,
		clock:     clock,
		sched:     sched,
		portal:    p,
		in:        os.Stdin,
		inFd:      int(os.Stdin.Fd()),
		out:       os.Stdout,
		interrupt: interrupt,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			stdLogger.Printf("\nerror: %s\n", err)
		}
		p.Close()
		sched.Stop()
		os.Exit(1)
	}
}
