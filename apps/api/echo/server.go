package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/notification"
	"github.com/trezcool/classtrack/core/portal"
	"github.com/trezcool/classtrack/core/student"
	"github.com/trezcool/classtrack/core/submission"
)

type (
	Options struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		// Registry collects the API metrics. A new one is created if nil.
		Registry *prometheus.Registry

		Portal        *portal.Portal
		Assignments   *assignment.Service
		Submissions   *submission.Service
		Students      *student.Service
		Notifications *notification.Service
	}

	Server struct {
		opts     Options
		app      *echo.Echo
		metrics  *metrics
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(opts Options) *Server {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	s := &Server{
		opts:     opts,
		app:      echo.New(),
		metrics:  newMetrics(opts.Registry),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(s.metrics.middleware)

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{})))

	v1 := s.app.Group("/v1")

	registerPortalAPI(v1, s.opts.Portal)
	registerAssignmentAPI(v1, s.opts.Portal, s.opts.Assignments, s.opts.Validate)
	registerUploadAPI(v1, s.opts.Portal, s.opts.Logger, s.metrics)
	registerSubmissionAPI(v1, s.opts.Submissions, s.opts.Validate)
	registerGradeAPI(v1, s.opts.Portal)
	registerNotificationAPI(v1, s.opts.Portal, s.opts.Notifications, s.opts.Validate)
	registerStudentAPI(v1, s.opts.Students, s.opts.Validate)
}

// Start listens on the configured address. Listening errors are sent on Errors().
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)

	s.opts.Logger.Info(fmt.Sprintf("API listening on %s", s.opts.Conf.Server.Address))
	if err := s.app.Start(s.opts.Conf.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

// Shutdown stops accepting requests and waits for the outstanding ones until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, fmt.Sprintf("Welcome to %s API!", s.opts.Conf.AppName))
}
